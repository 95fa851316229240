package application

import (
	"fmt"

	"github.com/debtkraft/debtkraft/internal/domain"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Gate is a compiled CI condition. When it evaluates to true the build fails.
type Gate struct {
	source  string
	program *vm.Program
}

// GateEnv builds the variables a gate expression can use.
func GateEnv(g *domain.GeneratedReport, cfg domain.ScanConfig) map[string]any {
	var records []domain.DebtRecord
	if g.Report != nil {
		records = g.Report.Records
	}

	markers := make(map[string]int)
	for _, grp := range domain.GroupByMarker(records) {
		markers[grp.Marker] = len(grp.Records)
	}
	tags := make(map[string]int)
	for _, tc := range domain.CountTags(records) {
		tags[tc.Tag] = tc.Count
	}

	return map[string]any{
		"total":    g.TotalCount,
		"score":    domain.WeightedScore(records, cfg),
		"priority": string(g.Priority),
		"high":     cfg.Thresholds.High,
		"medium":   cfg.Thresholds.Medium,
		"markers":  markers,
		"tags":     tags,
	}
}

// CompileGate parses a boolean expression such as
// `total > 40 || markers["#fixme:"] > 0`.
func CompileGate(source string) (*Gate, error) {
	if source == "" {
		return nil, fmt.Errorf("gate expression must not be empty")
	}
	sample := GateEnv(&domain.GeneratedReport{}, domain.DefaultConfig())
	program, err := expr.Compile(source, expr.Env(sample), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling gate %q: %w", source, err)
	}
	return &Gate{source: source, program: program}, nil
}

// Failed reports whether the scan trips the gate.
func (g *Gate) Failed(report *domain.GeneratedReport, cfg domain.ScanConfig) (bool, error) {
	out, err := expr.Run(g.program, GateEnv(report, cfg))
	if err != nil {
		return false, fmt.Errorf("evaluating gate %q: %w", g.source, err)
	}
	failed, _ := out.(bool)
	return failed, nil
}

func (g *Gate) String() string { return g.source }
