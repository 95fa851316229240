package application_test

import (
	"testing"

	"github.com/debtkraft/debtkraft/internal/application"
	"github.com/debtkraft/debtkraft/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gateReport() *domain.GeneratedReport {
	recs := []domain.DebtRecord{
		{Marker: "#debt:"}, {Marker: "#debt:"}, {Marker: "#fixme:"},
		{Marker: domain.StructuredMarker, Structured: &domain.StructuredTag{DirPath: "/core", Tags: []string{"#perf"}}},
	}
	return &domain.GeneratedReport{
		TotalCount: len(recs),
		Priority:   domain.PriorityLow,
		Report:     &domain.ScanReport{Records: recs, TotalCount: len(recs)},
	}
}

func TestGate_Evaluates(t *testing.T) {
	cfg := domain.DefaultConfig()
	tests := []struct {
		expr string
		want bool
	}{
		{"total > 3", true},
		{"total > 4", false},
		{`markers["#fixme:"] > 0`, true},
		{`markers["#hack:"] > 0`, false},
		{`priority == "high"`, false},
		{`tags["#perf"] >= 1 && score >= 4`, true},
		{"total > medium", false},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			gate, err := application.CompileGate(tt.expr)
			require.NoError(t, err)
			failed, err := gate.Failed(gateReport(), cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, failed)
		})
	}
}

func TestCompileGate_Rejects(t *testing.T) {
	for _, src := range []string{"", "total +", "total + 1", "unknown_var > 1"} {
		_, err := application.CompileGate(src)
		assert.Error(t, err, src)
	}
}
