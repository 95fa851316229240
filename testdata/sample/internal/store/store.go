package store

// DIR.TAG: /internal/store #NeedsRefactor #perf
type Store struct {
	items map[string]string
}
