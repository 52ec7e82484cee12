package domain

// CategoryCount is one named outcome category of a funnel stage together
// with the number of eligible rows that answered with exactly that value.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// StageResult holds the tabulated counts for a single funnel stage.
// Total is the size of the stage's eligible row set, Residual the number of
// eligible rows whose answer was blank or outside the declared category set.
// The invariant Total == sum(Categories) + Residual holds for every stage.
type StageResult struct {
	Stage      string          `json:"stage"`
	Total      int             `json:"total"`
	Categories []CategoryCount `json:"categories"`
	Residual   int             `json:"residual"`
}

// Count returns the count recorded for the named category, or 0 when the
// category is not part of this stage.
func (s StageResult) Count(category string) int {
	for _, c := range s.Categories {
		if c.Category == category {
			return c.Count
		}
	}
	return 0
}

// FunnelResult is the complete outcome of one aggregation run: one
// StageResult per stage in chain order plus the grand total row count.
// A FunnelResult is built fresh from one dataset snapshot and never
// updated afterwards.
type FunnelResult struct {
	Definition string        `json:"definition"`
	GrandTotal int           `json:"grand_total"`
	Stages     []StageResult `json:"stages"`
}

// Stage returns the result for the named stage and whether it exists.
func (f *FunnelResult) Stage(name string) (StageResult, bool) {
	for _, s := range f.Stages {
		if s.Stage == name {
			return s, true
		}
	}
	return StageResult{}, false
}
