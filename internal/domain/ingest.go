package domain

// StoryResult is the per-story verdict of one ingestion step.
type StoryResult int

const (
	StoryNew StoryResult = iota
	StorySkipped
	StoryFailed
)

func (r StoryResult) String() string {
	switch r {
	case StoryNew:
		return "new"
	case StorySkipped:
		return "skipped"
	case StoryFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IngestOutcome aggregates one ingestion run. Failed stories count toward
// neither NewCount nor SkippedCount; absence from storage makes the next
// run retry them.
type IngestOutcome struct {
	NewCount     int `json:"newCount"`
	SkippedCount int `json:"skippedCount"`
	FailedCount  int `json:"failedCount"`
}

// Add folds one story result into the outcome and returns the new value.
func (o IngestOutcome) Add(r StoryResult) IngestOutcome {
	switch r {
	case StoryNew:
		o.NewCount++
	case StorySkipped:
		o.SkippedCount++
	case StoryFailed:
		o.FailedCount++
	}
	return o
}

// FoldOutcome reduces a sequence of results into an outcome.
func FoldOutcome(results []StoryResult) IngestOutcome {
	var out IngestOutcome
	for _, r := range results {
		out = out.Add(r)
	}
	return out
}
