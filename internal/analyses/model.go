package analyses

import "time"

const (
	ResultCompleted = "completed"
	ResultFailed    = "failed"
)

// Result is the outcome for one document. Exactly one Result exists per
// analyzed document, in upload order.
type Result struct {
	DocumentID string
	Name       string
	Score      int
	Feedback   string
	Status     string
	Error      string
}

// Run is one user-triggered analysis covering a whole batch against a single
// job description. A new run replaces the previous one wholesale.
type Run struct {
	ID             string
	JobDescription string
	Results        []Result
	Completed      int
	Failed         int
	CreatedAt      time.Time
}
