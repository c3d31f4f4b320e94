package analyses

import "errors"

// ValidationError is raised before any network activity happens.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

var (
	ErrNoJobDescription = ValidationError("job description is required")
	ErrNoDocuments      = ValidationError("at least one resume is required")

	ErrNoRun = errors.New("no analysis run yet")
)
