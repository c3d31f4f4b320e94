package llm

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
)

// Analysis is the parsed outcome of one resume-vs-job-description request.
type Analysis struct {
	Score    int
	Feedback string
}

// Client abstracts completion-service providers for resume analysis.
type Client interface {
	Analyze(ctx context.Context, resumeText, jobDescription string) (Analysis, error)
}

// AnalysisError wraps any non-retryable failure from the completion service.
type AnalysisError struct {
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analyze resume: %v", e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// RateLimitError reports that the retry budget for rate-limit signals ran out.
type RateLimitError struct {
	Attempts int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("completion service rate limited after %d attempts", e.Attempts)
}

// TimeoutError reports a request that exceeded the configured deadline.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("completion service timeout: %v", e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// DefaultScore is used when the completion contains no parseable score line.
// It is a documented default, not an error.
const DefaultScore = 50

var scorePattern = regexp.MustCompile(`(?i)relevance score:\s*(\d+)`)

// ParseScore searches completion text for a "Relevance Score: <n>" line,
// case-insensitively. Values are clamped to [0,100].
func ParseScore(completion string) int {
	match := scorePattern.FindStringSubmatch(completion)
	if match == nil {
		return DefaultScore
	}
	score, err := strconv.Atoi(match[1])
	if err != nil {
		return DefaultScore
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
