package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"resume-screener/internal/llm"
	"resume-screener/internal/shared/metrics"
)

const (
	defaultBaseURL   = "https://api.openai.com/v1"
	maxRetryJitter   = 250 * time.Millisecond
	completionsRoute = "/chat/completions"
)

// Config carries everything the client needs. The credential is passed in
// here once at startup, never read from the environment at call sites.
type Config struct {
	BaseURL        string
	APIKey         string
	Model          string
	MaxTokens      int
	Temperature    float32
	RequestTimeout time.Duration
	MaxAttempts    int
	DefaultWait    time.Duration
	RetryAfterUnit time.Duration
}

// Client implements llm.Client against an OpenAI-compatible chat completions API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient constructs a completion-service client. A missing API key is not
// rejected here; the service itself answers with an auth error, which surfaces
// as a regular analysis failure.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 200
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.DefaultWait <= 0 {
		cfg.DefaultWait = time.Second
	}
	if cfg.RetryAfterUnit <= 0 {
		cfg.RetryAfterUnit = time.Second
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}, nil
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature *float32  `json:"temperature,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// errRateLimited is internal to the retry loop; callers see llm.RateLimitError.
type errRateLimited struct {
	wait time.Duration
}

func (e errRateLimited) Error() string { return "rate limited" }

// Analyze sends one resume/job-description pair for scoring. Rate-limit
// signals are retried up to MaxAttempts with the service's retry hint or
// exponential backoff with jitter; every other failure is terminal.
func (c *Client) Analyze(ctx context.Context, resumeText, jobDescription string) (llm.Analysis, error) {
	messages := BuildMessages(resumeText, jobDescription)

	var lastWait time.Duration
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			metrics.IncRateLimitRetry()
			wait := c.backoffWait(lastWait, attempt)
			log.Printf("llm rate limited attempt=%d wait=%s model=%s", attempt-1, wait, c.cfg.Model)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return llm.Analysis{}, ctx.Err()
			}
		}

		content, err := c.completeOnce(ctx, messages)
		if err == nil {
			return llm.Analysis{
				Score:    llm.ParseScore(content),
				Feedback: content,
			}, nil
		}

		var limited errRateLimited
		if errors.As(err, &limited) {
			lastWait = limited.wait
			continue
		}
		if isTimeout(err) {
			return llm.Analysis{}, &llm.TimeoutError{Err: err}
		}
		return llm.Analysis{}, &llm.AnalysisError{Err: err}
	}

	return llm.Analysis{}, &llm.RateLimitError{Attempts: c.cfg.MaxAttempts}
}

func (c *Client) completeOnce(ctx context.Context, messages []Message) (string, error) {
	reqBody := chatRequest{
		Model:     c.cfg.Model,
		Messages:  messages,
		MaxTokens: c.cfg.MaxTokens,
	}
	temp := c.cfg.Temperature
	reqBody.Temperature = &temp

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+completionsRoute, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		return "", errRateLimited{wait: c.retryHint(resp.Header.Get("Retry-After"))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("completion service http status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("completion response parse: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("completion service error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion response missing choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("completion response empty content")
	}
	return content, nil
}

// retryHint converts the Retry-After header into a wait using the configured
// unit. The header is seconds per RFC 7231; the unit stays explicit in config
// for services that hint in milliseconds.
func (c *Client) retryHint(header string) time.Duration {
	raw := strings.TrimSpace(header)
	if raw == "" {
		return 0
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return 0
	}
	return time.Duration(parsed) * c.cfg.RetryAfterUnit
}

// backoffWait prefers the service's hint, falling back to exponential backoff
// on DefaultWait, always with jitter added.
func (c *Client) backoffWait(hint time.Duration, attempt int) time.Duration {
	wait := hint
	if wait <= 0 {
		wait = c.cfg.DefaultWait
		for i := 2; i < attempt; i++ {
			wait *= 2
		}
	}
	return wait + time.Duration(rand.Int63n(int64(maxRetryJitter)))
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return strings.Contains(err.Error(), "Client.Timeout")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

var _ llm.Client = (*Client)(nil)
