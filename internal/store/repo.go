package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	Purpose   string    // exact match when set
	SessionID string    // exact match when set
}

// LLMRequestEventData captures the metadata of a single LLM request.
// Prompts and responses are deliberately absent: answers and reports
// never touch disk.
type LLMRequestEventData struct {
	SessionID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestRecord is a stored LLM request event.
type LLMRequestRecord struct {
	LLMRequestEventData
	Sequence  int64
	Timestamp time.Time
}

// LLMUsage aggregates LLM requests for one purpose and model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs float64
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error)

	// PruneLLMEvents deletes events older than before and reports how
	// many were removed.
	PruneLLMEvents(ctx context.Context, before time.Time) (int64, error)

	// LLMUsageByPurpose aggregates all LLM request events by purpose and model.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
}
