package agent

import (
	"context"
	"fmt"
)

// Level grades reasoning effort and text verbosity for a Produce call.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// ParseLevel converts a config string to a Level.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case LevelLow, LevelMedium, LevelHigh:
		return Level(s), nil
	default:
		return "", fmt.Errorf("invalid level %q (want low, medium, or high)", s)
	}
}

// Client is the sole boundary to the reasoning service. Implementations
// are stateful per instance: each call is contextually chained to all
// prior calls through an opaque continuation token. Callers must treat
// Produce as slow and fallible, and must not call it concurrently on one
// instance.
type Client interface {
	Produce(ctx context.Context, prompt string, effort, verbosity Level) (string, error)
}

// Exchange is one entry in an agent's append-only conversation log.
type Exchange struct {
	// Role is "user" or "assistant".
	Role string `json:"role"`

	// Content is the verbatim prompt or completion text.
	Content string `json:"content"`

	// ResponseID is the service-side continuation token for assistant
	// entries, when known.
	ResponseID string `json:"response_id,omitempty"`
}
