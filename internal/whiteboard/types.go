package whiteboard

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned by Get when no snapshot has the requested id.
var ErrNotFound = errors.New("snapshot not found")

const (
	// idLength is the length of snapshot identifiers in hex characters.
	idLength = 16

	// timeLayout renders CreatedAt as ISO-8601 UTC with millisecond
	// precision. Constant precision keeps lexicographic order equal to
	// chronological order, which Latest relies on.
	timeLayout = "2006-01-02T15:04:05.000Z"
)

// Snapshot is an immutable artifact record. Once written it is never
// mutated or deleted by a store.
type Snapshot struct {
	// ID is a fixed-length hex identifier, unique within a store.
	ID string `json:"id"`

	// Phase is a free-form label naming the pipeline stage that produced
	// the snapshot (e.g. "north_star", "critique"). Any string is legal.
	Phase string `json:"phase"`

	// AgentName identifies the producing agent instance.
	AgentName string `json:"agent_name"`

	// Project groups snapshots belonging to one logical run.
	Project string `json:"project"`

	// CreatedAt is an ISO-8601 UTC timestamp, the sole ordering key.
	CreatedAt string `json:"created_at"`

	// Text is the verbatim payload.
	Text string `json:"text"`
}

// Store persists and retrieves snapshots.
type Store interface {
	// Write records text as a new snapshot tagged with phase, agent, and
	// project, and returns it.
	Write(ctx context.Context, phase, agentName, project, text string) (*Snapshot, error)

	// Get retrieves a snapshot by id. Returns ErrNotFound when absent.
	Get(ctx context.Context, id string) (*Snapshot, error)

	// Latest returns the chronologically last snapshot matching the given
	// filters. Empty phase or project means "any". Absence is not an
	// error: (nil, nil) is returned when nothing matches.
	Latest(ctx context.Context, phase, project string) (*Snapshot, error)
}

// snapshotID derives a fixed-length hex id from the given fields.
func snapshotID(fields ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(fields, ":")))
	return hex.EncodeToString(sum[:])[:idLength]
}

// formatTime renders t in the store timestamp layout.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
