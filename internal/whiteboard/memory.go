package whiteboard

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore holds snapshots in memory for the process lifetime.
//
// Identifiers are content-addressed: a hash of (phase, agent, project,
// text). Two writes with identical fields collide to the same id and the
// second overwrites the first.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]*Snapshot
	order     map[string]uint64
	seq       uint64

	now func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string]*Snapshot),
		order:     make(map[string]uint64),
		now:       time.Now,
	}
}

// Write records text as a new snapshot.
func (s *MemoryStore) Write(_ context.Context, phase, agentName, project, text string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &Snapshot{
		ID:        snapshotID(phase, agentName, project, text),
		Phase:     phase,
		AgentName: agentName,
		Project:   project,
		CreatedAt: formatTime(s.now()),
		Text:      text,
	}

	s.seq++
	s.snapshots[snap.ID] = snap
	s.order[snap.ID] = s.seq
	return snap, nil
}

// Get retrieves a snapshot by id.
func (s *MemoryStore) Get(_ context.Context, id string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[id]
	if !ok {
		return nil, ErrNotFound
	}
	return snap, nil
}

// Latest returns the chronologically last matching snapshot, or nil when
// nothing matches. Timestamp ties break toward the most recent write.
func (s *MemoryStore) Latest(_ context.Context, phase, project string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := make([]*Snapshot, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		if phase != "" && snap.Phase != phase {
			continue
		}
		if project != "" && snap.Project != project {
			continue
		}
		candidates = append(candidates, snap)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].CreatedAt != candidates[j].CreatedAt {
			return candidates[i].CreatedAt < candidates[j].CreatedAt
		}
		return s.order[candidates[i].ID] < s.order[candidates[j].ID]
	})
	return candidates[len(candidates)-1], nil
}
