package whiteboard

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/whiteboard/internal/sanitize"
)

const instrumentationName = "github.com/fyrsmithlabs/whiteboard/internal/whiteboard"

// snapshotExt is the file extension for persisted snapshots.
const snapshotExt = ".txt"

// FileStore persists each snapshot as one file under
//
//	root/<slugged-project>/<phase>/<timestamp>_<agent>_<id>.txt
//
// All metadata is recoverable from the path alone: timestamp, agent name,
// and id from the file name, phase and project from the parent directory
// names. The file body is the snapshot text with no header or footer.
//
// Identifiers are time-addressed: a hash of (phase, agent, project,
// created_at) plus a store-scoped write counter, so repeated identical
// text and even same-millisecond writes yield distinct files.
//
// Agent names must not contain '_', the field delimiter. Get and Latest
// scan directories linearly; keeping a side index is a non-goal at
// whiteboard scale.
type FileStore struct {
	root   string
	logger *zap.Logger

	tracer        trace.Tracer
	meter         metric.Meter
	writeCounter  metric.Int64Counter
	lookupCounter metric.Int64Counter

	mu  sync.Mutex
	seq uint64
	now func() time.Time
}

// NewFileStore creates a filesystem-backed store rooted at root, creating
// the directory if needed. An empty root defaults to "whiteboard".
func NewFileStore(root string, logger *zap.Logger) (*FileStore, error) {
	if root == "" {
		root = "whiteboard"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create whiteboard root: %w", err)
	}

	s := &FileStore{
		root:   root,
		logger: logger,
		tracer: otel.Tracer(instrumentationName),
		meter:  otel.Meter(instrumentationName),
		now:    time.Now,
	}
	s.initMetrics()
	return s, nil
}

func (s *FileStore) initMetrics() {
	var err error

	s.writeCounter, err = s.meter.Int64Counter(
		"whiteboard.snapshot.writes_total",
		metric.WithDescription("Total number of snapshots written"),
		metric.WithUnit("{snapshot}"),
	)
	if err != nil {
		s.logger.Warn("failed to create write counter", zap.Error(err))
	}

	s.lookupCounter, err = s.meter.Int64Counter(
		"whiteboard.snapshot.lookups_total",
		metric.WithDescription("Total number of snapshot lookups"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		s.logger.Warn("failed to create lookup counter", zap.Error(err))
	}
}

// Write persists text as a new snapshot file.
func (s *FileStore) Write(ctx context.Context, phase, agentName, project, text string) (*Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, "whiteboard.write")
	defer span.End()

	span.SetAttributes(
		attribute.String("phase", phase),
		attribute.String("agent_name", agentName),
		attribute.String("project", project),
	)

	s.mu.Lock()
	s.seq++
	seq := s.seq
	created := formatTime(s.now())
	s.mu.Unlock()

	// The counter feeds the id, not the file name, so same-millisecond
	// writes of one (phase, agent, project) still get distinct names
	// without changing the on-disk layout.
	id := snapshotID(phase, agentName, project, created, strconv.FormatUint(seq, 10))

	dir := filepath.Join(s.root, sanitize.Component(project), phase)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	name := created + "_" + agentName + "_" + id + snapshotExt
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to write snapshot: %w", err)
	}

	if s.writeCounter != nil {
		s.writeCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("phase", phase)))
	}

	s.logger.Debug("wrote snapshot",
		zap.String("id", id),
		zap.String("phase", phase),
		zap.String("agent_name", agentName),
		zap.String("path", path),
	)

	span.SetAttributes(attribute.String("snapshot_id", id))
	return &Snapshot{
		ID:        id,
		Phase:     phase,
		AgentName: agentName,
		Project:   project,
		CreatedAt: created,
		Text:      text,
	}, nil
}

// Get retrieves a snapshot by id, scanning the whole tree for a file whose
// name carries the id.
func (s *FileStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, "whiteboard.get")
	defer span.End()

	span.SetAttributes(attribute.String("snapshot_id", id))

	if s.lookupCounter != nil {
		s.lookupCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "get")))
	}

	var found string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), "_"+id+snapshotExt) {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to scan whiteboard: %w", err)
	}
	if found == "" {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return s.load(found)
}

// Latest returns the chronologically last snapshot matching the filters,
// or nil when nothing matches. The scan is linear over matching files.
func (s *FileStore) Latest(ctx context.Context, phase, project string) (*Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, "whiteboard.latest")
	defer span.End()

	span.SetAttributes(
		attribute.String("phase", phase),
		attribute.String("project", project),
	)

	if s.lookupCounter != nil {
		s.lookupCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "latest")))
	}

	base := s.root
	if project != "" {
		base = filepath.Join(s.root, sanitize.Component(project))
	}

	var candidates []string
	if phase != "" {
		dir := filepath.Join(base, phase)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, nil
			}
			span.RecordError(err)
			return nil, fmt.Errorf("failed to read phase directory: %w", err)
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), snapshotExt) {
				candidates = append(candidates, filepath.Join(dir, e.Name()))
			}
		}
	} else {
		err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(d.Name(), snapshotExt) {
				candidates = append(candidates, path)
			}
			return nil
		})
		if err != nil {
			if os.IsNotExist(err) {
				return nil, nil
			}
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan whiteboard: %w", err)
		}
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	// Timestamp prefixes sort lexicographically in chronological order;
	// full names break ties deterministically.
	best := candidates[0]
	for _, c := range candidates[1:] {
		if filepath.Base(c) > filepath.Base(best) {
			best = c
		}
	}

	return s.load(best)
}

// load reconstructs a full snapshot from a file path: timestamp, agent,
// and id from the name, phase and project from the parent directories.
func (s *FileStore) load(path string) (*Snapshot, error) {
	created, agent, id, ok := parseSnapshotName(filepath.Base(path))
	if !ok {
		return nil, fmt.Errorf("malformed snapshot name: %s", filepath.Base(path))
	}

	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	phaseDir := filepath.Dir(path)
	projectDir := filepath.Dir(phaseDir)
	return &Snapshot{
		ID:        id,
		Phase:     filepath.Base(phaseDir),
		AgentName: agent,
		Project:   filepath.Base(projectDir),
		CreatedAt: created,
		Text:      string(text),
	}, nil
}

// parseSnapshotName splits <timestamp>_<agent>_<id>.txt. Agent names must
// not contain the delimiter; if one does anyway, the interior fields
// re-join so the timestamp and id still parse.
func parseSnapshotName(name string) (created, agent, id string, ok bool) {
	base := strings.TrimSuffix(name, snapshotExt)
	parts := strings.Split(base, "_")
	if len(parts) < 3 {
		return "", "", "", false
	}
	created = parts[0]
	id = parts[len(parts)-1]
	agent = strings.Join(parts[1:len(parts)-1], "_")
	return created, agent, id, true
}
