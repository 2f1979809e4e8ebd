package kernel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/whiteboard/internal/agent"
	"github.com/fyrsmithlabs/whiteboard/internal/whiteboard"
)

const instrumentationName = "github.com/fyrsmithlabs/whiteboard/internal/kernel"

// Kernel runs the single-agent pipeline: each phase builds its prompt
// from the configured topic and prior phase snapshots, produces text, and
// writes exactly one snapshot. Any produce or write failure aborts the
// whole run; no snapshot is written for the failing or later phases.
type Kernel struct {
	agent  *agent.Agent
	store  whiteboard.Store
	config Config
	logger *zap.Logger
	tracer trace.Tracer

	progress ProgressCallback
}

// New creates a kernel for one run.
func New(a *agent.Agent, store whiteboard.Store, cfg Config, logger *zap.Logger) (*Kernel, error) {
	if a == nil {
		return nil, fmt.Errorf("agent is required")
	}
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Project == "" {
		return nil, fmt.Errorf("project is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Kernel{
		agent:  a,
		store:  store,
		config: cfg,
		logger: logger.With(zap.String("project", cfg.Project)),
		tracer: otel.Tracer(instrumentationName),
	}, nil
}

// OnProgress sets the progress callback.
func (k *Kernel) OnProgress(callback ProgressCallback) {
	k.progress = callback
}

// Run executes all phases in order and returns the snapshot written for
// each. The terminal map contains every phase exactly once.
func (k *Kernel) Run(ctx context.Context) (map[Phase]*whiteboard.Snapshot, error) {
	ctx, span := k.tracer.Start(ctx, "kernel.run")
	defer span.End()
	span.SetAttributes(attribute.String("project", k.config.Project))

	phases := AllPhases()
	results := make(map[Phase]*whiteboard.Snapshot, len(phases))

	for i, phase := range phases {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		k.report(PhaseProgress{Phase: phase, Status: StatusInProgress, Percentage: (i * 100) / len(phases)})

		text, err := k.producePhase(ctx, phase, results)
		if err != nil {
			k.report(PhaseProgress{Phase: phase, Status: StatusFailed, Percentage: (i * 100) / len(phases)})
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("phase %s failed: %w", phase, err)
		}

		snap, err := k.store.Write(ctx, string(phase), k.agent.Name(), k.config.Project, text)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("failed to write %s snapshot: %w", phase, err)
		}
		results[phase] = snap

		k.logger.Info("completed phase",
			zap.String("phase", string(phase)),
			zap.String("snapshot_id", snap.ID),
		)
		k.report(PhaseProgress{Phase: phase, Status: StatusCompleted, Percentage: ((i + 1) * 100) / len(phases)})
	}

	return results, nil
}

// producePhase builds the phase prompt and produces its text. Later
// phases embed the text of earlier snapshots.
func (k *Kernel) producePhase(ctx context.Context, phase Phase, results map[Phase]*whiteboard.Snapshot) (string, error) {
	switch phase {
	case PhaseUpgrade:
		return k.agent.SaveUpgradeState(ctx, k.config.Project, k.config.Topic)
	case PhaseNorthStar:
		return k.agent.Produce(ctx, fmt.Sprintf(northStarPrompt, k.config.Topic, k.config.Notes))
	case PhaseArchitecture:
		return k.agent.Produce(ctx, fmt.Sprintf(architecturePrompt, results[PhaseNorthStar].Text))
	case PhaseDevPlan:
		return k.agent.Produce(ctx, fmt.Sprintf(devPlanPrompt, results[PhaseArchitecture].Text))
	case PhaseReflection:
		return k.agent.Produce(ctx, fmt.Sprintf(reflectionPrompt,
			results[PhaseNorthStar].Text,
			results[PhaseArchitecture].Text,
			results[PhaseDevPlan].Text,
		))
	case PhaseCheckpoint:
		return k.agent.SaveCheckpoint(ctx, k.config.Project, k.config.Topic)
	default:
		return "", fmt.Errorf("no handler for phase %s", phase)
	}
}

func (k *Kernel) report(progress PhaseProgress) {
	if k.progress != nil {
		k.progress(progress)
	}
}
