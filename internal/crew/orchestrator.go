package crew

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/whiteboard/internal/agent"
	"github.com/fyrsmithlabs/whiteboard/internal/whiteboard"
)

const instrumentationName = "github.com/fyrsmithlabs/whiteboard/internal/crew"

// Roles bundles the four agent instances of one run. Each role owns its
// own conversation thread; roles never share a client.
type Roles struct {
	Architect *Architect
	Planner   *Planner
	Developer *Developer
	Critic    *Critic
}

// NewRoles constructs the four role agents, each over a fresh client from
// newClient. Construction performs each agent's initialization exchange.
func NewRoles(ctx context.Context, newClient func() (agent.Client, error), constitution string, logger *zap.Logger) (*Roles, error) {
	build := func(name string) (*agent.Agent, error) {
		client, err := newClient()
		if err != nil {
			return nil, fmt.Errorf("failed to create %s client: %w", name, err)
		}
		return agent.New(ctx, agent.Config{Name: name, Constitution: constitution}, client, logger)
	}

	architect, err := build(RoleArchitect)
	if err != nil {
		return nil, err
	}
	planner, err := build(RolePlanner)
	if err != nil {
		return nil, err
	}
	developer, err := build(RoleDeveloper)
	if err != nil {
		return nil, err
	}
	critic, err := build(RoleCritic)
	if err != nil {
		return nil, err
	}

	return &Roles{
		Architect: &Architect{Agent: architect},
		Planner:   &Planner{Agent: planner},
		Developer: &Developer{Agent: developer},
		Critic:    &Critic{Agent: critic},
	}, nil
}

// Result aggregates one multi-agent run: the three pre-loop state-upload
// snapshots, the touched (or planned) paths per step, and the ordered
// critique snapshots.
type Result struct {
	RunID string

	NorthStarState    *whiteboard.Snapshot
	ArchitectureState *whiteboard.Snapshot
	DevPlanState      *whiteboard.Snapshot

	// FileChanges maps step_<1-based index> to the relative paths that
	// step touched (dry run: would have touched).
	FileChanges map[string][]string

	Critiques []*whiteboard.Snapshot
}

// Orchestrator drives the four roles through one run against a target
// workspace. Strictly sequential: no step begins before the previous
// step's snapshot write completes, and any produce failure aborts the run.
type Orchestrator struct {
	store   whiteboard.Store
	roles   *Roles
	project string
	logger  *zap.Logger
	tracer  trace.Tracer
}

// New creates an orchestrator for one project.
func New(store whiteboard.Store, roles *Roles, project string, logger *zap.Logger) (*Orchestrator, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if roles == nil || roles.Architect == nil || roles.Planner == nil || roles.Developer == nil || roles.Critic == nil {
		return nil, fmt.Errorf("all four roles are required")
	}
	if project == "" {
		return nil, fmt.Errorf("project is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Orchestrator{
		store:   store,
		roles:   roles,
		project: project,
		logger:  logger.With(zap.String("project", project)),
		tracer:  otel.Tracer(instrumentationName),
	}, nil
}

// Run executes the full multi-agent pipeline. With dryRun set, planned
// file changes are computed and reported but never written.
func (o *Orchestrator) Run(ctx context.Context, problem, workspaceRoot string, dryRun bool) (*Result, error) {
	ctx, span := o.tracer.Start(ctx, "crew.run")
	defer span.End()

	result := &Result{
		RunID:       uuid.New().String(),
		FileChanges: make(map[string][]string),
	}
	span.SetAttributes(
		attribute.String("run_id", result.RunID),
		attribute.String("project", o.project),
		attribute.Bool("dry_run", dryRun),
	)
	logger := o.logger.With(zap.String("run_id", result.RunID))

	if err := os.MkdirAll(workspaceRoot, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	// North star.
	northStar, err := o.roles.Architect.GenerateNorthStar(ctx, problem)
	if err != nil {
		return nil, o.fail(span, "north star generation failed", err)
	}
	result.NorthStarState, err = o.stateUpload(ctx, o.roles.Architect.Agent, "north_star_state", problem)
	if err != nil {
		return nil, o.fail(span, "north star state upload failed", err)
	}
	if _, err := o.store.Write(ctx, "north_star_md", o.roles.Architect.Name(), o.project, northStar); err != nil {
		return nil, o.fail(span, "north star snapshot write failed", err)
	}

	// Architecture.
	architecture, err := o.roles.Architect.GenerateArchitecture(ctx, northStar)
	if err != nil {
		return nil, o.fail(span, "architecture generation failed", err)
	}
	result.ArchitectureState, err = o.stateUpload(ctx, o.roles.Architect.Agent, "architecture_state", problem)
	if err != nil {
		return nil, o.fail(span, "architecture state upload failed", err)
	}
	if _, err := o.store.Write(ctx, "architecture_md", o.roles.Architect.Name(), o.project, architecture); err != nil {
		return nil, o.fail(span, "architecture snapshot write failed", err)
	}

	// Dev plan.
	devPlan, err := o.roles.Planner.GenerateDevPlan(ctx, architecture)
	if err != nil {
		return nil, o.fail(span, "dev plan generation failed", err)
	}
	result.DevPlanState, err = o.stateUpload(ctx, o.roles.Planner.Agent, "dev_plan_state", problem)
	if err != nil {
		return nil, o.fail(span, "dev plan state upload failed", err)
	}
	if _, err := o.store.Write(ctx, "dev_plan_md", o.roles.Planner.Name(), o.project, devPlan); err != nil {
		return nil, o.fail(span, "dev plan snapshot write failed", err)
	}

	steps := SegmentSteps(devPlan)
	logger.Info("dev plan segmented", zap.Int("steps", len(steps)))

	// Implementation loop.
	for idx, step := range steps {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		label := fmt.Sprintf("step_%d", idx+1)

		listing, err := ListWorkspace(workspaceRoot)
		if err != nil {
			return nil, o.fail(span, label+" workspace listing failed", err)
		}

		code, err := o.roles.Developer.ImplementStep(ctx, step, listing)
		if err != nil {
			return nil, o.fail(span, label+" implementation failed", err)
		}

		changes := ParseFileChanges(code)
		paths, err := applyChanges(workspaceRoot, changes, dryRun)
		if err != nil {
			return nil, o.fail(span, label+" apply failed", err)
		}
		result.FileChanges[label] = paths
		logger.Info("step applied",
			zap.String("step", label),
			zap.Int("files", len(paths)),
			zap.Bool("dry_run", dryRun),
		)

		critique, err := o.roles.Critic.Critique(ctx, step, code, northStar, architecture)
		if err != nil {
			return nil, o.fail(span, label+" critique failed", err)
		}
		snap, err := o.store.Write(ctx, "critique", o.roles.Critic.Name(), o.project, critique)
		if err != nil {
			return nil, o.fail(span, label+" critique write failed", err)
		}
		result.Critiques = append(result.Critiques, snap)
	}

	return result, nil
}

// stateUpload requests an epistemic compression from the agent and
// snapshots it under the given phase.
func (o *Orchestrator) stateUpload(ctx context.Context, a *agent.Agent, phase, goal string) (*whiteboard.Snapshot, error) {
	text, err := a.SaveUpgradeState(ctx, o.project, goal)
	if err != nil {
		return nil, err
	}
	return o.store.Write(ctx, phase, a.Name(), o.project, text)
}

func (o *Orchestrator) fail(span trace.Span, msg string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return fmt.Errorf("%s: %w", msg, err)
}
