package crew

import (
	"context"
	"fmt"

	"github.com/fyrsmithlabs/whiteboard/internal/agent"
)

// The four roles are thin specializations of an agent: each adds one
// templated operation over Produce. Role names tag their snapshots.
const (
	RoleArchitect = "architect"
	RolePlanner   = "planner"
	RoleDeveloper = "developer"
	RoleCritic    = "critic"
)

// Architect collapses a problem into a north star, then an architecture.
type Architect struct {
	*agent.Agent
}

// GenerateNorthStar produces a north-star artifact for the problem.
func (a *Architect) GenerateNorthStar(ctx context.Context, problem string) (string, error) {
	return a.Produce(ctx, fmt.Sprintf(northStarPrompt, problem))
}

// GenerateArchitecture produces an architecture from the north star.
func (a *Architect) GenerateArchitecture(ctx context.Context, northStar string) (string, error) {
	return a.Produce(ctx, fmt.Sprintf(architecturePrompt, northStar))
}

// Planner turns an architecture into an ordered dev plan.
type Planner struct {
	*agent.Agent
}

// GenerateDevPlan produces a dev plan from the architecture.
func (p *Planner) GenerateDevPlan(ctx context.Context, architecture string) (string, error) {
	return p.Produce(ctx, fmt.Sprintf(devPlanPrompt, architecture))
}

// Developer implements individual plan steps as file-change blocks.
type Developer struct {
	*agent.Agent
}

// ImplementStep produces file-change blocks for one step, given the
// current workspace file listing.
func (d *Developer) ImplementStep(ctx context.Context, step, workspaceListing string) (string, error) {
	return d.Produce(ctx, fmt.Sprintf(implementPrompt, step, workspaceListing))
}

// Critic reviews a step's generated code against the run's artifacts.
type Critic struct {
	*agent.Agent
}

// Critique produces internal epistemic feedback on one implemented step.
func (c *Critic) Critique(ctx context.Context, step, code, northStar, architecture string) (string, error) {
	return c.Produce(ctx, fmt.Sprintf(critiquePrompt, northStar, architecture, step, code))
}
