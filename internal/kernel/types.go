// Package kernel drives one reasoning agent through the fixed epistemic
// pipeline, writing one whiteboard snapshot per phase.
package kernel

// Phase is one stage of the single-agent pipeline.
type Phase string

const (
	// PhaseUpgrade captures an epistemic state upload before work begins.
	PhaseUpgrade Phase = "upgrade"

	// PhaseNorthStar collapses exploration into a north-star artifact.
	PhaseNorthStar Phase = "north_star"

	// PhaseArchitecture derives an architecture from the north star.
	PhaseArchitecture Phase = "architecture"

	// PhaseDevPlan derives an ordered implementation plan.
	PhaseDevPlan Phase = "dev_plan"

	// PhaseReflection checks the prior artifacts against each other.
	PhaseReflection Phase = "reflection"

	// PhaseCheckpoint captures a resumability save file.
	PhaseCheckpoint Phase = "checkpoint"
)

// AllPhases returns the phases in execution order. The order is fixed:
// no branching, no retries.
func AllPhases() []Phase {
	return []Phase{
		PhaseUpgrade,
		PhaseNorthStar,
		PhaseArchitecture,
		PhaseDevPlan,
		PhaseReflection,
		PhaseCheckpoint,
	}
}

// Config names the run the kernel operates on.
type Config struct {
	// Project groups the run's snapshots on the whiteboard.
	Project string

	// Topic is the problem the agent is pointed at.
	Topic string

	// Notes is optional extra context for the north-star phase.
	Notes string
}

// PhaseStatus reports where a phase is in its lifecycle.
type PhaseStatus string

const (
	StatusInProgress PhaseStatus = "in_progress"
	StatusCompleted  PhaseStatus = "completed"
	StatusFailed     PhaseStatus = "failed"
)

// PhaseProgress reports progress during a run.
type PhaseProgress struct {
	Phase      Phase       `json:"phase"`
	Status     PhaseStatus `json:"status"`
	Percentage int         `json:"percentage"`
}

// ProgressCallback receives progress updates during a run.
type ProgressCallback func(progress PhaseProgress)
