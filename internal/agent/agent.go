package agent

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Config configures a named agent.
type Config struct {
	// Name identifies the agent instance in snapshots and logs.
	Name string

	// Constitution is the operating charter sent in the initialization
	// exchange. Empty uses DefaultConstitution.
	Constitution string

	// Effort and Verbosity are the levels for regular Produce calls.
	// Zero values default to high, matching the pipeline's intent.
	Effort    Level
	Verbosity Level
}

// Agent is one reasoning agent instance: a name, a conversation-owning
// client, and an append-only exchange log. The log is never pruned here;
// compression happens inside the agent's own prompts.
type Agent struct {
	name      string
	client    Client
	logger    *zap.Logger
	effort    Level
	verbosity Level

	log []Exchange
}

// New constructs an agent and performs its initialization exchange, which
// seeds the conversation with the constitution at low effort.
func New(ctx context.Context, cfg Config, client Client, logger *zap.Logger) (*Agent, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("agent name is required")
	}
	if client == nil {
		return nil, fmt.Errorf("client is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	constitution := cfg.Constitution
	if constitution == "" {
		constitution = DefaultConstitution
	}
	effort := cfg.Effort
	if effort == "" {
		effort = LevelHigh
	}
	verbosity := cfg.Verbosity
	if verbosity == "" {
		verbosity = LevelHigh
	}

	a := &Agent{
		name:      cfg.Name,
		client:    client,
		logger:    logger.With(zap.String("agent", cfg.Name)),
		effort:    effort,
		verbosity: verbosity,
	}

	if _, err := a.produce(ctx, fmt.Sprintf(initPrompt, constitution), LevelLow, LevelLow); err != nil {
		return nil, fmt.Errorf("agent %s initialization failed: %w", cfg.Name, err)
	}
	return a, nil
}

// Name returns the agent's name.
func (a *Agent) Name() string {
	return a.name
}

// Log returns a copy of the conversation log.
func (a *Agent) Log() []Exchange {
	out := make([]Exchange, len(a.log))
	copy(out, a.log)
	return out
}

// Produce sends prompt through the chained conversation and returns the
// completion. A failure aborts whatever pipeline is driving the agent.
func (a *Agent) Produce(ctx context.Context, prompt string) (string, error) {
	return a.produce(ctx, prompt, a.effort, a.verbosity)
}

func (a *Agent) produce(ctx context.Context, prompt string, effort, verbosity Level) (string, error) {
	text, err := a.client.Produce(ctx, prompt, effort, verbosity)
	if err != nil {
		return "", err
	}

	a.log = append(a.log, Exchange{Role: "user", Content: prompt})
	a.log = append(a.log, Exchange{Role: "assistant", Content: text})

	a.logger.Debug("produced completion",
		zap.Int("prompt_len", len(prompt)),
		zap.Int("completion_len", len(text)),
	)
	return text, nil
}

// SaveUpgradeState asks the agent for an epistemic compression of its
// current state, in anticipation of continuing as a future self.
func (a *Agent) SaveUpgradeState(ctx context.Context, project, goal string) (string, error) {
	return a.Produce(ctx, fmt.Sprintf(upgradePrompt, project, goal))
}

// SaveCheckpoint asks the agent to construct a resumability checkpoint.
func (a *Agent) SaveCheckpoint(ctx context.Context, project, goal string) (string, error) {
	return a.Produce(ctx, fmt.Sprintf(checkpointPrompt, project, goal))
}
