package crew

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/whiteboard/internal/agent"
	"github.com/fyrsmithlabs/whiteboard/internal/whiteboard"
)

const fakePlan = "Scaffold the package layout\n\nImplement the core loop\n"

const fakeCode = "=== file: a/b.txt ===\nhello\n=== end ===\n=== file: c.txt ===\nworld\n=== end ===\n"

// promptDrivenClient answers based on prompt markers, so one
// implementation serves all four roles.
type promptDrivenClient struct {
	failOn string
}

func (c *promptDrivenClient) Produce(_ context.Context, prompt string, _, _ agent.Level) (string, error) {
	if c.failOn != "" && strings.Contains(prompt, c.failOn) {
		return "", errors.New("service failure")
	}
	switch {
	case strings.Contains(prompt, "NORTH_STAR Collapse"):
		return "the north star", nil
	case strings.Contains(prompt, "implementation tilt"):
		return fakePlan, nil
	case strings.Contains(prompt, "MODE: Architecture."):
		return "the architecture", nil
	case strings.Contains(prompt, "MODE: Implementation."):
		return fakeCode, nil
	case strings.Contains(prompt, "Critical Reflection"):
		return "the critique", nil
	case strings.Contains(prompt, "EPISTEMIC STATE UPLOAD"):
		return "state upload", nil
	default:
		return "Ready to begin", nil
	}
}

func newTestOrchestrator(t *testing.T, client agent.Client, store whiteboard.Store) *Orchestrator {
	t.Helper()
	roles, err := NewRoles(context.Background(), func() (agent.Client, error) { return client, nil }, "", nil)
	require.NoError(t, err)
	o, err := New(store, roles, "proj", nil)
	require.NoError(t, err)
	return o
}

func TestRunDryRun(t *testing.T) {
	store := whiteboard.NewMemoryStore()
	o := newTestOrchestrator(t, &promptDrivenClient{}, store)
	workspace := t.TempDir()

	result, err := o.Run(context.Background(), "build the thing", workspace, true)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.RunID)

	// Two plan steps, each planning the same two paths.
	require.Len(t, result.FileChanges, 2)
	assert.Equal(t, []string{"a/b.txt", "c.txt"}, result.FileChanges["step_1"])
	assert.Equal(t, []string{"a/b.txt", "c.txt"}, result.FileChanges["step_2"])
	require.Len(t, result.Critiques, 2)
	assert.Equal(t, "the critique", result.Critiques[0].Text)

	// Dry run: the workspace stays untouched.
	entries, err := os.ReadDir(workspace)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunAppliesChanges(t *testing.T) {
	store := whiteboard.NewMemoryStore()
	o := newTestOrchestrator(t, &promptDrivenClient{}, store)
	workspace := t.TempDir()

	_, err := o.Run(context.Background(), "build the thing", workspace, false)
	require.NoError(t, err)

	body, err := os.ReadFile(workspace + "/a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(body))
	body, err = os.ReadFile(workspace + "/c.txt")
	require.NoError(t, err)
	assert.Equal(t, "world\n", string(body))
}

func TestRunWritesExpectedSnapshots(t *testing.T) {
	store := whiteboard.NewMemoryStore()
	o := newTestOrchestrator(t, &promptDrivenClient{}, store)

	result, err := o.Run(context.Background(), "build the thing", t.TempDir(), true)
	require.NoError(t, err)

	ctx := context.Background()
	for phase, wantAgent := range map[string]string{
		"north_star_state":   RoleArchitect,
		"north_star_md":      RoleArchitect,
		"architecture_state": RoleArchitect,
		"architecture_md":    RoleArchitect,
		"dev_plan_state":     RolePlanner,
		"dev_plan_md":        RolePlanner,
		"critique":           RoleCritic,
	} {
		snap, err := store.Latest(ctx, phase, "proj")
		require.NoError(t, err)
		require.NotNil(t, snap, "missing snapshot for %s", phase)
		assert.Equal(t, wantAgent, snap.AgentName, "phase %s", phase)
	}

	assert.Equal(t, "state upload", result.NorthStarState.Text)
	assert.Equal(t, "state upload", result.ArchitectureState.Text)
	assert.Equal(t, "state upload", result.DevPlanState.Text)
}

func TestRunFailsFastOnProduceError(t *testing.T) {
	store := whiteboard.NewMemoryStore()
	o := newTestOrchestrator(t, &promptDrivenClient{failOn: "implementation tilt"}, store)

	_, err := o.Run(context.Background(), "problem", t.TempDir(), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dev plan")

	// Nothing past the failure point is on the whiteboard.
	snap, err := store.Latest(context.Background(), "dev_plan_md", "proj")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestNewValidation(t *testing.T) {
	store := whiteboard.NewMemoryStore()
	roles, err := NewRoles(context.Background(), func() (agent.Client, error) { return &promptDrivenClient{}, nil }, "", nil)
	require.NoError(t, err)

	_, err = New(nil, roles, "p", nil)
	require.Error(t, err)
	_, err = New(store, nil, "p", nil)
	require.Error(t, err)
	_, err = New(store, roles, "", nil)
	require.Error(t, err)
}
