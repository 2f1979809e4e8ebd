package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedClient returns canned completions in order and records prompts.
type scriptedClient struct {
	replies []string
	calls   int

	prompts     []string
	efforts     []Level
	verbosities []Level
	err         error
}

func (c *scriptedClient) Produce(_ context.Context, prompt string, effort, verbosity Level) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.prompts = append(c.prompts, prompt)
	c.efforts = append(c.efforts, effort)
	c.verbosities = append(c.verbosities, verbosity)

	reply := "ok"
	if c.calls < len(c.replies) {
		reply = c.replies[c.calls]
	}
	c.calls++
	return reply, nil
}

func newTestAgent(t *testing.T, name string, client Client) *Agent {
	t.Helper()
	a, err := New(context.Background(), Config{Name: name}, client, nil)
	require.NoError(t, err)
	return a
}

func TestNewSeedsConversation(t *testing.T) {
	client := &scriptedClient{replies: []string{"Ready to begin"}}
	a := newTestAgent(t, "architect", client)

	// The initialization exchange runs at low effort and is logged.
	require.Len(t, a.Log(), 2)
	assert.Equal(t, "user", a.Log()[0].Role)
	assert.Equal(t, "assistant", a.Log()[1].Role)
	assert.Equal(t, "Ready to begin", a.Log()[1].Content)
	assert.Equal(t, LevelLow, client.efforts[0])
	assert.Equal(t, LevelLow, client.verbosities[0])
}

func TestNewRequiresNameAndClient(t *testing.T) {
	_, err := New(context.Background(), Config{}, &scriptedClient{}, nil)
	require.Error(t, err)

	_, err = New(context.Background(), Config{Name: "a"}, nil, nil)
	require.Error(t, err)
}

func TestProduceAppendsExchanges(t *testing.T) {
	client := &scriptedClient{replies: []string{"Ready to begin", "completion"}}
	a := newTestAgent(t, "planner", client)

	text, err := a.Produce(context.Background(), "plan the work")
	require.NoError(t, err)
	assert.Equal(t, "completion", text)

	log := a.Log()
	require.Len(t, log, 4)
	assert.Equal(t, "plan the work", log[2].Content)
	assert.Equal(t, "completion", log[3].Content)
	assert.Equal(t, LevelHigh, client.efforts[1])
}

func TestProduceFailurePropagates(t *testing.T) {
	client := &scriptedClient{}
	a := newTestAgent(t, "critic", client)

	client.err = errors.New("service unavailable")
	_, err := a.Produce(context.Background(), "critique")
	require.Error(t, err)

	// Nothing is appended on failure.
	assert.Len(t, a.Log(), 2)
}

func TestSaveUpgradeStateTemplatesContext(t *testing.T) {
	client := &scriptedClient{replies: []string{"Ready to begin", "state upload"}}
	a := newTestAgent(t, "architect", client)

	text, err := a.SaveUpgradeState(context.Background(), "proj-x", "build the thing")
	require.NoError(t, err)
	assert.Equal(t, "state upload", text)

	prompt := client.prompts[1]
	assert.Contains(t, prompt, "proj-x")
	assert.Contains(t, prompt, "build the thing")
	assert.Contains(t, prompt, "EPISTEMIC STATE UPLOAD")
}

func TestSaveCheckpointTemplatesContext(t *testing.T) {
	client := &scriptedClient{replies: []string{"Ready to begin", "save file"}}
	a := newTestAgent(t, "architect", client)

	text, err := a.SaveCheckpoint(context.Background(), "proj-x", "goal")
	require.NoError(t, err)
	assert.Equal(t, "save file", text)
	assert.Contains(t, client.prompts[1], "CHECKPOINT MODE")
}

func TestParseLevel(t *testing.T) {
	for _, valid := range []string{"low", "medium", "high"} {
		lvl, err := ParseLevel(valid)
		require.NoError(t, err)
		assert.Equal(t, Level(valid), lvl)
	}

	_, err := ParseLevel("extreme")
	require.Error(t, err)
}
