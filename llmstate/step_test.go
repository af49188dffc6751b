package llmstate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/rickchristie/backtrack"
	"github.com/rickchristie/backtrack/executor"
	"github.com/rickchristie/backtrack/explore"
	"github.com/rickchristie/backtrack/internal/tt"
)

func confidence(c float64) map[string]any {
	return map[string]any{"confidence": c}
}

func strategyPrompt(state backtrack.State, _ []any) []llms.MessageContent {
	strategy, _ := state["strategy"].(string)
	return []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, "solve using "+strategy),
	}
}

func TestStep_Run(t *testing.T) {
	model := tt.NewMockModel().AddResponse("ok", "stop", confidence(0.9))
	step := NewStep(model, strategyPrompt, nil).
		WithCallOptions(llms.WithMaxTokens(256)).
		WithDone(func(r backtrack.State) bool { return r[KeyContent] == "ok" })

	res, err := step.Run(context.Background(), backtrack.State{"temperature": 0.5, "strategy": "creative"}, nil)
	require.NoError(t, err)

	assert.True(t, res.Done)
	assert.Nil(t, res.State)
	assert.Equal(t, backtrack.State{"content": "ok", "stop_reason": "stop", "confidence": 0.9}, res.Result)

	require.Equal(t, 1, model.CallCount())
	assert.Equal(t, 0.5, model.CapturedOptions[0].Temperature)
	assert.Equal(t, 256, model.CapturedOptions[0].MaxTokens)
	assert.Equal(t, llms.TextParts(llms.ChatMessageTypeHuman, "solve using creative"), model.CapturedMessages[0][0])
}

func TestStep_Run_NoTemperature(t *testing.T) {
	model := tt.NewMockModel().AddResponse("x", "stop", confidence(0.9))
	step := NewStep(model, strategyPrompt, nil)

	res, err := step.Run(context.Background(), backtrack.State{}, nil)
	require.NoError(t, err)
	assert.False(t, res.Done)
	assert.Equal(t, 0.0, model.CapturedOptions[0].Temperature)
}

func TestStep_Run_Errors(t *testing.T) {
	errUpstream := errors.New("rate limited")

	t.Run("model error is wrapped", func(t *testing.T) {
		step := NewStep(tt.NewMockModel().AddError(errUpstream), strategyPrompt, nil)
		_, err := step.Run(context.Background(), backtrack.State{}, nil)
		assert.ErrorIs(t, err, errUpstream)
	})

	t.Run("empty response", func(t *testing.T) {
		step := NewStep(tt.NewMockModel().AddRawResponse(&llms.ContentResponse{}), strategyPrompt, nil)
		_, err := step.Run(context.Background(), backtrack.State{}, nil)
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})
}

func TestNewStep_Panics(t *testing.T) {
	assert.Panics(t, func() { NewStep(nil, strategyPrompt, nil) })
	assert.Panics(t, func() { NewStep(tt.NewMockModel(), nil, nil) })
}

func TestStep_DrivesExecutor(t *testing.T) {
	// A truncated low-confidence answer is a dead end; the relabeled
	// strategy produces a good one.
	model := tt.NewMockModel().
		AddResponse("cut", "length", confidence(0.1)).
		AddResponse("done", "stop", confidence(0.95))
	step := NewStep(model, strategyPrompt, nil).
		WithDone(func(r backtrack.State) bool { return r[KeyStopReason] == "stop" })

	cfg := executor.DefaultConfig()
	cfg.Explorer = explore.Options{Strategy: explore.DepthFirst, Rand: backtrack.FixedRand{Index: 1}}

	result := executor.New(step, cfg).Run(context.Background(), backtrack.State{"temperature": 0.7, "strategy": "analytical"})

	require.Equal(t, backtrack.TerminationSuccess, result.Reason)
	assert.Equal(t, 2, result.Iterations)
	assert.Equal(t, "systematic", result.State["strategy"])
	require.Len(t, model.CapturedMessages, 2)
	assert.Equal(t, llms.TextParts(llms.ChatMessageTypeHuman, "solve using systematic"), model.CapturedMessages[1][0])
}
