package llmstate

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"github.com/rickchristie/backtrack"
	"github.com/rickchristie/backtrack/executor"
)

// KeyTemperature is the state field used as the sampling temperature.
const KeyTemperature = "temperature"

// PromptFunc builds the messages for one step from the current state and
// the results of previous steps.
type PromptFunc func(state backtrack.State, history []any) []llms.MessageContent

// DoneFunc reports whether a converted result completes the session.
type DoneFunc func(result backtrack.State) bool

// Step is an executor.Step that calls an llms.Model once per iteration and
// returns the converted response as the step result.
type Step struct {
	model     llms.Model
	prompt    PromptFunc
	converter *Converter
	done      DoneFunc
	options   []llms.CallOption
}

// NewStep creates a Step. A nil converter uses NewConverter(DefaultOptions()).
// Panics if model or prompt is nil.
func NewStep(model llms.Model, prompt PromptFunc, converter *Converter) *Step {
	if model == nil {
		panic("llmstate: nil model")
	}
	if prompt == nil {
		panic("llmstate: nil prompt")
	}
	if converter == nil {
		converter = NewConverter(DefaultOptions())
	}
	return &Step{model: model, prompt: prompt, converter: converter}
}

// WithDone sets the completion check. Without one, the step never reports
// Done and the session ends on budget, alternatives, or iterations.
// Returns the step for chaining.
func (s *Step) WithDone(done DoneFunc) *Step {
	s.done = done
	return s
}

// WithCallOptions appends options passed on every model call. The state's
// temperature is applied after them.
// Returns the step for chaining.
func (s *Step) WithCallOptions(opts ...llms.CallOption) *Step {
	s.options = append(s.options, opts...)
	return s
}

// Run implements executor.Step.
func (s *Step) Run(ctx context.Context, state backtrack.State, history []any) (executor.StepResult, error) {
	messages := s.prompt(state, history)

	opts := make([]llms.CallOption, 0, len(s.options)+1)
	opts = append(opts, s.options...)
	if t, ok := getFloatFromMap(state, KeyTemperature); ok {
		opts = append(opts, llms.WithTemperature(t))
	}

	resp, err := s.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return executor.StepResult{}, fmt.Errorf("llmstate: generate content: %w", err)
	}
	result, err := s.converter.FromResponse(resp)
	if err != nil {
		return executor.StepResult{}, err
	}
	return executor.StepResult{
		Result: result,
		Done:   s.done != nil && s.done(result),
	}, nil
}

var _ executor.Step = (*Step)(nil)
