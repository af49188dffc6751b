package llmstate

import (
	"errors"
	"slices"

	"github.com/tmc/langchaingo/llms"

	"github.com/rickchristie/backtrack"
)

// ErrEmptyResponse is returned when a response has no choices.
var ErrEmptyResponse = errors.New("llmstate: response has no choices")

// State keys written by the Converter.
const (
	KeyContent            = "content"
	KeyReasoning          = "reasoning"
	KeyStopReason         = "stop_reason"
	KeyToolCalls          = "tool_calls"
	KeyConfidence         = "confidence"
	KeyConstraintViolated = "constraint_violated"
	KeyInputTokens        = "input_tokens"
	KeyOutputTokens       = "output_tokens"
	KeyTotalTokens        = "total_tokens"
)

// DefaultTruncationReasons are stop reasons that mean the model ran out of
// output room, across OpenAI, Anthropic, and Google.
var DefaultTruncationReasons = []string{"length", "max_tokens", "MAX_TOKENS"}

// Options configures a Converter.
type Options struct {
	// TruncationReasons mark the result as constraint_violated.
	TruncationReasons []string `yaml:"truncation_reasons"`

	// ConfidenceKeys are generation info keys read, in order, as the
	// result's confidence.
	ConfidenceKeys []string `yaml:"confidence_keys"`
}

// DefaultOptions returns the default converter options.
func DefaultOptions() Options {
	return Options{
		TruncationReasons: slices.Clone(DefaultTruncationReasons),
		ConfidenceKeys:    []string{"confidence", "Confidence"},
	}
}

// Converter maps *llms.ContentResponse values to states.
type Converter struct {
	opts Options
}

// NewConverter creates a Converter. Nil option slices take their defaults.
func NewConverter(opts Options) *Converter {
	defaults := DefaultOptions()
	if opts.TruncationReasons == nil {
		opts.TruncationReasons = defaults.TruncationReasons
	}
	if opts.ConfidenceKeys == nil {
		opts.ConfidenceKeys = defaults.ConfidenceKeys
	}
	return &Converter{opts: opts}
}

// FromResponse converts the first choice of resp into a State.
//
// The state always carries content and stop_reason. Reasoning content,
// tool call names, token counts, and confidence are included when present.
// constraint_violated is true when the stop reason is a truncation reason.
func (c *Converter) FromResponse(resp *llms.ContentResponse) (backtrack.State, error) {
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return nil, ErrEmptyResponse
	}
	choice := resp.Choices[0]

	state := backtrack.State{
		KeyContent:    choice.Content,
		KeyStopReason: choice.StopReason,
	}
	if choice.ReasoningContent != "" {
		state[KeyReasoning] = choice.ReasoningContent
	}
	if names := toolCallNames(choice); len(names) > 0 {
		state[KeyToolCalls] = names
	}
	if slices.Contains(c.opts.TruncationReasons, choice.StopReason) {
		state[KeyConstraintViolated] = true
	}

	info := choice.GenerationInfo
	if info == nil {
		return state, nil
	}
	for _, key := range c.opts.ConfidenceKeys {
		if f, ok := getFloatFromMap(info, key); ok {
			state[KeyConfidence] = f
			break
		}
	}
	input := extractInputTokens(info)
	output := extractOutputTokens(info)
	if total := extractTotalTokens(info, input, output); total > 0 {
		state[KeyInputTokens] = input
		state[KeyOutputTokens] = output
		state[KeyTotalTokens] = total
	}
	return state, nil
}

// toolCallNames lists function names from tool calls and the legacy
// function call field, in call order.
func toolCallNames(choice *llms.ContentChoice) []any {
	var names []any
	for _, tc := range choice.ToolCalls {
		if tc.FunctionCall != nil {
			names = append(names, tc.FunctionCall.Name)
		}
	}
	if choice.FuncCall != nil {
		names = append(names, choice.FuncCall.Name)
	}
	return names
}

// extractInputTokens extracts input/prompt token count from GenerationInfo.
// Handles different key names used by different providers.
func extractInputTokens(info map[string]any) int {
	// OpenAI / Ollama / Google (compat)
	if v := getIntFromMap(info, "PromptTokens"); v > 0 {
		return v
	}
	// Anthropic
	if v := getIntFromMap(info, "InputTokens"); v > 0 {
		return v
	}
	// Google / Bedrock
	return getIntFromMap(info, "input_tokens")
}

// extractOutputTokens extracts output/completion token count from GenerationInfo.
func extractOutputTokens(info map[string]any) int {
	if v := getIntFromMap(info, "CompletionTokens"); v > 0 {
		return v
	}
	if v := getIntFromMap(info, "OutputTokens"); v > 0 {
		return v
	}
	return getIntFromMap(info, "output_tokens")
}

// extractTotalTokens extracts total token count or computes it.
func extractTotalTokens(info map[string]any, input, output int) int {
	if v := getIntFromMap(info, "TotalTokens"); v > 0 {
		return v
	}
	if v := getIntFromMap(info, "total_tokens"); v > 0 {
		return v
	}
	return input + output
}

// getIntFromMap extracts an int value from a map, handling various numeric types.
func getIntFromMap(m map[string]any, key string) int {
	switch n := m[key].(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	default:
		return 0
	}
}

func getFloatFromMap(m map[string]any, key string) (float64, bool) {
	switch n := m[key].(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
