// Package llmstate turns langchaingo model responses into backtrack states
// and provides an executor.Step backed by an llms.Model.
//
// Example usage:
//
//	llm, _ := openai.New(openai.WithToken(apiKey))
//	step := llmstate.NewStep(llm, func(state backtrack.State, history []any) []llms.MessageContent {
//	    return []llms.MessageContent{
//	        llms.TextParts(llms.ChatMessageTypeHuman, buildPrompt(state)),
//	    }
//	}, llmstate.NewConverter(llmstate.DefaultOptions()))
//
//	exec := executor.New(step, executor.DefaultConfig())
//	result := exec.Run(ctx, backtrack.State{"temperature": 0.7})
//
// The step reads the state's "temperature" field as the sampling
// temperature, so alternatives that rescale it change how the model is
// called.
package llmstate
