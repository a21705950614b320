package entity

// LLMParams are the sampling parameters sent with every request.
// Pointer fields left nil keep the provider's own default.
type LLMParams struct {
	Temperature      *float32 `json:"temperature,omitempty"`
	TopP             *float32 `json:"top_p,omitempty"`
	TopK             *int32   `json:"top_k,omitempty"`
	MaxTokens        int      `json:"max_tokens,omitempty"`
	PresencePenalty  float32  `json:"presence_penalty,omitempty"`
	FrequencyPenalty float32  `json:"frequency_penalty,omitempty"`

	// EnableThinking asks providers with native reasoning support to emit
	// their chain of thought. It is folded into the thinking region.
	EnableThinking *bool `json:"enable_thinking,omitempty"`
}
