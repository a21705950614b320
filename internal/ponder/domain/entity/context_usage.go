package entity

// ContextStatus classifies how full the context window is.
type ContextStatus string

const (
	StatusOK       ContextStatus = "OK"
	StatusWarning  ContextStatus = "WARNING"
	StatusCritical ContextStatus = "CRITICAL"
)

// ContextUsage is a snapshot of estimated token usage against a model's
// context window. It is derived from the history on demand.
type ContextUsage struct {
	CurrentTokens   int           `json:"current_tokens"`
	MaxTokens       int           `json:"max_tokens"`
	UsagePercentage float64       `json:"usage_percentage"`
	Status          ContextStatus `json:"status"`
}

// Remaining is the estimated number of tokens left; it goes negative once
// the window is exceeded.
func (u ContextUsage) Remaining() int {
	return u.MaxTokens - u.CurrentTokens
}
