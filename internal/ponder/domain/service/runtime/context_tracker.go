package runtime

import (
	"github.com/kiosk404/ponder/internal/ponder/domain/entity"
)

const (
	DefaultWarningThreshold  = 0.8
	DefaultCriticalThreshold = 0.9
)

// TrackerConfig holds the status thresholds as fractions of the window.
type TrackerConfig struct {
	WarningThreshold  float64
	CriticalThreshold float64
}

// DefaultTrackerConfig returns the 80% / 90% thresholds.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		WarningThreshold:  DefaultWarningThreshold,
		CriticalThreshold: DefaultCriticalThreshold,
	}
}

// ContextTracker estimates how much of a model's context window a message
// history occupies. Usage is recomputed on every call and never stored.
type ContextTracker struct {
	estimator *TokenEstimator
	maxTokens int
	cfg       TrackerConfig
}

// NewContextTracker creates a tracker for a window of maxTokens. Invalid
// thresholds fall back to the defaults.
func NewContextTracker(estimator *TokenEstimator, maxTokens int, cfg TrackerConfig) *ContextTracker {
	if estimator == nil {
		estimator = NewTokenEstimator(DefaultCharsPerToken, DefaultMessageOverhead)
	}
	if maxTokens <= 0 {
		maxTokens = DefaultContextWindow
	}
	if cfg.WarningThreshold <= 0 || cfg.WarningThreshold > 1 {
		cfg.WarningThreshold = DefaultWarningThreshold
	}
	if cfg.CriticalThreshold <= 0 || cfg.CriticalThreshold > 1 {
		cfg.CriticalThreshold = DefaultCriticalThreshold
	}
	if cfg.CriticalThreshold < cfg.WarningThreshold {
		cfg.CriticalThreshold = cfg.WarningThreshold
	}
	return &ContextTracker{estimator: estimator, maxTokens: maxTokens, cfg: cfg}
}

// MaxTokens is the window size the tracker measures against.
func (t *ContextTracker) MaxTokens() int {
	return t.maxTokens
}

// Estimator returns the tracker's token estimator.
func (t *ContextTracker) Estimator() *TokenEstimator {
	return t.estimator
}

// Usage estimates msgs against the window.
func (t *ContextTracker) Usage(msgs []entity.Message) entity.ContextUsage {
	return t.UsageForTokens(t.estimator.EstimateMessages(msgs))
}

// UsageForTokens classifies an already estimated token count.
func (t *ContextTracker) UsageForTokens(tokens int) entity.ContextUsage {
	pct := float64(tokens) / float64(t.maxTokens) * 100
	return entity.ContextUsage{
		CurrentTokens:   tokens,
		MaxTokens:       t.maxTokens,
		UsagePercentage: pct,
		Status:          t.classify(pct),
	}
}

func (t *ContextTracker) classify(pct float64) entity.ContextStatus {
	switch {
	case pct >= t.cfg.CriticalThreshold*100:
		return entity.StatusCritical
	case pct >= t.cfg.WarningThreshold*100:
		return entity.StatusWarning
	default:
		return entity.StatusOK
	}
}
