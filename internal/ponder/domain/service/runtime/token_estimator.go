package runtime

import (
	"unicode/utf8"

	"github.com/kiosk404/ponder/internal/ponder/domain/entity"
)

// TokenEstimator estimates token counts for messages.
//
// There is no local tokenizer, so counts come from a character heuristic:
// the character count integer-divided by CharsPerToken, plus a fixed
// per-message overhead for role and framing tokens. Both constants are
// configurable; neither carries an accuracy bound.
type TokenEstimator struct {
	charsPerToken   int
	messageOverhead int
}

const (
	// DefaultCharsPerToken is roughly right for English text.
	DefaultCharsPerToken = 4

	// DefaultMessageOverhead accounts for role tokens and delimiters.
	DefaultMessageOverhead = 10
)

// NewTokenEstimator creates an estimator. A non-positive charsPerToken
// selects DefaultCharsPerToken and a negative overhead selects
// DefaultMessageOverhead.
func NewTokenEstimator(charsPerToken, messageOverhead int) *TokenEstimator {
	if charsPerToken <= 0 {
		charsPerToken = DefaultCharsPerToken
	}
	if messageOverhead < 0 {
		messageOverhead = DefaultMessageOverhead
	}
	return &TokenEstimator{charsPerToken: charsPerToken, messageOverhead: messageOverhead}
}

// EstimateString estimates tokens for a raw string.
func (te *TokenEstimator) EstimateString(s string) int {
	return utf8.RuneCountInString(s) / te.charsPerToken
}

// EstimateMessage estimates tokens for a single message. Only the content
// is counted, plus the per-message overhead.
func (te *TokenEstimator) EstimateMessage(msg entity.Message) int {
	return te.EstimateString(msg.Content) + te.messageOverhead
}

// EstimateMessages estimates total tokens for a slice of messages.
func (te *TokenEstimator) EstimateMessages(msgs []entity.Message) int {
	total := 0
	for _, msg := range msgs {
		total += te.EstimateMessage(msg)
	}
	return total
}
