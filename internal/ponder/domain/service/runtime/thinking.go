package runtime

import (
	"regexp"
	"strings"
)

// NoThinkingPlaceholder is returned as the thinking part when a response
// has neither thinking tags nor a blank-line boundary.
const NoThinkingPlaceholder = "No explicit thinking process found"

var (
	thinkingRegionRe = regexp.MustCompile(`(?s)<thinking>(.*?)</thinking>`)
	thinkingStripRe  = regexp.MustCompile(`(?s)<thinking>.*?</thinking>\s*`)
)

// SplitThinking separates a response into its reasoning and its final answer.
//
// When a <thinking>...</thinking> region is present, thinking is the trimmed
// content of the first region and answer is the trimmed text left after
// removing every region. Otherwise the text is split on its first blank
// line; without one, thinking is NoThinkingPlaceholder and answer is the
// whole text.
func SplitThinking(text string) (thinking, answer string) {
	if m := thinkingRegionRe.FindStringSubmatch(text); m != nil {
		thinking = strings.TrimSpace(m[1])
		answer = strings.TrimSpace(thinkingStripRe.ReplaceAllString(text, ""))
		return thinking, answer
	}

	if before, after, found := strings.Cut(text, "\n\n"); found {
		return before, after
	}
	return NoThinkingPlaceholder, text
}
