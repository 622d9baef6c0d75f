package classifier

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/webboardlab/voc-insight/internal/domain"
)

// Sentiment matching runs on every row of every load cycle, so both keyword
// lists are compiled into Aho-Corasick automata once at init instead of
// scanning the body per keyword.
var (
	negativeMatcher = ahocorasick.NewStringMatcher(negativeKeywords)
	positiveMatcher = ahocorasick.NewStringMatcher(positiveKeywords)
)

// ClassifySentiment derives the coarse tone of a VOC body.
// Negative keywords take priority over positive ones when both are present:
// support complaints routinely end with a polite "감사합니다".
func ClassifySentiment(text string) domain.Sentiment {
	if text == "" {
		return domain.SentimentNeutral
	}
	lowered := []byte(strings.ToLower(text))

	if negativeMatcher.Contains(lowered) {
		return domain.SentimentNegative
	}
	if positiveMatcher.Contains(lowered) {
		return domain.SentimentPositive
	}
	return domain.SentimentNeutral
}
