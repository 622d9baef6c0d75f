package classifier

import (
	"strings"

	"github.com/webboardlab/voc-insight/internal/domain"
)

// ClassifyGame maps a raw category cell to a game.
// Unmatched or blank input maps to GameOther; this function never fails.
func ClassifyGame(category string) domain.Game {
	normalized := normalizeCategory(category)
	if normalized == "" {
		return domain.GameOther
	}

	for _, rule := range gameRules {
		for _, kw := range rule.keywords {
			if strings.Contains(normalized, kw) {
				return rule.game
			}
		}
	}
	return domain.GameOther
}

// ClassifyPlatform maps a raw category cell to a platform.
// Unmatched or blank input maps to PlatformOther.
func ClassifyPlatform(category string) domain.Platform {
	normalized := normalizeCategory(category)
	if normalized == "" {
		return domain.PlatformOther
	}

	for _, rule := range platformRules {
		for _, kw := range rule.keywords {
			if strings.Contains(normalized, kw) {
				return rule.platform
			}
		}
	}
	return domain.PlatformOther
}
