package classifier

import "github.com/webboardlab/voc-insight/internal/domain"

// gameRule maps a set of category keywords to one game.
type gameRule struct {
	game     domain.Game
	keywords []string
}

// gameRules is evaluated top to bottom; the first rule with any matching
// keyword wins. Order is load-bearing: "세븐포커"/"sevenpoker" contain the
// generic poker tokens, so the specific rules sit above GamePoker or the
// generic keyword would shadow them.
var gameRules = []gameRule{
	{
		game:     domain.GameNewMatgo,
		keywords: []string{"뉴맞고", "newmatgo", "맞고", "matgo"},
	},
	{
		game:     domain.GameSevenPoker,
		keywords: []string{"세븐포커", "sevenpoker", "7포커", "7poker"},
	},
	{
		game:     domain.GameSutda,
		keywords: []string{"섯다", "sutda"},
	},
	{
		game:     domain.GameLowBaduki,
		keywords: []string{"로우바둑이", "lowbaduki", "바둑이", "baduki"},
	},
	{
		// Generic poker tokens last.
		game:     domain.GamePoker,
		keywords: []string{"포커", "poker"},
	},
}

// platformRule maps category keywords to one platform.
type platformRule struct {
	platform domain.Platform
	keywords []string
}

// platformRules is evaluated top to bottom, first match wins.
// "forkakao" contains the generic "kakao" token used by the mobile rule,
// so the Kakao-portal rule must come first.
var platformRules = []platformRule{
	{
		platform: domain.PlatformForKakao,
		keywords: []string{"forkakao", "카카오용"},
	},
	{
		platform: domain.PlatformMobile,
		keywords: []string{"mob", "mobile", "모바일", "kakao", "카카오"},
	},
	{
		platform: domain.PlatformPC,
		keywords: []string{"pc", "피씨", "웹보드", "web"},
	},
}
