//nolint:testpackage // Testing internal rule tables requires same package access
package classifier

import (
	"testing"

	"github.com/webboardlab/voc-insight/internal/domain"
)

func TestClassifyGame_KeywordPriority(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     domain.Game
	}{
		{"specific matgo alias", "NEW_MATGO_for_kakao", domain.GameNewMatgo},
		{"korean matgo", "뉴맞고(모바일)", domain.GameNewMatgo},
		{"seven poker beats generic poker", "세븐포커 PC", domain.GameSevenPoker},
		{"seven poker english", "SEVENPOKER-MOB", domain.GameSevenPoker},
		{"generic poker", "포커 PC버전", domain.GamePoker},
		{"sutda", "섯다 for kakao", domain.GameSutda},
		{"lowbaduki", "로우바둑이(PC)", domain.GameLowBaduki},
		{"baduki generic alias", "baduki mobile", domain.GameLowBaduki},
		{"unknown", "장기 이벤트", domain.GameOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyGame(tt.category); got != tt.want {
				t.Errorf("ClassifyGame(%q) = %v, want %v", tt.category, got, tt.want)
			}
		})
	}
}

func TestClassifyGame_BothKeywordsPresent_HigherPriorityWins(t *testing.T) {
	// Contains both the matgo alias and the generic poker token. The rule
	// table must resolve this deterministically to the higher-priority game.
	got := ClassifyGame("뉴맞고 포커 통합 문의")
	if got != domain.GameNewMatgo {
		t.Errorf("ClassifyGame = %v, want %v", got, domain.GameNewMatgo)
	}
}

func TestClassifyGame_MalformedInput_ReturnsOther(t *testing.T) {
	for _, category := range []string{"", "   ", "!!!___***", "\t\n"} {
		if got := ClassifyGame(category); got != domain.GameOther {
			t.Errorf("ClassifyGame(%q) = %v, want %v", category, got, domain.GameOther)
		}
	}
}

func TestClassifyPlatform_KakaoPortalBeforeMobile(t *testing.T) {
	// "forkakao" contains the generic "kakao" token; the portal rule must
	// win even though the mobile rule would also match.
	got := ClassifyPlatform("NEW_MATGO_for_kakao")
	if got != domain.PlatformForKakao {
		t.Errorf("ClassifyPlatform = %v, want %v", got, domain.PlatformForKakao)
	}
}

func TestClassifyPlatform(t *testing.T) {
	tests := []struct {
		category string
		want     domain.Platform
	}{
		{"뉴맞고 MOB", domain.PlatformMobile},
		{"섯다 모바일", domain.PlatformMobile},
		{"포커 카카오", domain.PlatformMobile},
		{"세븐포커 PC", domain.PlatformPC},
		{"로우바둑이 웹보드", domain.PlatformPC},
		{"뉴맞고", domain.PlatformOther},
		{"", domain.PlatformOther},
	}

	for _, tt := range tests {
		if got := ClassifyPlatform(tt.category); got != tt.want {
			t.Errorf("ClassifyPlatform(%q) = %v, want %v", tt.category, got, tt.want)
		}
	}
}
