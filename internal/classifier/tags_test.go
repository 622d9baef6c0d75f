//nolint:testpackage // Testing internal lookup tables requires same package access
package classifier

import (
	"testing"

	"github.com/webboardlab/voc-insight/internal/domain"
)

func TestMapTagLevel1_MappedKeys(t *testing.T) {
	tests := []struct {
		tagLevel2 string
		want      domain.TagLevel1
	}{
		{"로그인", domain.TagAccount},
		{"본인인증", domain.TagAccount},
		{"결제", domain.TagPayment},
		{"환불", domain.TagPayment},
		{"게임머니", domain.TagPayment},
		{"밸런스 불만", domain.TagGameplay},
		{"대회", domain.TagGameplay},
		{"스팸", domain.TagBadActor},
		{"제재 문의", domain.TagBadActor},
		{"일반 이벤트", domain.TagEvent},
		{"접속 오류", domain.TagTechIssue},
		{"건의", domain.TagSuggestion},
		{"미분류", domain.TagOther},
	}

	for _, tt := range tests {
		if got := MapTagLevel1(tt.tagLevel2); got != tt.want {
			t.Errorf("MapTagLevel1(%q) = %v, want %v", tt.tagLevel2, got, tt.want)
		}
	}
}

func TestMapTagLevel1_UnmappedFallsBackToOther(t *testing.T) {
	for _, tag := range []string{"", "존재하지 않는 태그", "random"} {
		if got := MapTagLevel1(tag); got != domain.TagOther {
			t.Errorf("MapTagLevel1(%q) = %v, want %v", tag, got, domain.TagOther)
		}
	}
}

func TestMapTagLevel1_TrimsWhitespace(t *testing.T) {
	if got := MapTagLevel1("  환불  "); got != domain.TagPayment {
		t.Errorf("MapTagLevel1 with padding = %v, want %v", got, domain.TagPayment)
	}
}

func TestIsCoreTag(t *testing.T) {
	nonCore := []string{"밸런스 불만", "광고/무료충전", "일반 이벤트", "미분류"}
	for _, tag := range nonCore {
		if IsCoreTag(tag) {
			t.Errorf("IsCoreTag(%q) = true, want false", tag)
		}
	}
	core := []string{"환불", "로그인", "접속 오류", "태그 없음도 코어"}
	for _, tag := range core {
		if !IsCoreTag(tag) {
			t.Errorf("IsCoreTag(%q) = false, want true", tag)
		}
	}
}
