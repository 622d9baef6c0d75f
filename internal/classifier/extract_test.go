//nolint:testpackage // Testing internal patterns requires same package access
package classifier

import (
	"fmt"
	"strings"
	"testing"

	"github.com/webboardlab/voc-insight/internal/domain"
)

func TestExtractIdentifier_MobileRoundTrip(t *testing.T) {
	for _, n := range []int{1, 42, 1234567890} {
		body := fmt.Sprintf("게임이 안돼요.\n회원번호: %d / 기기정보: iPhone 15", n)
		got := ExtractIdentifier(domain.PlatformMobile, body, "")
		if got != fmt.Sprintf("%d", n) {
			t.Errorf("ExtractIdentifier(MOB, member %d) = %q, want %q", n, got, fmt.Sprintf("%d", n))
		}
	}
}

func TestExtractIdentifier_EnglishLabel(t *testing.T) {
	body := "cannot log in. Member Number: 987654"
	got := ExtractIdentifier(domain.PlatformForKakao, body, "")
	if got != "987654" {
		t.Errorf("ExtractIdentifier = %q, want %q", got, "987654")
	}
}

func TestExtractIdentifier_PCUsesCustomerInfo(t *testing.T) {
	// PC extraction never falls back to the body: only the customer-info
	// cell is consulted.
	body := "회원번호: 111111"
	got := ExtractIdentifier(domain.PlatformPC, body, "계정 55667788 (정회원)")
	if got != "55667788" {
		t.Errorf("ExtractIdentifier(PC) = %q, want %q", got, "55667788")
	}
}

func TestExtractIdentifier_OtherPlatformEmpty(t *testing.T) {
	got := ExtractIdentifier(domain.PlatformOther, "회원번호: 123", "456")
	if got != "" {
		t.Errorf("ExtractIdentifier(other) = %q, want empty", got)
	}
}

func TestExtractDeviceInfo(t *testing.T) {
	body := "렉이 심해요\n회원번호: 123 / 기기정보: Galaxy S24 Ultra"
	if got := ExtractDeviceInfo(domain.PlatformMobile, body); got != "Galaxy S24 Ultra" {
		t.Errorf("ExtractDeviceInfo = %q, want %q", got, "Galaxy S24 Ultra")
	}
}

func TestExtractDeviceInfo_PCFallback(t *testing.T) {
	if got := ExtractDeviceInfo(domain.PlatformPC, "접속이 안됩니다"); got != "PC" {
		t.Errorf("ExtractDeviceInfo(PC, no label) = %q, want %q", got, "PC")
	}
	if got := ExtractDeviceInfo(domain.PlatformMobile, "접속이 안됩니다"); got != "" {
		t.Errorf("ExtractDeviceInfo(MOB, no label) = %q, want empty", got)
	}
}

func TestTruncateBody_StripsSuffix(t *testing.T) {
	body := "결제가 두 번 됐어요. 확인 부탁드립니다.  회원번호: 123456 / 기기정보: iPhone"
	got := TruncateBody(body, DefaultBodyCap)
	want := "결제가 두 번 됐어요. 확인 부탁드립니다."
	if got != want {
		t.Errorf("TruncateBody = %q, want %q", got, want)
	}
}

func TestTruncateBody_CapsLength(t *testing.T) {
	long := strings.Repeat("가", 500)
	got := TruncateBody(long, DefaultBodyCap)
	if n := len([]rune(got)); n != DefaultBodyCap {
		t.Errorf("TruncateBody length = %d runes, want %d", n, DefaultBodyCap)
	}

	// Cap disabled.
	if got := TruncateBody(long, 0); len([]rune(got)) != 500 {
		t.Errorf("TruncateBody with cap disabled truncated the body")
	}
}

func TestClassifier_Classify_EndToEnd(t *testing.T) {
	c := New(nil, Config{})

	raw := domain.RawRecord{
		domain.ColumnCategory: "NEW_MATGO_for_kakao",
		domain.ColumnTitle:    "환불 요청",
		domain.ColumnBody:     "중복 결제 환불 부탁드립니다. 회원번호: 20240815",
		domain.ColumnTag:      "환불",
	}

	rec := c.Classify(raw)

	if rec.Game != domain.GameNewMatgo {
		t.Errorf("Game = %v, want %v", rec.Game, domain.GameNewMatgo)
	}
	if rec.Platform != domain.PlatformForKakao {
		t.Errorf("Platform = %v, want %v", rec.Platform, domain.PlatformForKakao)
	}
	if rec.TagLevel1 != domain.TagPayment {
		t.Errorf("TagLevel1 = %v, want %v", rec.TagLevel1, domain.TagPayment)
	}
	if rec.Identifier != "20240815" {
		t.Errorf("Identifier = %q, want %q", rec.Identifier, "20240815")
	}
	if rec.Sentiment != domain.SentimentNegative {
		t.Errorf("Sentiment = %v, want %v", rec.Sentiment, domain.SentimentNegative)
	}
	if strings.Contains(rec.BodySummary, "회원번호") {
		t.Errorf("BodySummary still contains boilerplate: %q", rec.BodySummary)
	}
}

func TestClassifier_Classify_NilRawRecord(t *testing.T) {
	c := New(nil, Config{})

	// A nil map reads as all-empty cells; classification must still produce
	// defined defaults.
	rec := c.Classify(nil)

	if rec.Game != domain.GameOther {
		t.Errorf("Game = %v, want %v", rec.Game, domain.GameOther)
	}
	if rec.Platform != domain.PlatformOther {
		t.Errorf("Platform = %v, want %v", rec.Platform, domain.PlatformOther)
	}
	if rec.TagLevel1 != domain.TagOther {
		t.Errorf("TagLevel1 = %v, want %v", rec.TagLevel1, domain.TagOther)
	}
	if rec.Sentiment != domain.SentimentNeutral {
		t.Errorf("Sentiment = %v, want %v", rec.Sentiment, domain.SentimentNeutral)
	}
}
