package classifier

import (
	"regexp"
	"strings"

	"github.com/webboardlab/voc-insight/internal/domain"
)

// DefaultBodyCap is the rune cap applied to body summaries.
const DefaultBodyCap = 300

var (
	// Labeled member-number token appended to mobile/Kakao inquiry bodies
	// by the in-game contact form.
	memberNoPattern = regexp.MustCompile(`(?i)(?:회원번호|member\s*(?:number|no))\s*[:：]?\s*(\d+)`)

	// Labeled device descriptor, same origin as the member number.
	devicePattern = regexp.MustCompile(`(?i)(?:기기정보|device)\s*[:：]\s*([^\r\n/|]+)`)

	digitsPattern = regexp.MustCompile(`\d+`)
)

// Markers that introduce the boilerplate suffix the contact form appends to
// the body. Everything from the first marker on is dropped by TruncateBody.
var bodySuffixMarkers = []string{"회원번호", "member number", "member no"}

// ExtractIdentifier pulls the account identifier out of a record, if any.
// Exactly one extraction path runs, chosen by platform: mobile and Kakao
// bodies carry a labeled member-number token, PC records carry the number in
// the separate customer-info cell. Other platforms have no identifier.
func ExtractIdentifier(platform domain.Platform, body, customerInfo string) string {
	switch platform {
	case domain.PlatformMobile, domain.PlatformForKakao:
		if m := memberNoPattern.FindStringSubmatch(body); m != nil {
			return m[1]
		}
	case domain.PlatformPC:
		return digitsPattern.FindString(customerInfo)
	}
	return ""
}

// ExtractDeviceInfo pulls the device descriptor out of the body.
// PC records without a labeled token report the literal "PC".
func ExtractDeviceInfo(platform domain.Platform, body string) string {
	if m := devicePattern.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1])
	}
	if platform == domain.PlatformPC {
		return "PC"
	}
	return ""
}

// TruncateBody strips the contact-form boilerplate suffix from a body and
// caps the remainder at bodyCap runes. A bodyCap <= 0 disables the cap.
func TruncateBody(text string, bodyCap int) string {
	cut := len(text)
	lowered := strings.ToLower(text)
	for _, marker := range bodySuffixMarkers {
		if idx := strings.Index(lowered, marker); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	out := strings.TrimSpace(text[:cut])

	if bodyCap > 0 {
		if runes := []rune(out); len(runes) > bodyCap {
			out = string(runes[:bodyCap])
		}
	}
	return out
}
