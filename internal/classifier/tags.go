package classifier

import (
	"strings"

	"github.com/webboardlab/voc-insight/internal/domain"
)

// tagLevel1Table rolls fine-grained level-2 tags up into the eight level-1
// groups the dashboard charts on. The level-2 strings are the literal values
// agents pick in the spreadsheet; anything unlisted falls back to TagOther.
var tagLevel1Table = map[string]domain.TagLevel1{
	// 계정
	"로그인":   domain.TagAccount,
	"계정정보":  domain.TagAccount,
	"본인인증":  domain.TagAccount,
	"회원탈퇴":  domain.TagAccount,

	// 재화/결제
	"결제":   domain.TagPayment,
	"환불":   domain.TagPayment,
	"게임머니": domain.TagPayment,
	"충전":   domain.TagPayment,

	// 게임플레이
	"밸런스 불만": domain.TagGameplay,
	"게임 콘텐츠": domain.TagGameplay,
	"대회":     domain.TagGameplay,

	// 불량이용자
	"스팸":     domain.TagBadActor,
	"제재 문의":  domain.TagBadActor,
	"어뷰징 신고": domain.TagBadActor,

	// 이벤트
	"일반 이벤트":  domain.TagEvent,
	"광고/무료충전": domain.TagEvent,

	// 기술문제
	"접속 오류":    domain.TagTechIssue,
	"클라이언트 설치": domain.TagTechIssue,

	// 제안
	"건의":    domain.TagSuggestion,
	"개선 요청": domain.TagSuggestion,

	"미분류": domain.TagOther,
}

// nonCoreTags are level-2 tags treated as noise when computing negative
// ratios: chronic balance grumbling, ad/free-charge traffic, generic event
// questions, and anything agents never tagged.
var nonCoreTags = map[string]struct{}{
	"밸런스 불만":  {},
	"광고/무료충전": {},
	"일반 이벤트":  {},
	"미분류":     {},
}

// MapTagLevel1 looks up the level-1 group for a level-2 tag.
// Unmapped values return TagOther, never an error.
func MapTagLevel1(tagLevel2 string) domain.TagLevel1 {
	if lvl1, ok := tagLevel1Table[strings.TrimSpace(tagLevel2)]; ok {
		return lvl1
	}
	return domain.TagOther
}

// IsCoreTag reports whether a level-2 tag counts toward negative-ratio
// numerators and denominators.
func IsCoreTag(tagLevel2 string) bool {
	_, nonCore := nonCoreTags[strings.TrimSpace(tagLevel2)]
	return !nonCore
}
