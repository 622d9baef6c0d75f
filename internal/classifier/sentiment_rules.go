package classifier

// Sentiment keyword lists. Matching is substring-based over the lowercased
// body, so English entries are lowercase. Negative first: a complaint that
// closes with "감사합니다" is still a complaint.
var negativeKeywords = []string{
	"환불", "버그", "오류", "끊김", "짜증", "최악", "불만", "사기",
	"조작", "정지", "먹통", "강퇴", "복구", "렉", "튕김", "불편",
	"안됩니다", "안돼요", "삭제합니다",
	"refund", "bug", "error", "terrible", "worst", "broken", "scam",
}

var positiveKeywords = []string{
	"감사", "좋아요", "좋네요", "재밌", "재미있", "최고", "만족",
	"응원", "사랑", "굿",
	"thank", "great", "awesome", "love it", "enjoy",
}
