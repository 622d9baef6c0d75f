// Package domain defines the core data model for the VOC insight service.
package domain

import "time"

// Game identifies which webboard game a VOC record is about.
type Game string

// Known games. GameOther collects anything the classifier cannot place.
const (
	GameNewMatgo   Game = "newmatgo"
	GameSevenPoker Game = "sevenpoker"
	GameSutda      Game = "sutda"
	GameLowBaduki  Game = "lowbaduki"
	GamePoker      Game = "poker"
	GameOther      Game = "other"
)

// AllGames lists every known game in classification priority order.
// The order matters: the aggregator's per-game summaries iterate it, and
// the "yesterday" dashboard renders one card per entry.
var AllGames = []Game{
	GameNewMatgo,
	GameSevenPoker,
	GameSutda,
	GameLowBaduki,
	GamePoker,
	GameOther,
}

// Platform identifies the channel a VOC record arrived from.
type Platform string

const (
	PlatformMobile   Platform = "MOB"
	PlatformPC       Platform = "PC"
	PlatformForKakao Platform = "for_kakao"
	PlatformOther    Platform = "other"
)

// AllPlatforms lists every known platform.
var AllPlatforms = []Platform{
	PlatformMobile,
	PlatformPC,
	PlatformForKakao,
	PlatformOther,
}

// Sentiment is the coarse tone of a VOC body.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// TagLevel1 is the coarse rollup of the fine-grained level-2 tag.
type TagLevel1 string

const (
	TagAccount    TagLevel1 = "계정"
	TagPayment    TagLevel1 = "재화/결제"
	TagGameplay   TagLevel1 = "게임플레이"
	TagBadActor   TagLevel1 = "불량이용자"
	TagEvent      TagLevel1 = "이벤트"
	TagTechIssue  TagLevel1 = "기술문제"
	TagSuggestion TagLevel1 = "제안"
	TagOther      TagLevel1 = "기타"
)

// Raw column names forming the schema contract with the spreadsheet.
const (
	ColumnCategory     = "카테고리"
	ColumnTitle        = "제목"
	ColumnBody         = "내용"
	ColumnTag          = "태그"
	ColumnDate         = "날짜"
	ColumnCustomerInfo = "고객정보"
)

// RequiredColumns must all be present in a merged raw table for a load to
// succeed. ColumnCustomerInfo is optional: it only feeds PC identifier
// extraction.
var RequiredColumns = []string{
	ColumnCategory,
	ColumnTitle,
	ColumnBody,
	ColumnTag,
	ColumnDate,
}

// RawRecord is one untyped spreadsheet row: column name -> cell value.
// It only exists inside the loader; nothing past the loader boundary
// sees one.
type RawRecord map[string]string

// Record is a fully classified, immutable VOC record.
type Record struct {
	Date        time.Time `json:"date"`
	Game        Game      `json:"game"`
	Platform    Platform  `json:"platform"`
	TagLevel1   TagLevel1 `json:"tag_level1"`
	TagLevel2   string    `json:"tag_level2"`
	Title       string    `json:"title"`
	BodySummary string    `json:"body_summary"`
	Identifier  string    `json:"identifier,omitempty"`
	DeviceInfo  string    `json:"device_info,omitempty"`
	Sentiment   Sentiment `json:"sentiment"`
}

// Table is the normalized in-memory VOC table built by one load cycle.
type Table struct {
	Records  []Record  `json:"records"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Empty reports whether the table holds no records.
func (t *Table) Empty() bool {
	return t == nil || len(t.Records) == 0
}

// DateBounds returns the earliest and latest record dates in the table.
// ok is false for an empty table.
func (t *Table) DateBounds() (minDate, maxDate time.Time, ok bool) {
	if t.Empty() {
		return time.Time{}, time.Time{}, false
	}
	minDate, maxDate = t.Records[0].Date, t.Records[0].Date
	for _, r := range t.Records[1:] {
		if r.Date.Before(minDate) {
			minDate = r.Date
		}
		if r.Date.After(maxDate) {
			maxDate = r.Date
		}
	}
	return minDate, maxDate, true
}
