// Package classifier turns raw spreadsheet cells into the normalized
// categorical fields of a VOC record. Every function is pure and total:
// malformed input maps to a defined default (Other/empty/Neutral), never
// an error.
package classifier

import (
	"github.com/webboardlab/voc-insight/internal/domain"
	"github.com/webboardlab/voc-insight/internal/logger"
)

// Config holds classifier tunables.
type Config struct {
	// BodyCap is the rune cap for body summaries; <= 0 disables capping.
	BodyCap int
}

// Classifier applies every per-field rule to a raw row. It holds no mutable
// state and is safe to reuse across load cycles.
type Classifier struct {
	bodyCap int
	logger  logger.Logger
}

// New creates a classifier. A zero Config falls back to DefaultBodyCap.
func New(log logger.Logger, cfg Config) *Classifier {
	bodyCap := cfg.BodyCap
	if bodyCap == 0 {
		bodyCap = DefaultBodyCap
	}
	return &Classifier{bodyCap: bodyCap, logger: log}
}

// Classify derives every normalized field except the date, which the loader
// parses and validates separately. The result is a value, not a pointer:
// classification cannot fail.
func (c *Classifier) Classify(raw domain.RawRecord) domain.Record {
	category := raw[domain.ColumnCategory]
	body := raw[domain.ColumnBody]
	tagLevel2 := raw[domain.ColumnTag]

	platform := ClassifyPlatform(category)

	rec := domain.Record{
		Game:        ClassifyGame(category),
		Platform:    platform,
		TagLevel1:   MapTagLevel1(tagLevel2),
		TagLevel2:   tagLevel2,
		Title:       raw[domain.ColumnTitle],
		BodySummary: TruncateBody(body, c.bodyCap),
		Identifier:  ExtractIdentifier(platform, body, raw[domain.ColumnCustomerInfo]),
		DeviceInfo:  ExtractDeviceInfo(platform, body),
		Sentiment:   ClassifySentiment(body),
	}

	if rec.Game == domain.GameOther && c.logger != nil {
		c.logger.Debug("category fell through game rules",
			logger.String("category", category))
	}

	return rec
}
