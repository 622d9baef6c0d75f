// Package loader pulls raw rows from every monthly worksheet partition,
// classifies them, and produces the normalized VOC table the rest of the
// service reads. Loads never panic: every failure mode folds into a
// recoverable LoadFailure with an empty table.
package loader

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/webboardlab/voc-insight/internal/classifier"
	"github.com/webboardlab/voc-insight/internal/domain"
	"github.com/webboardlab/voc-insight/internal/logger"
	"github.com/webboardlab/voc-insight/internal/sheets"
	"github.com/webboardlab/voc-insight/internal/telemetry"
)

// partitionPattern matches monthly worksheet titles: a two- or four-digit
// year, a dash, and a two-digit month ("25-10", "2025-10").
var partitionPattern = regexp.MustCompile(`^(\d{2}|\d{4})-(\d{2})$`)

// Loader builds the normalized table from the spreadsheet collaborator.
type Loader struct {
	client     sheets.Client
	classifier *classifier.Classifier
	logger     logger.Logger
	telemetry  *telemetry.Provider
}

// New creates a loader. telemetry may be nil.
func New(client sheets.Client, cls *classifier.Classifier, log logger.Logger, tp *telemetry.Provider) *Loader {
	return &Loader{
		client:     client,
		classifier: cls,
		logger:     log,
		telemetry:  tp,
	}
}

// Load reads every matching partition, merges and classifies the rows, and
// returns the normalized table. On failure the returned table is empty and
// the error is a *domain.LoadFailure for the caller to display.
func (l *Loader) Load(ctx context.Context) (*domain.Table, error) {
	start := time.Now()

	ctx, span := l.telemetry.StartSpan(ctx, "loader.Load")
	defer span.End()

	partitions, err := l.listPartitions(ctx)
	if err != nil {
		return l.fail(err)
	}

	raw, err := l.readPartitions(ctx, partitions)
	if err != nil {
		return l.fail(err)
	}
	if len(raw) == 0 {
		return l.fail(domain.NewLoadFailure(domain.LoadEmpty, "no rows in any partition", nil))
	}

	if missing := missingColumns(raw); len(missing) > 0 {
		detail := "missing columns: " + strings.Join(missing, ", ")
		return l.fail(domain.NewLoadFailure(domain.LoadMissingColumns, detail, nil))
	}

	table := l.normalize(raw)
	if table.Empty() {
		return l.fail(domain.NewLoadFailure(domain.LoadEmpty, "every row was dropped during normalization", nil))
	}

	l.telemetry.ObserveLoad(time.Since(start), len(table.Records))
	l.logger.Info("voc table loaded",
		logger.Int("partitions", len(partitions)),
		logger.Int("raw_rows", len(raw)),
		logger.Int("records", len(table.Records)),
		logger.Duration("elapsed", time.Since(start)))

	return table, nil
}

// listPartitions returns the matching worksheet titles in ascending order.
func (l *Loader) listPartitions(ctx context.Context) ([]string, error) {
	titles, err := l.client.ListPartitions(ctx)
	if err != nil {
		return nil, err
	}

	partitions := make([]string, 0, len(titles))
	for _, title := range titles {
		if partitionPattern.MatchString(title) {
			partitions = append(partitions, title)
		}
	}
	if len(partitions) == 0 {
		return nil, domain.NewLoadFailure(domain.LoadNotFound, "no monthly partitions in spreadsheet", nil)
	}

	sort.Strings(partitions)
	return partitions, nil
}

func (l *Loader) readPartitions(ctx context.Context, partitions []string) ([]domain.RawRecord, error) {
	var merged []domain.RawRecord
	for _, partition := range partitions {
		rows, err := l.client.ReadRows(ctx, partition)
		if err != nil {
			return nil, err
		}
		merged = append(merged, rows...)
	}
	return merged, nil
}

// normalize classifies every raw row and drops the ones without a parseable
// date. Dropping is silent by design; only the count is reported.
func (l *Loader) normalize(raw []domain.RawRecord) *domain.Table {
	records := make([]domain.Record, 0, len(raw))
	dropped := 0

	for _, row := range raw {
		date, err := ParseDate(row[domain.ColumnDate])
		if err != nil {
			dropped++
			if l.telemetry != nil {
				l.telemetry.Metrics.RowsDropped.WithLabelValues("bad_date").Inc()
			}
			continue
		}

		rec := l.classifier.Classify(row)
		rec.Date = date
		records = append(records, rec)

		if l.telemetry != nil {
			l.telemetry.Metrics.RecordsClassified.WithLabelValues(string(rec.Game)).Inc()
			l.telemetry.Metrics.SentimentTotal.WithLabelValues(string(rec.Sentiment)).Inc()
		}
	}

	if dropped > 0 {
		l.logger.Warn("rows dropped during normalization", logger.Int("dropped", dropped))
	}

	return &domain.Table{Records: records, LoadedAt: time.Now()}
}

// fail folds any error into the LoadFailure taxonomy, counts it, and pairs
// it with an empty table so callers always have something to render.
func (l *Loader) fail(err error) (*domain.Table, error) {
	var lf *domain.LoadFailure
	if !errors.As(err, &lf) {
		lf = domain.NewLoadFailure(domain.LoadNotFound, "spreadsheet unavailable", err)
	}

	if l.telemetry != nil {
		l.telemetry.Metrics.LoadFailures.WithLabelValues(string(lf.Kind)).Inc()
	}
	l.logger.Warn("load failed", logger.String("kind", string(lf.Kind)), logger.Error(lf))

	return &domain.Table{LoadedAt: time.Now()}, lf
}

// missingColumns reports required columns absent from every merged row.
func missingColumns(raw []domain.RawRecord) []string {
	present := make(map[string]bool)
	for _, row := range raw {
		for name := range row {
			present[name] = true
		}
	}

	var missing []string
	for _, name := range domain.RequiredColumns {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}
