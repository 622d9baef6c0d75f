// Package storage archives normalized VOC tables into Elasticsearch for
// long-term search outside the dashboard's own date window. The archive is
// optional: when no ES URL is configured the server never constructs a
// writer.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/webboardlab/voc-insight/internal/domain"
	"github.com/webboardlab/voc-insight/internal/elasticsearch/mappings"
	"github.com/webboardlab/voc-insight/internal/logger"
	"github.com/webboardlab/voc-insight/internal/telemetry"
)

const (
	archiveIndex = "voc_records"
	bulkFlushN   = 500
)

// Config holds Elasticsearch connection settings.
type Config struct {
	URL      string
	Username string
	Password string
}

// ArchiveWriter bulk-indexes normalized records into the archive index.
type ArchiveWriter struct {
	client    *es.Client
	logger    logger.Logger
	telemetry *telemetry.Provider
}

// NewArchiveWriter builds a writer from config.
func NewArchiveWriter(cfg Config, log logger.Logger, tp *telemetry.Provider) (*ArchiveWriter, error) {
	client, err := es.NewClient(es.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return &ArchiveWriter{client: client, logger: log, telemetry: tp}, nil
}

// EnsureIndex creates the archive index with its mapping. An existing
// index is left untouched.
func (w *ArchiveWriter) EnsureIndex(ctx context.Context) error {
	exists, err := w.client.Indices.Exists(
		[]string{archiveIndex},
		w.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to check index: %w", err)
	}
	defer exists.Body.Close()
	if exists.StatusCode == http.StatusOK {
		return nil
	}

	body, err := json.Marshal(mappings.NewVocRecordMapping())
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	res, err := w.client.Indices.Create(
		archiveIndex,
		w.client.Indices.Create.WithContext(ctx),
		w.client.Indices.Create.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index creation error: %s", res.String())
	}

	w.logger.Info("archive index created", logger.String("index", archiveIndex))
	return nil
}

type archiveDoc struct {
	*domain.Record
	ArchivedAt time.Time `json:"archived_at"`
}

// ArchiveTable bulk-indexes every record of a freshly loaded table.
// Document IDs are derived from record position and date, so re-archiving
// the same table after a cache refresh overwrites instead of duplicating.
func (w *ArchiveWriter) ArchiveTable(ctx context.Context, table *domain.Table) error {
	if table.Empty() {
		return nil
	}

	var buf bytes.Buffer
	pending := 0
	archivedAt := time.Now().UTC()

	for i := range table.Records {
		rec := &table.Records[i]

		meta := fmt.Sprintf(`{"index":{"_index":%q,"_id":%q}}`, archiveIndex, docID(rec, i))
		doc, err := json.Marshal(archiveDoc{Record: rec, ArchivedAt: archivedAt})
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}

		buf.WriteString(meta)
		buf.WriteByte('\n')
		buf.Write(doc)
		buf.WriteByte('\n')
		pending++

		if pending == bulkFlushN {
			if err := w.flush(ctx, &buf, pending); err != nil {
				return err
			}
			pending = 0
		}
	}
	if pending > 0 {
		if err := w.flush(ctx, &buf, pending); err != nil {
			return err
		}
	}

	w.logger.Info("voc table archived",
		logger.Int("records", len(table.Records)),
		logger.String("index", archiveIndex))
	return nil
}

func (w *ArchiveWriter) flush(ctx context.Context, buf *bytes.Buffer, docs int) error {
	res, err := w.client.Bulk(
		bytes.NewReader(buf.Bytes()),
		w.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		if w.telemetry != nil {
			w.telemetry.Metrics.ArchiveErrors.Inc()
		}
		return fmt.Errorf("bulk index failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		if w.telemetry != nil {
			w.telemetry.Metrics.ArchiveErrors.Inc()
		}
		return fmt.Errorf("bulk index error: %s", res.String())
	}

	if w.telemetry != nil {
		w.telemetry.Metrics.ArchiveIndexed.Add(float64(docs))
	}
	buf.Reset()
	return nil
}

// docID derives a stable document ID from the record's date and position.
func docID(r *domain.Record, ordinal int) string {
	return fmt.Sprintf("%s-%s-%s-%d", r.Date.Format("20060102"), r.Game, r.Platform, ordinal)
}
