// Package sheets wraps the Google Sheets spreadsheet that backs the VOC
// dashboard. The loader only sees the Client interface; this package owns
// credentials, quota limiting, and cell-to-row conversion.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/webboardlab/voc-insight/internal/domain"
	"github.com/webboardlab/voc-insight/internal/logger"
)

// Google Sheets API quota defaults (read requests per minute per user is 60,
// so stay well under it).
const (
	defaultReadsPerSecond = 1
	defaultReadBurst      = 5
)

// Client is the spreadsheet collaborator the loader consumes.
type Client interface {
	// ListPartitions returns the titles of every worksheet in the spreadsheet.
	ListPartitions(ctx context.Context) ([]string, error)
	// ReadRows reads one worksheet and converts it to raw records using the
	// first row as the header.
	ReadRows(ctx context.Context, partition string) ([]domain.RawRecord, error)
}

// Config holds Google Sheets connection settings.
type Config struct {
	SpreadsheetID   string
	CredentialsFile string
	ReadsPerSecond  int
	ReadBurst       int
}

// GoogleClient is the production Client backed by the Sheets v4 API.
type GoogleClient struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	limiter       *rate.Limiter
	logger        logger.Logger
}

// NewGoogleClient builds a Sheets client from service-account credentials.
func NewGoogleClient(ctx context.Context, cfg Config, log logger.Logger) (*GoogleClient, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("sheets: spreadsheet id is required")
	}

	opts := []option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope)}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}

	rps := cfg.ReadsPerSecond
	if rps <= 0 {
		rps = defaultReadsPerSecond
	}
	burst := cfg.ReadBurst
	if burst <= 0 {
		burst = defaultReadBurst
	}

	return &GoogleClient{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		limiter:       rate.NewLimiter(rate.Limit(rps), burst),
		logger:        log,
	}, nil
}

// ListPartitions returns every worksheet title in the spreadsheet.
func (c *GoogleClient) ListPartitions(ctx context.Context) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return nil, classifyAPIError(err)
	}

	titles := make([]string, 0, len(meta.Sheets))
	for _, sh := range meta.Sheets {
		if sh.Properties != nil {
			titles = append(titles, sh.Properties.Title)
		}
	}
	return titles, nil
}

// ReadRows reads one worksheet. The first non-empty row is the header; each
// following row becomes a RawRecord keyed by header cell. Short rows are
// padded with empty cells, rows with no values at all are skipped.
func (c *GoogleClient) ReadRows(ctx context.Context, partition string) ([]domain.RawRecord, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	rangeRef := fmt.Sprintf("'%s'", strings.ReplaceAll(partition, "'", "''"))
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rangeRef).
		Context(ctx).Do()
	if err != nil {
		return nil, classifyAPIError(err)
	}

	records := CellsToRecords(resp.Values)
	c.logger.Debug("worksheet read",
		logger.String("partition", partition),
		logger.Int("rows", len(records)))
	return records, nil
}

// CellsToRecords converts a raw cell grid into records using the first row
// as the header. Exported so the loader tests and the snapshot tool can
// reuse the exact conversion.
func CellsToRecords(values [][]any) []domain.RawRecord {
	if len(values) == 0 {
		return nil
	}

	header := make([]string, len(values[0]))
	for i, cell := range values[0] {
		header[i] = strings.TrimSpace(fmt.Sprint(cell))
	}

	records := make([]domain.RawRecord, 0, len(values)-1)
	for _, row := range values[1:] {
		if len(row) == 0 {
			continue
		}
		rec := make(domain.RawRecord, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(row) {
				rec[name] = strings.TrimSpace(fmt.Sprint(row[i]))
			} else {
				rec[name] = ""
			}
		}
		records = append(records, rec)
	}
	return records
}

// classifyAPIError folds googleapi errors into the load-failure taxonomy so
// the loader does not need to know transport details.
func classifyAPIError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return domain.NewLoadFailure(domain.LoadAuthFailure, "spreadsheet access denied", err)
		case http.StatusNotFound:
			return domain.NewLoadFailure(domain.LoadNotFound, "spreadsheet not found", err)
		}
	}
	return err
}
