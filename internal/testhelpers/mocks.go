// Package testhelpers provides shared test utilities for the VOC insight
// service.
package testhelpers

import (
	"context"
	"sync"
	"time"

	"github.com/webboardlab/voc-insight/internal/domain"
)

// MockSheetClient implements sheets.Client against in-memory worksheets.
type MockSheetClient struct {
	mu         sync.RWMutex
	Worksheets map[string][]domain.RawRecord

	// Errs, when set, are returned instead of data.
	ListErr error
	ReadErr error

	ListCalls int
	ReadCalls int
}

// NewMockSheetClient creates an empty mock spreadsheet.
func NewMockSheetClient() *MockSheetClient {
	return &MockSheetClient{Worksheets: make(map[string][]domain.RawRecord)}
}

// ListPartitions returns every worksheet title.
func (m *MockSheetClient) ListPartitions(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	titles := make([]string, 0, len(m.Worksheets))
	for title := range m.Worksheets {
		titles = append(titles, title)
	}
	return titles, nil
}

// ReadRows returns the rows of one worksheet.
func (m *MockSheetClient) ReadRows(_ context.Context, partition string) ([]domain.RawRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReadCalls++
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	return m.Worksheets[partition], nil
}

// RawRow builds a well-formed raw record with the given overridable cells.
func RawRow(category, title, body, tag, date string) domain.RawRecord {
	return domain.RawRecord{
		domain.ColumnCategory: category,
		domain.ColumnTitle:    title,
		domain.ColumnBody:     body,
		domain.ColumnTag:      tag,
		domain.ColumnDate:     date,
	}
}

// Rec builds a normalized record for aggregator and filter tests.
func Rec(date time.Time, game domain.Game, platform domain.Platform, tag2, body string, sentiment domain.Sentiment) domain.Record {
	return domain.Record{
		Date:        date,
		Game:        game,
		Platform:    platform,
		TagLevel2:   tag2,
		Title:       "t",
		BodySummary: body,
		Sentiment:   sentiment,
	}
}

// Day returns a UTC calendar date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
