package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/webboardlab/voc-insight/internal/aggregate"
	"github.com/webboardlab/voc-insight/internal/domain"
	"github.com/webboardlab/voc-insight/internal/loader"
)

// LoadFailureResponse carries a non-fatal load failure to the dashboard.
type LoadFailureResponse struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail,omitempty"`
}

// RecordsResponse is the payload of the record query and search endpoints.
type RecordsResponse struct {
	Records     []domain.Record               `json:"records"`
	Total       int                           `json:"total"`
	Warnings    []domain.ConfigurationWarning `json:"warnings,omitempty"`
	LoadedAt    time.Time                     `json:"loaded_at,omitempty"`
	LoadFailure *LoadFailureResponse          `json:"load_failure,omitempty"`
}

// TrendResponse is the payload of the daily trend endpoint.
type TrendResponse struct {
	Points   []domain.TrendPoint           `json:"points"`
	Warnings []domain.ConfigurationWarning `json:"warnings,omitempty"`
}

// DistributionResponse is the payload of the distribution endpoint.
type DistributionResponse struct {
	Entries  []domain.DistributionEntry    `json:"entries"`
	Warnings []domain.ConfigurationWarning `json:"warnings,omitempty"`
}

// SummaryResponse is the payload of the yesterday-summary endpoint, one
// entry per game in display order.
type SummaryResponse struct {
	AsOf        time.Time             `json:"as_of"`
	Summaries   []domain.IssueSummary `json:"summaries"`
	LoadFailure *LoadFailureResponse  `json:"load_failure,omitempty"`
}

// ReloadResponse reports the outcome of a synchronous cache reload.
type ReloadResponse struct {
	Records     int                  `json:"records"`
	LoadedAt    time.Time            `json:"loaded_at,omitempty"`
	LoadFailure *LoadFailureResponse `json:"load_failure,omitempty"`
}

// AccessRequestBody is the payload for creating an access request.
type AccessRequestBody struct {
	Email string `binding:"required" json:"email"`
	Name  string `json:"name"`
}

// AccessDecisionBody is the payload for approving or revoking a request.
type AccessDecisionBody struct {
	DecidedBy string `binding:"required" json:"decided_by"`
}

// AccessListResponse is the payload of the access-request list endpoint.
type AccessListResponse struct {
	Requests []*domain.AccessRequest `json:"requests"`
	Total    int                     `json:"total"`
}

func toLoadFailure(lf *domain.LoadFailure) *LoadFailureResponse {
	return &LoadFailureResponse{Kind: string(lf.Kind), Detail: lf.Detail}
}

// parseSelection builds the filter selection from query params. Absent
// game/platform params mean "everything"; an absent date range defaults to
// the table's full span so a bare query never trips the invalid-range
// warning.
func parseSelection(c *gin.Context, table *domain.Table) (domain.FilterSelection, error) {
	games, err := parseGames(c.Query("games"))
	if err != nil {
		return domain.FilterSelection{}, err
	}
	platforms, err := parsePlatforms(c.Query("platforms"))
	if err != nil {
		return domain.FilterSelection{}, err
	}

	leaves := make([]domain.SelectionLeaf, 0, len(games)*len(platforms))
	for _, g := range games {
		if g == domain.GameOther {
			// Unclassified records carry no meaningful platform split.
			leaves = append(leaves, domain.SelectionLeaf{Game: g})
			continue
		}
		for _, p := range platforms {
			leaves = append(leaves, domain.SelectionLeaf{Game: g, Platform: p})
		}
	}

	r, err := queryRange(c)
	if err != nil {
		return domain.FilterSelection{}, err
	}
	if r.Start.IsZero() && r.End.IsZero() {
		if minDate, maxDate, ok := table.DateBounds(); ok {
			r = domain.DateRange{Start: minDate, End: maxDate}
		}
	}

	return domain.FilterSelection{Leaves: leaves, Range: r}, nil
}

func parseGames(raw string) ([]domain.Game, error) {
	if raw == "" {
		return domain.AllGames, nil
	}
	known := make(map[domain.Game]bool, len(domain.AllGames))
	for _, g := range domain.AllGames {
		known[g] = true
	}
	var games []domain.Game
	for _, tok := range strings.Split(raw, ",") {
		g := domain.Game(strings.TrimSpace(tok))
		if !known[g] {
			return nil, fmt.Errorf("unknown game %q", tok)
		}
		games = append(games, g)
	}
	return games, nil
}

func parsePlatforms(raw string) ([]domain.Platform, error) {
	if raw == "" {
		return domain.AllPlatforms, nil
	}
	known := make(map[domain.Platform]bool, len(domain.AllPlatforms))
	for _, p := range domain.AllPlatforms {
		known[p] = true
	}
	var platforms []domain.Platform
	for _, tok := range strings.Split(raw, ",") {
		p := domain.Platform(strings.TrimSpace(tok))
		if !known[p] {
			return nil, fmt.Errorf("unknown platform %q", tok)
		}
		platforms = append(platforms, p)
	}
	return platforms, nil
}

// queryRange parses from/to params. Both absent yields a zero range; one
// absent yields a half-open range the filter flags as invalid.
func queryRange(c *gin.Context) (domain.DateRange, error) {
	var r domain.DateRange
	if raw := c.Query("from"); raw != "" {
		d, err := loader.ParseDate(raw)
		if err != nil {
			return r, fmt.Errorf("invalid from date %q", raw)
		}
		r.Start = d
	}
	if raw := c.Query("to"); raw != "" {
		d, err := loader.ParseDate(raw)
		if err != nil {
			return r, fmt.Errorf("invalid to date %q", raw)
		}
		r.End = d
	}
	return r, nil
}

func parseGroupBy(by string) (aggregate.GroupBy, error) {
	switch by {
	case "game":
		return aggregate.ByGame, nil
	case "platform":
		return aggregate.ByPlatform, nil
	case "tag1":
		return aggregate.ByTagLevel1, nil
	case "tag2":
		return aggregate.ByTagLevel2, nil
	case "sentiment":
		return aggregate.BySentiment, nil
	default:
		return nil, fmt.Errorf("unknown distribution key %q", by)
	}
}

func parseTopN(c *gin.Context) (int, error) {
	raw := c.Query("top")
	if raw == "" {
		return aggregate.DefaultTopN, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid top %q", raw)
	}
	return n, nil
}

// recordsRange returns the span of the given records, for trend queries
// that omit explicit bounds.
func recordsRange(records []domain.Record) domain.DateRange {
	var r domain.DateRange
	for i := range records {
		d := records[i].Date
		if r.Start.IsZero() || d.Before(r.Start) {
			r.Start = d
		}
		if r.End.IsZero() || d.After(r.End) {
			r.End = d
		}
	}
	return r
}
