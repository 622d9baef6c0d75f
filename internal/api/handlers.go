// Package api exposes the VOC insight HTTP surface: filtered record
// queries, trend and distribution aggregates, the yesterday summary,
// keyword search, cache reload, and access-request management.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/webboardlab/voc-insight/internal/access"
	"github.com/webboardlab/voc-insight/internal/aggregate"
	"github.com/webboardlab/voc-insight/internal/database"
	"github.com/webboardlab/voc-insight/internal/domain"
	"github.com/webboardlab/voc-insight/internal/filter"
	"github.com/webboardlab/voc-insight/internal/loader"
	"github.com/webboardlab/voc-insight/internal/logger"
	"github.com/webboardlab/voc-insight/internal/search"
	"github.com/webboardlab/voc-insight/internal/telemetry"
)

// Handler handles HTTP requests for the VOC insight API.
type Handler struct {
	cache     *loader.CachedLoader
	access    *access.Service
	telemetry *telemetry.Provider
	logger    logger.Logger
	service   string
	version   string
	now       func() time.Time
}

// NewHandler creates a new API handler.
func NewHandler(
	cache *loader.CachedLoader,
	accessService *access.Service,
	tp *telemetry.Provider,
	log logger.Logger,
	service, version string,
) *Handler {
	return &Handler{
		cache:     cache,
		access:    accessService,
		telemetry: tp,
		logger:    log,
		service:   service,
		version:   version,
		now:       time.Now,
	}
}

// loadFiltered runs the common load-then-filter pipeline behind every
// query endpoint. A load failure is reported through the response body so
// the dashboard can render guidance instead of a blank error page; ok is
// false in that case.
func (h *Handler) loadFiltered(c *gin.Context) (records []domain.Record, warnings []domain.ConfigurationWarning, loadedAt time.Time, ok bool) {
	table, err := h.cache.Get(c.Request.Context())
	if err != nil {
		var lf *domain.LoadFailure
		if errors.As(err, &lf) {
			h.logger.Warn("load failed",
				logger.String("kind", string(lf.Kind)),
				logger.String("detail", lf.Detail))
			c.JSON(http.StatusOK, RecordsResponse{
				Records:     []domain.Record{},
				LoadFailure: toLoadFailure(lf),
			})
			return nil, nil, time.Time{}, false
		}
		h.logger.Error("load failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load records"})
		return nil, nil, time.Time{}, false
	}

	sel, err := parseSelection(c, table)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, time.Time{}, false
	}

	start := time.Now()
	records, warnings = filter.Apply(table, sel)
	if h.telemetry != nil {
		h.telemetry.Metrics.FilterDuration.Observe(time.Since(start).Seconds())
		for _, w := range warnings {
			h.telemetry.Metrics.EmptyResults.WithLabelValues(string(w)).Inc()
		}
	}

	if q := c.Query("q"); q != "" {
		records = search.Match(records, q)
	}

	return records, warnings, table.LoadedAt, true
}

// GetRecords handles GET /api/v1/voc.
func (h *Handler) GetRecords(c *gin.Context) {
	records, warnings, loadedAt, ok := h.loadFiltered(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, RecordsResponse{
		Records:  records,
		Total:    len(records),
		Warnings: warnings,
		LoadedAt: loadedAt,
	})
}

// GetTrend handles GET /api/v1/voc/trend.
func (h *Handler) GetTrend(c *gin.Context) {
	records, warnings, _, ok := h.loadFiltered(c)
	if !ok {
		return
	}

	r, err := queryRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !r.Valid() {
		// Fall back to the filtered records' own span.
		r = recordsRange(records)
	}

	c.JSON(http.StatusOK, TrendResponse{
		Points:   aggregate.DailyTrend(records, r),
		Warnings: warnings,
	})
}

// GetDistribution handles GET /api/v1/voc/distribution.
func (h *Handler) GetDistribution(c *gin.Context) {
	records, warnings, _, ok := h.loadFiltered(c)
	if !ok {
		return
	}

	groupBy, err := parseGroupBy(c.DefaultQuery("by", "tag1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	topN, err := parseTopN(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, DistributionResponse{
		Entries:  aggregate.CategoryDistribution(records, groupBy, topN),
		Warnings: warnings,
	})
}

// GetYesterdaySummary handles GET /api/v1/voc/summary/yesterday.
// The summary always spans every game, so the selection query params are
// ignored here; only as_of is honored.
func (h *Handler) GetYesterdaySummary(c *gin.Context) {
	table, err := h.cache.Get(c.Request.Context())
	if err != nil {
		var lf *domain.LoadFailure
		if errors.As(err, &lf) {
			c.JSON(http.StatusOK, SummaryResponse{LoadFailure: toLoadFailure(lf)})
			return
		}
		h.logger.Error("load failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load records"})
		return
	}

	asOf := h.now().UTC()
	if raw := c.Query("as_of"); raw != "" {
		asOf, err = loader.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid as_of date"})
			return
		}
	}

	byGame := aggregate.YesterdaySummary(table.Records, asOf, aggregate.DefaultSummaryOptions)

	// Stable dashboard ordering: one card per game, in display order.
	summaries := make([]domain.IssueSummary, 0, len(domain.AllGames))
	for _, g := range domain.AllGames {
		summaries = append(summaries, byGame[g])
	}

	c.JSON(http.StatusOK, SummaryResponse{
		AsOf:      asOf,
		Summaries: summaries,
	})
}

// Search handles GET /api/v1/voc/search.
func (h *Handler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	records, warnings, _, ok := h.loadFiltered(c)
	if !ok {
		return
	}
	if h.telemetry != nil {
		h.telemetry.Metrics.SearchTotal.Inc()
	}

	c.JSON(http.StatusOK, RecordsResponse{
		Records:  records,
		Total:    len(records),
		Warnings: warnings,
	})
}

// Reload handles POST /api/v1/voc/reload: it drops the cached table and
// loads a fresh one synchronously so the caller sees the outcome.
func (h *Handler) Reload(c *gin.Context) {
	h.cache.Invalidate()

	table, err := h.cache.Get(c.Request.Context())
	if err != nil {
		var lf *domain.LoadFailure
		if errors.As(err, &lf) {
			c.JSON(http.StatusOK, ReloadResponse{LoadFailure: toLoadFailure(lf)})
			return
		}
		h.logger.Error("reload failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reload failed"})
		return
	}

	h.logger.Info("cache reloaded", logger.Int("records", len(table.Records)))
	c.JSON(http.StatusOK, ReloadResponse{
		Records:  len(table.Records),
		LoadedAt: table.LoadedAt,
	})
}

// RequestAccess handles POST /api/v1/access/requests.
func (h *Handler) RequestAccess(c *gin.Context) {
	var req AccessRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.access.RequestAccess(c.Request.Context(), req.Email, req.Name); err != nil {
		if errors.Is(err, access.ErrInvalidEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email"})
			return
		}
		h.logger.Error("access request failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record access request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": string(domain.AccessPending)})
}

// ListAccessRequests handles GET /api/v1/access/requests.
func (h *Handler) ListAccessRequests(c *gin.Context) {
	var status *domain.AccessStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.AccessStatus(raw)
		switch s {
		case domain.AccessPending, domain.AccessApproved, domain.AccessRevoked:
			status = &s
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
	}

	requests, err := h.access.List(c.Request.Context(), status)
	if err != nil {
		h.logger.Error("failed to list access requests", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list access requests"})
		return
	}

	c.JSON(http.StatusOK, AccessListResponse{
		Requests: requests,
		Total:    len(requests),
	})
}

// ApproveAccess handles POST /api/v1/access/requests/:email/approve.
func (h *Handler) ApproveAccess(c *gin.Context) {
	h.decideAccess(c, domain.AccessApproved)
}

// RevokeAccess handles POST /api/v1/access/requests/:email/revoke.
func (h *Handler) RevokeAccess(c *gin.Context) {
	h.decideAccess(c, domain.AccessRevoked)
}

func (h *Handler) decideAccess(c *gin.Context, status domain.AccessStatus) {
	email := c.Param("email")

	var req AccessDecisionBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var err error
	if status == domain.AccessApproved {
		err = h.access.Approve(c.Request.Context(), email, req.DecidedBy)
	} else {
		err = h.access.Revoke(c.Request.Context(), email, req.DecidedBy)
	}
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "access request not found"})
			return
		}
		h.logger.Error("access decision failed",
			logger.String("email", email),
			logger.String("status", string(status)),
			logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update access request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"email": email, "status": string(status)})
}

// userEmailHeader carries the caller's identity, set by the dashboard's
// auth proxy after login.
const userEmailHeader = "X-User-Email"

// RequireApproval gates the VOC query routes: only callers whose access
// request has been approved may read records. The access-request routes
// themselves stay open, otherwise nobody could ever ask for access.
func (h *Handler) RequireApproval(c *gin.Context) {
	email := c.GetHeader(userEmailHeader)
	if email == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + userEmailHeader + " header"})
		return
	}

	approved, err := h.access.IsApproved(c.Request.Context(), email)
	if err != nil {
		h.logger.Error("approval check failed", logger.String("email", email), logger.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to check access"})
		return
	}
	if !approved {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access not approved"})
		return
	}

	c.Next()
}

// CheckAccess handles GET /api/v1/access/check: it reports the caller's
// own approval state so the dashboard can show a pending banner instead
// of a bare 403.
func (h *Handler) CheckAccess(c *gin.Context) {
	email := c.GetHeader(userEmailHeader)
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing " + userEmailHeader + " header"})
		return
	}

	approved, err := h.access.IsApproved(c.Request.Context(), email)
	if err != nil {
		h.logger.Error("approval check failed", logger.String("email", email), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check access"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"email": email, "approved": approved})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.service,
		"version": h.version,
	})
}

// ReadyCheck handles GET /ready. The service is ready once a table can be
// served, loaded or not: load failures surface through the API itself.
func (h *Handler) ReadyCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
