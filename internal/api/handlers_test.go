//nolint:testpackage // Testing handler internals requires same package access
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/webboardlab/voc-insight/internal/access"
	"github.com/webboardlab/voc-insight/internal/classifier"
	"github.com/webboardlab/voc-insight/internal/database"
	"github.com/webboardlab/voc-insight/internal/domain"
	"github.com/webboardlab/voc-insight/internal/loader"
	"github.com/webboardlab/voc-insight/internal/logger"
	"github.com/webboardlab/voc-insight/internal/testhelpers"
)

// fakeAccessRepo implements access.Repository in memory.
type fakeAccessRepo struct {
	requests map[string]*domain.AccessRequest
}

func newFakeAccessRepo() *fakeAccessRepo {
	return &fakeAccessRepo{requests: make(map[string]*domain.AccessRequest)}
}

func (f *fakeAccessRepo) Create(_ context.Context, email, name string) error {
	if _, ok := f.requests[email]; ok {
		return nil
	}
	f.requests[email] = &domain.AccessRequest{Email: email, Name: name, Status: domain.AccessPending}
	return nil
}

func (f *fakeAccessRepo) GetByEmail(_ context.Context, email string) (*domain.AccessRequest, error) {
	req, ok := f.requests[email]
	if !ok {
		return nil, database.ErrNotFound
	}
	return req, nil
}

func (f *fakeAccessRepo) List(_ context.Context, status *domain.AccessStatus) ([]*domain.AccessRequest, error) {
	var out []*domain.AccessRequest
	for _, req := range f.requests {
		if status == nil || req.Status == *status {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeAccessRepo) SetStatus(_ context.Context, email string, status domain.AccessStatus, decidedBy string) error {
	req, ok := f.requests[email]
	if !ok {
		return database.ErrNotFound
	}
	req.Status = status
	req.DecidedBy = decidedBy
	return nil
}

func (f *fakeAccessRepo) IsApproved(_ context.Context, email string) (bool, error) {
	req, ok := f.requests[email]
	return ok && req.Status == domain.AccessApproved, nil
}

// seededClient returns a mock spreadsheet with three classified records
// on 2025-08-10..12.
func seededClient() *testhelpers.MockSheetClient {
	client := testhelpers.NewMockSheetClient()
	client.Worksheets["2025-08"] = []domain.RawRecord{
		testhelpers.RawRow("뉴맞고/모바일", "환불 요청", "환불 해주세요 회원번호: 12345", "환불", "2025-08-10"),
		testhelpers.RawRow("포커/PC", "버그 제보", "게임이 자꾸 멈춥니다", "버그", "2025-08-11"),
		testhelpers.RawRow("섯다", "인사", "항상 즐겁게 하고 있습니다", "기타문의", "2025-08-12"),
	}
	return client
}

// testUserEmail is pre-approved by setupHandler so the voc routes open up.
const testUserEmail = "dashboard@webboardlab.com"

func setupHandler(client *testhelpers.MockSheetClient) *Handler {
	log := logger.NewNop()
	l := loader.New(client, classifier.New(log, classifier.Config{}), log, nil)
	cache := loader.NewCached(l, time.Minute, log, nil)

	repo := newFakeAccessRepo()
	repo.requests[testUserEmail] = &domain.AccessRequest{
		Email:  testUserEmail,
		Status: domain.AccessApproved,
	}
	accessService := access.NewService(repo, nil, log)

	h := NewHandler(cache, accessService, nil, log, "voc-insight", "test")
	h.now = func() time.Time { return testhelpers.Day(2025, 8, 11) }
	return h
}

func setupRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, h, nil)
	return router
}

func doRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	return doRequestAs(router, method, path, testUserEmail, body)
}

func doRequestAs(router *gin.Engine, method, path, email string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if email != "" {
		req.Header.Set(userEmailHeader, email)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetRecords(t *testing.T) {
	router := setupRouter(setupHandler(seededClient()))

	w := doRequest(router, http.MethodGet, "/api/v1/voc", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp RecordsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Total != 3 {
		t.Errorf("total = %d, want 3", resp.Total)
	}
	if resp.LoadFailure != nil {
		t.Errorf("unexpected load failure: %+v", resp.LoadFailure)
	}
}

func TestGetRecords_FilterByGame(t *testing.T) {
	router := setupRouter(setupHandler(seededClient()))

	w := doRequest(router, http.MethodGet, "/api/v1/voc?games=newmatgo", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp RecordsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("total = %d, want 1", resp.Total)
	}
	if resp.Records[0].Game != domain.GameNewMatgo {
		t.Errorf("game = %s, want %s", resp.Records[0].Game, domain.GameNewMatgo)
	}
}

func TestGetRecords_UnknownGame(t *testing.T) {
	router := setupRouter(setupHandler(seededClient()))

	w := doRequest(router, http.MethodGet, "/api/v1/voc?games=chess", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetRecords_LoadFailureInBody(t *testing.T) {
	// No worksheets at all: the loader reports not_found, the API reports
	// it in the payload rather than failing the request.
	router := setupRouter(setupHandler(testhelpers.NewMockSheetClient()))

	w := doRequest(router, http.MethodGet, "/api/v1/voc", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp RecordsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.LoadFailure == nil {
		t.Fatal("expected load_failure in response")
	}
	if resp.LoadFailure.Kind != string(domain.LoadNotFound) {
		t.Errorf("kind = %s, want %s", resp.LoadFailure.Kind, domain.LoadNotFound)
	}
	if len(resp.Records) != 0 {
		t.Errorf("records = %d, want 0", len(resp.Records))
	}
}

func TestGetTrend(t *testing.T) {
	router := setupRouter(setupHandler(seededClient()))

	w := doRequest(router, http.MethodGet, "/api/v1/voc/trend?from=2025-08-10&to=2025-08-12", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp TrendResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Points) != 3 {
		t.Fatalf("points = %d, want 3", len(resp.Points))
	}
	for i, p := range resp.Points {
		if p.Count != 1 {
			t.Errorf("points[%d].Count = %d, want 1", i, p.Count)
		}
	}
}

func TestGetDistribution_ByGame(t *testing.T) {
	router := setupRouter(setupHandler(seededClient()))

	w := doRequest(router, http.MethodGet, "/api/v1/voc/distribution?by=game", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp DistributionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(resp.Entries))
	}
	for _, e := range resp.Entries {
		if e.Count != 1 {
			t.Errorf("entry %s count = %d, want 1", e.Label, e.Count)
		}
	}
}

func TestGetDistribution_UnknownKey(t *testing.T) {
	router := setupRouter(setupHandler(seededClient()))

	w := doRequest(router, http.MethodGet, "/api/v1/voc/distribution?by=color", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSearch(t *testing.T) {
	router := setupRouter(setupHandler(seededClient()))

	w := doRequest(router, http.MethodGet, "/api/v1/voc/search?q=%EB%B2%84%EA%B7%B8", nil) // q=버그
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp RecordsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("total = %d, want 1", resp.Total)
	}
}

func TestSearch_RequiresQuery(t *testing.T) {
	router := setupRouter(setupHandler(seededClient()))

	w := doRequest(router, http.MethodGet, "/api/v1/voc/search", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetYesterdaySummary(t *testing.T) {
	router := setupRouter(setupHandler(seededClient()))

	// Handler time is fixed to 2025-08-11, so yesterday is the 10th.
	w := doRequest(router, http.MethodGet, "/api/v1/voc/summary/yesterday", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp SummaryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Summaries) != len(domain.AllGames) {
		t.Fatalf("summaries = %d, want %d", len(resp.Summaries), len(domain.AllGames))
	}

	var newMatgo *domain.IssueSummary
	for i := range resp.Summaries {
		if resp.Summaries[i].Game == domain.GameNewMatgo {
			newMatgo = &resp.Summaries[i]
		}
	}
	if newMatgo == nil {
		t.Fatal("missing newmatgo summary")
	}
	if !newMatgo.HasData || newMatgo.Count != 1 {
		t.Errorf("newmatgo summary = %+v, want HasData with count 1", newMatgo)
	}
}

func TestReload(t *testing.T) {
	client := seededClient()
	router := setupRouter(setupHandler(client))

	// Warm the cache, then reload: the sheet must be listed again.
	doRequest(router, http.MethodGet, "/api/v1/voc", nil)
	listCallsBefore := client.ListCalls

	w := doRequest(router, http.MethodPost, "/api/v1/voc/reload", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if client.ListCalls != listCallsBefore+1 {
		t.Errorf("ListCalls = %d, want %d", client.ListCalls, listCallsBefore+1)
	}

	var resp ReloadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Records != 3 {
		t.Errorf("records = %d, want 3", resp.Records)
	}
}

func TestAccessFlow(t *testing.T) {
	router := setupRouter(setupHandler(seededClient()))

	w := doRequest(router, http.MethodPost, "/api/v1/access/requests",
		AccessRequestBody{Email: "cs-lead@webboardlab.com", Name: "CS Lead"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", w.Code)
	}

	w = doRequest(router, http.MethodGet, "/api/v1/access/requests?status=pending", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", w.Code)
	}
	var list AccessListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if list.Total != 1 {
		t.Fatalf("pending total = %d, want 1", list.Total)
	}

	w = doRequest(router, http.MethodPost, "/api/v1/access/requests/cs-lead@webboardlab.com/approve",
		AccessDecisionBody{DecidedBy: "ops"})
	if w.Code != http.StatusOK {
		t.Fatalf("approve status = %d, want 200", w.Code)
	}

	// The pre-approved dashboard user plus the one just approved.
	w = doRequest(router, http.MethodGet, "/api/v1/access/requests?status=approved", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if list.Total != 2 {
		t.Errorf("approved total = %d, want 2", list.Total)
	}
}

func TestAccessDecision_UnknownEmail(t *testing.T) {
	router := setupRouter(setupHandler(seededClient()))

	w := doRequest(router, http.MethodPost, "/api/v1/access/requests/nobody@webboardlab.com/revoke",
		AccessDecisionBody{DecidedBy: "ops"})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestAccessRequest_InvalidEmail(t *testing.T) {
	router := setupRouter(setupHandler(seededClient()))

	w := doRequest(router, http.MethodPost, "/api/v1/access/requests",
		AccessRequestBody{Email: "   "})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestVocRoutes_RequireIdentityHeader(t *testing.T) {
	router := setupRouter(setupHandler(seededClient()))

	w := doRequestAs(router, http.MethodGet, "/api/v1/voc", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestVocRoutes_RejectUnapprovedUser(t *testing.T) {
	router := setupRouter(setupHandler(seededClient()))

	// Unknown caller, then a pending one: neither may read records.
	w := doRequestAs(router, http.MethodGet, "/api/v1/voc", "stranger@webboardlab.com", nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("unknown caller status = %d, want 403", w.Code)
	}

	doRequestAs(router, http.MethodPost, "/api/v1/access/requests", "",
		AccessRequestBody{Email: "pending@webboardlab.com"})
	w = doRequestAs(router, http.MethodGet, "/api/v1/voc/trend", "pending@webboardlab.com", nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("pending caller status = %d, want 403", w.Code)
	}
}

func TestVocRoutes_ApprovalOpensAccess(t *testing.T) {
	router := setupRouter(setupHandler(seededClient()))

	email := "analyst@webboardlab.com"
	doRequestAs(router, http.MethodPost, "/api/v1/access/requests", "",
		AccessRequestBody{Email: email})

	w := doRequestAs(router, http.MethodGet, "/api/v1/voc", email, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("pre-approval status = %d, want 403", w.Code)
	}

	doRequest(router, http.MethodPost, "/api/v1/access/requests/"+email+"/approve",
		AccessDecisionBody{DecidedBy: "ops"})

	w = doRequestAs(router, http.MethodGet, "/api/v1/voc", email, nil)
	if w.Code != http.StatusOK {
		t.Errorf("post-approval status = %d, want 200", w.Code)
	}
}

func TestCheckAccess(t *testing.T) {
	router := setupRouter(setupHandler(seededClient()))

	w := doRequestAs(router, http.MethodGet, "/api/v1/access/check", testUserEmail, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Approved bool `json:"approved"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Approved {
		t.Error("approved = false, want true")
	}

	w = doRequestAs(router, http.MethodGet, "/api/v1/access/check", "stranger@webboardlab.com", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Approved {
		t.Error("approved = true for unknown caller, want false")
	}
}

func TestHealthAndReady(t *testing.T) {
	router := setupRouter(setupHandler(seededClient()))

	for _, path := range []string{"/health", "/ready"} {
		w := doRequest(router, http.MethodGet, path, nil)
		if w.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, w.Code)
		}
	}
}
