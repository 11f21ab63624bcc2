package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-travel-planner/internal/domain"
	"github.com/tbourn/go-travel-planner/internal/http/middleware"
	"github.com/tbourn/go-travel-planner/internal/ml"
	"github.com/tbourn/go-travel-planner/internal/services"
)

// ---------- service stubs ----------

type stubPlanner struct {
	fn func(ctx context.Context, in services.PlanInput) (*services.PlanResult, error)
}

func (s stubPlanner) Plan(ctx context.Context, in services.PlanInput) (*services.PlanResult, error) {
	return s.fn(ctx, in)
}

type stubItinerary struct {
	fn func(ctx context.Context, in services.ItineraryInput) (*services.ItineraryResult, error)
}

func (s stubItinerary) Generate(ctx context.Context, in services.ItineraryInput) (*services.ItineraryResult, error) {
	return s.fn(ctx, in)
}

type stubRecommender struct {
	fn func(ctx context.Context, in services.RecommendInput) (*services.Recommendation, error)
}

func (s stubRecommender) Recommend(ctx context.Context, in services.RecommendInput) (*services.Recommendation, error) {
	return s.fn(ctx, in)
}

type stubFeedback struct {
	mu    sync.Mutex
	calls int
	fn    func(ctx context.Context, in services.FeedbackInput) (*services.FeedbackResult, error)
}

func (s *stubFeedback) Submit(ctx context.Context, in services.FeedbackInput) (*services.FeedbackResult, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.fn(ctx, in)
}

type stubTrips struct {
	trips   []domain.Trip
	days    map[uint][]domain.TripDay
	prefs   map[string][]domain.UserPreference
	listErr error
}

func (s stubTrips) ListPage(_ context.Context, page, pageSize int) ([]domain.Trip, int64, error) {
	if s.listErr != nil {
		return nil, 0, s.listErr
	}
	start := min((page-1)*pageSize, len(s.trips))
	end := min(start+pageSize, len(s.trips))
	return s.trips[start:end], int64(len(s.trips)), nil
}

func (s stubTrips) Version(context.Context) (int64, uint, error) {
	var maxID uint
	for _, t := range s.trips {
		maxID = max(maxID, t.ID)
	}
	return int64(len(s.trips)), maxID, nil
}

func (s stubTrips) Get(_ context.Context, id uint) (*domain.Trip, []domain.TripDay, error) {
	for _, t := range s.trips {
		if t.ID == id {
			return &t, s.days[id], nil
		}
	}
	return nil, nil, services.ErrTripNotFound
}

func (s stubTrips) Preferences(_ context.Context, userID string) ([]domain.UserPreference, error) {
	p := s.prefs[userID]
	if p == nil {
		p = []domain.UserPreference{}
	}
	return p, nil
}

type stubRetrainer struct {
	rep ml.Report
	err error
}

func (s stubRetrainer) Retrain(context.Context) (ml.Report, error) { return s.rep, s.err }

type stubModel bool

func (m stubModel) Loaded() bool { return bool(m) }

// memIdem is an in-memory IdempotencyStore.
type memIdem struct {
	mu   sync.Mutex
	recs map[string]*domain.Idempotency
}

func newMemIdem() *memIdem { return &memIdem{recs: map[string]*domain.Idempotency{}} }

func (m *memIdem) Get(_ context.Context, userID, scope, key string, _ time.Time) (*domain.Idempotency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recs[userID+"|"+scope+"|"+key], nil
}

func (m *memIdem) Save(_ context.Context, userID, scope, key string, resourceID uint, status int, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[userID+"|"+scope+"|"+key] = &domain.Idempotency{
		UserID: userID, Scope: scope, Key: key, ResourceID: resourceID, Status: status, Body: string(body),
	}
	return nil
}

// ---------- router + request helpers ----------

func newTestRouter(d Deps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	h := New(d)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Identity())
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, nil))
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.POST("/plan", h.Plan)
	r.POST("/generate-itinerary", h.GenerateItinerary)
	r.POST("/generate-plan", h.GeneratePlan)
	r.POST("/feedback", h.SubmitFeedback)
	r.GET("/trips", h.ListTrips)
	r.GET("/trips/:id", h.GetTrip)
	r.GET("/users/:id/preferences", h.UserPreferences)
	r.POST("/admin/retrain", h.Retrain)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func wantError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) ErrorResponse {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, status, w.Body.String())
	}
	er := decode[ErrorResponse](t, w)
	if er.Code != code || er.RequestID == "" {
		t.Fatalf("error body = %+v, want code %q", er, code)
	}
	return er
}
