package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-travel-planner/internal/domain"
	"github.com/tbourn/go-travel-planner/internal/http/middleware"
	"github.com/tbourn/go-travel-planner/internal/ml"
	"github.com/tbourn/go-travel-planner/internal/services"
	"github.com/tbourn/go-travel-planner/internal/utils"
)

//
// Service contracts (context-aware)
//

// Planner serves POST /plan.
type Planner interface {
	Plan(ctx context.Context, in services.PlanInput) (*services.PlanResult, error)
}

// ItineraryBuilder serves POST /generate-itinerary.
type ItineraryBuilder interface {
	Generate(ctx context.Context, in services.ItineraryInput) (*services.ItineraryResult, error)
}

// Recommender serves POST /generate-plan.
type Recommender interface {
	Recommend(ctx context.Context, in services.RecommendInput) (*services.Recommendation, error)
}

// FeedbackSubmitter serves POST /feedback.
type FeedbackSubmitter interface {
	Submit(ctx context.Context, in services.FeedbackInput) (*services.FeedbackResult, error)
}

// TripReader serves the read-only trip and preference endpoints.
type TripReader interface {
	ListPage(ctx context.Context, page, pageSize int) ([]domain.Trip, int64, error)
	Version(ctx context.Context) (count int64, maxID uint, err error)
	Get(ctx context.Context, id uint) (*domain.Trip, []domain.TripDay, error)
	Preferences(ctx context.Context, userID string) ([]domain.UserPreference, error)
}

// Retrainer serves POST /admin/retrain.
type Retrainer interface {
	Retrain(ctx context.Context) (ml.Report, error)
}

// ModelState reports whether a classifier is loaded, for /health.
type ModelState interface {
	Loaded() bool
}

// IdempotencyStore persists responses of POST /feedback so retries with the
// same Idempotency-Key replay instead of inserting twice.
type IdempotencyStore interface {
	Get(ctx context.Context, userID, scope, key string, now time.Time) (*domain.Idempotency, error)
	Save(ctx context.Context, userID, scope, key string, resourceID uint, status int, body []byte) error
}

//
// Handler wiring
//

// Deps lists the services behind the handlers. Idempotency and Model may be
// nil; the others are required by the routes that use them.
type Deps struct {
	Planner     Planner
	Itinerary   ItineraryBuilder
	Recommender Recommender
	Feedback    FeedbackSubmitter
	Trips       TripReader
	Retrainer   Retrainer
	Model       ModelState
	Idempotency IdempotencyStore
}

// Handlers groups the HTTP endpoints of the API.
type Handlers struct {
	d Deps
}

// New returns Handlers bound to d.
func New(d Deps) *Handlers { return &Handlers{d: d} }

//
// Helpers
//

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

func newPagination(page, pageSize int, total int64) Pagination {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

// clampPagination bounds page and page_size query params, returning
// (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = max(utils.AtoiDefault(c.Query("page"), 1), 1)
	pageSize = min(max(utils.AtoiDefault(c.Query("page_size"), defaultPageSize), 1), maxPageSize)
	return page, pageSize
}

// callerID prefers the id in the body, then the X-User-ID header.
func callerID(c *gin.Context, body UserID) string {
	if s := body.String(); s != "" {
		return s
	}
	return middleware.UserID(c)
}
