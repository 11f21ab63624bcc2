// Trip HTTP handlers.
//
// Read-only views over stored data:
//   - GET /trips                   (list, paginated, weak ETag)
//   - GET /trips/{id}              (trip plus itinerary days)
//   - GET /users/{id}/preferences  (learned interest weights)
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-travel-planner/internal/domain"
	"github.com/tbourn/go-travel-planner/internal/utils"
)

// ListTripsResponse wraps a page of trips and pagination information.
type ListTripsResponse struct {
	Trips      []domain.Trip `json:"trips"`
	Pagination Pagination    `json:"pagination"`
}

// TripResponse is a trip with its stored itinerary days.
type TripResponse struct {
	Trip      domain.Trip      `json:"trip"`
	Interests []string         `json:"interests"`
	Days      []domain.TripDay `json:"days"`
}

// PreferencesResponse lists a user's interest weights, heaviest first.
type PreferencesResponse struct {
	UserID      string                  `json:"user_id" example:"42"`
	Preferences []domain.UserPreference `json:"preferences"`
}

// ListTrips godoc
// @ID          listTrips
// @Summary     List trips (paginated)
// @Description Returns stored trips, newest first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Trips
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"trips:13:13:1:20\")
// @Param       page           query   int     false "Page number"                  minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"               minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListTripsResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /trips [get]
func (h *Handlers) ListTrips(c *gin.Context) {
	ctx := c.Request.Context()
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort).
	if count, maxID, err := h.d.Trips.Version(ctx); err == nil {
		etag := fmt.Sprintf(`W/"trips:%d:%d:%d:%d"`, count, maxID, page, pageSize)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, total, err := h.d.Trips.ListPage(ctx, page, pageSize)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ListTripsResponse{Trips: items, Pagination: newPagination(page, pageSize, total)})
}

// GetTrip godoc
// @ID          getTrip
// @Summary     Get a trip
// @Tags        Trips
// @Produce     json
//
// @Param       id  path  int  true  "Trip ID"  minimum(1)
//
// @Success     200  {object} handlers.TripResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad trip id"
// @Failure     404  {object} handlers.ErrorResponse "Trip not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /trips/{id} [get]
func (h *Handlers) GetTrip(c *gin.Context) {
	id, valid := utils.ParseID(c.Param("id"))
	if !valid {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "trip id must be a positive integer")
		return
	}

	trip, days, err := h.d.Trips.Get(c.Request.Context(), id)
	if err != nil {
		failService(c, err)
		return
	}
	interests := trip.InterestList()
	if interests == nil {
		interests = []string{}
	}
	if days == nil {
		days = []domain.TripDay{}
	}
	ok(c, http.StatusOK, TripResponse{Trip: *trip, Interests: interests, Days: days})
}

// UserPreferences godoc
// @ID          userPreferences
// @Summary     List a user's interest weights
// @Tags        Users
// @Produce     json
//
// @Param       id  path  string  true  "User ID"  example(42)
//
// @Success     200  {object} handlers.PreferencesResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad user id"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /users/{id}/preferences [get]
func (h *Handlers) UserPreferences(c *gin.Context) {
	uid := strings.TrimSpace(c.Param("id"))
	if uid == "" || len(uid) > maxUserIDLen {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid user id")
		return
	}

	prefs, err := h.d.Trips.Preferences(c.Request.Context(), uid)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, PreferencesResponse{UserID: uid, Preferences: prefs})
}
