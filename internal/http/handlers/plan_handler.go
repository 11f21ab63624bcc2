// Planning HTTP handlers.
//
// This file exposes the three planning endpoints:
//   - POST /plan                (store a trip, confidence + plain itinerary)
//   - POST /generate-itinerary  (preference-ordered day-by-day itinerary)
//   - POST /generate-plan       (classifier-ranked trip recommendations)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-travel-planner/internal/itinerary"
	"github.com/tbourn/go-travel-planner/internal/services"
)

//
// DTOs
//

// PlanRequest is the JSON payload for POST /plan.
type PlanRequest struct {
	Destination string   `json:"destination" binding:"required,notblank,max=100" example:"Manali"`
	Budget      *Number  `json:"budget" binding:"required,gte=0" swaggertype:"integer" example:"25000"`
	Days        Number   `json:"days" binding:"gte=0" swaggertype:"integer" example:"5"`
	TravelType  string   `json:"travel_type" binding:"max=32" example:"leisure"`
	Interests   []string `json:"interests" binding:"max=20,dive,max=64" example:"nature,food"`
	UserID      UserID   `json:"user_id" swaggertype:"string" example:"42"`
}

// PlanResponse is returned by POST /plan.
type PlanResponse struct {
	TripID          uint     `json:"trip_id" example:"14"`
	Destination     string   `json:"destination" example:"Manali"`
	Confidence      string   `json:"confidence" example:"high"`
	LikeProbability *float64 `json:"like_probability,omitempty" example:"0.82"`
	Explanation     string   `json:"explanation"`
	Itinerary       []string `json:"itinerary"`
}

// ItineraryRequest is the JSON payload for POST /generate-itinerary.
type ItineraryRequest struct {
	Destination string   `json:"destination" binding:"required,notblank,max=100" example:"Rishikesh"`
	Days        Number   `json:"days" binding:"required,gte=1" swaggertype:"integer" example:"3"`
	Interests   []string `json:"interests" binding:"max=20,dive,max=64" example:"adventure,food"`
	Budget      Number   `json:"budget" binding:"gte=0" swaggertype:"integer" example:"18000"`
	TravelType  string   `json:"travel_type" binding:"max=32" example:"adventure"`
	UserID      UserID   `json:"user_id" swaggertype:"string" example:"42"`
}

// ItineraryResponse is returned by POST /generate-itinerary.
type ItineraryResponse struct {
	TripID               uint            `json:"trip_id" example:"15"`
	Destination          string          `json:"destination" example:"Rishikesh"`
	Itinerary            []itinerary.Day `json:"itinerary"`
	PrioritizedInterests []string        `json:"prioritized_interests"`
}

// RecommendRequest is the JSON payload for POST /generate-plan.
type RecommendRequest struct {
	Destination string  `json:"destination" binding:"max=100" example:"Goa"`
	Budget      *Number `json:"budget" binding:"required,gte=0" swaggertype:"integer" example:"30000"`
	Days        *Number `json:"days" binding:"required,gte=0" swaggertype:"integer" example:"5"`
	TravelType  string  `json:"travel_type" binding:"required,notblank,max=32" example:"leisure"`
}

// RecommendedTrip is one ranked candidate of POST /generate-plan.
type RecommendedTrip struct {
	TripID              uint    `json:"trip_id" example:"3"`
	Destination         string  `json:"destination" example:"Goa"`
	Budget              int64   `json:"budget" example:"30000"`
	Days                int     `json:"days" example:"6"`
	TravelType          string  `json:"travel_type" example:"leisure"`
	LikeProbability     float64 `json:"like_probability" example:"0.74"`
	DestinationLikeRate float64 `json:"destination_like_rate" example:"1"`
}

// RecommendResponse is returned by POST /generate-plan.
type RecommendResponse struct {
	Mode            string            `json:"mode" example:"budget_relaxed"`
	ScoredBy        string            `json:"scored_by" example:"model"`
	Recommendations []RecommendedTrip `json:"recommendations"`
}

//
// Handlers
//

// Plan godoc
// @ID          plan
// @Summary     Plan a trip
// @Description Stores the trip, labels it with a confidence derived from past feedback and returns a simple itinerary.
// @Tags        Planning
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID when the body has none"  example(42)
// @Param       body       body    handlers.PlanRequest  true  "Trip parameters"
//
// @Success     200  {object}  handlers.PlanResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid payload"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /plan [post]
func (h *Handlers) Plan(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, bindMessage(err))
		return
	}

	res, err := h.d.Planner.Plan(c.Request.Context(), services.PlanInput{
		UserID:      callerID(c, req.UserID),
		Destination: req.Destination,
		Budget:      req.Budget.Int64(),
		Days:        req.Days.Int(),
		TravelType:  req.TravelType,
		Interests:   req.Interests,
	})
	if err != nil {
		failService(c, err)
		return
	}

	ok(c, http.StatusOK, PlanResponse{
		TripID:          res.TripID,
		Destination:     res.Destination,
		Confidence:      res.Confidence,
		LikeProbability: res.LikeProbability,
		Explanation:     res.Explanation,
		Itinerary:       res.Itinerary,
	})
}

// GenerateItinerary godoc
// @ID          generateItinerary
// @Summary     Generate a personalized itinerary
// @Description Orders interests by the user's learned weights and generates morning/afternoon/evening activities per day.
// @Tags        Planning
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID when the body has none"  example(42)
// @Param       body       body    handlers.ItineraryRequest  true  "Itinerary parameters"
//
// @Success     200  {object}  handlers.ItineraryResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid payload"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /generate-itinerary [post]
func (h *Handlers) GenerateItinerary(c *gin.Context) {
	var req ItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, bindMessage(err))
		return
	}

	res, err := h.d.Itinerary.Generate(c.Request.Context(), services.ItineraryInput{
		UserID:      callerID(c, req.UserID),
		Destination: req.Destination,
		Days:        req.Days.Int(),
		Interests:   req.Interests,
		Budget:      req.Budget.Int64(),
		TravelType:  req.TravelType,
	})
	if err != nil {
		failService(c, err)
		return
	}

	ok(c, http.StatusOK, ItineraryResponse{
		TripID:               res.TripID,
		Destination:          res.Destination,
		Itinerary:            res.Days,
		PrioritizedInterests: res.PrioritizedInterests,
	})
}

// GeneratePlan godoc
// @ID          generatePlan
// @Summary     Recommend stored trips
// @Description Searches stored trips of the travel type, relaxing budget and days step by step, and ranks them by predicted like probability.
// @Tags        Planning
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RecommendRequest  true  "Search parameters"
//
// @Success     200  {object}  handlers.RecommendResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid payload"
// @Failure     404  {object}  handlers.ErrorResponse  "No trips of this travel type"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /generate-plan [post]
func (h *Handlers) GeneratePlan(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, bindMessage(err))
		return
	}

	rec, err := h.d.Recommender.Recommend(c.Request.Context(), services.RecommendInput{
		Destination: req.Destination,
		Budget:      req.Budget.Int64(),
		Days:        req.Days.Int(),
		TravelType:  req.TravelType,
	})
	if err != nil {
		failService(c, err)
		return
	}

	out := make([]RecommendedTrip, 0, len(rec.Trips))
	for _, st := range rec.Trips {
		out = append(out, RecommendedTrip{
			TripID:              st.Trip.ID,
			Destination:         st.Trip.Destination,
			Budget:              st.Trip.Budget,
			Days:                st.Trip.Days,
			TravelType:          st.Trip.TravelType,
			LikeProbability:     st.LikeProbability,
			DestinationLikeRate: st.DestinationLikeRate,
		})
	}
	ok(c, http.StatusOK, RecommendResponse{Mode: rec.Mode, ScoredBy: rec.ScoredBy, Recommendations: out})
}
