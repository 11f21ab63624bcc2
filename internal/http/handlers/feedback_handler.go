// Feedback HTTP handler.
//
// POST /feedback stores a rating for a trip, bumps the caller's interest
// weights and may trigger a classifier retrain. With an Idempotency-Key the
// first successful response is stored and replayed verbatim for retries,
// marked with Idempotency-Replayed: true.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"

	"github.com/tbourn/go-travel-planner/internal/http/middleware"
	"github.com/tbourn/go-travel-planner/internal/services"
)

const headerIdempotencyReplayed = "Idempotency-Replayed"

// FeedbackRequest is the JSON payload for POST /feedback. Liked defaults to
// rating >= 4 when omitted.
type FeedbackRequest struct {
	TripID  uint   `json:"trip_id" binding:"required" example:"3"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5" example:"5"`
	Liked   *bool  `json:"liked,omitempty" example:"true"`
	Comment string `json:"comment" binding:"max=300" example:"Amazing views and food"`
	UserID  UserID `json:"user_id" swaggertype:"string" example:"42"`
}

// FeedbackResponse is returned by POST /feedback.
type FeedbackResponse struct {
	Message       string `json:"message" example:"Feedback recorded"`
	FeedbackID    uint   `json:"feedback_id" example:"9"`
	Liked         bool   `json:"liked" example:"true"`
	RetrainStatus string `json:"retrain_status" example:"Waiting for more feedback"`
}

// SubmitFeedback godoc
// @ID          submitFeedback
// @Summary     Leave feedback on a trip
// @Description Records a 1-5 rating, updates interest weights and retrains the classifier every Nth feedback row. Supports Idempotency-Key.
// @Tags        Feedback
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID        header  string  false "User ID when the body has none"        example(42)
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"      example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.FeedbackRequest  true  "Feedback payload"
//
// @Success     201  {object}  handlers.FeedbackResponse
// @Header      201  {string}  Idempotency-Replayed  "true when served from a stored response"
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid payload"
// @Failure     404  {object}  handlers.ErrorResponse  "Trip not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /feedback [post]
func (h *Handlers) SubmitFeedback(c *gin.Context) {
	ctx := c.Request.Context()

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, bindMessage(err))
		return
	}
	userID := callerID(c, req.UserID)

	idemKey, hasKey := middleware.GetIdempotencyKey(c)
	hasKey = hasKey && h.d.Idempotency != nil
	subject, scope := middleware.IdempotencySubject(c, userID), middleware.IdempotencyScope(c)

	// Replay path.
	if hasKey {
		if rec, err := h.d.Idempotency.Get(ctx, subject, scope, idemKey, time.Now().UTC()); err == nil && rec != nil {
			c.Header(headerIdempotencyReplayed, "true")
			c.Data(rec.Status, "application/json; charset=utf-8", []byte(rec.Body))
			return
		}
	}

	res, err := h.d.Feedback.Submit(ctx, services.FeedbackInput{
		TripID:  req.TripID,
		UserID:  userID,
		Rating:  req.Rating,
		Liked:   req.Liked,
		Comment: req.Comment,
	})
	if err != nil {
		failService(c, err)
		return
	}

	resp := FeedbackResponse{
		Message:       "Feedback recorded",
		FeedbackID:    res.FeedbackID,
		Liked:         res.Liked,
		RetrainStatus: res.RetrainStatus,
	}

	// Store path, best effort.
	if hasKey {
		if body, err := json.Marshal(resp); err == nil {
			if err := h.d.Idempotency.Save(ctx, subject, scope, idemKey, res.FeedbackID, http.StatusCreated, body); err != nil {
				middleware.LoggerFrom(c).Warn().Err(err).Str("idempotency_key", idemKey).Msg("store idempotent response")
			}
		}
	}

	ok(c, http.StatusCreated, resp)
}
