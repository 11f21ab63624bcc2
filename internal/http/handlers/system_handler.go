// Operational HTTP handlers: liveness, health and manual retraining.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-travel-planner/internal/http/middleware"
	"github.com/tbourn/go-travel-planner/internal/ml"
	"github.com/tbourn/go-travel-planner/internal/services"
)

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status      string `json:"status" example:"ok"`
	ModelLoaded bool   `json:"model_loaded" example:"true"`
}

// RetrainResponse is returned by POST /admin/retrain.
type RetrainResponse struct {
	Status    string  `json:"status" example:"Model retrained successfully"`
	Rows      int     `json:"rows" example:"12"`
	TrainRows int     `json:"train_rows" example:"10"`
	TestRows  int     `json:"test_rows" example:"2"`
	Accuracy  float64 `json:"accuracy" example:"0.5"`
}

// Root godoc
// @ID          root
// @Summary     Liveness message
// @Tags        System
// @Produce     json
// @Success     200  {object}  map[string]string
// @Router      / [get]
func (h *Handlers) Root(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{"message": "Travel planner API is running"})
}

// Health godoc
// @ID          health
// @Summary     Health check
// @Description Reports liveness and whether a trained classifier is loaded.
// @Tags        System
// @Produce     json
// @Success     200  {object}  handlers.HealthResponse
// @Router      /health [get]
func (h *Handlers) Health(c *gin.Context) {
	loaded := h.d.Model != nil && h.d.Model.Loaded()
	ok(c, http.StatusOK, HealthResponse{Status: "ok", ModelLoaded: loaded})
}

// Retrain godoc
// @ID          retrain
// @Summary     Retrain the classifier now
// @Description Fits a new model on all trip feedback, persists it and swaps it in. Concurrent calls share one run.
// @Tags        Admin
// @Produce     json
// @Success     200  {object}  handlers.RetrainResponse
// @Failure     409  {object}  handlers.ErrorResponse  "Not enough feedback to train"
// @Failure     500  {object}  handlers.ErrorResponse  "Training failed"
// @Router      /admin/retrain [post]
func (h *Handlers) Retrain(c *gin.Context) {
	rep, err := h.d.Retrainer.Retrain(c.Request.Context())
	switch {
	case errors.Is(err, ml.ErrInsufficientData):
		fail(c, http.StatusConflict, ErrCodeInsufficientData, "not enough feedback to train a model")
		return
	case err != nil:
		middleware.LoggerFrom(c).Error().Err(err).Msg("manual retrain failed")
		fail(c, http.StatusInternalServerError, ErrCodeRetrainFailed, "model retraining failed")
		return
	}
	ok(c, http.StatusOK, RetrainResponse{
		Status:    services.RetrainSuccess,
		Rows:      rep.Rows,
		TrainRows: rep.TrainRows,
		TestRows:  rep.TestRows,
		Accuracy:  rep.Accuracy,
	})
}
