package services

import "github.com/prometheus/client_golang/prometheus"

// Retrain outcomes used as the "outcome" label of travel_retrain_total.
const (
	outcomeSuccess      = "success"
	outcomeInsufficient = "insufficient_data"
	outcomeFailure      = "failure"
)

var (
	plansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travel_plans_total",
			Help: "Trips created, by creating endpoint.",
		},
		[]string{"source"},
	)

	feedbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "travel_feedback_total",
			Help: "Feedback rows accepted.",
		},
	)

	recommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travel_recommendations_total",
			Help: "Recommendation searches by the tier that produced results.",
		},
		[]string{"mode"},
	)

	retrainTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travel_retrain_total",
			Help: "Model retraining runs by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(plansTotal, feedbackTotal, recommendationsTotal, retrainTotal)
}
