package handlers

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/tbourn/go-travel-planner/internal/domain"
	"github.com/tbourn/go-travel-planner/internal/itinerary"
	"github.com/tbourn/go-travel-planner/internal/services"
)

func TestPlan_Success(t *testing.T) {
	var got services.PlanInput
	p := 0.8
	r := newTestRouter(Deps{Planner: stubPlanner{fn: func(_ context.Context, in services.PlanInput) (*services.PlanResult, error) {
		got = in
		return &services.PlanResult{
			TripID:          7,
			Destination:     "Manali",
			Confidence:      services.ConfidenceHigh,
			LikeProbability: &p,
			Explanation:     "Recommended because you prefer nature-based trips and similar trips received positive feedback.",
			Itinerary:       []string{"Day 1: Trek, then Lake visit. Evening: Relax and enjoy local cuisine"},
		}, nil
	}}})

	w := do(t, r, http.MethodPost, "/plan",
		`{"destination":"manali","budget":25000,"days":5,"travel_type":"Leisure","interests":["nature"],"user_id":42}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	want := services.PlanInput{UserID: "42", Destination: "manali", Budget: 25000, Days: 5, TravelType: "Leisure", Interests: []string{"nature"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("input = %+v, want %+v", got, want)
	}
	resp := decode[PlanResponse](t, w)
	if resp.TripID != 7 || resp.Confidence != "high" || resp.LikeProbability == nil || *resp.LikeProbability != 0.8 || len(resp.Itinerary) != 1 {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestPlan_UserIDFallsBackToHeader(t *testing.T) {
	var got string
	r := newTestRouter(Deps{Planner: stubPlanner{fn: func(_ context.Context, in services.PlanInput) (*services.PlanResult, error) {
		got = in.UserID
		return &services.PlanResult{Confidence: services.ConfidenceBaseline}, nil
	}}})

	w := do(t, r, http.MethodPost, "/plan", `{"destination":"Goa","budget":0}`, map[string]string{"X-User-ID": "traveller-9"})
	if w.Code != http.StatusOK || got != "traveller-9" {
		t.Fatalf("status=%d user=%q", w.Code, got)
	}
	if strings.Contains(w.Body.String(), "like_probability") {
		t.Fatalf("absent probability must be omitted: %s", w.Body.String())
	}

	w = do(t, r, http.MethodPost, "/plan", `{"destination":"Goa","budget":1,"user_id":"body-user"}`, map[string]string{"X-User-ID": "hdr"})
	if w.Code != http.StatusOK || got != "body-user" {
		t.Fatalf("body id must win, got %q", got)
	}
}

func TestPlan_BindingErrors(t *testing.T) {
	r := newTestRouter(Deps{Planner: stubPlanner{fn: func(context.Context, services.PlanInput) (*services.PlanResult, error) {
		t.Fatalf("service must not be called")
		return nil, nil
	}}})

	cases := []struct {
		body string
		msg  string
	}{
		{`{`, "invalid JSON body"},
		{`{"budget":100}`, "destination is required"},
		{`{"destination":"   ","budget":100}`, "destination is required"},
		{`{"destination":"Goa"}`, "budget is required"},
		{`{"destination":"Goa","budget":-1}`, "budget must be at least 0"},
		{`{"destination":"Goa","budget":1,"days":-2}`, "days must be at least 0"},
		{`{"destination":"Goa","budget":1,"user_id":true}`, "user_id must be a string or an integer"},
		{`{"destination":"Goa","budget":"lots"}`, "budget and days must be whole numbers or numeric strings"},
		{`{"destination":"Goa","budget":"-5"}`, "budget must be at least 0"},
		{`{"destination":"Goa","budget":1,"days":"2.5"}`, "budget and days must be whole numbers or numeric strings"},
	}
	for _, tc := range cases {
		er := wantError(t, do(t, r, http.MethodPost, "/plan", tc.body, nil), http.StatusBadRequest, ErrCodeBadRequest)
		if er.Message != tc.msg {
			t.Fatalf("%s: message = %q, want %q", tc.body, er.Message, tc.msg)
		}
	}
}

func TestPlan_ServiceValidationError(t *testing.T) {
	r := newTestRouter(Deps{Planner: stubPlanner{fn: func(context.Context, services.PlanInput) (*services.PlanResult, error) {
		return nil, services.ErrInvalidDays
	}}})
	wantError(t, do(t, r, http.MethodPost, "/plan", `{"destination":"Goa","budget":1,"days":90}`, nil), http.StatusBadRequest, ErrCodeValidation)
}

func TestGenerateItinerary(t *testing.T) {
	var got services.ItineraryInput
	r := newTestRouter(Deps{Itinerary: stubItinerary{fn: func(_ context.Context, in services.ItineraryInput) (*services.ItineraryResult, error) {
		got = in
		return &services.ItineraryResult{
			TripID:               3,
			Destination:          "Rishikesh",
			Days:                 []itinerary.Day{{Day: 1, Morning: "Rafting", Afternoon: "Camping", Evening: itinerary.DefaultEvening}},
			PrioritizedInterests: []string{"adventure", "food"},
		}, nil
	}}})

	w := do(t, r, http.MethodPost, "/generate-itinerary",
		`{"destination":"Rishikesh","days":1,"interests":["food","adventure"],"user_id":"7"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	if got.UserID != "7" || got.Days != 1 || !reflect.DeepEqual(got.Interests, []string{"food", "adventure"}) {
		t.Fatalf("input = %+v", got)
	}
	resp := decode[ItineraryResponse](t, w)
	if resp.TripID != 3 || len(resp.Itinerary) != 1 || resp.Itinerary[0].Morning != "Rafting" || resp.PrioritizedInterests[0] != "adventure" {
		t.Fatalf("resp = %+v", resp)
	}

	w = do(t, r, http.MethodPost, "/generate-itinerary", `{"destination":"Rishikesh","days":"3","budget":"18000","user_id":1}`, nil)
	if w.Code != http.StatusOK || got.Days != 3 || got.Budget != 18000 || got.UserID != "1" {
		t.Fatalf("string form: status = %d input = %+v", w.Code, got)
	}

	er := wantError(t, do(t, r, http.MethodPost, "/generate-itinerary", `{"destination":"Rishikesh","days":0}`, nil), http.StatusBadRequest, ErrCodeBadRequest)
	if er.Message != "days is required" {
		t.Fatalf("message = %q", er.Message)
	}
}

func TestGeneratePlan(t *testing.T) {
	var got services.RecommendInput
	r := newTestRouter(Deps{Recommender: stubRecommender{fn: func(_ context.Context, in services.RecommendInput) (*services.Recommendation, error) {
		got = in
		return &services.Recommendation{
			Mode:     services.ModeBudgetRelaxed,
			ScoredBy: services.ScoredByBaseline,
			Trips: []services.ScoredTrip{
				{Trip: domain.Trip{ID: 2, Destination: "Goa", Budget: 30000, Days: 6, TravelType: "leisure"}, LikeProbability: 1, DestinationLikeRate: 1},
				{Trip: domain.Trip{ID: 5, Destination: "Jaipur", Budget: 18000, Days: 3, TravelType: "leisure"}, LikeProbability: 0.5, DestinationLikeRate: 0.5},
			},
		}, nil
	}}})

	w := do(t, r, http.MethodPost, "/generate-plan", `{"destination":"Goa","budget":26000,"days":0,"travel_type":"leisure"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	if got != (services.RecommendInput{Destination: "Goa", Budget: 26000, Days: 0, TravelType: "leisure"}) {
		t.Fatalf("input = %+v", got)
	}
	resp := decode[RecommendResponse](t, w)
	if resp.Mode != "budget_relaxed" || resp.ScoredBy != "baseline" || len(resp.Recommendations) != 2 {
		t.Fatalf("resp = %+v", resp)
	}
	if first := resp.Recommendations[0]; first.TripID != 2 || first.LikeProbability != 1 || first.Budget != 30000 {
		t.Fatalf("first = %+v", first)
	}

	w = do(t, r, http.MethodPost, "/generate-plan", `{"destination":"Goa","budget":"20000","days":" 5 ","travel_type":"leisure"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("string form: status = %d body=%s", w.Code, w.Body.String())
	}
	if got != (services.RecommendInput{Destination: "Goa", Budget: 20000, Days: 5, TravelType: "leisure"}) {
		t.Fatalf("string form input = %+v", got)
	}

	er := wantError(t, do(t, r, http.MethodPost, "/generate-plan", `{"budget":1,"days":1}`, nil), http.StatusBadRequest, ErrCodeBadRequest)
	if er.Message != "travel_type is required" {
		t.Fatalf("message = %q", er.Message)
	}
	wantError(t, do(t, r, http.MethodPost, "/generate-plan", `{"budget":1,"travel_type":"leisure"}`, nil), http.StatusBadRequest, ErrCodeBadRequest)
}

func TestGeneratePlan_NoTrips(t *testing.T) {
	r := newTestRouter(Deps{Recommender: stubRecommender{fn: func(context.Context, services.RecommendInput) (*services.Recommendation, error) {
		return nil, services.ErrNoTrips
	}}})
	wantError(t, do(t, r, http.MethodPost, "/generate-plan", `{"budget":1,"days":1,"travel_type":"leisure"}`, nil), http.StatusNotFound, ErrCodeNoTrips)
}
