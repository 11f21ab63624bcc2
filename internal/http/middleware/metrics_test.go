package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())
	r.GET("/trips/:id", func(c *gin.Context) { c.String(http.StatusOK, "trip") })
	r.GET("/empty", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	baseTrip := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/trips/:id", "200"))
	baseMiss := testutil.ToFloat64(httpReqs.WithLabelValues("GET", unmatchedRoute, "404"))
	baseEmpty := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/empty", "204"))

	for _, p := range []string{"/trips/1", "/trips/2", "/nowhere", "/wp-admin.php", "/empty"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/trips/:id", "200")); got != baseTrip+2 {
		t.Fatalf("trip counter = %v, want %v", got, baseTrip+2)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", unmatchedRoute, "404")); got != baseMiss+2 {
		t.Fatalf("unmatched counter = %v, want %v", got, baseMiss+2)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/empty", "204")); got != baseEmpty+1 {
		t.Fatalf("empty counter = %v", got)
	}
	if got := testutil.ToFloat64(httpInflight); got != 0 {
		t.Fatalf("inflight = %v", got)
	}
	if n := testutil.CollectAndCount(httpLat); n == 0 {
		t.Fatalf("latency histogram empty")
	}
}

func TestMetrics_ExposedNames(t *testing.T) {
	const want = `
# HELP travel_http_requests_inflight HTTP requests currently being served.
# TYPE travel_http_requests_inflight gauge
travel_http_requests_inflight 0
`
	if err := testutil.CollectAndCompare(httpInflight, strings.NewReader(want)); err != nil {
		t.Fatal(err)
	}
}
