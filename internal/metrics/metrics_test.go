package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(PrometheusMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	before := testutil.ToFloat64(HTTPRequestTotal.WithLabelValues("GET", "/test", "200"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestTotal.WithLabelValues("GET", "/test", "200")))
}

func TestRecordSummary(t *testing.T) {
	before := testutil.ToFloat64(DegradedLinesTotal.WithLabelValues("ingredient", "incompatible_units"))

	RecordSummary(map[string]map[string]int{
		"ingredient": {"incompatible_units": 2},
	})

	assert.Equal(t, before+2, testutil.ToFloat64(DegradedLinesTotal.WithLabelValues("ingredient", "incompatible_units")))
}

func TestRecordImport(t *testing.T) {
	before := testutil.ToFloat64(ImportsTotal.WithLabelValues("success"))
	RecordImport(150*time.Millisecond, "success")
	assert.Equal(t, before+1, testutil.ToFloat64(ImportsTotal.WithLabelValues("success")))
}

func TestGauges(t *testing.T) {
	UpdateCacheSize(4)
	UpdateQueueLength(2)
	RecordCacheOperation("get", "hit")

	assert.Equal(t, 4.0, testutil.ToFloat64(CacheSize))
	assert.Equal(t, 2.0, testutil.ToFloat64(QueueLength))
}
