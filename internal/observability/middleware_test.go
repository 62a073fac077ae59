package observability

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestIDGeneratesAndEchoes(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	require.Equal(t, rec.Header().Get(RequestIDHeader), rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, "abc-123", rec.Body.String())
}

func TestRequestsLogsAndCounts(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestID(), Requests(zerolog.New(&buf)))
	r.GET("/teapot", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	before := testutil.ToFloat64(HTTPRequests().WithLabelValues(http.MethodGet, "/teapot", "418"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot", nil))

	require.Equal(t, before+1, testutil.ToFloat64(HTTPRequests().WithLabelValues(http.MethodGet, "/teapot", "418")))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "warn", line["level"])
	require.Equal(t, "/teapot", line["route"])
	require.EqualValues(t, 418, line["status"])
	require.Equal(t, rec.Header().Get(RequestIDHeader), line["request_id"])
}

func TestMetricsHandlerServesScrape(t *testing.T) {
	ContactStatus().WithLabelValues("sent").Inc()

	r := gin.New()
	r.GET("/metrics", MetricsHandler())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "portfolio_contact_status_total")
}
