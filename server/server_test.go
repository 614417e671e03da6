package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/flrw/cmd"
	"github.com/phil-mansfield/flrw/version"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestServer(t *testing.T) (*Server, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	s, err := New(cmd.DefaultGlobalConfig(), nil, reg, reg)
	require.NoError(t, err)
	return s, reg
}

func get(s *Server, url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHandleHealth(t *testing.T) {
	s, _ := setupTestServer(t)
	w := get(s, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, version.SourceVersion, resp.Version)
}

func TestHandleCosmology(t *testing.T) {
	s, _ := setupTestServer(t)

	w := get(s, "/v1/cosmology")
	require.Equal(t, http.StatusOK, w.Code)
	var p cmd.Params
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, 0.6736, p.H100)
	assert.InDelta(t, 3405.0, p.ZEqMR, 0.1)
	require.NotNil(t, p.Age0)
	assert.InDelta(t, 13.81, *p.Age0, 0.01)

	w = get(s, "/v1/cosmology?h100=0.7&omega_cdm=0.25")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, 0.7, p.H100)
	assert.Equal(t, 0.25, p.OmegaCDM0)
	assert.Equal(t, 0.04930, p.OmegaBaryon0)
}

func TestHandleCosmologyInvalid(t *testing.T) {
	s, _ := setupTestServer(t)
	for _, url := range []string{
		"/v1/cosmology?h100=-1",
		"/v1/cosmology?h100=abc",
		"/v1/cosmology?omega_cdm=2",
	} {
		w := get(s, url)
		assert.Equal(t, http.StatusBadRequest, w.Code, url)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Error, url)
	}
}

func TestHandleEvaluate(t *testing.T) {
	s, _ := setupTestServer(t)

	w := get(s, "/v1/evaluate?z=0,1&z=3&columns=z,a&columns=age")
	require.Equal(t, http.StatusOK, w.Code)

	var table cmd.Table
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &table))
	assert.Equal(t, []string{"z", "a", "age"}, table.Columns)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, []float64{1, 0.5}, table.Rows[1][:2])
	assert.InDelta(t, 13.81, table.Rows[0][2], 0.01)

	w = get(s, "/v1/evaluate?z=0")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &table))
	assert.Equal(t, cmd.DefaultColumns, table.Columns)
}

func TestHandleEvaluateErrors(t *testing.T) {
	s, _ := setupTestServer(t)
	tests := []struct {
		url  string
		code int
	}{
		{"/v1/evaluate", http.StatusBadRequest},
		{"/v1/evaluate?z=x", http.StatusBadRequest},
		{"/v1/evaluate?z=-2", http.StatusBadRequest},
		{"/v1/evaluate?z=NaN&columns=z", http.StatusBadRequest},
		{"/v1/evaluate?z=1&columns=banana", http.StatusBadRequest},
		{"/v1/evaluate?z=1&h100=0", http.StatusBadRequest},
	}
	for _, test := range tests {
		w := get(s, test.url)
		assert.Equal(t, test.code, w.Code, test.url)
	}
}

func TestHandleEvaluateNoConvergence(t *testing.T) {
	gConfig := cmd.DefaultGlobalConfig()
	gConfig.RTol = 1e-15
	gConfig.MaxEvals = 15
	reg := prometheus.NewRegistry()
	s, err := New(gConfig, nil, reg, reg)
	require.NoError(t, err)

	w := get(s, "/v1/evaluate?z=1&columns=age")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHandleEvaluateOverflow(t *testing.T) {
	s, _ := setupTestServer(t)

	// rho_r overflows to +Inf. Omega_r stays finite.
	w := get(s, "/v1/evaluate?z=1e78&columns=rho_r")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "JSON")
	assert.Equal(t, 1.0, testutil.ToFloat64(
		s.metrics.requests.WithLabelValues("/v1/evaluate", "422")))

	w = get(s, "/v1/evaluate?z=1e78&columns=Omega_r")
	require.Equal(t, http.StatusOK, w.Code)
	var tab cmd.Table
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tab))
	require.Len(t, tab.Rows, 1)
	assert.InDelta(t, 1, tab.Rows[0][0], 1e-9)
}

func TestMetrics(t *testing.T) {
	s, reg := setupTestServer(t)
	get(s, "/healthz")
	get(s, "/healthz")
	get(s, "/v1/evaluate?z=x")

	assert.Equal(t, 2.0, testutil.ToFloat64(
		s.metrics.requests.WithLabelValues("/healthz", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		s.metrics.requests.WithLabelValues("/v1/evaluate", "400")))

	w := get(s, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "flrw_requests_total"))

	// /healthz, /v1/evaluate, and /metrics itself.
	n, err := testutil.GatherAndCount(reg, "flrw_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestDiagnosticsMetric(t *testing.T) {
	s, _ := setupTestServer(t)

	// Einstein-de Sitter has neither radiation nor dark energy to cross.
	w := get(s, "/v1/cosmology?omega_cdm=1&omega_baryon=0&tcmb=0")
	require.Equal(t, http.StatusOK, w.Code)

	var p cmd.Params
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Len(t, p.Diagnostics, 2)
	assert.Equal(t, 0.0, p.ZEqMDE)
	assert.Equal(t, 1.0, testutil.ToFloat64(
		s.metrics.diagnostics.WithLabelValues("matter-dark-energy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		s.metrics.diagnostics.WithLabelValues("matter-radiation")))
}
