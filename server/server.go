/*package server exposes flrw's evaluators over HTTP.

Routes:

	GET /healthz
	GET /metrics
	GET /v1/cosmology   parameters of the configured cosmology
	GET /v1/evaluate    columns evaluated at one or more redshifts

Both /v1 routes accept h100, omega_cdm, omega_baryon, tcmb, and neff query
parameters, which override the configured cosmology for that request.
*/
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phil-mansfield/flrw/cmd"
	"github.com/phil-mansfield/flrw/cosmo"
	"github.com/phil-mansfield/flrw/logging"
	"github.com/phil-mansfield/flrw/math/calc"
	"github.com/phil-mansfield/flrw/version"
)

// Server serves a cosmology over HTTP. The configured cosmology is built
// once; requests which override its parameters build their own.
type Server struct {
	gConfig *cmd.GlobalConfig
	base    *cosmo.Cosmology
	log     logging.Logger
	metrics *metrics
	engine  *gin.Engine
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// cosmologyQuery holds per-request overrides of the cosmology.
type cosmologyQuery struct {
	H100        *float64 `form:"h100"`
	OmegaCDM    *float64 `form:"omega_cdm"`
	OmegaBaryon *float64 `form:"omega_baryon"`
	TCMB        *float64 `form:"tcmb"`
	NEff        *float64 `form:"neff"`
}

func (q cosmologyQuery) empty() bool {
	return q.H100 == nil && q.OmegaCDM == nil && q.OmegaBaryon == nil &&
		q.TCMB == nil && q.NEff == nil
}

// New creates a server for the cosmology described by gConfig. Metrics are
// registered on reg and served from gatherer.
func New(
	gConfig *cmd.GlobalConfig, log logging.Logger,
	reg prometheus.Registerer, gatherer prometheus.Gatherer,
) (*Server, error) {
	if log == nil {
		log = logging.Nop{}
	}
	s := &Server{gConfig: gConfig, log: log, metrics: newMetrics(reg)}

	var err error
	if s.base, err = s.construct(gConfig); err != nil {
		return nil, err
	}

	s.engine = gin.New()
	s.engine.Use(gin.Recovery(), s.instrument)
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(
		promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	))
	v1 := s.engine.Group("/v1")
	v1.GET("/cosmology", s.handleCosmology)
	v1.GET("/evaluate", s.handleEvaluate)

	return s, nil
}

// Handler returns the server's http.Handler.
func (s *Server) Handler() http.Handler { return s.engine }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Info("serving", logging.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), 5*time.Second,
		)
		defer cancel()
		s.log.Info("shutting down", logging.String("addr", addr))
		return srv.Shutdown(shutdownCtx)
	}
}

// instrument records request counts and latencies.
func (s *Server) instrument(c *gin.Context) {
	start := time.Now()
	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	s.metrics.requests.WithLabelValues(
		route, strconv.Itoa(c.Writer.Status()),
	).Inc()
	s.metrics.latency.WithLabelValues(route).Observe(
		time.Since(start).Seconds(),
	)
}

// construct builds a cosmology and counts its diagnostics.
func (s *Server) construct(gConfig *cmd.GlobalConfig) (*cosmo.Cosmology, error) {
	c, err := gConfig.Cosmology(s.log)
	if err != nil {
		return nil, err
	}
	for _, d := range c.Diagnostics() {
		s.metrics.diagnostics.WithLabelValues(d.Equality.String()).Inc()
	}
	return c, nil
}

// cosmology returns the cosmology a request asks for.
func (s *Server) cosmology(c *gin.Context) (*cosmo.Cosmology, error) {
	var q cosmologyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return nil, &requestError{err}
	}
	if q.empty() {
		return s.base, nil
	}

	gConfig := *s.gConfig
	for _, o := range []struct {
		src *float64
		dst *float64
	}{
		{q.H100, &gConfig.H100},
		{q.OmegaCDM, &gConfig.OmegaCDM},
		{q.OmegaBaryon, &gConfig.OmegaBaryon},
		{q.TCMB, &gConfig.TCMB},
		{q.NEff, &gConfig.NEff},
	} {
		if o.src != nil {
			*o.dst = *o.src
		}
	}
	return s.construct(&gConfig)
}

// requestError is a malformed request.
type requestError struct{ err error }

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

// encodeError is a response which can't be written as JSON, usually because
// a value overflowed to +/-Inf.
type encodeError struct{ err error }

func (e *encodeError) Error() string {
	return "result can't be encoded as JSON: " + e.err.Error()
}
func (e *encodeError) Unwrap() error { return e.err }

func (s *Server) fail(c *gin.Context, err error) {
	var reqErr *requestError
	var encErr *encodeError
	code := http.StatusInternalServerError
	switch {
	case errors.As(err, &reqErr), errors.Is(err, cosmo.ErrInvalidParameter):
		code = http.StatusBadRequest
	case errors.Is(err, calc.ErrNoConvergence), errors.As(err, &encErr):
		code = http.StatusUnprocessableEntity
	}

	s.log.Warn("request failed",
		logging.String("path", c.Request.URL.Path),
		logging.Int("code", code),
		logging.Err(err))
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// ok writes v with status 200. v is encoded before anything is written, so
// a value JSON can't represent becomes an error response instead of an
// empty body.
func (s *Server) ok(c *gin.Context, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.fail(c, &encodeError{err})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok", Version: version.SourceVersion,
	})
}

func (s *Server) handleCosmology(c *gin.Context) {
	cosm, err := s.cosmology(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.ok(c, cmd.NewParams(cosm, s.gConfig.QuadOptions()...))
}

func (s *Server) handleEvaluate(c *gin.Context) {
	cosm, err := s.cosmology(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	zs, err := parseFloats(c.QueryArray("z"))
	if err != nil {
		s.fail(c, &requestError{err})
		return
	} else if len(zs) == 0 {
		s.fail(c, &requestError{errors.New("no redshifts given in 'z'")})
		return
	}

	cols, err := cmd.ParseColumns(splitList(c.QueryArray("columns")))
	if err != nil {
		s.fail(c, &requestError{err})
		return
	}

	rows, err := cmd.EvalRows(
		c.Request.Context(), cosm, zs, cols, s.gConfig.QuadOptions(),
	)
	if err != nil {
		s.fail(c, err)
		return
	}

	s.ok(c, cmd.NewTable(cols, rows))
}

// splitList flattens repeated and comma-separated query values.
func splitList(vals []string) []string {
	out := []string{}
	for _, v := range vals {
		for _, tok := range strings.Split(v, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				out = append(out, tok)
			}
		}
	}
	return out
}

func parseFloats(vals []string) ([]float64, error) {
	toks := splitList(vals)
	out := make([]float64, len(toks))
	for i := range toks {
		x, err := strconv.ParseFloat(toks[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}
