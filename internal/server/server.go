// Package server exposes the dashboard over a read-only JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/cost-of-living/internal/aggregate"
	"github.com/iwvelando/cost-of-living/internal/chart"
	"github.com/iwvelando/cost-of-living/internal/dashboard"
	"github.com/iwvelando/cost-of-living/internal/figure"
	"github.com/iwvelando/cost-of-living/internal/salary"
	"github.com/iwvelando/cost-of-living/internal/summary"
	"github.com/iwvelando/cost-of-living/pkg/validation"
	"go.uber.org/zap"
)

// Dashboard is the subset of *dashboard.Service the handlers use.
type Dashboard interface {
	Rows(ctx context.Context, county string) ([]aggregate.ObservationRow, error)
	Chart(ctx context.Context, req dashboard.Request) (*chart.Chart, error)
	Summary(ctx context.Context, req dashboard.Request) (summary.Summary, error)
	RawData(ctx context.Context) ([]dashboard.RawTable, error)
	Options(ctx context.Context) (*dashboard.Options, error)
}

type handler struct {
	logger  *zap.Logger
	dash    Dashboard
	version string
}

// errBadRequest marks query parameter problems.
var errBadRequest = errors.New("bad request")

// NewHandler constructs the HTTP handler that serves the dashboard API.
func NewHandler(logger *zap.Logger, dash Dashboard, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, dash: dash, version: trimmedVersion}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/chart", h.get("server.handleChart", h.handleChart))
	mux.HandleFunc("/api/summary", h.get("server.handleSummary", h.handleSummary))
	mux.HandleFunc("/api/chart/figure", h.get("server.handleChartFigure", h.handleChartFigure))
	mux.HandleFunc("/api/summary/figure", h.get("server.handleSummaryFigure", h.handleSummaryFigure))
	mux.HandleFunc("/api/rows", h.get("server.handleRows", h.handleRows))
	mux.HandleFunc("/api/raw", h.get("server.handleRaw", h.handleRaw))
	mux.HandleFunc("/api/options", h.get("server.handleOptions", h.handleOptions))

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.get("server.handleVersion", h.handleVersion))

	return mux
}

// NewServer wraps the handler in an http.Server configured from cfg.
func NewServer(cfg *Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeoutDuration(),
	}
}

type endpoint func(r *http.Request) (interface{}, error)

// get adapts an endpoint into a GET-only handler that writes JSON and maps
// errors onto status codes.
func (h *handler) get(op string, fn endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		id := requestID(r)
		w.Header().Set(requestIDHeader, id)

		start := time.Now()
		payload, err := fn(r)
		if err != nil {
			h.respondErrorWithOp(w, statusFor(err), err.Error(), op, id)
			return
		}

		h.logger.Debug("request served",
			zap.String("op", op),
			zap.String("request_id", id),
			zap.String("query", r.URL.RawQuery),
			zap.Duration("duration", time.Since(start)),
		)
		h.writeJSON(w, http.StatusOK, payload)
	}
}

const requestIDHeader = "X-Request-ID"

// requestID returns the caller's request ID, or a fresh one when absent.
func requestID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(requestIDHeader)); id != "" {
		return id
	}
	return uuid.New().String()
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, aggregate.ErrUnknownCounty),
		errors.Is(err, salary.ErrUnknownCareer),
		errors.Is(err, salary.ErrNoSalarySelection),
		errors.Is(err, chart.ErrUnknownMode):
		return http.StatusBadRequest
	default:
		// Includes dataset.ErrParse: the data directory is broken, not the request.
		return http.StatusInternalServerError
	}
}

type requestError struct {
	msg string
}

func (e *requestError) Error() string        { return e.msg }
func (e *requestError) Is(target error) bool { return target == errBadRequest }

// parseRequest reads county, salary, career, mode and year from the query.
func parseRequest(r *http.Request) (dashboard.Request, error) {
	q := r.URL.Query()
	req := dashboard.Request{
		County: strings.TrimSpace(q.Get("county")),
		Career: strings.TrimSpace(q.Get("career")),
		Mode:   q.Get("mode"),
	}

	if raw := q.Get("salary"); raw != "" {
		amount, err := validation.ParseSalary(raw)
		if err != nil {
			return req, &requestError{msg: err.Error()}
		}
		req.Salary = &amount
	}
	if raw := q.Get("year"); raw != "" {
		year, err := validation.ParseYear(raw)
		if err != nil {
			return req, &requestError{msg: err.Error()}
		}
		req.Year = year
	}
	return req, nil
}

func (h *handler) handleChart(r *http.Request) (interface{}, error) {
	req, err := parseRequest(r)
	if err != nil {
		return nil, err
	}
	return h.dash.Chart(r.Context(), req)
}

func (h *handler) handleSummary(r *http.Request) (interface{}, error) {
	req, err := parseRequest(r)
	if err != nil {
		return nil, err
	}
	return h.dash.Summary(r.Context(), req)
}

// handleChartFigure returns the chart as a Plotly figure.
func (h *handler) handleChartFigure(r *http.Request) (interface{}, error) {
	req, err := parseRequest(r)
	if err != nil {
		return nil, err
	}
	c, err := h.dash.Chart(r.Context(), req)
	if err != nil {
		return nil, err
	}
	return figure.FromChart(c), nil
}

// handleSummaryFigure returns the yearly summary as a Plotly bar figure.
func (h *handler) handleSummaryFigure(r *http.Request) (interface{}, error) {
	req, err := parseRequest(r)
	if err != nil {
		return nil, err
	}
	s, err := h.dash.Summary(r.Context(), req)
	if err != nil {
		return nil, err
	}
	return figure.FromSummary(s), nil
}

type rowsResponse struct {
	County string                     `json:"county"`
	Rows   []aggregate.ObservationRow `json:"rows"`
}

func (h *handler) handleRows(r *http.Request) (interface{}, error) {
	county := strings.TrimSpace(r.URL.Query().Get("county"))
	rows, err := h.dash.Rows(r.Context(), county)
	if err != nil {
		return nil, err
	}
	return rowsResponse{County: county, Rows: rows}, nil
}

func (h *handler) handleRaw(r *http.Request) (interface{}, error) {
	tables, err := h.dash.RawData(r.Context())
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"tables": tables}, nil
}

func (h *handler) handleOptions(r *http.Request) (interface{}, error) {
	return h.dash.Options(r.Context())
}

func (h *handler) handleVersion(*http.Request) (interface{}, error) {
	return map[string]string{"version": h.version}, nil
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string, id string) {
	if h.logger != nil {
		h.logger.Error("dashboard request failed",
			zap.String("op", op),
			zap.String("request_id", id),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
