package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/iwvelando/debt-dashboard/internal/config"
	"github.com/iwvelando/debt-dashboard/internal/dashboard"
	"github.com/iwvelando/debt-dashboard/internal/metrics"
	"github.com/iwvelando/debt-dashboard/internal/trend"
	"github.com/iwvelando/debt-dashboard/pkg/constants"
	"github.com/iwvelando/debt-dashboard/pkg/output"
	"github.com/iwvelando/debt-dashboard/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger          *zap.Logger
	renderer        *dashboard.Renderer
	trend           dashboard.TrendSource
	defaults        metrics.SliderState
	version         string
	maxMessageBytes int64
	upgrader        websocket.Upgrader
}

// NewHandler constructs the HTTP handler that serves the dashboard, its JSON
// API and the live websocket channel.
func NewHandler(logger *zap.Logger, cfg *config.Configuration, version string) (http.Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.Default()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	maxMessageBytes, err := ParseSize(cfg.Server.MaxMessageSize)
	if err != nil {
		return nil, fmt.Errorf("invalid server.maxMessageSize: %w", err)
	}

	renderer, err := dashboard.NewRenderer()
	if err != nil {
		return nil, err
	}

	h := &handler{
		logger:          logger,
		renderer:        renderer,
		trend:           trend.NewSynthesizer(cfg.Trend.Seed),
		defaults:        cfg.Defaults.SliderState(),
		version:         trimmedVersion,
		maxMessageBytes: maxMessageBytes,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16 * 1024,
		},
	}

	r := mux.NewRouter()

	// Dashboard page
	r.HandleFunc("/", h.handleDashboard).Methods(http.MethodGet)

	// Live recompute channel
	r.HandleFunc("/ws", h.handleLive).Methods(http.MethodGet)

	// Health check
	r.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)

	// JSON API
	r.HandleFunc("/api/metrics", h.handleMetrics).Methods(http.MethodGet)
	r.HandleFunc("/api/export", h.handleExport).Methods(http.MethodGet)
	r.HandleFunc("/api/version", h.handleVersion).Methods(http.MethodGet)

	middleware := []mux.MiddlewareFunc{
		requestIDMiddleware,
		loggingMiddleware(logger),
		recoveryMiddleware(logger),
		rateLimitMiddleware(logger, cfg.Server.RateLimit),
	}
	r.Use(middleware...)

	// mux only runs r.Use middleware on matched routes.
	r.MethodNotAllowedHandler = wrap(h.errorHandler(http.StatusMethodNotAllowed), middleware)
	r.NotFoundHandler = wrap(h.errorHandler(http.StatusNotFound), middleware)

	return r, nil
}

func (h *handler) errorHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		h.writeJSON(w, status, map[string]string{"error": http.StatusText(status)})
	})
}

// wrap applies middleware so that the first entry is outermost, as r.Use does.
func wrap(next http.Handler, middleware []mux.MiddlewareFunc) http.Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		next = middleware[i](next)
	}
	return next
}

// liveResponse is sent for every slider update on the websocket channel.
type liveResponse struct {
	dashboard.Snapshot
	HTML string `json:"html"`
}

// sliderUpdate is a websocket message from the browser. Missing fields keep
// their current value.
type sliderUpdate struct {
	Capital *float64 `json:"capital"`
	Rate    *float64 `json:"rate"`
}

func (h *handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	state := h.parseSliderState(r.URL.Query())
	view := dashboard.Build(state, h.trend)

	var buf bytes.Buffer
	if err := h.renderer.RenderPage(&buf, view); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), "server.handleDashboard")
		return
	}

	h.logger.Debug("dashboard rendered",
		zap.String("op", "server.handleDashboard"),
		zap.String("summary", output.Summary(view.State, view.Metrics)),
		zap.Duration("duration", time.Since(start)),
	)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("failed to write dashboard page",
			zap.String("op", "server.handleDashboard"),
			zap.Error(err),
		)
	}
}

func (h *handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	state := h.parseSliderState(r.URL.Query())
	view := dashboard.Build(state, h.trend)
	h.writeJSON(w, http.StatusOK, view.Snapshot())
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = constants.OutputFormatCSV
	}
	if err := validation.ValidateOutputFormat(format); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handleExport")
		return
	}

	state := h.parseSliderState(r.URL.Query())
	snapshot := dashboard.Build(state, h.trend).Snapshot()

	var buf bytes.Buffer
	if err := output.Write(&buf, format, snapshot); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), "server.handleExport")
		return
	}

	w.Header().Set("Content-Type", exportContentTypes[format])
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="dashboard.%s"`, exportExtensions[format]))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("failed to write export",
			zap.String("op", "server.handleExport"),
			zap.Error(err),
		)
	}
}

var exportContentTypes = map[string]string{
	constants.OutputFormatPretty: "text/plain; charset=utf-8",
	constants.OutputFormatCSV:    "text/csv; charset=utf-8",
	constants.OutputFormatJSON:   "application/json",
	constants.OutputFormatYAML:   "application/yaml",
}

var exportExtensions = map[string]string{
	constants.OutputFormatPretty: "txt",
	constants.OutputFormatCSV:    "csv",
	constants.OutputFormatJSON:   "json",
	constants.OutputFormatYAML:   "yaml",
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func (h *handler) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the client.
		h.logger.Warn("websocket upgrade failed",
			zap.String("op", "server.handleLive"),
			zap.Error(err),
		)
		return
	}
	defer func() {
		_ = conn.Close()
	}()
	conn.SetReadLimit(h.maxMessageBytes)

	state := h.parseSliderState(r.URL.Query())
	requestID := RequestIDFromContext(r.Context())

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				h.logger.Debug("websocket closed",
					zap.String("op", "server.handleLive"),
					zap.String("requestID", requestID),
					zap.Error(err),
				)
			}
			return
		}

		var update sliderUpdate
		if err := json.Unmarshal(data, &update); err != nil {
			if writeErr := conn.WriteJSON(map[string]string{"error": fmt.Sprintf("invalid slider update: %v", err)}); writeErr != nil {
				return
			}
			continue
		}
		if update.Capital != nil {
			state.Capital = *update.Capital
		}
		if update.Rate != nil {
			state.Rate = *update.Rate
		}

		view := dashboard.Build(state, h.trend)
		state = view.State

		fragment, err := h.renderer.LiveHTML(view)
		if err != nil {
			h.logger.Error("failed to render live section",
				zap.String("op", "server.handleLive"),
				zap.String("requestID", requestID),
				zap.Error(err),
			)
			_ = conn.WriteJSON(map[string]string{"error": "failed to render dashboard"})
			return
		}

		if err := conn.WriteJSON(liveResponse{Snapshot: view.Snapshot(), HTML: fragment}); err != nil {
			var closeErr *websocket.CloseError
			if !errors.As(err, &closeErr) {
				h.logger.Warn("failed to write live update",
					zap.String("op", "server.handleLive"),
					zap.String("requestID", requestID),
					zap.Error(err),
				)
			}
			return
		}
	}
}

// parseSliderState reads capital and rate from query parameters. Missing or
// malformed values fall back to the configured defaults; the result is
// clamped to the control ranges.
func (h *handler) parseSliderState(query url.Values) metrics.SliderState {
	state := h.defaults
	if v, ok := parseFloatParam(query, "capital"); ok {
		state.Capital = v
	}
	if v, ok := parseFloatParam(query, "rate"); ok {
		state.Rate = v
	}
	return state.Clamp()
}

func parseFloatParam(query url.Values, key string) (float64, bool) {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("dashboard request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
