// Package server exposes the deal analysis engine over a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/iwvelando/flip-forecast/internal/analysis"
	"github.com/iwvelando/flip-forecast/internal/config"
	"github.com/iwvelando/flip-forecast/internal/optimizer"
	"github.com/iwvelando/flip-forecast/pkg/adapters"
	"github.com/iwvelando/flip-forecast/pkg/deal"
	"github.com/iwvelando/flip-forecast/pkg/risk"
	"github.com/iwvelando/flip-forecast/pkg/scenario"
	"github.com/iwvelando/flip-forecast/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	assumptions   config.Assumptions
	metrics       *Metrics
}

// NewHandler constructs the HTTP handler that serves the deal API. A nil cfg
// uses DefaultConfig.
func NewHandler(logger *zap.Logger, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: cfg.UploadSizeBytes(),
		version:       trimmedVersion,
		assumptions:   cfg.Assumptions,
		metrics:       NewMetrics(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(h.metrics.Middleware)
	r.Use(middleware.Timeout(cfg.Timeout()))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)
		r.Get("/presets", h.handlePresets)
		r.Post("/analyze", h.handleAnalyze)
		r.Post("/scenario", h.handleScenario)
		r.Post("/risk", h.handleRisk)
	})

	return r
}

// dealRequest is the body shared by the analysis endpoints. The deal may be
// nested under "deal" or given as the top-level object itself.
type dealRequest struct {
	Name            string
	Deal            deal.Deal
	Property        deal.PropertyIntelligence
	TimelineRisks   []risk.TimelineRisk
	PermitDelay     *risk.TimelineRisk
	Scenarios       []scenario.Adjustment
	MaxOffer        *config.OptimizerConfig
	ARVShiftPercent float64

	// Preset and Adjustment select what /api/scenario evaluates.
	Preset     string
	Adjustment *scenario.Adjustment
}

func (r dealRequest) dealConfig() config.DealConfig {
	return config.DealConfig{
		Name:            r.Name,
		Deal:            r.Deal,
		Property:        r.Property,
		TimelineRisks:   r.TimelineRisks,
		PermitDelay:     r.PermitDelay,
		Scenarios:       r.Scenarios,
		MaxOffer:        r.MaxOffer,
		ARVShiftPercent: r.ARVShiftPercent,
	}
}

func (r dealRequest) displayName() string {
	return r.dealConfig().DisplayName(0)
}

type analyzeResponse struct {
	Report   analysis.Report  `json:"report"`
	Summary  adapters.Summary `json:"summary"`
	Duration string           `json:"duration"`
}

type scenarioResponse struct {
	Name     string            `json:"name"`
	Base     adapters.Summary  `json:"base"`
	Results  []scenario.Result `json:"results"`
	Warnings []string          `json:"warnings,omitempty"`
}

type riskResponse struct {
	Name      string              `json:"name"`
	Risk      analysis.RiskReport `json:"risk"`
	WorstCase scenario.WorstCase  `json:"worstCase"`
	Warnings  []string            `json:"warnings,omitempty"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handlePresets(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"presets": scenario.Presets(),
		"weights": h.assumptions.Weights,
	})
}

func (h *handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAnalyze"
	start := time.Now()

	req, ok := h.decodeDealRequest(w, r, op)
	if !ok {
		return
	}

	name := req.displayName()
	report := analysis.Analyze(name, req.dealConfig(), h.assumptions)
	h.metrics.ObserveEvaluation(report.Metrics.Risk, report.Metrics.NetProfit, time.Since(start))

	if req.MaxOffer != nil {
		summary, err := optimizer.Search(name, report.Deal, *req.MaxOffer)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid max offer search: %v", err), op)
			return
		}
		report.MaxOffer = &summary
	}

	elapsed := time.Since(start)
	h.logger.Info("deal analyzed",
		zap.String("op", op),
		zap.String("id", report.ID),
		zap.Float64("netProfit", report.Metrics.NetProfit),
		zap.Int("score", report.Metrics.Score),
		zap.Int("warnings", len(report.Warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, analyzeResponse{
		Report:   report,
		Summary:  adapters.SummaryOf(report.Metrics),
		Duration: elapsed.String(),
	})
}

func (h *handler) handleScenario(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScenario"
	start := time.Now()

	req, ok := h.decodeDealRequest(w, r, op)
	if !ok {
		return
	}

	d := h.assumptions.ResolveDeal(req.Deal)
	var adjustments []scenario.Adjustment
	switch {
	case req.Preset != "":
		adj, found := scenario.Preset(req.Preset)
		if !found {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown preset %q", req.Preset), op)
			return
		}
		adjustments = append(adjustments, adj)
	case req.Adjustment != nil:
		adj := *req.Adjustment
		if strings.TrimSpace(adj.Name) == "" {
			adj.Name = scenario.PresetCustom
		}
		adjustments = append(adjustments, adj)
	default:
		adjustments = append(scenario.Presets(), req.Scenarios...)
	}

	results := scenario.Compare(d, adjustments...)
	base := scenario.Apply(d, scenario.Adjustment{Name: scenario.PresetBase})
	h.metrics.ObserveEvaluation(base.Risk, base.NetProfit, time.Since(start))

	h.writeJSON(w, http.StatusOK, scenarioResponse{
		Name:     req.displayName(),
		Base:     adapters.SummaryOf(base.DealMetrics),
		Results:  results,
		Warnings: validation.ValidateDeal(req.displayName(), d),
	})
}

func (h *handler) handleRisk(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleRisk"
	start := time.Now()

	req, ok := h.decodeDealRequest(w, r, op)
	if !ok {
		return
	}

	name := req.displayName()
	report := analysis.Analyze(name, req.dealConfig(), h.assumptions)
	h.metrics.ObserveEvaluation(report.Metrics.Risk, report.Metrics.NetProfit, time.Since(start))

	h.writeJSON(w, http.StatusOK, riskResponse{
		Name:      name,
		Risk:      report.Risk,
		WorstCase: report.WorstCase,
		Warnings:  report.Warnings,
	})
}

func (h *handler) decodeDealRequest(w http.ResponseWriter, r *http.Request, op string) (dealRequest, bool) {
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	var payload map[string]interface{}
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return dealRequest{}, false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return dealRequest{}, false
	}

	req, err := parseDealRequest(payload)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return dealRequest{}, false
	}
	return req, true
}

func parseDealRequest(payload map[string]interface{}) (dealRequest, error) {
	if len(payload) == 0 {
		return dealRequest{}, fmt.Errorf("request body must describe a deal")
	}

	record := payload
	if raw, ok := payload["deal"]; ok {
		nested, ok := raw.(map[string]interface{})
		if !ok {
			return dealRequest{}, fmt.Errorf("invalid deal payload: expected object")
		}
		record = nested
	}

	req := dealRequest{
		Deal:            adapters.DealFromMap(record),
		ARVShiftPercent: adapters.CoerceFloat(payload["arvShiftPercent"]),
	}
	if name, ok := payload["name"].(string); ok {
		req.Name = strings.TrimSpace(name)
	}
	if preset, ok := payload["preset"].(string); ok {
		req.Preset = strings.TrimSpace(preset)
	}

	if raw, ok := payload["property"]; ok {
		property, ok := raw.(map[string]interface{})
		if !ok {
			return dealRequest{}, fmt.Errorf("invalid property payload: expected object")
		}
		req.Property = adapters.PropertyIntelligenceFromMap(property)
	}

	fields := []struct {
		key    string
		target interface{}
	}{
		{"timelineRisks", &req.TimelineRisks},
		{"permitDelay", &req.PermitDelay},
		{"scenarios", &req.Scenarios},
		{"adjustment", &req.Adjustment},
		{"maxOffer", &req.MaxOffer},
	}
	for _, f := range fields {
		raw, ok := payload[f.key]
		if !ok || raw == nil {
			continue
		}
		if err := remarshal(raw, f.target); err != nil {
			return dealRequest{}, fmt.Errorf("invalid %s payload: %w", f.key, err)
		}
	}

	return req, nil
}

// remarshal decodes an already-parsed JSON value into a typed target.
func remarshal(value interface{}, target interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

func (h *handler) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		h.logger.Debug("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
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
