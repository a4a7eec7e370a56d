// Package server exposes the projection engine and assistant over HTTP for
// the web UI.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/flexibudget/budget-forecast/internal/assistant"
	"github.com/flexibudget/budget-forecast/internal/config"
	"github.com/flexibudget/budget-forecast/internal/engine"
	"github.com/flexibudget/budget-forecast/internal/model"
	"github.com/flexibudget/budget-forecast/pkg/constants"
	"github.com/flexibudget/budget-forecast/pkg/output"
	"github.com/flexibudget/budget-forecast/pkg/validation"
)

// Assistant is the subset of the assistant client the server needs; it is an
// interface so the handler works (and tests run) without an API key.
type Assistant interface {
	Chat(ctx context.Context, businessType *model.BusinessType, messages []assistant.Message) (string, error)
	GenerateEnvironment(ctx context.Context, businessType *model.BusinessType, answers map[string]string) (*assistant.Environment, error)
}

type handler struct {
	logger        *zap.Logger
	engine        *engine.Engine
	assistant     Assistant
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler serving the calculation API. The
// assistant may be nil, in which case /api/assistant responds 503.
func NewHandler(logger *zap.Logger, assist Assistant, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		engine:        engine.NewEngine(logger),
		assistant:     assist,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
	}

	mux := http.NewServeMux()

	// Calculation API for editor-driven updates
	mux.HandleFunc("/api/calculate", h.handleCalculate)

	// Calculation API for YAML model file uploads
	mux.HandleFunc("/api/upload", h.handleUpload)

	// Printable HTML report export
	mux.HandleFunc("/api/export", h.handleExport)

	// Conversational onboarding and environment generation
	mux.HandleFunc("/api/assistant", h.handleAssistant)

	// Business archetype catalog for the UI
	mux.HandleFunc("/api/business-types", h.handleBusinessTypes)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type calculateRequest struct {
	BusinessName string                   `json:"businessName"`
	Model        model.BusinessModel      `json:"model"`
	Projection   model.ProjectionSettings `json:"projection"`
}

type calculateResponse struct {
	Results  engine.Results `json:"results"`
	Warnings []string       `json:"warnings,omitempty"`
	Duration string         `json:"duration"`
}

func (r *calculateRequest) applyDefaults() {
	if r.Projection.Months <= 0 {
		r.Projection.Months = constants.DefaultProjectionMonths
	}
	if r.Projection.AmortizationType == "" {
		r.Projection.AmortizationType = model.AmortizeOverProjection
	}
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	var req calculateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxUploadSize)).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "server.handleCalculate")
		return
	}
	req.applyDefaults()

	results := h.engine.Calculate(req.Model, req.Projection)
	warnings := validation.ModelWarnings(req.Model, req.Projection)
	elapsed := time.Since(start)

	h.logger.Info("calculation served",
		zap.String("op", "server.handleCalculate"),
		zap.Int("months", len(results.MonthlyPnL)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, calculateResponse{
		Results:  results,
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

func (h *handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), "server.handleUpload")
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), "server.handleUpload")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing model file", "server.handleUpload")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handleUpload"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read model: %v", err), "server.handleUpload")
		return
	}

	conf, err := config.LoadConfigurationFromReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleUpload")
		return
	}

	results := h.engine.Calculate(conf.Model, conf.Projection)
	warnings := conf.ValidateConfiguration()
	elapsed := time.Since(start)

	h.logger.Info("upload calculation served",
		zap.String("op", "server.handleUpload"),
		zap.Int("months", len(results.MonthlyPnL)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, calculateResponse{
		Results:  results,
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req calculateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxUploadSize)).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "server.handleExport")
		return
	}
	req.applyDefaults()

	results := h.engine.Calculate(req.Model, req.Projection)
	report := output.HTMLReport(results, req.Model.Products, req.BusinessName)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="budget_forecast_report.html"`)
	if _, err := io.WriteString(w, report); err != nil {
		h.logger.Error("failed to write report", zap.String("op", "server.handleExport"), zap.Error(err))
	}
}

type assistantRequest struct {
	BusinessTypeID string              `json:"businessType"`
	Messages       []assistant.Message `json:"messages,omitempty"`
	Generate       bool                `json:"generate,omitempty"`
	Answers        map[string]string   `json:"answers,omitempty"`
}

type assistantResponse struct {
	Reply       string                 `json:"reply,omitempty"`
	Environment *assistant.Environment `json:"environment,omitempty"`
}

func (h *handler) handleAssistant(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if h.assistant == nil {
		h.respondError(w, http.StatusServiceUnavailable, "assistant not configured", "server.handleAssistant")
		return
	}

	var req assistantRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxUploadSize)).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "server.handleAssistant")
		return
	}

	businessType := model.BusinessTypeByID(req.BusinessTypeID)

	if req.Generate {
		env, err := h.assistant.GenerateEnvironment(r.Context(), businessType, req.Answers)
		if err != nil {
			h.respondError(w, http.StatusBadGateway, fmt.Sprintf("environment generation failed: %v", err), "server.handleAssistant")
			return
		}
		h.writeJSON(w, http.StatusOK, assistantResponse{Environment: env})
		return
	}

	reply, err := h.assistant.Chat(r.Context(), businessType, req.Messages)
	if err != nil {
		h.respondError(w, http.StatusBadGateway, fmt.Sprintf("chat failed: %v", err), "server.handleAssistant")
		return
	}
	h.writeJSON(w, http.StatusOK, assistantResponse{Reply: reply})
}

func (h *handler) handleBusinessTypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, model.BusinessTypes())
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
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
