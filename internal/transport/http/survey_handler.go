package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"aipulse/internal/dataprocessing"
	apierrors "aipulse/internal/errors"
	"aipulse/internal/middleware"
	"aipulse/internal/services"
)

// DefaultAutomationRate is used when a savings request omits the rate.
const DefaultAutomationRate = 50.0

// SurveyHandler handles survey aggregate HTTP requests with RFC 7807 errors.
type SurveyHandler struct {
	service      SurveyServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewSurveyHandler creates a new survey handler.
func NewSurveyHandler(service SurveyServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *SurveyHandler {
	return &SurveyHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "survey_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the survey routes.
func (h *SurveyHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/status", h.GetStatus)
	r.Get("/overview", h.GetOverview)
	r.Get("/breakdown", h.GetBreakdown)
	r.Get("/functions", h.GetFunctions)
	r.Get("/histogram", h.GetHistogram)
	r.Get("/responses", h.GetResponses)
	r.Get("/tally/{field}", h.GetTally)
	r.Get("/distribution/{field}", h.GetDistribution)
	r.Post("/savings", h.ComputeSavings)
	r.Post("/reload", h.Reload)

	return r
}

// GetStatus handles GET /api/survey/status.
func (h *SurveyHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   h.service.Status(r.Context()),
	})
}

// GetOverview handles GET /api/survey/overview?function=.
func (h *SurveyHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	function := r.URL.Query().Get("function")

	h.logger.InfoContext(r.Context(), "fetching overview",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("function", function),
	)

	overview := h.service.Overview(r.Context(), function)

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   overview,
	})
}

// GetBreakdown handles GET /api/survey/breakdown.
func (h *SurveyHandler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	breakdown := h.service.Breakdown(r.Context())

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   breakdown,
		"count":  len(breakdown),
	})
}

// GetFunctions handles GET /api/survey/functions.
func (h *SurveyHandler) GetFunctions(w http.ResponseWriter, r *http.Request) {
	functions := h.service.Functions(r.Context())
	if functions == nil {
		functions = []string{}
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   functions,
		"count":  len(functions),
	})
}

// GetTally handles GET /api/survey/tally/{field}?limit=&function=.
func (h *SurveyHandler) GetTally(w http.ResponseWriter, r *http.Request) {
	field := chi.URLParam(r, "field")
	function := r.URL.Query().Get("function")

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("limit", "Limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	h.logger.InfoContext(r.Context(), "fetching tally",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("field", field),
		slog.String("function", function),
		slog.Int("limit", limit),
	)

	entries, err := h.service.Tally(r.Context(), field, function, limit)
	if err != nil {
		h.handleFieldError(w, r, err, field)
		return
	}
	if entries == nil {
		entries = []dataprocessing.TallyEntry{}
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"field":  field,
		"data":   entries,
		"count":  len(entries),
	})
}

// GetDistribution handles GET /api/survey/distribution/{field}?function=.
func (h *SurveyHandler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	field := chi.URLParam(r, "field")
	function := r.URL.Query().Get("function")

	entries, err := h.service.Distribution(r.Context(), field, function)
	if err != nil {
		h.handleFieldError(w, r, err, field)
		return
	}
	if entries == nil {
		entries = []dataprocessing.TallyEntry{}
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"field":  field,
		"data":   entries,
		"count":  len(entries),
	})
}

// GetHistogram handles GET /api/survey/histogram?function=.
func (h *SurveyHandler) GetHistogram(w http.ResponseWriter, r *http.Request) {
	function := r.URL.Query().Get("function")

	bins := h.service.Histogram(r.Context(), function)
	if bins == nil {
		bins = []dataprocessing.HistogramBin{}
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   bins,
		"count":  len(bins),
	})
}

// GetResponses handles GET /api/survey/responses?function=.
func (h *SurveyHandler) GetResponses(w http.ResponseWriter, r *http.Request) {
	function := r.URL.Query().Get("function")

	responses := h.service.Responses(r.Context(), function)

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   responses,
		"count":  len(responses),
	})
}

// SavingsRequest is the body of POST /api/survey/savings. A missing rate
// falls back to DefaultAutomationRate.
type SavingsRequest struct {
	AutomationRate *float64 `json:"automation_rate" validate:"omitempty,gte=0,lte=100"`
}

// ComputeSavings handles POST /api/survey/savings.
func (h *SurveyHandler) ComputeSavings(w http.ResponseWriter, r *http.Request) {
	var req SavingsRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("automation_rate", "Automation rate must be between 0 and 100"))
		return
	}

	rate := DefaultAutomationRate
	if req.AutomationRate != nil {
		rate = *req.AutomationRate
	}

	h.logger.InfoContext(r.Context(), "computing savings projection",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Float64("automation_rate", rate),
	)

	report, err := h.service.Savings(r.Context(), rate)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRate) {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("automation_rate", err.Error()))
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   report,
		"params": map[string]interface{}{
			"automation_rate": rate,
		},
	})
}

// Reload handles POST /api/survey/reload. It drops the cached table so the
// next read picks up file changes immediately. Unlike the aggregate reads,
// which degrade to an empty table, a reload that cannot re-read the file
// reports the failure outright.
func (h *SurveyHandler) Reload(w http.ResponseWriter, r *http.Request) {
	h.service.InvalidateCache()

	h.logger.InfoContext(r.Context(), "survey cache invalidated",
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	status := h.service.Status(r.Context())
	if !status.Loaded {
		h.errorHandler.HandleError(w, r, apierrors.SurveyLoadError(errors.New(status.Error)))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   status,
	})
}

// handleFieldError maps service field errors to API errors.
func (h *SurveyHandler) handleFieldError(w http.ResponseWriter, r *http.Request, err error, field string) {
	h.logger.WarnContext(r.Context(), "survey field request rejected",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("field", field),
		slog.String("error", err.Error()),
	)

	if errors.Is(err, services.ErrUnknownField) {
		h.errorHandler.HandleError(w, r, apierrors.FieldNotFoundError(field))
		return
	}

	h.errorHandler.HandleError(w, r, err)
}
