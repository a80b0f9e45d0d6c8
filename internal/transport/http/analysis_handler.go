package http

import (
	"encoding/csv"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apperrors "advancecli/internal/errors"
	"advancecli/internal/fiscal"
	"advancecli/internal/services"
	"advancecli/pkg/contracts/domain"
)

// maxUploadBytes caps a two-workbook multipart upload.
const maxUploadBytes = 64 << 20

// AnalysisHandler serves the analysis upload endpoint.
type AnalysisHandler struct {
	svc      *services.AnalysisService
	logger   *slog.Logger
	validate *validator.Validate
}

// NewAnalysisHandler creates the handler with its request validator.
func NewAnalysisHandler(svc *services.AnalysisService, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		svc:      svc,
		logger:   logger,
		validate: validator.New(),
	}
}

// Routes sets up the analysis routes
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.RunAnalysis)
	return r
}

// analysisParams are the non-file form fields of an upload.
type analysisParams struct {
	Component string `validate:"required,alphanum,min=2,max=6"`
	Period    string `validate:"required"`
	Format    string `validate:"omitempty,oneof=json csv"`
}

// analysisResponse is the JSON result payload.
type analysisResponse struct {
	Component string               `json:"component"`
	Period    string               `json:"period"`
	RowCount  int                  `json:"row_count"`
	PriorRows int                  `json:"prior_rows"`
	Matched   int                  `json:"matched"`
	Dropped   int                  `json:"dropped"`
	Duration  int64                `json:"duration_ms"`
	Rows      []domain.AnalyzedRow `json:"rows"`
}

// RunAnalysis accepts a multipart upload with a required "current" workbook,
// an optional "prior" workbook, and the component/period form fields. The
// result is JSON by default, or the review table as CSV with format=csv.
func (h *AnalysisHandler) RunAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		render.Render(w, r, apperrors.InvalidRequestWithError(err))
		return
	}

	params := analysisParams{
		Component: r.FormValue("component"),
		Period:    r.FormValue("period"),
		Format:    r.FormValue("format"),
	}
	if err := h.validate.Struct(params); err != nil {
		render.Render(w, r, apperrors.InvalidRequestWithError(err))
		return
	}

	period, err := fiscal.Parse(params.Period)
	if err != nil {
		render.Render(w, r, apperrors.ErrValidation("period", err.Error()))
		return
	}

	current, err := formFile(r, "current")
	if err != nil {
		render.Render(w, r, apperrors.ErrValidation("current", "current-period workbook is required"))
		return
	}
	defer current.Close()

	req := services.Request{
		Component:     params.Component,
		Period:        period,
		CurrentReader: current,
	}
	if prior, priorErr := formFile(r, "prior"); priorErr == nil {
		defer prior.Close()
		req.PriorReader = prior
	}

	result, err := h.svc.Analyze(ctx, req)
	if err != nil {
		var schemaErr *apperrors.SchemaError
		if errors.As(err, &schemaErr) {
			render.Render(w, r, apperrors.APIFromSchema(schemaErr))
			return
		}
		render.Render(w, r, apperrors.AnalysisFailedError(err))
		return
	}

	if params.Format == "csv" {
		h.writeCSV(w, r, result)
		return
	}

	render.JSON(w, r, analysisResponse{
		Component: params.Component,
		Period:    period.String(),
		RowCount:  result.RowCount,
		PriorRows: result.PriorRows,
		Matched:   result.Matched,
		Dropped:   result.Dropped,
		Duration:  result.DurationMS,
		Rows:      result.Rows,
	})
}

func (h *AnalysisHandler) writeCSV(w http.ResponseWriter, r *http.Request, result *services.RunResult) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="advance-analysis.csv"`)
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(result.Table.Headers); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to stream csv header", slog.Any("error", err))
		return
	}
	for _, record := range result.Table.Rows {
		if err := cw.Write(record); err != nil {
			h.logger.ErrorContext(r.Context(), "failed to stream csv record", slog.Any("error", err))
			return
		}
	}
	cw.Flush()
}

func formFile(r *http.Request, field string) (multipart.File, error) {
	f, _, err := r.FormFile(field)
	return f, err
}
