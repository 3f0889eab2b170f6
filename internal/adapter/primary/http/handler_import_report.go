package http

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ruudy-sib/boxcheck/internal/domain"
	"github.com/ruudy-sib/boxcheck/internal/port/primary"
)

// ImportReportHandler handles GET /imports/{id}/report requests.
type ImportReportHandler struct {
	service primary.ContainerService
	logger  *zap.Logger
}

// NewImportReportHandler creates a handler returning stored import reports.
func NewImportReportHandler(service primary.ContainerService, logger *zap.Logger) *ImportReportHandler {
	return &ImportReportHandler{
		service: service,
		logger:  logger.Named("import-report-handler"),
	}
}

// ServeHTTP returns the report, or 404 while the batch is still queued.
func (h *ImportReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	report, err := h.service.GetReport(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrImportNotFound) {
			respondJSON(w, http.StatusNotFound, ErrorResponse{
				Error: "import report not found",
				Code:  "NOT_FOUND",
			})
			return
		}
		h.logger.Error("failed to load import report", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: "internal server error",
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	respondJSON(w, http.StatusOK, toReportResponse(report))
}
