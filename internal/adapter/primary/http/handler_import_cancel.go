package http

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ruudy-sib/boxcheck/internal/domain"
	"github.com/ruudy-sib/boxcheck/internal/port/primary"
)

// CancelImportHandler handles DELETE /imports/{id} requests.
type CancelImportHandler struct {
	service primary.ContainerService
	logger  *zap.Logger
}

// NewCancelImportHandler creates a handler dequeuing pending imports.
func NewCancelImportHandler(service primary.ContainerService, logger *zap.Logger) *CancelImportHandler {
	return &CancelImportHandler{
		service: service,
		logger:  logger.Named("cancel-import-handler"),
	}
}

// ServeHTTP cancels a queued import. Imports already picked up by the
// worker answer 404.
func (h *CancelImportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}

	if err := h.service.CancelImport(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, domain.ErrImportNotFound) {
			respondJSON(w, http.StatusNotFound, ErrorResponse{
				Error: "import is not queued",
				Code:  "NOT_FOUND",
			})
			return
		}
		h.logger.Error("failed to cancel import", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: "internal server error",
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
