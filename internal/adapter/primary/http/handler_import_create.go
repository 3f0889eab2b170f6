package http

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/ruudy-sib/boxcheck/internal/domain"
	"github.com/ruudy-sib/boxcheck/internal/domain/entity"
	"github.com/ruudy-sib/boxcheck/internal/importer"
	"github.com/ruudy-sib/boxcheck/internal/port/primary"
)

// Retry defaults for CSV uploads, which carry their options in the query string.
const (
	defaultCSVMaxRetries = 3
	defaultCSVBaseDelay  = 5
)

// CreateImportHandler handles POST /imports requests.
type CreateImportHandler struct {
	service primary.ContainerService
	logger  *zap.Logger
}

// NewCreateImportHandler creates a handler for import submission.
func NewCreateImportHandler(service primary.ContainerService, logger *zap.Logger) *CreateImportHandler {
	return &CreateImportHandler{
		service: service,
		logger:  logger.Named("create-import-handler"),
	}
}

// ServeHTTP accepts a JSON import or a text/csv upload and queues it.
func (h *CreateImportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var (
		batch *entity.ImportBatch
		err   error
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "text/csv" {
		batch, err = h.batchFromCSV(w, r)
	} else {
		var req CreateImportRequest
		if decodeErr := decodeJSON(w, r, &req); decodeErr != nil {
			invalidBody(w)
			return
		}
		batch = req.toEntity()
	}
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_BODY",
		})
		return
	}

	if err := h.service.SubmitImport(r.Context(), batch); err != nil {
		if errors.Is(err, domain.ErrInvalidImport) {
			respondJSON(w, http.StatusBadRequest, ErrorResponse{
				Error: err.Error(),
				Code:  "VALIDATION_ERROR",
			})
			return
		}
		h.logger.Error("failed to submit import", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: "internal server error",
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	respondJSON(w, http.StatusAccepted, CreateImportResponse{
		BatchID: batch.ID,
		Rows:    len(batch.Rows),
		Message: fmt.Sprintf("Import %s scheduled successfully", batch.ID),
	})
}

func (h *CreateImportHandler) batchFromCSV(w http.ResponseWriter, r *http.Request) (*entity.ImportBatch, error) {
	q := r.URL.Query()

	maxRetries, err := intParam(q.Get("max_retries"), defaultCSVMaxRetries)
	if err != nil {
		return nil, fmt.Errorf("max_retries: %w", err)
	}
	baseDelay, err := intParam(q.Get("base_delay"), defaultCSVBaseDelay)
	if err != nil {
		return nil, fmt.Errorf("base_delay: %w", err)
	}

	rows, err := importer.ReadRows(http.MaxBytesReader(w, r.Body, maxBodyBytes), q.Get("column"))
	if err != nil {
		return nil, err
	}

	return &entity.ImportBatch{
		ID:     q.Get("id"),
		Source: q.Get("source"),
		Rows:   rows,
		Destination: entity.Destination{
			Host:  q.Get("host"),
			Port:  q.Get("port"),
			Topic: q.Get("topic"),
			URL:   q.Get("url"),
		},
		DeadDestination: entity.Destination{
			Host:  q.Get("host"),
			Port:  q.Get("port"),
			Topic: q.Get("dead_topic"),
			URL:   q.Get("dead_url"),
		},
		MaxRetries: maxRetries,
		BaseDelay:  baseDelay,
	}, nil
}

func intParam(v string, fallback int) (int, error) {
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
