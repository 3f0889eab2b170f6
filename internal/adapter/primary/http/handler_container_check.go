package http

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/ruudy-sib/boxcheck/internal/domain"
	"github.com/ruudy-sib/boxcheck/internal/domain/valueobject"
	"github.com/ruudy-sib/boxcheck/internal/port/primary"
)

// maxCheckEntries bounds a synchronous check request; larger sets go through imports.
const maxCheckEntries = 1000

// CheckHandler handles POST /containers/check requests.
type CheckHandler struct {
	service primary.ContainerService
	logger  *zap.Logger
}

// NewCheckHandler creates a handler validating container numbers.
func NewCheckHandler(service primary.ContainerService, logger *zap.Logger) *CheckHandler {
	return &CheckHandler{
		service: service,
		logger:  logger.Named("check-handler"),
	}
}

// ServeHTTP validates every submitted container number. Invalid numbers
// are a normal outcome and still answer 200.
func (h *CheckHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req CheckRequest
	if err := decodeJSON(w, r, &req); err != nil {
		invalidBody(w)
		return
	}

	if len(req.ContainerNumbers) == 0 || len(req.ContainerNumbers) > maxCheckEntries {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("container_numbers must hold between 1 and %d entries", maxCheckEntries),
			Code:  "VALIDATION_ERROR",
		})
		return
	}

	resp := CheckResponse{Results: make([]CheckResultDTO, 0, len(req.ContainerNumbers))}
	for _, raw := range req.ContainerNumbers {
		check := h.service.Check(raw)
		resp.Results = append(resp.Results, toCheckResultDTO(check))
		if check.Valid {
			resp.ValidCount++
		} else {
			resp.InvalidCount++
		}
	}

	h.logger.Debug("containers checked",
		zap.Int("valid", resp.ValidCount),
		zap.Int("invalid", resp.InvalidCount),
	)

	respondJSON(w, http.StatusOK, resp)
}

// NormalizeHandler handles POST /containers/normalize requests.
type NormalizeHandler struct {
	service primary.ContainerService
}

// NewNormalizeHandler creates a handler normalizing raw container numbers.
func NewNormalizeHandler(service primary.ContainerService) *NormalizeHandler {
	return &NormalizeHandler{service: service}
}

// ServeHTTP returns the normalized form and whether it is valid. Normalize
// requests are not counted as checks.
func (h *NormalizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req NormalizeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		invalidBody(w)
		return
	}

	normalized := h.service.Normalize(req.Value)
	respondJSON(w, http.StatusOK, NormalizeResponse{
		Normalized: normalized,
		Valid:      valueobject.IsValidContainerNumber(normalized),
	})
}

// CheckDigitHandler handles POST /containers/check-digit requests.
type CheckDigitHandler struct {
	service primary.ContainerService
}

// NewCheckDigitHandler creates a handler computing check digits.
func NewCheckDigitHandler(service primary.ContainerService) *CheckDigitHandler {
	return &CheckDigitHandler{service: service}
}

// ServeHTTP computes the check digit of a 10 character prefix.
func (h *CheckDigitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req CheckDigitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		invalidBody(w)
		return
	}

	digit, err := h.service.ComputeCheckDigit(req.Prefix)
	if err != nil {
		code := "INTERNAL_ERROR"
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidContainerNumber) {
			code = "VALIDATION_ERROR"
			status = http.StatusBadRequest
		}
		respondJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
		return
	}

	prefix := h.service.Normalize(req.Prefix)
	respondJSON(w, http.StatusOK, CheckDigitResponse{
		Prefix:          prefix,
		CheckDigit:      digit,
		ContainerNumber: fmt.Sprintf("%s%d", prefix, digit),
	})
}
