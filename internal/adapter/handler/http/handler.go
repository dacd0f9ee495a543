package http

import (
	"errors"
	"net/http"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

// errorStatuses is checked in order with errors.Is, so wrapped kinds come first.
var errorStatuses = []struct {
	err    error
	status int
}{
	{domain.ErrValidation, http.StatusBadRequest},
	{domain.ErrBadRequest, http.StatusBadRequest},
	{domain.ErrNoUpdatedData, http.StatusBadRequest},
	{domain.ErrImmutableField, http.StatusConflict},

	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrUnauthorized, http.StatusUnauthorized},
	{domain.ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
	{domain.ErrInvalidAuthorizationHeader, http.StatusUnauthorized},
	{domain.ErrInvalidAuthorizationType, http.StatusUnauthorized},
	{domain.ErrInvalidToken, http.StatusUnauthorized},
	{domain.ErrExpiredToken, http.StatusUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrInactiveUser, http.StatusForbidden},

	{domain.ErrDataNotFound, http.StatusNotFound},
	{domain.ErrConflictingData, http.StatusConflict},
	{domain.ErrAlreadyDelivered, http.StatusConflict},

	{domain.ErrImageStoreDisabled, http.StatusServiceUnavailable},
	{domain.ErrInternal, http.StatusInternalServerError},
}

func statusOf(err error) (int, bool) {
	for _, es := range errorStatuses {
		if errors.Is(err, es.err) {
			return es.status, true
		}
	}
	return http.StatusInternalServerError, false
}

type errorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func newErrorResponse(err error) errorResponse {
	resp := errorResponse{Message: err.Error()}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Field = verr.Field
	}
	return resp
}

// jsonDecimal renders money as a JSON number.
type jsonDecimal decimal.Decimal

func (j jsonDecimal) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(j).String()), nil
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// handleValidationError reports a request that could not be bound.
func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, errorResponse{Message: domain.ErrBadRequest.Error() + ": " + err.Error()})
}

// handleAbort sends an error response and stops the handler chain.
func handleAbort(ctx *gin.Context, err error) {
	status, _ := statusOf(err)
	ctx.AbortWithStatusJSON(status, newErrorResponse(err))
}

func (h *Handler) handleError(ctx *gin.Context, err error) {
	status, ok := statusOf(err)
	if !ok {
		h.logger.Error("error processing request", zap.Error(err))
		err = domain.ErrInternal
	}
	ctx.JSON(status, newErrorResponse(err))
}

// handleSuccessWithStatus sends data, or only the status when data is nil.
func (h *Handler) handleSuccessWithStatus(ctx *gin.Context, data any, status int) {
	if data != nil {
		ctx.JSON(status, data)
	} else {
		ctx.Status(status)
	}
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	h.handleSuccessWithStatus(ctx, data, http.StatusOK)
}
