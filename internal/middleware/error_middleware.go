package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/bandroster/internal/app/models/dto"
	"github.com/yigit/bandroster/internal/pkg/apperrors"
	"github.com/yigit/bandroster/internal/pkg/logger"
	"github.com/yigit/bandroster/internal/pkg/validation"
)

// apiError maps an application sentinel onto a status and error code.
type apiError struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// Undo sentinels come first: a failed replay also wraps the cause that
// made it fail, which may itself be a not-found or conflict error.
var apiErrors = []apiError{
	{apperrors.ErrUndoFailed, http.StatusConflict, dto.ErrorCodeUndoFailed, "Undo failed; the change could not be reversed"},
	{apperrors.ErrEmptyStack, http.StatusConflict, dto.ErrorCodeNothingToUndo, "Nothing to undo"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid request"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrDuplicateID, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Student ID already exists"},
	{apperrors.ErrAlreadyAssigned, http.StatusConflict, dto.ErrorCodeAlreadyAssigned, "Unit is already checked out"},
	{apperrors.ErrNotAssigned, http.StatusConflict, dto.ErrorCodeNotAssigned, "Unit is not checked out"},
	{apperrors.ErrStudentAlreadyHoldsCategory, http.StatusConflict, dto.ErrorCodeAlreadyHoldsCategory, "Student already holds a unit of this kind"},
	{apperrors.ErrSectionMismatch, http.StatusConflict, dto.ErrorCodeSectionMismatch, "Instrument section does not match the student's section"},
	{apperrors.ErrUniqueViolation, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrStore, http.StatusInternalServerError, dto.ErrorCodeDatabaseError, "Database error"},
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(vErr)))
		return
	}

	for _, e := range apiErrors {
		if !errors.Is(err, e.target) {
			continue
		}
		detail := dto.NewErrorDetail(e.code, e.message)
		switch {
		case e.status >= http.StatusInternalServerError:
			logger.Error().Err(err).Str("requestId", GetRequestID(c)).Msg("Request failed")
			detail = detail.WithSeverity(dto.ErrorSeverityCritical)
			if gin.IsDebugging() {
				detail = detail.WithDebugInfo("%v", err)
			}
		case e.status == http.StatusConflict:
			detail = detail.WithSeverity(dto.ErrorSeverityWarning).WithDetails(err.Error())
		default:
			detail = detail.WithDetails(err.Error())
		}
		c.JSON(e.status, dto.NewErrorResponse(detail))
		return
	}

	// Handle unknown errors
	logger.Error().Err(err).Str("requestId", GetRequestID(c)).Msg("Unhandled error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
	))
}
