package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finplan/backend/internal/domain/error"
	"github.com/finplan/backend/internal/integration/entrypoint/dto"
)

// handleError writes the response for a use case error.
func handleError(ctx *gin.Context, err error) {
	status, code, message := statusForError(err)
	if status == http.StatusInternalServerError {
		slog.Error("Request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		message = "An internal error occurred"
	}

	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// statusForError maps domain errors to an HTTP status, error code and message.
func statusForError(err error) (int, string, string) {
	var (
		projErr    *domainerror.ProjectionError
		goalErr    *domainerror.GoalError
		holdingErr *domainerror.HoldingError
		authErr    *domainerror.AuthError
		emailErr   *domainerror.EmailError
	)

	switch {
	case errors.As(err, &projErr):
		// Every projection error stems from the caller's numbers.
		return http.StatusBadRequest, string(projErr.Code), projErr.Message
	case errors.As(err, &goalErr):
		return goalStatus(goalErr.Code), string(goalErr.Code), goalErr.Message
	case errors.As(err, &holdingErr):
		return holdingStatus(holdingErr.Code), string(holdingErr.Code), holdingErr.Message
	case errors.As(err, &authErr):
		return authStatus(authErr.Code), string(authErr.Code), authErr.Message
	case errors.As(err, &emailErr):
		return emailStatus(emailErr.Code), string(emailErr.Code), emailErr.Message
	case errors.Is(err, domainerror.ErrUserNotFound):
		return http.StatusNotFound, string(domainerror.ErrCodeUserNotFound), "User not found"
	default:
		return http.StatusInternalServerError, "", err.Error()
	}
}

func goalStatus(code domainerror.GoalErrorCode) int {
	switch code {
	case domainerror.ErrCodeGoalNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedGoalAccess:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidTargetAmount,
		domainerror.ErrCodeInvalidTargetDate,
		domainerror.ErrCodeInvalidGoalAmounts,
		domainerror.ErrCodeMissingGoalFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func holdingStatus(code domainerror.HoldingErrorCode) int {
	switch code {
	case domainerror.ErrCodeHoldingNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedHoldingAccess:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidHoldingType,
		domainerror.ErrCodeInvalidHoldingAmount,
		domainerror.ErrCodeInvalidPurchaseDate,
		domainerror.ErrCodeMissingHoldingFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func authStatus(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists:
		return http.StatusConflict
	case domainerror.ErrCodeWeakPassword, domainerror.ErrCodeInvalidEmail, domainerror.ErrCodeMissingFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeExpiredToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func emailStatus(code domainerror.EmailErrorCode) int {
	switch code {
	case domainerror.ErrCodeNotificationsDisabled, domainerror.ErrCodeNothingToSend:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeEmailSendFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(ctx *gin.Context, message, code string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
