package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/cek_senet_app/internal/apperrors"
	"github.com/SscSPs/cek_senet_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// statusFor maps an application error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrTerminalState), errors.Is(err, apperrors.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 500 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// respondError writes err as JSON. Server errors are logged and hidden behind fallback.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: fallback, Code: "internal"})
		return
	}
	logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, ErrorResponse{Error: err.Error(), Code: apperrors.Code(err)})
}

func badRequest(c *gin.Context, msg string, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn(msg, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg + ": " + err.Error(), Code: "validation"})
}

// requireUserID reads the authenticated user, answering 401 when it is missing.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized", Code: "unauthorized"})
	}
	return userID, ok
}

const dateLayout = "2006-01-02"

// parseDateQuery parses an optional YYYY-MM-DD query value as a UTC midnight.
func parseDateQuery(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date " + raw + ", use YYYY-MM-DD")
	}
	return &t, nil
}

// calendarToday returns today's date in loc as a UTC midnight, the way dates are stored.
func calendarToday(now func() time.Time, loc *time.Location) func() time.Time {
	return func() time.Time {
		y, m, d := now().In(loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
}
