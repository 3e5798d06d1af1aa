package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/vouh/Spectre-payment-server/internal/api"
	"github.com/vouh/Spectre-payment-server/internal/application"
)

// BuildErrorResponse maps an application error to its HTTP status and body.
// The body carries ToErrorMessage only, never the wrapped cause.
func BuildErrorResponse(err error) (int, api.ErrorResponse) {
	return application.ToHTTPStatus(err), api.ErrorResponse{
		Success: false,
		Error: api.ErrorDetail{
			Code:    application.ToErrorCode(err),
			Message: application.ToErrorMessage(err),
		},
	}
}

// LogError records the full error: warn for client errors, error for 5xx.
func LogError(ctx context.Context, logger *slog.Logger, err error) {
	if logger == nil {
		return
	}

	statusCode := application.ToHTTPStatus(err)
	level := slog.LevelWarn
	if statusCode >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.Log(ctx, level, "request failed",
		"status", statusCode,
		"code", application.ToErrorCode(err),
		"category", application.CategorizeError(err),
		"error", err,
	)
}

// WriteError maps application errors to HTTP responses
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	LogError(context.Background(), logger, err)
	statusCode, body := BuildErrorResponse(err)
	WriteJSON(w, statusCode, body)
}
