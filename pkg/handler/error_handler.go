package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/premiumkit/pkg/logger"
)

// ErrorHandler writes err as the response to r.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Classifier maps a domain error to an HTTPError. Returning the error
// unchanged leaves it to the default classification.
type Classifier func(err error) error

// ErrorInfo contains classified error information
type ErrorInfo struct {
	StatusCode int
	LogLevel   slog.Level
}

func isClientError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError
}

// determineLogLevel maps HTTP status codes to appropriate log levels
func determineLogLevel(statusCode int) slog.Level {
	if isClientError(statusCode) {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// classifyError derives the status and log level of err.
func classifyError(err error) ErrorInfo {
	info := ErrorInfo{StatusCode: http.StatusInternalServerError}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.StatusCode = httpErr.Code
	}

	var validationErr ValidationError
	if errors.As(err, &validationErr) {
		info.StatusCode = http.StatusUnprocessableEntity
	}

	info.LogLevel = determineLogLevel(info.StatusCode)
	return info
}

// NewErrorHandler creates an error handler that classifies the error, logs
// it with request context and renders it as JSON. A nil log falls back to
// slog.Default.
func NewErrorHandler(log *slog.Logger, classify Classifier) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(w http.ResponseWriter, r *http.Request, err error) {
		if classify != nil {
			err = classify(err)
		}
		info := classifyError(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.Error(err),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		if renderErr := JSONError(err).Render(w, r); renderErr != nil {
			log.WarnContext(r.Context(), "failed to render error response", logger.Error(renderErr))
		}
	}
}
