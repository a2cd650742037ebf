// internal/app/features/errors/errlog.go
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger pairs structured logging with user-facing error pages so
// handlers report failures in one call instead of logging and rendering
// separately.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger builds an ErrorLogger on the shared zap logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogBadRequest logs a client error and renders an error page with the
// given user-facing message and back link.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Warn(logMsg,
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method))
	w.WriteHeader(http.StatusBadRequest)
	RenderForbidden(w, r, userMsg, backURL)
}

// LogServerError logs a server-side failure and renders an error page.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Error(logMsg,
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method))
	w.WriteHeader(http.StatusInternalServerError)
	RenderForbidden(w, r, userMsg, backURL)
}

// LogUpstreamError logs a failed civic API call and renders an error
// page. Separate from LogServerError so upstream flakiness is easy to
// filter in logs.
func (e *ErrorLogger) LogUpstreamError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Error(logMsg,
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.String("source", "civic"))
	w.WriteHeader(http.StatusBadGateway)
	RenderForbidden(w, r, userMsg, backURL)
}

// HTMXLogServerError logs a server-side failure and answers an HTMX
// request with a plain error fragment instead of a full page.
func (e *ErrorLogger) HTMXLogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.log.Error(logMsg,
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method))
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`<div class="error-banner">` + userMsg + `</div>`))
}
