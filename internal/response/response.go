// Package response writes JSON error bodies for the HTTP layer.
package response

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/govconnect/internal/apperr"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "requestID"

const internalMessage = "Internal server error"

type ErrorBody struct {
	Error   string              `json:"error"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// Error writes err as JSON using the status of its kind. Internal errors are
// logged with their cause; the client sees only their message, or a generic
// one when the error is outside the apperr taxonomy.
func Error(c *gin.Context, err error) {
	status, body := render(c, err)
	c.JSON(status, body)
}

// Abort is Error for middleware: it also stops the handler chain.
func Abort(c *gin.Context, err error) {
	status, body := render(c, err)
	c.AbortWithStatusJSON(status, body)
}

func render(c *gin.Context, err error) (int, ErrorBody) {
	if errors.Is(err, context.DeadlineExceeded) {
		err = apperr.Wrap(apperr.KindUnavailable, "Request timed out", err)
	}

	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind == apperr.KindInternal {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"request_id", c.GetString(RequestIDKey),
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		message := internalMessage
		if appErr != nil && appErr.Message != "" {
			message = appErr.Message
		}
		return apperr.KindInternal.HTTPStatus(), ErrorBody{Error: message}
	}
	return appErr.Kind.HTTPStatus(), ErrorBody{Error: appErr.Message, Details: appErr.Fields}
}
