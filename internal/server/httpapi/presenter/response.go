// Package presenter renders HTTP response bodies.
package presenter

import (
	"strings"

	"github.com/dmitrijs2005/usermanager/internal/apperrors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// StatusClientClosedRequest is reported when the caller went away.
const StatusClientClosedRequest = 499

var labelReplacer = strings.NewReplacer(" ", "_", "-", "_", "'", "")

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Service    string                     `json:"service"`
	Code       int                        `json:"code"`
	Error      string                     `json:"error"`
	Message    string                     `json:"message"`
	Violations []apperrors.FieldViolation `json:"violations,omitempty"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

// AppError renders e with the status its code maps to.
func AppError(c *fiber.Ctx, e *apperrors.Error) error {
	return JSON(c, e.Code.HTTPStatus(), ErrorResponse{
		Service:    apperrors.Domain,
		Code:       e.Code.ServiceCode(),
		Error:      string(e.Code),
		Message:    e.Message,
		Violations: e.Violations,
	})
}

// Error renders a transport-level failure that never reached the service.
// The error label is derived from status.
func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{
		Service: apperrors.Domain,
		Code:    -1,
		Error:   StatusLabel(status),
		Message: message,
	})
}

// StatusLabel turns an HTTP status into an upper snake case label,
// e.g. 404 becomes NOT_FOUND.
func StatusLabel(status int) string {
	if status == StatusClientClosedRequest {
		return "CLIENT_CLOSED_REQUEST"
	}
	msg := utils.StatusMessage(status)
	if msg == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(labelReplacer.Replace(msg))
}
