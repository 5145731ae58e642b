package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/usermanager/internal/apperrors"
)

var (
	ErrUnavailable        = errors.New("server unavailable")
	ErrInvalidCredentials = errors.New(apperrors.MsgInvalidCredentials)
	ErrUserNotFound       = errors.New(apperrors.MsgUserNotFound)
	ErrServer             = errors.New("server error")
)

// ValidationError lists the fields the server rejected.
type ValidationError struct {
	Violations []apperrors.FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
