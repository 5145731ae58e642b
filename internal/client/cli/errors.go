package cli

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/usermanager/internal/client/client"
)

// describeError renders err for the terminal. Validation failures list one
// rejected field per line.
func describeError(err error) string {
	var verr *client.ValidationError
	if errors.As(err, &verr) {
		var b strings.Builder
		b.WriteString("Please correct the following:")
		for _, v := range verr.Violations {
			b.WriteString("\n  ")
			b.WriteString(v.Field)
			b.WriteString(": ")
			b.WriteString(v.Message)
		}
		return b.String()
	}

	switch {
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable, try again later"
	case errors.Is(err, client.ErrInvalidCredentials):
		return "Invalid username or password"
	case errors.Is(err, client.ErrUserNotFound):
		return "Your account no longer exists, please log out"
	default:
		return "Error: " + err.Error()
	}
}
