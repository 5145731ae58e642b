package apperrors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code is a stable, machine-readable error kind.
type Code string

const (
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeUserNotFound       Code = "USER_NOT_FOUND"
	CodeValidationFailed   Code = "VALIDATION_FAILED"
	CodeInternal           Code = "INTERNAL"
)

// GRPCCode maps the kind onto a gRPC status code.
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeInvalidCredentials, CodeUserNotFound:
		return codes.NotFound
	case CodeValidationFailed:
		return codes.InvalidArgument
	default:
		return codes.Internal
	}
}

// HTTPStatus maps the kind onto an HTTP status code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidCredentials, CodeUserNotFound:
		return http.StatusNotFound
	case CodeValidationFailed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ServiceCode is the numeric code clients of the REST API have always seen.
func (c Code) ServiceCode() int {
	switch c {
	case CodeInvalidCredentials:
		return 0
	case CodeUserNotFound:
		return 1
	case CodeValidationFailed:
		return 2
	default:
		return 3
	}
}
