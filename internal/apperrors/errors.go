// Package apperrors is the service error taxonomy: a code enumeration plus
// constructors that attach context at the failure site, and conversions to
// and from gRPC statuses.
package apperrors

import (
	"errors"

	"github.com/google/uuid"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"
)

// Domain tags ErrorInfo details produced by this service.
const Domain = "usermanager"

const (
	MsgInvalidCredentials = "Username or password is not correct."
	MsgUserNotFound       = "User not found."
	MsgValidationFailed   = "Validation failed."
	MsgInternal           = "Internal service error."
)

// FieldViolation describes one rejected request field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Code       Code
	Message    string
	Metadata   map[string]string
	Violations []FieldViolation
	Cause      error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// InvalidCredentials never says which of identity or password was wrong.
func InvalidCredentials() *Error {
	return New(CodeInvalidCredentials, MsgInvalidCredentials)
}

func UserNotFound(id uuid.UUID) *Error {
	return WithMetadata(CodeUserNotFound, MsgUserNotFound, map[string]string{"user_id": id.String()})
}

func Validation(violations []FieldViolation) *Error {
	return &Error{Code: CodeValidationFailed, Message: MsgValidationFailed, Violations: violations}
}

func Internal(cause error) *Error {
	return Wrap(CodeInternal, MsgInternal, cause)
}

// IsCode reports whether err's chain holds an *Error of the given code.
func IsCode(err error, code Code) bool {
	e, ok := As(err)
	return ok && e.Code == code
}

// As extracts the *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// ToGRPCStatus converts the error to a gRPC status carrying ErrorInfo and,
// for validation failures, BadRequest field violations.
func (e *Error) ToGRPCStatus() error {
	code := e.Code.GRPCCode()
	st := status.New(code, e.Message)

	details := []protoadapt.MessageV1{&errdetails.ErrorInfo{
		Reason:   string(e.Code),
		Domain:   Domain,
		Metadata: e.Metadata,
	}}
	if len(e.Violations) > 0 {
		br := &errdetails.BadRequest{}
		for _, v := range e.Violations {
			br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
				Field:       v.Field,
				Description: v.Message,
			})
		}
		details = append(details, br)
	}

	withDetails, err := st.WithDetails(details...)
	if err != nil {
		return st.Err()
	}
	return withDetails.Err()
}

// FromGRPCStatus rebuilds an *Error from a status produced by ToGRPCStatus.
// It returns false when the status carries no ErrorInfo from this domain.
func FromGRPCStatus(st *status.Status) (*Error, bool) {
	var out *Error
	for _, d := range st.Details() {
		switch v := d.(type) {
		case *errdetails.ErrorInfo:
			if v.GetDomain() != Domain {
				continue
			}
			if out == nil {
				out = &Error{}
			}
			out.Code = Code(v.GetReason())
			out.Message = st.Message()
			out.Metadata = v.GetMetadata()
		case *errdetails.BadRequest:
			if out == nil {
				out = &Error{}
			}
			for _, fv := range v.GetFieldViolations() {
				out.Violations = append(out.Violations, FieldViolation{Field: fv.GetField(), Message: fv.GetDescription()})
			}
		}
	}
	if out == nil || out.Code == "" {
		return nil, false
	}
	return out, true
}
