package models

import (
	"fmt"

	"github.com/google/uuid"
)

type RegisterResult int

const (
	Registered RegisterResult = iota
	RegisterInternalServiceError
)

var registerResultNames = map[RegisterResult]string{
	Registered:                   "Registered",
	RegisterInternalServiceError: "InternalServiceError",
}

func (r RegisterResult) String() string { return resultName(registerResultNames, r) }

type ChangeEmailResult int

const (
	ChangeEmailSuccess ChangeEmailResult = iota
	ChangeEmailInvalidPassword
	ChangeEmailInUse
	ChangeEmailInternalServiceError
)

var changeEmailResultNames = map[ChangeEmailResult]string{
	ChangeEmailSuccess:              "Success",
	ChangeEmailInvalidPassword:      "InvalidPassword",
	ChangeEmailInUse:                "EmailInUse",
	ChangeEmailInternalServiceError: "InternalServiceError",
}

func (r ChangeEmailResult) String() string { return resultName(changeEmailResultNames, r) }

type ChangePasswordResult int

const (
	ChangePasswordSuccess ChangePasswordResult = iota
	ChangePasswordInvalidPassword
	ChangePasswordInternalServiceError
)

var changePasswordResultNames = map[ChangePasswordResult]string{
	ChangePasswordSuccess:              "Success",
	ChangePasswordInvalidPassword:      "InvalidPassword",
	ChangePasswordInternalServiceError: "InternalServiceError",
}

func (r ChangePasswordResult) String() string { return resultName(changePasswordResultNames, r) }

func resultName[T comparable](names map[T]string, v T) string {
	if s, ok := names[v]; ok {
		return s
	}
	return fmt.Sprintf("Unknown(%v)", any(v))
}

// ParseRegisterResult, ParseChangeEmailResult and ParseChangePasswordResult
// invert String for values read off the wire.
func ParseRegisterResult(s string) (RegisterResult, error) {
	return parseResult(registerResultNames, s)
}

func ParseChangeEmailResult(s string) (ChangeEmailResult, error) {
	return parseResult(changeEmailResultNames, s)
}

func ParseChangePasswordResult(s string) (ChangePasswordResult, error) {
	return parseResult(changePasswordResultNames, s)
}

func parseResult[T comparable](names map[T]string, s string) (T, error) {
	for k, v := range names {
		if v == s {
			return k, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unknown result %q", s)
}

// RegisterResponse carries the new identifier when Result is Registered.
type RegisterResponse struct {
	ID     uuid.UUID      `json:"id"`
	Result RegisterResult `json:"result"`
}

type ChangeEmailResponse struct {
	Result ChangeEmailResult `json:"result"`
}

type ChangePasswordResponse struct {
	Result ChangePasswordResult `json:"result"`
}

func (r RegisterResult) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *RegisterResult) UnmarshalText(b []byte) (err error) {
	*r, err = ParseRegisterResult(string(b))
	return err
}

func (r ChangeEmailResult) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *ChangeEmailResult) UnmarshalText(b []byte) (err error) {
	*r, err = ParseChangeEmailResult(string(b))
	return err
}

func (r ChangePasswordResult) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *ChangePasswordResult) UnmarshalText(b []byte) (err error) {
	*r, err = ParseChangePasswordResult(string(b))
	return err
}
