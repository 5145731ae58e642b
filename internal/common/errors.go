// Package common defines sentinel errors and small helpers shared by the
// server and client layers. Callers should use errors.Is to match these values.
package common

import "errors"

// repository specific errors
var (
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
)
