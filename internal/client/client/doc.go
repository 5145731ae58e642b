// Package client contains the client side of the user management service.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) with one
//     method per server command plus Ping.
//  2. A concrete gRPC implementation (see GRPCClient) that bounds every call
//     with a request timeout and maps gRPC statuses back to typed errors.
//
// # Error Handling
//
// Business failures reported by the server come back as sentinel errors
// that callers can match with errors.Is: ErrInvalidCredentials,
// ErrUserNotFound, ErrUnavailable and ErrServer. Rejected requests come
// back as *ValidationError carrying every field violation.
//
// Command results that are not errors (EmailInUse, InvalidPassword, ...)
// are returned in the response values, exactly as the server produced them.
package client
