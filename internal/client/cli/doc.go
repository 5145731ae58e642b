// Package cli provides the interactive usermanager command-line client.
//
// It wires configuration and the gRPC client into a small REPL: register,
// log in with a username or e-mail, inspect the session, and change the
// e-mail address or password. A background watcher pings the server and
// shows whether it is reachable in the prompt.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
