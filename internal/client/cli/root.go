package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

func (a *App) getStatus() string {
	s := ""
	if a.session != nil {
		s = a.session.Username + " "
	}
	if m := a.Mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root greets the user, starts the connectivity watcher and runs the REPL
// on in until the user leaves.
func (a *App) Root(ctx context.Context, in io.Reader) {

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printlnFn("Welcome to usermanager CLI (type 'help' for commands)")

	go a.StartOnlineStatusWatcher(ctx, onlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(in))
}
