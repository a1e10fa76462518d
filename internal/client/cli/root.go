package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	id := a.session.CurrentIdentity()
	if id == nil {
		return ""
	}
	return fmt.Sprintf(" (%s)", id.Email)
}

// Root runs the REPL on the app's input until the user exits.
func (a *App) Root(ctx context.Context) {
	a.printf("Welcome to ReportDrop CLI (type 'help' for commands)\n")
	if id := a.session.CurrentIdentity(); id != nil {
		a.printf("Welcome back, %s\n", id.DisplayName)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
