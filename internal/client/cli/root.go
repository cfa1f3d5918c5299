package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/rentafind/rentafind/internal/client/auth"
)

func (a *App) authState() auth.State {
	return a.auth.State()
}

func (a *App) getStatus() string {
	if u := a.auth.User(); u != nil {
		return fmt.Sprintf("(%s)", u.Username)
	}
	if a.auth.State() == auth.StateAuthenticated {
		return "(signed in)"
	}
	return ""
}

// Root greets the user and runs the REPL until exit or EOF.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Rentafind (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
