package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	if account := a.session.Account(); account != nil {
		return fmt.Sprintf("(%s)", account.Email)
	}
	return "(signed out)"
}

// Root runs the REPL against stdin until the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to LinkJournal CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
