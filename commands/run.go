package commands

import (
	"context"
	"errors"

	"github.com/josephlewis42/start/core/vos"
)

// Run launches a program and waits for it to exit. The first argument is the
// program, the rest are passed to it unchanged.
func Run(ctx context.Context, inv *Invocation) error {
	program := inv.Args[0]

	status, err := inv.OS.Spawn(ctx, program, inv.Args)
	switch {
	case errors.Is(err, vos.ErrNotFound):
		return newError(KindNotFound, inv, nil, "command %q not found", program)
	case err != nil:
		return newError(KindExec, inv, err, "can't run %q", program)
	case status != 0 && inv.Options.FailOnExitCode:
		return newError(KindExec, inv, nil, "%q exited with status %d", program, status)
	}

	return nil
}

func init() {
	mustAddDirective(&Directive{
		Names:   []string{"run", "exec"},
		Use:     "run COMMAND [ARG...]",
		Short:   "Run a program and wait for it to exit.",
		MinArgs: 1,
		Missing: "command",
		Run:     Run,
	})
}
