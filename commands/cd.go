package commands

import (
	"context"
	"errors"
	"io/fs"

	"github.com/josephlewis42/start/core/vos"
)

// Cd changes the working directory of the run.
func Cd(ctx context.Context, inv *Invocation) error {
	dir := inv.Args[0]

	err := inv.OS.Chdir(dir)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, vos.ErrNotDir):
		return newError(KindNotFound, inv, nil, "directory %q does not exist", dir)
	default:
		return newError(KindFilesystem, inv, err, "can't change directory to %q", dir)
	}
}

func init() {
	mustAddDirective(&Directive{
		Names:   []string{"cd"},
		Use:     "cd DIRECTORY",
		Short:   "Change the working directory for the following lines.",
		MinArgs: 1,
		Missing: "directory",
		Run:     Cd,
	})
}
