package commands

import (
	"context"
	"errors"
	"io/fs"
)

// Rmdir removes a directory and everything in it.
func Rmdir(ctx context.Context, inv *Invocation) error {
	dir := inv.Args[0]

	stat, statErr := inv.OS.Stat(dir)
	switch {
	case errors.Is(statErr, fs.ErrNotExist):
		return newError(KindNotFound, inv, nil, "directory %q does not exist", dir)
	case statErr != nil:
		return newError(KindFilesystem, inv, statErr, "can't stat %q", dir)
	case !stat.IsDir():
		return newError(KindInvalidArgument, inv, nil, "can't remove %q: not a directory, use rm", dir)
	}

	if err := inv.OS.RemoveAll(dir); err != nil {
		return newError(KindFilesystem, inv, err, "can't remove directory %q", dir)
	}
	return nil
}

func init() {
	mustAddDirective(&Directive{
		Names:   []string{"rmdir"},
		Use:     "rmdir DIRECTORY",
		Short:   "Remove a directory and everything in it.",
		MinArgs: 1,
		Missing: "directory",
		Run:     Rmdir,
	})
}
