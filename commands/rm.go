package commands

import (
	"context"
	"errors"
	"io/fs"
)

// Rm removes a single file.
func Rm(ctx context.Context, inv *Invocation) error {
	file := inv.Args[0]

	stat, statErr := inv.OS.Stat(file)
	switch {
	case errors.Is(statErr, fs.ErrNotExist):
		return newError(KindNotFound, inv, nil, "file %q does not exist", file)
	case statErr != nil:
		return newError(KindFilesystem, inv, statErr, "can't stat %q", file)
	case stat.IsDir():
		return newError(KindInvalidArgument, inv, nil, "can't remove %q: is a directory, use rmdir", file)
	}

	if err := inv.OS.Remove(file); err != nil {
		return newError(KindFilesystem, inv, err, "can't remove %q", file)
	}
	return nil
}

func init() {
	mustAddDirective(&Directive{
		Names:   []string{"rm"},
		Use:     "rm FILE",
		Short:   "Remove a file.",
		MinArgs: 1,
		Missing: "file",
		Run:     Rm,
	})
}
