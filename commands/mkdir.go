package commands

import (
	"context"

	"github.com/josephlewis42/start/core/vos"
)

// Mkdir creates a directory and any missing parents. An existing directory is
// not an error.
func Mkdir(ctx context.Context, inv *Invocation) error {
	dir := inv.Args[0]

	if info, err := inv.OS.Stat(dir); err == nil && !info.IsDir() {
		return newError(KindInvalidArgument, inv, vos.ErrNotDir, "cannot create directory %q", dir)
	}

	if err := inv.OS.MkdirAll(dir, 0777); err != nil {
		return newError(KindFilesystem, inv, err, "cannot create directory %q", dir)
	}

	return nil
}

func init() {
	mustAddDirective(&Directive{
		Names:   []string{"mkdir"},
		Use:     "mkdir DIRECTORY",
		Short:   "Create a directory and any missing parents.",
		MinArgs: 1,
		Missing: "directory",
		Run:     Mkdir,
	})
}
