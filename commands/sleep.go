package commands

import (
	"context"
	"math"
	"strconv"
	"time"
)

// Sleep pauses the run for a whole number of sleep units.
func Sleep(ctx context.Context, inv *Invocation) error {
	arg := inv.Args[0]
	unit := inv.Options.sleepUnit()

	n, err := strconv.ParseUint(arg, 10, 63)
	if err != nil || n > uint64(math.MaxInt64/int64(unit)) {
		return newError(KindInvalidArgument, inv, nil, "invalid time %q: want a non-negative whole number", arg)
	}

	if err := inv.OS.Sleep(ctx, time.Duration(n)*unit); err != nil {
		return newError(KindExec, inv, err, "interrupted")
	}
	return nil
}

func init() {
	mustAddDirective(&Directive{
		Names:   []string{"sleep"},
		Use:     "sleep DURATION",
		Short:   "Pause before running the next line.",
		MinArgs: 1,
		Missing: "time",
		Run:     Sleep,
	})
}
