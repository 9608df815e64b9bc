package commands

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/josephlewis42/start/core/vos"
)

// Options tune how directives behave for a whole run.
type Options struct {
	// SleepUnit is the duration of one sleep step, defaults to a millisecond.
	SleepUnit time.Duration
	// FailOnExitCode makes run/exec fail when the program exits non-zero.
	FailOnExitCode bool
}

func (o Options) sleepUnit() time.Duration {
	if o.SleepUnit <= 0 {
		return time.Millisecond
	}
	return o.SleepUnit
}

// Invocation is a single directive call whose arity has been checked.
type Invocation struct {
	// OS is the execution context of the run.
	OS *vos.Context
	// Name is the command name as written in the script.
	Name string
	// Args holds the positional arguments, without the command name.
	Args    []string
	Options Options
}

// DirectiveFunc performs a directive's side effect.
type DirectiveFunc func(ctx context.Context, inv *Invocation) error

// Directive describes a built-in script command.
type Directive struct {
	// Names holds the command name followed by any synonyms.
	Names []string
	// Use holds a one line usage string.
	Use string
	// Short holds a one line description of the directive.
	Short string
	// MinArgs is the number of arguments required before Run is called.
	MinArgs int
	// Missing names what the first required argument is, e.g. "directory".
	Missing string

	Run DirectiveFunc
}

// AllDirectives holds every registered directive keyed by each of its names.
var AllDirectives = make(map[string]*Directive)

func mustAddDirective(d *Directive) {
	for _, name := range d.Names {
		if _, ok := AllDirectives[name]; ok {
			panic(fmt.Sprintf("duplicate directive %q", name))
		}
		AllDirectives[name] = d
	}
}

// ListDirectives returns each registered directive once, sorted by name.
func ListDirectives() []*Directive {
	seen := make(map[*Directive]bool)
	var out []*Directive
	for _, d := range AllDirectives {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Names[0] < out[j].Names[0]
	})
	return out
}

// PrintHelp writes the usage of every directive to w.
func PrintHelp(w io.Writer) {
	for i, d := range ListDirectives() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, d.Use)
		fmt.Fprintf(w, "    %s\n", d.Short)
		if len(d.Names) > 1 {
			fmt.Fprintf(w, "    aliases: %s\n", strings.Join(d.Names[1:], ", "))
		}
	}
}
