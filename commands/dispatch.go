package commands

import (
	"context"
	"fmt"

	"github.com/josephlewis42/start/core/vos"
)

// Dispatcher maps command names to directives and runs them.
type Dispatcher struct {
	Options Options
}

// NewDispatcher creates a dispatcher that passes opts to every directive.
func NewDispatcher(opts Options) *Dispatcher {
	return &Dispatcher{Options: opts}
}

// Validate looks up the directive for name and checks its arity without
// running it.
func Validate(name string, args []string) (*Directive, error) {
	d, ok := AllDirectives[name]
	if !ok {
		return nil, &DirectiveError{
			Kind:    KindUnknownCommand,
			Command: name,
			Msg:     fmt.Sprintf("unknown command %q", name),
		}
	}

	if len(args) < d.MinArgs {
		return nil, &DirectiveError{
			Kind:    KindMissingArgument,
			Command: name,
			Msg:     fmt.Sprintf("no %s provided", d.Missing),
		}
	}

	return d, nil
}

// Dispatch runs the directive name with args against vctx. The returned
// error, if any, is a *DirectiveError.
func (d *Dispatcher) Dispatch(ctx context.Context, vctx *vos.Context, name string, args []string) error {
	directive, err := Validate(name, args)
	if err != nil {
		return err
	}

	return directive.Run(ctx, &Invocation{
		OS:      vctx,
		Name:    name,
		Args:    args,
		Options: d.Options,
	})
}

// Dispatch runs a directive with default options.
func Dispatch(ctx context.Context, vctx *vos.Context, name string, args []string) error {
	return (&Dispatcher{}).Dispatch(ctx, vctx, name, args)
}
