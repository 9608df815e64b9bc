package cmd

import (
	"io"

	"github.com/fatih/color"
	"github.com/josephlewis42/start/core/config"
	"github.com/mattn/go-isatty"
)

var (
	colorBoldRed   = []color.Attribute{color.FgRed, color.Bold}
	colorBoldGreen = []color.Attribute{color.FgGreen, color.Bold}
)

// colorPrinter writes to a stream, colorizing output depending on the
// configured mode.
type colorPrinter struct {
	mode string
	out  io.Writer
}

func newColorPrinter(mode string, out io.Writer) *colorPrinter {
	return &colorPrinter{mode: mode, out: out}
}

func (c *colorPrinter) shouldColor() bool {
	switch c.mode {
	case config.ColorNever:
		return false
	case config.ColorAlways:
		return true
	default:
		fd, ok := c.out.(interface{ Fd() uintptr })
		return ok && isatty.IsTerminal(fd.Fd())
	}
}

func (c *colorPrinter) Fprintf(attrs []color.Attribute, format string, a ...interface{}) {
	col := color.New(attrs...)
	if c.shouldColor() {
		col.EnableColor()
	} else {
		col.DisableColor()
	}
	col.Fprintf(c.out, format, a...)
}
