package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gookit/color"

	"github.com/goliatone/go-pzforge/pkg/generator"
	"github.com/goliatone/go-pzforge/pkg/renderers/tui"
)

func (a *app) success(format string, args ...any) {
	fmt.Fprintln(a.out, color.Green.Sprintf(format, args...))
}

func (a *app) warn(format string, args ...any) {
	fmt.Fprintln(a.out, color.Yellow.Sprintf(format, args...))
}

func (a *app) detail(format string, args ...any) {
	fmt.Fprintln(a.out, color.Gray.Sprintf("  "+format, args...))
}

// failure prints the status line of err in red. Fields named by a
// StatusError are listed underneath.
func (a *app) failure(err error) {
	if errors.Is(err, tui.ErrAborted) {
		fmt.Fprintln(a.errOut, color.Yellow.Sprint("Aborted"))
		return
	}
	fmt.Fprintln(a.errOut, color.Red.Sprint(generator.Status(err)))

	var statusErr *generator.StatusError
	if errors.As(err, &statusErr) && len(statusErr.Fields) > 0 {
		fmt.Fprintln(a.errOut, color.Gray.Sprint("  "+strings.Join(statusErr.Fields, ", ")))
	}
}

func (a *app) theme() tui.Theme {
	return tui.Theme{
		InfoPrefix:  color.Cyan.Sprint("==> "),
		ErrorPrefix: color.Red.Sprint("Invalid"),
	}
}
