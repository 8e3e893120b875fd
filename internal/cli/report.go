package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fatih/color"
)

var (
	errLabel  = color.New(color.FgRed).Sprint("Err:")
	warnLabel = color.New(color.FgRed).Sprint("Warn:")
	infoLabel = color.New(color.FgBlue).Sprint("Info:")

	warningLabel = color.New(color.FgYellow).Sprint("Warning:")
)

var errTooFewArguments = errors.New("too few arguments")

func (c CLI) reportError(err error) {
	fmt.Fprintln(c.stderr, errLabel, err)
}

func (c CLI) reportWarning(err error) {
	fmt.Fprintln(c.stderr, warningLabel, err)
}

func (c CLI) reportInfo(format string, args ...any) {
	fmt.Fprintln(c.stdout, infoLabel, fmt.Sprintf(format, args...))
}

// batch runs fn on every target. A failing target is reported and the
// rest are still processed.
func (c CLI) batch(targets []string, fn func(target string) error) error {
	var errs []error
	for _, target := range targets {
		if err := fn(target); err != nil {
			slog.Error("target failed", "target", target, "error", err)
			c.reportError(err)
			errs = append(errs, err)
		}
	}
	return formatErrors(len(targets), errs)
}

type batchError struct {
	total int
	errs  []error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d targets failed", len(e.errs), e.total)
}

func (e *batchError) Unwrap() []error {
	return e.errs
}

func formatErrors(total int, errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &batchError{total: total, errs: errs}
}
