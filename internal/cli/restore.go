package cli

import (
	"errors"
	"log/slog"

	"github.com/babarot/trash/internal/trash"
	"github.com/babarot/trash/internal/ui"
	"github.com/samber/lo"
)

func (c CLI) Restore(args []string) error {
	slog.Debug("cli.restore started")
	defer slog.Debug("cli.restore finished")

	opts := c.options()
	if len(args) == 0 {
		if c.pick == nil {
			return errTooFewArguments
		}
		return c.restoreInteractive(opts)
	}

	return c.batch(args, func(target string) error {
		_, err := c.manager.Restore(target, opts)
		return err
	})
}

// restoreInteractive lets the user pick entries from the filtered trash
func (c CLI) restoreInteractive(opts trash.Options) error {
	entries, warnings, err := c.manager.Index().List()
	if err != nil {
		return err
	}
	lo.ForEach(warnings, func(w error, _ int) { c.reportWarning(w) })

	entries = trash.Filter(entries, trash.FilterOptions{
		Include: c.config.Info.Include,
		Exclude: c.config.Info.Exclude,
	})
	chosen, err := c.pick(entries)
	if err != nil {
		if errors.Is(err, ui.ErrInputCanceled) {
			return nil
		}
		return err
	}

	targets := lo.Map(chosen, func(e *trash.Entry, _ int) string { return e.FilePath })
	return c.batch(targets, func(target string) error {
		e, err := c.manager.Restore(target, opts)
		if err == nil {
			c.reportInfo("Restored %s", e.Info.Path)
		}
		return err
	})
}
