package cli

import (
	"log/slog"
)

func (c CLI) Put(args []string) error {
	slog.Debug("cli.put started")
	defer slog.Debug("cli.put finished")

	if len(args) == 0 {
		return errTooFewArguments
	}

	opts := c.options()
	return c.batch(args, func(path string) error {
		_, err := c.manager.Put(path, opts)
		return err
	})
}
