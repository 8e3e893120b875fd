package cli

import (
	"fmt"
	"log/slog"

	"github.com/babarot/trash/internal/trash"
)

func (c CLI) Empty() error {
	slog.Debug("cli.empty started")
	defer slog.Debug("cli.empty finished")

	res, err := c.manager.Empty(c.options(), func(count int, path string) bool {
		return c.confirm(fmt.Sprintf("%s Permanently delete all %d files at %s?", warnLabel, count, path))
	})
	if err != nil {
		return err
	}

	switch res.Status {
	case trash.AlreadyEmpty:
		c.reportInfo("%s is empty", res.Path)
	case trash.Declined:
		slog.Info("empty declined", "count", res.Count)
	}
	return nil
}
