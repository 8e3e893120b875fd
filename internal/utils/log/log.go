package log

import (
	"log/slog"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// DefaultStyles returns the charm log styles with every level padded to
// the same width
func DefaultStyles() *Styles {
	styles := charmlog.DefaultStyles()
	for _, ls := range levelStyles {
		levelStr := strings.ToUpper(ls.level.String())
		if len(levelStr) < ls.maxWidth {
			levelStr = levelStr + strings.Repeat(" ", ls.maxWidth-len(levelStr))
		}
		styles.Levels[ls.level] = ls.style.SetString(levelStr)
	}
	return styles
}

// New creates a new slog logger backed by a charm log handler
func New(opts ...Option) *slog.Logger {
	o := DefaultOptions()
	o.Apply(opts...)

	handler := charmlog.NewWithOptions(o.Writer, o.Options)
	handler.SetStyles(o.Styles)

	return slog.New(handler)
}

// ParseLevel maps a config level name to a Level, defaulting to info
func ParseLevel(s string) Level {
	l, err := charmlog.ParseLevel(s)
	if err != nil {
		return InfoLevel
	}
	return l
}
