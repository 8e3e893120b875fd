package ui

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/babarot/trash/internal/ui/components/confirm"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// Confirm asks a yes/no question on the terminal. Anything but an explicit
// yes counts as no. When stdin is not a terminal the answer is read as a line.
func Confirm(prompt string) bool {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return ConfirmLine(os.Stdin, os.Stdout, prompt)
	}

	m := confirm.New()
	m.Prompt = prompt
	m.DefaultValue = confirm.Denied

	p := tea.NewProgram(&m)
	if _, err := p.Run(); err != nil {
		slog.Error("confirm failed", "error", err)
		return false
	}

	return m.Selected().IsAccepted()
}

// ConfirmLine prints prompt to w and reads one line from r. Only y and yes,
// in any case, are accepted.
func ConfirmLine(r io.Reader, w io.Writer, prompt string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", prompt)

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		slog.Debug("no answer to confirmation", "error", err)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
