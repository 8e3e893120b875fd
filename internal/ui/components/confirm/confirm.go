package confirm

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Decision is an enumeration of decisions available in the confirmation bubble
type Decision int

const (
	// Undecided indicates the user has not answered yet
	Undecided Decision = iota

	// Accepted indicates the user has provided a positive response
	Accepted

	// Denied indicates the user has provided a negative response
	Denied
)

// String satisfies the fmt.Stringer interface
func (d Decision) String() string {
	return [...]string{
		"undecided",
		"accepted",
		"denied",
	}[d]
}

// IsAccepted is a helper to indicate the positive confirmation state was selected
func (d Decision) IsAccepted() bool {
	return d == Accepted
}

// KeyMap defines the keys answering the prompt
type KeyMap struct {
	Accept key.Binding
	Deny   key.Binding
	Enter  key.Binding
	Quit   key.Binding
}

var DefaultKeyMap = KeyMap{
	Accept: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	Deny: key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("n", "no"),
	),
	Enter: key.NewBinding(key.WithKeys(tea.KeyEnter.String())),
	Quit:  key.NewBinding(key.WithKeys(tea.KeyCtrlC.String(), tea.KeyEsc.String())),
}

// Styles holds relevant styles used for rendering
type Styles struct {
	PromptPrefix lipgloss.Style
	Prompt       lipgloss.Style
	Placeholder  lipgloss.Style
	Answer       lipgloss.Style
}

// Model is a single keypress y/n confirmation
type Model struct {
	// PromptPrefix is rendered before the prompt, separately styled
	PromptPrefix string

	// Prompt is the question shown to the user
	Prompt string

	// DefaultValue is chosen when the user just hits enter
	DefaultValue Decision

	KeyMap KeyMap
	Styles Styles

	selected Decision
	done     bool
}

// New creates a new model with default settings. The default answer is no.
func New() Model {
	return Model{
		PromptPrefix: "? ",
		DefaultValue: Denied,
		KeyMap:       DefaultKeyMap,
		Styles: Styles{
			PromptPrefix: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB000")),
			Placeholder:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
			Answer:       lipgloss.NewStyle().Bold(true),
		},
	}
}

// Selected retrieves the user-selected Decision value
func (m *Model) Selected() Decision {
	return m.selected
}

func (m *Model) decide(d Decision) (tea.Model, tea.Cmd) {
	m.selected = d
	m.done = true
	return m, tea.Quit
}

// Init satisfies the tea.Model interface
func (m *Model) Init() tea.Cmd {
	m.selected = Undecided
	return nil
}

// Update satisfies the tea.Model interface
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.KeyMap.Quit):
		return m.decide(Denied)
	case key.Matches(keyMsg, m.KeyMap.Accept):
		return m.decide(Accepted)
	case key.Matches(keyMsg, m.KeyMap.Deny):
		return m.decide(Denied)
	case key.Matches(keyMsg, m.KeyMap.Enter):
		return m.decide(m.DefaultValue)
	}
	return m, nil
}

// View satisfies the tea.Model interface
func (m *Model) View() string {
	var b strings.Builder
	if m.PromptPrefix != "" {
		b.WriteString(m.Styles.PromptPrefix.Inline(true).Render(m.PromptPrefix))
	}
	b.WriteString(m.Styles.Prompt.Inline(true).Render(m.Prompt))
	b.WriteString(" ")

	if m.done {
		answer := "no"
		if m.selected.IsAccepted() {
			answer = "yes"
		}
		b.WriteString(m.Styles.Answer.Render(answer))
		b.WriteRune('\n')
		return b.String()
	}

	hint := "y/N"
	if m.DefaultValue == Accepted {
		hint = "Y/n"
	}
	b.WriteString(m.Styles.Placeholder.Render(hint))
	return b.String()
}
