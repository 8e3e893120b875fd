package ui

import (
	"errors"
	"log/slog"
	"sort"

	"github.com/babarot/trash/internal/trash"
	"github.com/babarot/trash/internal/ui/keys"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
)

const (
	defaultWidth  = 66
	defaultHeight = 26
)

var ErrInputCanceled = errors.New("input is canceled")

// Picker lets the user choose trashed entries to restore
type Picker struct {
	list     list.Model
	keys     *keys.ListKeyMap
	items    []*Item
	selected map[string]bool
	choices  []*trash.Entry
	canceled bool
}

// NewPicker lists entries newest first
func NewPicker(entries []*trash.Entry) *Picker {
	entries = append([]*trash.Entry(nil), entries...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].GetDeletedAt().After(entries[j].GetDeletedAt())
	})

	p := &Picker{
		keys:     keys.ListKeys,
		items:    lo.Map(entries, func(e *trash.Entry, _ int) *Item { return NewItem(e) }),
		selected: map[string]bool{},
	}

	l := list.New(
		lo.Map(p.items, func(i *Item, _ int) list.Item { return i }),
		NewListDelegate(p.isSelected),
		defaultWidth, defaultHeight,
	)
	l.SetShowStatusBar(false)
	l.SetShowTitle(false)
	l.DisableQuitKeybindings()
	l.Paginator.Type = paginator.Dots
	l.AdditionalShortHelpKeys = p.keys.ShortHelp
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return p.keys.FullHelp()[0]
	}
	p.list = l
	return p
}

func (p *Picker) isSelected(i *Item) bool {
	return p.selected[i.key()]
}

func (p *Picker) current() *Item {
	item, ok := p.list.SelectedItem().(*Item)
	if !ok {
		return nil
	}
	return item
}

// Choices returns the entries chosen when the picker quit
func (p *Picker) Choices() []*trash.Entry {
	return p.choices
}

func (p *Picker) Init() tea.Cmd {
	return nil
}

func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.list.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if p.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, p.keys.Quit):
			p.canceled = true
			return p, tea.Quit

		case key.Matches(msg, p.keys.Select):
			if item := p.current(); item != nil {
				p.selected[item.key()] = true
				p.list.CursorDown()
				return p, p.list.NewStatusMessage("Selected: " + item.Title())
			}

		case key.Matches(msg, p.keys.DeSelect):
			if item := p.current(); item != nil && p.isSelected(item) {
				delete(p.selected, item.key())
				return p, p.list.NewStatusMessage("Deselected: " + item.Title())
			}

		case key.Matches(msg, p.keys.All):
			for _, item := range p.items {
				p.selected[item.key()] = true
			}
			return p, nil

		case key.Matches(msg, p.keys.Enter):
			p.choices = lo.FilterMap(p.items, func(i *Item, _ int) (*trash.Entry, bool) {
				return i.Entry(), p.isSelected(i)
			})
			if len(p.choices) == 0 {
				if item := p.current(); item != nil {
					p.choices = []*trash.Entry{item.Entry()}
				}
			}
			if len(p.choices) > 0 {
				return p, tea.Quit
			}
			return p, nil
		}
	}

	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

func (p *Picker) View() string {
	if p.canceled || len(p.choices) > 0 {
		return ""
	}
	return "\n" + p.list.View()
}

// Pick runs the picker and returns the chosen entries
func Pick(entries []*trash.Entry) ([]*trash.Entry, error) {
	if len(entries) == 0 {
		return nil, errors.New("no deleted files found")
	}

	p := NewPicker(entries)
	if _, err := tea.NewProgram(p).Run(); err != nil {
		return nil, err
	}
	if p.canceled {
		return nil, ErrInputCanceled
	}
	slog.Debug("picked entries", "count", len(p.choices))
	return p.choices, nil
}
