package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/babarot/trash/internal/ui/keys"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	bullet   = "•"
	ellipsis = "…"

	cursorColor   = "#AFBEE1"
	selectedColor = "#FFB000"
)

// ListDelegate manages the rendering and behavior of list items.
type ListDelegate struct {
	height     int
	spacing    int
	styles     *DelegateStyles
	isSelected func(*Item) bool
}

// DelegateStyles holds all the styles used for list item rendering.
type DelegateStyles struct {
	NormalTitle         lipgloss.Style
	NormalDesc          lipgloss.Style
	SelectedTitle       lipgloss.Style
	SelectedDesc        lipgloss.Style
	DimmedTitle         lipgloss.Style
	DimmedDesc          lipgloss.Style
	CursorTitle         lipgloss.Style
	CursorDesc          lipgloss.Style
	SelectedCursorTitle lipgloss.Style
	SelectedCursorDesc  lipgloss.Style
	FilterMatch         lipgloss.Style
}

func newDelegateStyles() *DelegateStyles {
	gray := lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"}
	dim := lipgloss.AdaptiveColor{Light: "#C2B8C2", Dark: "#4D4D4D"}
	cursor := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color(cursorColor)).
		Padding(0, 0, 0, 1)

	return &DelegateStyles{
		NormalTitle:         lipgloss.NewStyle().Padding(0, 0, 0, 2),
		NormalDesc:          lipgloss.NewStyle().Foreground(gray).Padding(0, 0, 0, 2),
		SelectedTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color(selectedColor)).Padding(0, 0, 0, 2),
		SelectedDesc:        lipgloss.NewStyle().Foreground(lipgloss.Color(selectedColor)).Padding(0, 0, 0, 2),
		DimmedTitle:         lipgloss.NewStyle().Foreground(gray).Padding(0, 0, 0, 2),
		DimmedDesc:          lipgloss.NewStyle().Foreground(dim).Padding(0, 0, 0, 2),
		CursorTitle:         cursor.Foreground(lipgloss.Color(cursorColor)),
		CursorDesc:          cursor.Foreground(lipgloss.Color(cursorColor)),
		SelectedCursorTitle: cursor.Foreground(lipgloss.Color(selectedColor)),
		SelectedCursorDesc:  cursor.Foreground(lipgloss.Color(selectedColor)),
		FilterMatch:         lipgloss.NewStyle().Underline(true),
	}
}

// NewListDelegate creates a delegate that asks isSelected for the selection state
func NewListDelegate(isSelected func(*Item) bool) *ListDelegate {
	return &ListDelegate{
		height:     2,
		spacing:    1,
		styles:     newDelegateStyles(),
		isSelected: isSelected,
	}
}

// Height returns the height of the delegate.
func (d *ListDelegate) Height() int {
	return d.height
}

// Spacing returns the spacing of the delegate.
func (d *ListDelegate) Spacing() int {
	return d.spacing
}

// Update handles any updates for the delegate.
func (d *ListDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

// Render renders a list item.
func (d *ListDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(*Item)
	if !ok || m.Width() <= 0 {
		return
	}

	styles := d.styles
	textWidth := m.Width() - styles.NormalTitle.GetPaddingLeft() - styles.NormalTitle.GetPaddingRight()
	title := ansi.Truncate(item.Title(), textWidth, ellipsis)
	desc := ansi.Truncate(strings.SplitN(item.Description(), "\n", 2)[0], textWidth, ellipsis)

	var (
		selected    = d.isSelected != nil && d.isSelected(item)
		onCursor    = index == m.Index()
		emptyFilter = m.FilterState() == list.Filtering && m.FilterValue() == ""
		isFiltered  = m.FilterState() == list.Filtering || m.FilterState() == list.FilterApplied
	)

	switch {
	case emptyFilter:
		title = styles.DimmedTitle.Render(title)
		desc = styles.DimmedDesc.Render(desc)

	case onCursor && selected:
		title = styles.SelectedCursorTitle.Render(title)
		desc = styles.SelectedCursorDesc.Render(desc)

	case onCursor:
		title = styles.CursorTitle.Render(title)
		desc = styles.CursorDesc.Render(desc)

	case selected:
		title = styles.SelectedTitle.Render(title)
		desc = styles.SelectedDesc.Render(desc)

	default:
		if isFiltered {
			unmatched := styles.NormalTitle.Inline(true)
			matched := unmatched.Inherit(styles.FilterMatch)
			title = lipgloss.StyleRunes(title, m.MatchesForItem(index), matched, unmatched)
		}
		title = styles.NormalTitle.Render(title)
		desc = styles.NormalDesc.Render(desc)
	}

	fmt.Fprintf(w, "%s\n%s", title, desc)
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (d *ListDelegate) ShortHelp() []key.Binding {
	return keys.ListKeys.ShortHelp()
}

// FullHelp returns keybindings for the expanded help view.
func (d *ListDelegate) FullHelp() [][]key.Binding {
	return keys.ListKeys.FullHelp()
}
