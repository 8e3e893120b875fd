package ui

import (
	"fmt"
	"path/filepath"

	"github.com/babarot/trash/internal/trash"
	"github.com/dustin/go-humanize"
)

// Item is a trashed entry shown in the restore list
type Item struct {
	entry *trash.Entry
}

// NewItem wraps a loaded entry
func NewItem(e *trash.Entry) *Item {
	return &Item{entry: e}
}

// Title returns the original name, with a trailing slash for directories
func (i *Item) Title() string {
	name := i.entry.GetName()
	if i.entry.Info.IsDir {
		return name + "/"
	}
	return name
}

// Description returns the deletion time and original location
func (i *Item) Description() string {
	return fmt.Sprintf("%s %s %s %s",
		humanize.Time(i.entry.GetDeletedAt()),
		bullet,
		filepath.Dir(i.entry.Info.Path),
		i.entry.Info.Size,
	)
}

// FilterValue returns the string used for filtering the item in the list
func (i *Item) FilterValue() string {
	return i.entry.GetName()
}

// Entry returns the underlying trash entry
func (i *Item) Entry() *trash.Entry {
	return i.entry
}

func (i *Item) key() string {
	return i.entry.Names.FileName()
}
