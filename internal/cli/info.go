package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/babarot/trash/internal/trash"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

var headerColor = color.New(color.FgYellow)

func (c CLI) Info(args []string) error {
	slog.Debug("cli.info started")
	defer slog.Debug("cli.info finished")

	if len(args) == 0 {
		return c.infoAll()
	}
	if c.option.All {
		return c.batch(args, c.infoMatch)
	}
	return c.batch(args, c.infoOne)
}

// infoOne prints the record of the entry whose content name is the leaf of arg
func (c CLI) infoOne(arg string) error {
	name := strings.TrimSuffix(filepath.Base(arg), trash.InfoExt)
	e, err := c.manager.Index().Lookup(name)
	if err != nil {
		return err
	}
	info, err := e.Load()
	if err != nil {
		return err
	}
	c.printRecord(info)
	return nil
}

// infoMatch prints the record of every entry matching pattern
func (c CLI) infoMatch(pattern string) error {
	entries, warnings, err := c.manager.Index().Match(pattern)
	if err != nil {
		return err
	}
	lo.ForEach(warnings, func(w error, _ int) { c.reportWarning(w) })
	if len(entries) == 0 {
		return trash.NewStorageError("info", pattern, trash.ErrEntryNotFound)
	}
	for _, e := range entries {
		c.printRecord(e.Info)
	}
	return nil
}

// infoAll lists every entry as a table, filtered by the info config
func (c CLI) infoAll() error {
	entries, warnings, err := c.manager.Index().List()
	if err != nil {
		return err
	}
	lo.ForEach(warnings, func(w error, _ int) { c.reportWarning(w) })

	entries = trash.Filter(entries, trash.FilterOptions{
		Include: c.config.Info.Include,
		Exclude: c.config.Info.Exclude,
	})
	if len(entries) == 0 {
		c.reportInfo("%s is empty", c.manager.Dir().FilesDir)
		return nil
	}

	table := tablewriter.NewWriter(c.stdout)
	table.SetHeader([]string{"Name", "Type", "Size", "Deleted", "Path"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(lo.Map(entries, func(e *trash.Entry, _ int) []string {
		return c.row(e)
	}))
	table.Render()
	return nil
}

func (c CLI) row(e *trash.Entry) []string {
	kind := "file"
	if e.Info.IsDir {
		kind = "dir"
	}
	deleted := e.Info.DeletionDate.Local()
	return []string{
		e.Names.FileName(),
		kind,
		e.Info.Size,
		fmt.Sprintf("%s (%s)", deleted.Format(c.config.Info.TimeFormat), humanize.Time(deleted)),
		e.Info.Path,
	}
}

func (c CLI) printRecord(info *trash.Info) {
	header, body, _ := strings.Cut(info.Encode(), "\n")
	fmt.Fprintf(c.stdout, "\n%s\n%s\n", headerColor.Sprint(header), body)
}
