package main

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/samber/lo"

	"github.com/jsamuelsen/dedication-wall/internal/presentation"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

const messageWidth = 48

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	if len(headers) == 0 {
		return ""
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)

	headerRow := make(table.Row, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}

	t.AppendHeader(headerRow)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}

		t.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, len(headers))
	for i := range headers {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}

		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: align,
		}
	}

	t.SetColumnConfigs(configs)

	return t.Render() + "\n"
}

// renderBoard draws the wall as a table, or the empty-wall text.
func renderBoard(board presentation.Board) string {
	if board.Empty {
		return board.EmptyText + "\n"
	}

	rows := lo.Map(board.Cards, func(card presentation.Card, _ int) []string {
		return []string{
			strconv.Itoa(card.Position),
			party(card.RecipientName, card.RecipientClass),
			party(card.SenderName, card.SenderClass),
			text.WrapSoft(card.Message, messageWidth),
			songLabel(card.Song),
			card.Age,
		}
	})

	return renderTable(
		[]string{"#", "To", "From", "Message", "Song", "Age"},
		rows,
		[]columnAlignment{alignRight},
	)
}

func party(name, class string) string {
	if class == "" {
		return name
	}

	return name + " (" + class + ")"
}

func songLabel(song *presentation.SongView) string {
	if song == nil {
		return ""
	}

	parts := lo.Compact([]string{song.Title, song.Artist})
	if len(parts) == 0 {
		return song.URL
	}

	return strings.Join(parts, " - ")
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fd := file.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
