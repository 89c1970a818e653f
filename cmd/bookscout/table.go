package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// textColumnMaxWidth keeps reason and synopsis cells from stretching the
// terminal; go-pretty wraps anything longer.
const textColumnMaxWidth = 60

// renderTable renders rows in the CLI house style: rounded borders,
// left-aligned headers, and the numeric columns (match percentages, page
// counts) right-aligned. numericColumns are zero-based column indices.
func renderTable(headers []string, rows [][]string, numericColumns ...int) string {
	if len(headers) == 0 {
		return ""
	}

	numeric := make(map[int]bool, len(numericColumns))
	for _, column := range numericColumns {
		numeric[column] = true
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, title := range headers {
		header[i] = title
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		cells := make(table.Row, len(headers))
		for i := range cells {
			cells[i] = ""
			if i < len(row) {
				cells[i] = row[i]
			}
		}
		tw.AppendRow(cells)
	}

	configs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		config := table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
			WidthMax:    textColumnMaxWidth,
		}
		if numeric[i] {
			config.Align = text.AlignRight
			config.WidthMax = 0
		}
		configs = append(configs, config)
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
