package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/amp-labs/searchhistory/searches"
	"github.com/olekukonko/tablewriter"
)

func newTable(out io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.SetAutoWrapText(false)

	return table
}

func renderRows(out io.Writer, history *searches.History, maxRows int) {
	var data [][]string

	for i, row := range history.Rows() {
		if maxRows > 0 && i >= maxRows {
			break
		}

		data = append(data, []string{strconv.Itoa(i + 1), row.Term, strconv.Itoa(len(row.Photos))})
	}

	table := newTable(out, "#", "TERM", "PHOTOS")
	table.AppendBulk(data)
	table.Render()

	if hidden := history.Len() - len(data); hidden > 0 {
		_, _ = fmt.Fprintf(out, "... %d older searches not shown\n", hidden)
	}
}

func renderPhotos(out io.Writer, photos []searches.Photo) {
	data := make([][]string, 0, len(photos))

	for _, p := range photos {
		data = append(data, []string{p.Title, p.Owner, p.URL(searches.SizeThumbnail)})
	}

	table := newTable(out, "TITLE", "OWNER", "URL")
	table.AppendBulk(data)
	table.Render()
}

func renderTerms(out io.Writer, terms []string) {
	data := make([][]string, 0, len(terms))

	for _, term := range terms {
		data = append(data, []string{term})
	}

	table := newTable(out, "TERM")
	table.AppendBulk(data)
	table.Render()
}
