package cli

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/moojink/RDBMS/pkg/catalog"
)

// render writes t in the given display mode. "csv" is the table's own
// text form; "table" draws a grid with a row count caption.
func render(w io.Writer, t *catalog.Table, mode string) error {
	switch mode {
	case "csv", "":
		_, err := io.WriteString(w, t.String())
		return err
	case "table":
		rows := make([][]string, 0, t.NumRows())
		for r := 1; r <= t.NumRows(); r++ {
			row, err := t.Row(r)
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}
		tw := newGrid(w, t.Header())
		tw.AppendBulk(rows)
		tw.SetCaption(true, fmt.Sprintf("(%d rows)", t.NumRows()))
		tw.Render()
		return nil
	default:
		return fmt.Errorf("unknown display mode %q", mode)
	}
}

func renderGrid(w io.Writer, header []string, rows [][]string) {
	tw := newGrid(w, header)
	tw.AppendBulk(rows)
	tw.Render()
}

func newGrid(w io.Writer, header []string) *tablewriter.Table {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(header)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	return tw
}
