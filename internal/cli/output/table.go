package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// TableRenderer is implemented by types that can render themselves as a
// borderless key/value or column table.
type TableRenderer interface {
	Headers() []string
	Rows() [][]string
}

// PrintTable writes data as a formatted table to w.
func PrintTable(w io.Writer, data TableRenderer) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader(data.Headers())
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, row := range data.Rows() {
		table.Append(row)
	}
	table.Render()
	return nil
}

// KeyValueTable is a TableRenderer for ad-hoc field/value listings.
type KeyValueTable struct {
	rows [][2]string
}

// NewKeyValueTable returns an empty KeyValueTable.
func NewKeyValueTable() *KeyValueTable {
	return &KeyValueTable{}
}

// Add appends a field/value pair.
func (t *KeyValueTable) Add(field, value string) *KeyValueTable {
	t.rows = append(t.rows, [2]string{field, value})
	return t
}

func (t *KeyValueTable) Headers() []string { return []string{"Field", "Value"} }

func (t *KeyValueTable) Rows() [][]string {
	rows := make([][]string, len(t.rows))
	for i, r := range t.rows {
		rows[i] = []string{r[0], r[1]}
	}
	return rows
}
