package export

import (
	"fmt"
	"strings"
)

// Format names a supported rendering.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ParseFormat normalizes raw into a Format.
func ParseFormat(raw string) (Format, bool) {
	f := Format(strings.ToLower(strings.TrimSpace(raw)))
	switch f {
	case FormatCSV, FormatPDF, FormatXLSX:
		return f, true
	}
	return "", false
}

// Column describes one table column. Width is relative to the other columns;
// zero means an equal share.
type Column struct {
	Header string
	Width  float64
}

// Dataset defines tabular export content. Each row holds one value per column.
type Dataset struct {
	Title   string
	Columns []Column
	Rows    [][]string
}

// Headers lists the column headers in order.
func (d Dataset) Headers() []string {
	headers := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		headers[i] = c.Header
	}
	return headers
}

func (d Dataset) validate() error {
	if len(d.Columns) == 0 {
		return fmt.Errorf("dataset requires at least one column")
	}
	for i, row := range d.Rows {
		if len(row) != len(d.Columns) {
			return fmt.Errorf("row %d has %d values, want %d", i, len(row), len(d.Columns))
		}
	}
	return nil
}

// Renderer turns a dataset into a downloadable document.
type Renderer interface {
	Render(data Dataset) ([]byte, error)
	ContentType() string
	Extension() string
}

// RendererFor returns the renderer registered for format.
func RendererFor(format Format) (Renderer, bool) {
	switch format {
	case FormatCSV:
		return NewCSVExporter(), true
	case FormatPDF:
		return NewPDFExporter(), true
	case FormatXLSX:
		return NewXLSXExporter(), true
	}
	return nil, false
}
