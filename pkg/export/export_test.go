package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:   "Daily Resources 2024-06-03",
		Columns: []Column{{Header: "Name", Width: 2}, {Header: "Status"}},
		Rows: [][]string{
			{"Alice", "Mandatory"},
			{"Bob, Jr", "Neutral"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "Name,Status\nAlice,Mandatory\n\"Bob, Jr\",Neutral\n", string(out))
}

func TestCSVExporterRejectsRaggedRows(t *testing.T) {
	data := sampleDataset()
	data.Rows = append(data.Rows, []string{"only-one"})
	_, err := NewCSVExporter().Render(data)
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestExportersRequireColumns(t *testing.T) {
	_, err := NewPDFExporter().Render(Dataset{})
	assert.Error(t, err)
	_, err = NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestColumnWidths(t *testing.T) {
	widths := columnWidths([]Column{{Width: 2}, {}, {Width: 1}}, 100)
	assert.InDeltaSlice(t, []float64{50, 25, 25}, widths, 0.001)
}

func TestRendererFor(t *testing.T) {
	f, ok := ParseFormat(" PDF ")
	require.True(t, ok)
	r, ok := RendererFor(f)
	require.True(t, ok)
	assert.Equal(t, "application/pdf", r.ContentType())

	_, ok = ParseFormat("docx")
	assert.False(t, ok)
}

func TestXLSXExporterRender(t *testing.T) {
	out, err := NewXLSXExporter().Render(sampleDataset())
	require.NoError(t, err)

	book, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Daily Resources 2024-06-03", rows[0][0])
	assert.Equal(t, []string{"Name", "Status"}, rows[1])
	assert.Equal(t, []string{"Bob, Jr", "Neutral"}, rows[3])

	r, ok := RendererFor(FormatXLSX)
	require.True(t, ok)
	assert.Equal(t, "xlsx", r.Extension())
}
