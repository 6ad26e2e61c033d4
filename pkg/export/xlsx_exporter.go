package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Report"

// xlsxTotalWidth is the combined width, in character units, of all columns.
const xlsxTotalWidth = 110

// XLSXExporter renders a Dataset as a single-sheet workbook: a merged title
// row, a styled header row, then one row per record.
type XLSXExporter struct{}

// NewXLSXExporter builds an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// ContentType implements Renderer.
func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension implements Renderer.
func (e *XLSXExporter) Extension() string { return "xlsx" }

// Render builds the workbook in memory.
func (e *XLSXExporter) Render(data Dataset) ([]byte, error) {
	if err := data.validate(); err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	last := len(data.Columns)
	for i, width := range columnWidths(data.Columns, xlsxTotalWidth) {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(xlsxSheet, col, col, width); err != nil {
			return nil, fmt.Errorf("xlsx: column width: %w", err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: header style: %w", err)
	}

	titleStart, _ := excelize.CoordinatesToCellName(1, 1)
	titleEnd, _ := excelize.CoordinatesToCellName(last, 1)
	_ = f.SetCellValue(xlsxSheet, titleStart, data.Title)
	if last > 1 {
		_ = f.MergeCell(xlsxSheet, titleStart, titleEnd)
	}
	_ = f.SetCellStyle(xlsxSheet, titleStart, titleEnd, titleStyle)

	for i, header := range data.Headers() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(xlsxSheet, cell, header)
	}
	headerStart, _ := excelize.CoordinatesToCellName(1, 2)
	headerEnd, _ := excelize.CoordinatesToCellName(last, 2)
	_ = f.SetCellStyle(xlsxSheet, headerStart, headerEnd, headerStyle)

	for r, row := range data.Rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+3)
			if err := f.SetCellValue(xlsxSheet, cell, value); err != nil {
				return nil, fmt.Errorf("xlsx: write %s: %w", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
