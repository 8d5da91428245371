// Package xlsx exporta listados del panel a Excel.
package xlsx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/humble-crm/internal/application/ports"
)

const defaultSheet = "Sheet1"

var _ ports.SpreadsheetExporter = (*Exporter)(nil)

// Exporter implementa ports.SpreadsheetExporter con excelize.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// Export escribe una hoja con encabezados en negrita y fila superior fija.
func (e *Exporter) Export(_ context.Context, sheet ports.Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	name := sheet.Name
	if name == "" {
		name = defaultSheet
	}
	if err := f.SetSheetName(defaultSheet, name); err != nil {
		return nil, fmt.Errorf("xlsx: nombre de hoja: %w", err)
	}

	if len(sheet.Headers) > 0 {
		header := toRow(sheet.Headers)
		if err := f.SetSheetRow(name, "A1", &header); err != nil {
			return nil, fmt.Errorf("xlsx: encabezados: %w", err)
		}
		last, err := excelize.CoordinatesToCellName(len(sheet.Headers), 1)
		if err != nil {
			return nil, fmt.Errorf("xlsx: encabezados: %w", err)
		}
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, fmt.Errorf("xlsx: estilo: %w", err)
		}
		if err := f.SetCellStyle(name, "A1", last, style); err != nil {
			return nil, fmt.Errorf("xlsx: estilo: %w", err)
		}
		if err := f.SetPanes(name, &excelize.Panes{
			Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
		}); err != nil {
			return nil, fmt.Errorf("xlsx: panel fijo: %w", err)
		}
	}

	for i, r := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+1, err)
		}
		values := toRow(r)
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+1, err)
		}
	}

	for i, h := range sheet.Headers {
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("xlsx: columna: %w", err)
		}
		_ = f.SetColWidth(name, colName, colName, columnWidth(h, sheet.Rows, i))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func toRow(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// columnWidth ancho según el texto más largo de la columna, entre 10 y 50.
func columnWidth(header string, rows [][]string, idx int) float64 {
	w := len(header)
	for _, r := range rows {
		if idx < len(r) && len(r[idx]) > w {
			w = len(r[idx])
		}
	}
	return float64(min(max(w+2, 10), 50))
}
