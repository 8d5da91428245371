package ports

import (
	"context"

	"github.com/jhoicas/humble-crm/internal/domain/entity"
)

// OrderPDFGenerator define el puerto de salida para el resumen imprimible de una orden.
// El adaptador concreto (Maroto) vive en infrastructure/pdf.
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, order *entity.Order) ([]byte, error)
}

// Sheet hoja de cálculo ya armada: encabezados y filas de texto.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// SpreadsheetExporter define el puerto de salida para exportar listados (XLSX).
type SpreadsheetExporter interface {
	Export(ctx context.Context, sheet Sheet) ([]byte, error)
}
