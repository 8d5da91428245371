// Package orders contiene los casos de uso de consulta de órdenes de venta.
// Las órdenes son de solo lectura: las crea la sincronización del backend.
package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/humble-crm/internal/application/dto"
	"github.com/jhoicas/humble-crm/internal/application/ports"
	"github.com/jhoicas/humble-crm/internal/domain"
	"github.com/jhoicas/humble-crm/internal/domain/entity"
	"github.com/jhoicas/humble-crm/internal/domain/listing"
	"github.com/jhoicas/humble-crm/internal/domain/repository"
)

// Orden por defecto: más recientes primero.
const (
	DefaultSortField = "date"
	DefaultSortDesc  = true
)

// Spec búsqueda y orden del listado. Las órdenes INCOMPLETE nunca aparecen.
var Spec = listing.Spec[entity.Order]{
	Exclude: entity.Order.IsIncomplete,
	SearchFields: func(o entity.Order) []string {
		name := ""
		if o.Customer != nil {
			name = o.Customer.Name
		}
		return []string{name, o.CustomerEmail(), o.ExternalID, o.InvoiceNumber}
	},
	SortKeys: map[string]listing.SortKey[entity.Order]{
		"date":     listing.ByTime(func(o entity.Order) *time.Time { return o.Date }),
		"customer": listing.ByString(entity.Order.CustomerName),
		"total":    listing.ByDecimal(func(o entity.Order) decimal.NullDecimal { return o.Total }),
		"status":   listing.ByString(func(o entity.Order) string { return o.Status }),
	},
}

// UseCase casos de uso de órdenes.
type UseCase struct {
	repo     repository.OrderRepository
	pdf      ports.OrderPDFGenerator
	exporter ports.SpreadsheetExporter
}

// NewUseCase construye el caso de uso. pdf y exporter pueden ser nil.
func NewUseCase(repo repository.OrderRepository, pdf ports.OrderPDFGenerator, exporter ports.SpreadsheetExporter) *UseCase {
	return &UseCase{repo: repo, pdf: pdf, exporter: exporter}
}

// List filtra, ordena y pagina las órdenes.
func (uc *UseCase) List(ctx context.Context, q listing.Query) (listing.Page[dto.OrderRow], error) {
	all, err := uc.repo.List(ctx)
	if err != nil {
		return listing.Page[dto.OrderRow]{}, fmt.Errorf("orders: listar: %w", err)
	}
	return dto.MapPage(listing.Apply(all, Spec, withDefaultSort(q)), dto.NewOrderRow), nil
}

// Get detalle de la orden con su checklist.
func (uc *UseCase) Get(ctx context.Context, id int64) (*dto.OrderDetail, error) {
	o, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	d := dto.NewOrderDetail(*o)
	return &d, nil
}

// PDF resumen imprimible de la orden y el nombre de archivo sugerido.
func (uc *UseCase) PDF(ctx context.Context, id int64) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("orders: pdf no configurado: %w", domain.ErrNotFound)
	}
	o, err := uc.get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.GenerateOrderPDF(ctx, o)
	if err != nil {
		return nil, "", fmt.Errorf("orders: pdf %d: %w", id, err)
	}
	return b, "order-" + strings.TrimPrefix(o.DisplayNumber(), "#") + ".pdf", nil
}

// Export todas las órdenes filtradas y ordenadas como XLSX.
func (uc *UseCase) Export(ctx context.Context, q listing.Query) ([]byte, error) {
	if uc.exporter == nil {
		return nil, fmt.Errorf("orders: exportación no configurada: %w", domain.ErrNotFound)
	}
	all, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("orders: exportar: %w", err)
	}
	sheet := ports.Sheet{
		Name:    "Orders",
		Headers: []string{"Number", "Source", "Date", "Customer", "Email", "Status", "Subtotal", "Tax", "Shipping", "Total"},
	}
	for _, o := range listing.Ordered(all, Spec, withDefaultSort(q)) {
		date := ""
		if o.Date != nil {
			date = o.Date.Format("2006-01-02")
		}
		sheet.Rows = append(sheet.Rows, []string{
			o.DisplayNumber(),
			o.Source,
			date,
			o.CustomerName(),
			o.CustomerEmail(),
			o.Status,
			money(o.Subtotal),
			money(o.TaxTotal),
			money(o.ShippingTotal),
			money(o.Total),
		})
	}
	return uc.exporter.Export(ctx, sheet)
}

// Latest últimas órdenes para el dashboard.
func (uc *UseCase) Latest(ctx context.Context, limit int) ([]entity.LatestOrder, error) {
	if limit <= 0 {
		limit = 5
	}
	out, err := uc.repo.Latest(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("orders: últimas: %w", err)
	}
	return out, nil
}

// ForCustomer órdenes del cliente (sin INCOMPLETE), más recientes primero.
func (uc *UseCase) ForCustomer(ctx context.Context, customerID int64) ([]entity.Order, error) {
	all, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("orders: órdenes del cliente %d: %w", customerID, err)
	}
	mine := Spec.WithFilter(func(o entity.Order) bool { return o.Customer != nil && o.Customer.ID == customerID })
	return listing.Ordered(all, mine, listing.Query{SortField: DefaultSortField, SortDesc: DefaultSortDesc}), nil
}

func (uc *UseCase) get(ctx context.Context, id int64) (*entity.Order, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("orders: orden %d: %w", id, err)
	}
	return o, nil
}

func withDefaultSort(q listing.Query) listing.Query {
	if q.SortField == "" {
		q.SortField, q.SortDesc = DefaultSortField, DefaultSortDesc
	}
	return q
}

func money(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.StringFixed(2)
}
