package dto

import (
	"strings"

	"github.com/jhoicas/humble-crm/internal/domain/entity"
)

// OrderRow fila del listado de órdenes con los valores ya resueltos para mostrar.
type OrderRow struct {
	entity.Order
	DisplayNumber string `json:"display_number"`
	CustomerName  string `json:"customer_name"`
}

// NewOrderRow arma la fila.
func NewOrderRow(o entity.Order) OrderRow {
	return OrderRow{Order: o, DisplayNumber: o.DisplayNumber(), CustomerName: o.CustomerName()}
}

// OrderDetail detalle de la orden con el checklist de campos.
type OrderDetail struct {
	OrderRow
	Checklist []entity.ChecklistItem `json:"checklist"`
	Complete  bool                   `json:"complete"`
}

// NewOrderDetail arma el detalle; Complete es true si todos los campos están presentes.
func NewOrderDetail(o entity.Order) OrderDetail {
	items := o.Checklist()
	complete := true
	for _, it := range items {
		complete = complete && it.Present
	}
	return OrderDetail{OrderRow: NewOrderRow(o), Checklist: items, Complete: complete}
}

func upper(s string) string {
	return strings.ToUpper(s)
}
