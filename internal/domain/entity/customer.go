package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Orígenes de un cliente u orden.
const (
	SourceManual      = "manual"
	SourceWeb         = "web"
	SourceWave        = "wave"
	SourceBigCommerce = "bigcommerce"
)

// Customer representa un cliente del taller.
type Customer struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	Source        string     `json:"source"`
	Notes         string     `json:"notes,omitempty"`
	VehicleMake   string     `json:"vehicle_make,omitempty"`
	VehicleModel  string     `json:"vehicle_model,omitempty"`
	Vehicles      []Vehicle  `json:"vehicles,omitempty"`
	Orders        []OrderRef `json:"orders"`
	LastContacted *time.Time `json:"last_contacted,omitempty"`
}

// HasOrders indica si el cliente tiene al menos una orden.
func (c Customer) HasOrders() bool {
	return len(c.Orders) > 0
}

// Vehicle vehículo asociado a un cliente.
type Vehicle struct {
	Year  string `json:"year,omitempty"`
	Make  string `json:"make,omitempty"`
	Model string `json:"model,omitempty"`
}

// OrderRef referencia ligera a una orden desde el cliente.
type OrderRef struct {
	ID            int64               `json:"id"`
	Source        string              `json:"source"`
	InvoiceNumber string              `json:"invoice_number,omitempty"`
	ExternalID    string              `json:"external_id,omitempty"`
	Date          *time.Time          `json:"date,omitempty"`
	Total         decimal.NullDecimal `json:"total"`
}

// Label identificador mostrable: número de factura, id externo o id interno.
func (o OrderRef) Label() string {
	switch {
	case o.InvoiceNumber != "":
		return o.InvoiceNumber
	case o.ExternalID != "":
		return o.ExternalID
	default:
		return formatID(o.ID)
	}
}

// InactiveCustomer cliente sin contacto reciente (widget del dashboard).
type InactiveCustomer struct {
	Name             string `json:"name"`
	DaysSinceContact int    `json:"days_since_contact"`
}
