package entity

import "time"

// Estados conocidos de un ítem drop-ship.
const (
	DropShipStatusShipped        = "Shipped"
	DropShipStatusPendingContact = "Pending Contact"
	DropShipStatusDelayed        = "Delayed"
	DropShipStatusInShop         = "In-Shop"
)

// Indicadores de estado (color del punto en la tarjeta).
const (
	IndicatorSuccess = "success"
	IndicatorWarning = "warning"
	IndicatorError   = "error"
)

// DropShipOrder factura con ítems enviados directamente por el proveedor.
type DropShipOrder struct {
	InvoiceID int64          `json:"invoice_id"`
	Date      string         `json:"date"`
	Customer  string         `json:"customer"`
	Items     []DropShipItem `json:"items"`
}

// DropShipItem ítem de la factura y su seguimiento con el proveedor.
type DropShipItem struct {
	ItemID         int64      `json:"item_id"`
	Name           string     `json:"name"`
	Brand          string     `json:"brand,omitempty"`
	DropShip       bool       `json:"drop_ship"`
	Status         string     `json:"status"`
	TrackingNumber string     `json:"tracking_number,omitempty"`
	Vendor         string     `json:"vendor,omitempty"`
	VendorPhone    string     `json:"vendor_phone,omitempty"`
	VendorEmail    string     `json:"vendor_email,omitempty"`
	LastContacted  *time.Time `json:"last_contacted,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

// Indicator color del estado. Un drop-ship sin enviar es error aunque esté "Pending Contact".
func (i DropShipItem) Indicator() string {
	switch {
	case i.DropShip && i.Status != DropShipStatusShipped:
		return IndicatorError
	case i.Status == DropShipStatusPendingContact || i.Status == DropShipStatusDelayed:
		return IndicatorWarning
	default:
		return IndicatorSuccess
	}
}
