package entity

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusIncomplete órdenes abandonadas en la tienda; nunca se listan.
const OrderStatusIncomplete = "INCOMPLETE"

// GuestName nombre mostrado cuando la orden no trae cliente.
const GuestName = "Guest"

// Order orden de venta (Wave, BigCommerce o manual).
type Order struct {
	ID               int64               `json:"id"`
	ExternalID       string              `json:"external_id,omitempty"`
	InvoiceNumber    string              `json:"invoice_number,omitempty"`
	Source           string              `json:"source"`
	Date             *time.Time          `json:"date,omitempty"`
	Status           string              `json:"status,omitempty"`
	Customer         *OrderCustomer      `json:"customer,omitempty"`
	BillingAddress   *Address            `json:"billing_address,omitempty"`
	ShippingAddress  *Address            `json:"shipping_address,omitempty"`
	LineItems        []LineItem          `json:"line_items"`
	Subtotal         decimal.NullDecimal `json:"subtotal"`
	TaxTotal         decimal.NullDecimal `json:"tax_total"`
	ShippingTotal    decimal.NullDecimal `json:"shipping_total"`
	Total            decimal.NullDecimal `json:"total"`
	ShippingTracking string              `json:"shipping_tracking,omitempty"`
	ShippingCarrier  string              `json:"shipping_carrier,omitempty"`
}

// OrderCustomer cliente embebido en la orden.
type OrderCustomer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Address dirección de facturación o envío, ya normalizada.
type Address struct {
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Lines devuelve la dirección como líneas de texto no vacías.
func (a Address) Lines() []string {
	var out []string
	for _, l := range []string{a.Line1, a.Line2} {
		if l != "" {
			out = append(out, l)
		}
	}
	city := strings.TrimSpace(strings.Join(nonEmpty(a.City, a.State, a.PostalCode), " "))
	if city != "" {
		out = append(out, city)
	}
	if a.Country != "" {
		out = append(out, a.Country)
	}
	return out
}

// LineItem línea de la orden.
type LineItem struct {
	Name      string              `json:"name"`
	Quantity  decimal.Decimal     `json:"quantity"`
	UnitPrice decimal.NullDecimal `json:"unit_price"`
	Tax       decimal.NullDecimal `json:"tax"`
	Total     decimal.NullDecimal `json:"total"`
}

// CustomerName nombre del cliente o "Guest".
func (o Order) CustomerName() string {
	if o.Customer == nil || strings.TrimSpace(o.Customer.Name) == "" {
		return GuestName
	}
	return o.Customer.Name
}

// CustomerEmail email del cliente, vacío si no hay.
func (o Order) CustomerEmail() string {
	if o.Customer == nil {
		return ""
	}
	return o.Customer.Email
}

// IsIncomplete compara el estado sin distinguir mayúsculas.
func (o Order) IsIncomplete() bool {
	return strings.EqualFold(strings.TrimSpace(o.Status), OrderStatusIncomplete)
}

// DisplayNumber número visible: factura en Wave, id externo en el resto.
func (o Order) DisplayNumber() string {
	n := o.ExternalID
	if o.Source == SourceWave {
		n = o.InvoiceNumber
	}
	if n == "" {
		n = formatID(o.ID)
	}
	return "#" + n
}

// ChecklistItem campo esperado en la orden y si está presente.
type ChecklistItem struct {
	Field   string `json:"field"`
	Label   string `json:"label"`
	Present bool   `json:"present"`
}

// Checklist revisa los campos que el detalle de la orden necesita para estar completo.
func (o Order) Checklist() []ChecklistItem {
	hasLine1 := func(a *Address) bool { return a != nil && a.Line1 != "" }
	return []ChecklistItem{
		{Field: "customer.name", Label: "Customer Name", Present: o.Customer != nil && o.Customer.Name != ""},
		{Field: "customer.email", Label: "Customer Email", Present: o.CustomerEmail() != ""},
		{Field: "billing_address.line1", Label: "Billing Address", Present: hasLine1(o.BillingAddress)},
		{Field: "shipping_address.line1", Label: "Shipping Address", Present: hasLine1(o.ShippingAddress)},
		{Field: "line_items", Label: "Line Items", Present: len(o.LineItems) > 0},
		{Field: "total", Label: "Total", Present: o.Total.Valid},
		{Field: "shipping_total", Label: "Shipping", Present: o.ShippingTotal.Valid},
		{Field: "tax_total", Label: "Tax", Present: o.TaxTotal.Valid},
	}
}

// LatestOrder fila del widget "últimas órdenes".
type LatestOrder struct {
	InvoiceNumber string              `json:"invoice_number"`
	CustomerName  string              `json:"customer_name"`
	Total         decimal.NullDecimal `json:"total"`
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func nonEmpty(ss ...string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
