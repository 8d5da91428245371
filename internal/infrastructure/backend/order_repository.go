package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/humble-crm/internal/domain/entity"
	"github.com/jhoicas/humble-crm/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementa OrderRepository sobre /api/orders.
type OrderRepo struct {
	c *Client
}

// NewOrderRepo construye el adaptador.
func NewOrderRepo(c *Client) *OrderRepo {
	return &OrderRepo{c: c}
}

type wireLineItem struct {
	Name      string              `json:"name"`
	Quantity  decimal.Decimal     `json:"quantity"`
	UnitPrice decimal.NullDecimal `json:"unit_price"`
	Tax       decimal.NullDecimal `json:"tax"`
	Total     decimal.NullDecimal `json:"total"`
}

type wireOrder struct {
	ID               int64               `json:"id"`
	ExternalID       flexString          `json:"external_id"`
	InvoiceNumber    flexString          `json:"invoice_number"`
	Source           string              `json:"source"`
	Date             flexTime            `json:"date"`
	Status           string              `json:"status"`
	Customer         *wireCustomerRef    `json:"customer"`
	BillingAddress   *wireAddress        `json:"billing_address"`
	ShippingAddress  *wireAddress        `json:"shipping_address"`
	LineItems        []wireLineItem      `json:"line_items"`
	Subtotal         decimal.NullDecimal `json:"subtotal"`
	TaxTotal         decimal.NullDecimal `json:"tax_total"`
	ShippingTotal    decimal.NullDecimal `json:"shipping_total"`
	Total            decimal.NullDecimal `json:"total"`
	ShippingTracking string              `json:"shipping_tracking"`
	ShippingCarrier  string              `json:"shipping_carrier"`
}

type wireCustomerRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (w wireAddress) toEntity() *entity.Address {
	a := entity.Address{
		Line1:      firstNonEmpty(w.Line1, w.Address1),
		Line2:      firstNonEmpty(w.Line2, w.Address2),
		City:       w.City,
		State:      firstNonEmpty(w.State, w.Province),
		PostalCode: firstNonEmpty(w.PostalCode, w.Zip),
		Country:    w.Country,
	}
	if a == (entity.Address{}) {
		return nil
	}
	return &a
}

func (w wireOrder) toEntity() entity.Order {
	o := entity.Order{
		ID:               w.ID,
		ExternalID:       string(w.ExternalID),
		InvoiceNumber:    string(w.InvoiceNumber),
		Source:           w.Source,
		Date:             w.Date.Ptr(),
		Status:           w.Status,
		LineItems:        make([]entity.LineItem, 0, len(w.LineItems)),
		Subtotal:         w.Subtotal,
		TaxTotal:         w.TaxTotal,
		ShippingTotal:    w.ShippingTotal,
		Total:            w.Total,
		ShippingTracking: w.ShippingTracking,
		ShippingCarrier:  w.ShippingCarrier,
	}
	if w.Customer != nil {
		o.Customer = &entity.OrderCustomer{ID: w.Customer.ID, Name: w.Customer.Name, Email: w.Customer.Email, Phone: w.Customer.Phone}
	}
	if w.BillingAddress != nil {
		o.BillingAddress = w.BillingAddress.toEntity()
	}
	if w.ShippingAddress != nil {
		o.ShippingAddress = w.ShippingAddress.toEntity()
	}
	for _, li := range w.LineItems {
		o.LineItems = append(o.LineItems, entity.LineItem(li))
	}
	return o
}

// List devuelve todas las órdenes con su cliente embebido.
func (r *OrderRepo) List(ctx context.Context) ([]entity.Order, error) {
	var raw []wireOrder
	if err := r.c.get(ctx, "/api/orders", nil, &raw); err != nil {
		return nil, err
	}
	out := make([]entity.Order, 0, len(raw))
	for _, w := range raw {
		out = append(out, w.toEntity())
	}
	return out, nil
}

// GetByID devuelve una orden o domain.ErrNotFound.
func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	var w wireOrder
	if err := r.c.get(ctx, fmt.Sprintf("/api/orders/%d", id), nil, &w); err != nil {
		return nil, err
	}
	o := w.toEntity()
	return &o, nil
}

// Latest últimas órdenes por fecha (widget del dashboard).
func (r *OrderRepo) Latest(ctx context.Context, limit int) ([]entity.LatestOrder, error) {
	var out []entity.LatestOrder
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := r.c.get(ctx, "/api/orders/latest", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
