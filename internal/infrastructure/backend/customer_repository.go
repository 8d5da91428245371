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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementa CustomerRepository sobre /api/customers.
type CustomerRepo struct {
	c *Client
}

// NewCustomerRepo construye el adaptador.
func NewCustomerRepo(c *Client) *CustomerRepo {
	return &CustomerRepo{c: c}
}

type wireOrderRef struct {
	ID            int64               `json:"id"`
	ExternalID    flexString          `json:"external_id"`
	InvoiceNumber flexString          `json:"invoice_number"`
	Source        string              `json:"source"`
	Date          flexTime            `json:"date"`
	Total         decimal.NullDecimal `json:"total"`
}

type wireVehicle struct {
	Year  flexString `json:"year"`
	Make  string     `json:"make"`
	Model string     `json:"model"`
}

type wireCustomer struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	Source        string         `json:"source"`
	Notes         string         `json:"notes"`
	VehicleMake   string         `json:"vehicle_make"`
	VehicleModel  string         `json:"vehicle_model"`
	Vehicles      []wireVehicle  `json:"vehicles"`
	Orders        []wireOrderRef `json:"orders"`
	LastContacted flexTime       `json:"last_contacted"`
}

func (w wireCustomer) toEntity() entity.Customer {
	c := entity.Customer{
		ID:            w.ID,
		Name:          w.Name,
		Email:         w.Email,
		Phone:         w.Phone,
		Source:        w.Source,
		Notes:         w.Notes,
		VehicleMake:   w.VehicleMake,
		VehicleModel:  w.VehicleModel,
		Orders:        make([]entity.OrderRef, 0, len(w.Orders)),
		LastContacted: w.LastContacted.Ptr(),
	}
	if c.Source == "" {
		c.Source = entity.SourceManual
	}
	for _, v := range w.Vehicles {
		c.Vehicles = append(c.Vehicles, entity.Vehicle{Year: string(v.Year), Make: v.Make, Model: v.Model})
	}
	if len(c.Vehicles) == 0 && (w.VehicleMake != "" || w.VehicleModel != "") {
		c.Vehicles = []entity.Vehicle{{Make: w.VehicleMake, Model: w.VehicleModel}}
	}
	for _, o := range w.Orders {
		c.Orders = append(c.Orders, entity.OrderRef{
			ID:            o.ID,
			Source:        o.Source,
			InvoiceNumber: string(o.InvoiceNumber),
			ExternalID:    string(o.ExternalID),
			Date:          o.Date.Ptr(),
			Total:         o.Total,
		})
	}
	return c
}

// List devuelve todos los clientes con sus órdenes.
func (r *CustomerRepo) List(ctx context.Context) ([]entity.Customer, error) {
	var raw []wireCustomer
	if err := r.c.get(ctx, "/api/customers", nil, &raw); err != nil {
		return nil, err
	}
	out := make([]entity.Customer, 0, len(raw))
	for _, w := range raw {
		out = append(out, w.toEntity())
	}
	return out, nil
}

// Create da de alta un cliente y devuelve el registro creado.
func (r *CustomerRepo) Create(ctx context.Context, in repository.CustomerCreate) (*entity.Customer, error) {
	var w wireCustomer
	if err := r.c.post(ctx, "/api/customers", in, &w); err != nil {
		return nil, err
	}
	c := w.toEntity()
	return &c, nil
}

// Update aplica un PATCH parcial.
func (r *CustomerRepo) Update(ctx context.Context, id int64, patch repository.CustomerPatch) error {
	return r.c.patch(ctx, fmt.Sprintf("/api/customers/%d", id), patch, nil)
}

// Inactive clientes sin contacto en los últimos days días.
func (r *CustomerRepo) Inactive(ctx context.Context, days int) ([]entity.InactiveCustomer, error) {
	q := url.Values{"days": {strconv.Itoa(days)}}
	var out []entity.InactiveCustomer
	if err := r.c.get(ctx, "/api/dashboard/inactive-customers", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
