package repository

import (
	"context"

	"github.com/jhoicas/humble-crm/internal/domain/entity"
)

// CustomerCreate datos para dar de alta un cliente.
type CustomerCreate struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// CustomerPatch actualización parcial; nil significa "no tocar".
type CustomerPatch struct {
	Notes        *string `json:"notes,omitempty"`
	VehicleMake  *string `json:"vehicle_make,omitempty"`
	VehicleModel *string `json:"vehicle_model,omitempty"`
}

// Empty indica que el patch no cambia nada.
func (p CustomerPatch) Empty() bool {
	return p.Notes == nil && p.VehicleMake == nil && p.VehicleModel == nil
}

// CustomerRepository define el puerto de acceso a clientes.
type CustomerRepository interface {
	List(ctx context.Context) ([]entity.Customer, error)
	Create(ctx context.Context, in CustomerCreate) (*entity.Customer, error)
	Update(ctx context.Context, id int64, patch CustomerPatch) error
	Inactive(ctx context.Context, days int) ([]entity.InactiveCustomer, error)
}
