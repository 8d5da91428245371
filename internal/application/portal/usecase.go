// Package portal arma la vista del cliente: su perfil, sus facturas y sus trabajos.
package portal

import (
	"context"
	"fmt"

	"github.com/jhoicas/humble-crm/internal/application/dto"
	"github.com/jhoicas/humble-crm/internal/domain/entity"
)

// Customers busca el perfil del cliente.
type Customers interface {
	Get(ctx context.Context, id int64) (*entity.Customer, error)
}

// Orders órdenes del cliente.
type Orders interface {
	ForCustomer(ctx context.Context, customerID int64) ([]entity.Order, error)
}

// ServiceJobs trabajos del cliente ya filtrados para su vista.
type ServiceJobs interface {
	ForCustomer(ctx context.Context, customerID int64) ([]entity.ServiceJob, error)
}

// UseCase vista del portal.
type UseCase struct {
	customers Customers
	orders    Orders
	jobs      ServiceJobs
}

// NewUseCase construye el caso de uso.
func NewUseCase(customers Customers, orders Orders, jobs ServiceJobs) *UseCase {
	return &UseCase{customers: customers, orders: orders, jobs: jobs}
}

// Overview perfil, facturas y trabajos del cliente de la sesión.
// Las notas internas del taller no se exponen.
func (uc *UseCase) Overview(ctx context.Context, customerID int64) (*dto.PortalOverview, error) {
	c, err := uc.customers.Get(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("portal: perfil: %w", err)
	}
	profile := *c
	profile.Notes = ""

	orders, err := uc.orders.ForCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("portal: facturas: %w", err)
	}
	invoices := make([]dto.OrderRow, 0, len(orders))
	for _, o := range orders {
		invoices = append(invoices, dto.NewOrderRow(o))
	}

	jobs, err := uc.jobs.ForCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("portal: trabajos: %w", err)
	}
	if jobs == nil {
		jobs = []entity.ServiceJob{}
	}
	return &dto.PortalOverview{Customer: profile, Invoices: invoices, ServiceJobs: jobs}, nil
}
