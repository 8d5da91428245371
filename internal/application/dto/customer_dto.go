package dto

import "github.com/jhoicas/humble-crm/internal/domain/entity"

// CustomerListRequest listado de clientes con el filtro "solo con órdenes".
type CustomerListRequest struct {
	ListParams
	WithOrdersOnly *bool
}

// CustomerRow fila del listado: el cliente más etiquetas de sus órdenes para la fila expandida.
type CustomerRow struct {
	entity.Customer
	OrderCount  int      `json:"order_count"`
	OrderLabels []string `json:"order_labels"`
}

// NewCustomerRow arma la fila. Cada orden se muestra como "[SOURCE] #número".
func NewCustomerRow(c entity.Customer) CustomerRow {
	labels := make([]string, 0, len(c.Orders))
	for _, o := range c.Orders {
		labels = append(labels, "["+upper(o.Source)+"] #"+o.Label())
	}
	return CustomerRow{Customer: c, OrderCount: len(c.Orders), OrderLabels: labels}
}

// UpdateCustomerRequest PATCH /api/customers/:id (notas y vehículo).
type UpdateCustomerRequest struct {
	Notes        *string `json:"notes" validate:"omitempty,max=5000"`
	VehicleMake  *string `json:"vehicle_make" validate:"omitempty,max=100"`
	VehicleModel *string `json:"vehicle_model" validate:"omitempty,max=100"`
}

// FindOrCreateCustomerRequest busca por nombre exacto (sin mayúsculas) o crea.
type FindOrCreateCustomerRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,max=50"`
}

// FindOrCreateCustomerResponse cliente resultante e indicador de alta.
type FindOrCreateCustomerResponse struct {
	Customer entity.Customer `json:"customer"`
	Created  bool            `json:"created"`
}

// CustomerSuggestion entrada del autocompletado de clientes.
type CustomerSuggestion struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}
