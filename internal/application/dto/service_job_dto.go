package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/humble-crm/internal/domain/entity"
)

// ServiceJobListRequest listado con filtro de estado ("all" o vacío = todos).
type ServiceJobListRequest struct {
	ListParams
	Status string
}

// ServiceJobRow fila del listado.
type ServiceJobRow struct {
	entity.ServiceJob
	CustomerName string `json:"customer_name"`
	VehicleLabel string `json:"vehicle_label"`
}

// NewServiceJobRow arma la fila.
func NewServiceJobRow(j entity.ServiceJob) ServiceJobRow {
	return ServiceJobRow{ServiceJob: j, CustomerName: j.CustomerName(), VehicleLabel: j.VehicleLabel()}
}

// CreateServiceJobRequest POST /api/service-jobs. Sin customer_id, se busca o crea por nombre.
type CreateServiceJobRequest struct {
	CustomerID          int64            `json:"customer_id" validate:"required_without=CustomerName"`
	CustomerName        string           `json:"customer_name" validate:"omitempty,max=200"`
	CustomerEmail       string           `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone       string           `json:"customer_phone" validate:"omitempty,max=50"`
	Title               string           `json:"title" validate:"required,max=200"`
	Description         string           `json:"description"`
	VehicleYear         string           `json:"vehicle_year" validate:"omitempty,max=4"`
	VehicleMake         string           `json:"vehicle_make" validate:"omitempty,max=100"`
	VehicleModel        string           `json:"vehicle_model" validate:"omitempty,max=100"`
	VehicleVIN          string           `json:"vehicle_vin" validate:"omitempty,max=17"`
	VehicleMileage      *int             `json:"vehicle_mileage" validate:"omitempty,min=0"`
	Priority            string           `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	EstimatedHours      *decimal.Decimal `json:"estimated_hours"`
	QuotedTotal         *decimal.Decimal `json:"quoted_total"`
	DepositRequired     *decimal.Decimal `json:"deposit_required"`
	EstimatedCompletion *time.Time       `json:"estimated_completion"`
	Notes               string           `json:"notes"`
}

// UpdateServiceJobRequest PATCH /api/service-jobs/:id.
type UpdateServiceJobRequest struct {
	Status         *string          `json:"status" validate:"omitempty,oneof=quoted approved in_progress completed delivered"`
	Priority       *string          `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	EstimatedHours *decimal.Decimal `json:"estimated_hours"`
	ActualHours    *decimal.Decimal `json:"actual_hours"`
	QuotedTotal    *decimal.Decimal `json:"quoted_total"`
	FinalTotal     *decimal.Decimal `json:"final_total"`
	DepositPaid    *decimal.Decimal `json:"deposit_paid"`
	Notes          *string          `json:"notes"`
	InternalNotes  *string          `json:"internal_notes"`
}

// AddJobUpdateRequest POST /api/service-jobs/:id/updates.
type AddJobUpdateRequest struct {
	Title       string `json:"title" validate:"omitempty,max=200"`
	Description string `json:"description" validate:"required"`
}

// AddJobPartRequest POST /api/service-jobs/:id/parts.
type AddJobPartRequest struct {
	Name       string           `json:"name" validate:"required,max=200"`
	Quantity   int              `json:"quantity" validate:"omitempty,min=1"`
	UnitCost   *decimal.Decimal `json:"unit_cost"`
	Supplier   string           `json:"supplier" validate:"omitempty,max=200"`
	PartNumber string           `json:"part_number" validate:"omitempty,max=100"`
}
