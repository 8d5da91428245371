package repository

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/humble-crm/internal/domain/entity"
)

// ServiceJobFilter filtros soportados por el backend al listar.
type ServiceJobFilter struct {
	Status     string
	CustomerID int64
}

// ServiceJobCreate alta de un trabajo.
type ServiceJobCreate struct {
	CustomerID          int64               `json:"customer_id"`
	Title               string              `json:"title"`
	Description         string              `json:"description,omitempty"`
	VehicleYear         string              `json:"vehicle_year,omitempty"`
	VehicleMake         string              `json:"vehicle_make,omitempty"`
	VehicleModel        string              `json:"vehicle_model,omitempty"`
	VehicleVIN          string              `json:"vehicle_vin,omitempty"`
	VehicleMileage      *int                `json:"vehicle_mileage"`
	Priority            string              `json:"priority"`
	EstimatedHours      decimal.NullDecimal `json:"estimated_hours"`
	QuotedTotal         decimal.NullDecimal `json:"quoted_total"`
	DepositRequired     decimal.NullDecimal `json:"deposit_required"`
	EstimatedCompletion *time.Time          `json:"estimated_completion"`
	Notes               string              `json:"notes,omitempty"`
}

// ServiceJobPatch campos editables desde el detalle; nil = sin cambio.
type ServiceJobPatch struct {
	Status         *string          `json:"status,omitempty"`
	Priority       *string          `json:"priority,omitempty"`
	EstimatedHours *decimal.Decimal `json:"estimated_hours,omitempty"`
	ActualHours    *decimal.Decimal `json:"actual_hours,omitempty"`
	QuotedTotal    *decimal.Decimal `json:"quoted_total,omitempty"`
	FinalTotal     *decimal.Decimal `json:"final_total,omitempty"`
	DepositPaid    *decimal.Decimal `json:"deposit_paid,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
	InternalNotes  *string          `json:"internal_notes,omitempty"`
}

// JobUpdateCreate nueva entrada de bitácora.
type JobUpdateCreate struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	UpdateType        string `json:"update_type"`
	VisibleToCustomer bool   `json:"is_visible_to_customer"`
	CreatedBy         string `json:"created_by"`
}

// JobPartCreate nueva pieza.
type JobPartCreate struct {
	Name       string              `json:"name"`
	Quantity   int                 `json:"quantity"`
	UnitCost   decimal.NullDecimal `json:"unit_cost"`
	Supplier   string              `json:"supplier,omitempty"`
	PartNumber string              `json:"part_number,omitempty"`
}

// PhotoUpload archivo de foto a reenviar al backend.
type PhotoUpload struct {
	Filename          string
	ContentType       string
	Content           io.Reader
	Caption           string
	PhotoType         string
	VisibleToCustomer bool
	UploadedBy        string
}

// ServiceJobRepository define el puerto de acceso a trabajos de servicio.
type ServiceJobRepository interface {
	List(ctx context.Context, f ServiceJobFilter) ([]entity.ServiceJob, error)
	GetByID(ctx context.Context, id int64) (*entity.ServiceJob, error)
	Create(ctx context.Context, in ServiceJobCreate) (*entity.ServiceJob, error)
	Update(ctx context.Context, id int64, patch ServiceJobPatch) error
	Delete(ctx context.Context, id int64) error
	AddUpdate(ctx context.Context, jobID int64, in JobUpdateCreate) error
	DeleteUpdate(ctx context.Context, updateID int64) error
	AddPart(ctx context.Context, jobID int64, in JobPartCreate) error
	DeletePart(ctx context.Context, partID int64) error
	UploadPhoto(ctx context.Context, jobID int64, in PhotoUpload) error
	GenerateInvoice(ctx context.Context, jobID int64) (*entity.InvoiceResult, error)
}
