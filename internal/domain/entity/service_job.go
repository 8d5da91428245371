package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un trabajo de servicio.
const (
	JobStatusQuoted     = "quoted"
	JobStatusApproved   = "approved"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
	JobStatusDelivered  = "delivered"
)

// Prioridades de un trabajo de servicio.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Estados de una pieza.
const (
	PartStatusNeeded    = "needed"
	PartStatusOrdered   = "ordered"
	PartStatusReceived  = "received"
	PartStatusInstalled = "installed"
)

// Tipos de foto.
const (
	PhotoTypeProgress = "progress"
	PhotoTypeBefore   = "before"
	PhotoTypeAfter    = "after"
	PhotoTypeIssue    = "issue"
	PhotoTypeDyno     = "dyno"
)

var (
	jobStatuses = []string{JobStatusQuoted, JobStatusApproved, JobStatusInProgress, JobStatusCompleted, JobStatusDelivered}
	priorities  = []string{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent}
	photoTypes  = []string{PhotoTypeProgress, PhotoTypeBefore, PhotoTypeAfter, PhotoTypeIssue, PhotoTypeDyno}
)

// JobStatuses estados válidos en orden de ciclo de vida.
func JobStatuses() []string { return append([]string(nil), jobStatuses...) }

// IsValidJobStatus indica si s pertenece al conjunto de estados.
func IsValidJobStatus(s string) bool { return contains(jobStatuses, s) }

// IsValidPriority indica si p pertenece al conjunto de prioridades.
func IsValidPriority(p string) bool { return contains(priorities, p) }

// IsValidPhotoType indica si t es un tipo de foto conocido.
func IsValidPhotoType(t string) bool { return contains(photoTypes, t) }

// ServiceJob trabajo de taller (reparación, build, afinación).
type ServiceJob struct {
	ID                  int64               `json:"id"`
	JobNumber           string              `json:"job_number"`
	Title               string              `json:"title"`
	Description         string              `json:"description,omitempty"`
	CustomerID          int64               `json:"customer_id"`
	Customer            *CustomerRef        `json:"customer,omitempty"`
	VehicleYear         string              `json:"vehicle_year,omitempty"`
	VehicleMake         string              `json:"vehicle_make,omitempty"`
	VehicleModel        string              `json:"vehicle_model,omitempty"`
	VehicleVIN          string              `json:"vehicle_vin,omitempty"`
	VehicleMileage      *int                `json:"vehicle_mileage,omitempty"`
	Status              string              `json:"status"`
	Priority            string              `json:"priority"`
	EstimatedHours      decimal.NullDecimal `json:"estimated_hours"`
	ActualHours         decimal.NullDecimal `json:"actual_hours"`
	EstimatedCompletion *time.Time          `json:"estimated_completion,omitempty"`
	QuotedTotal         decimal.NullDecimal `json:"quoted_total"`
	FinalTotal          decimal.NullDecimal `json:"final_total"`
	DepositRequired     decimal.NullDecimal `json:"deposit_required"`
	DepositPaid         decimal.NullDecimal `json:"deposit_paid"`
	WaveInvoiceID       string              `json:"wave_invoice_id,omitempty"`
	InvoiceSent         bool                `json:"invoice_sent"`
	Notes               string              `json:"notes,omitempty"`
	InternalNotes       string              `json:"internal_notes,omitempty"`
	CreatedAt           *time.Time          `json:"created_at,omitempty"`
	StartedAt           *time.Time          `json:"started_at,omitempty"`
	CompletedAt         *time.Time          `json:"completed_at,omitempty"`
	Updates             []JobUpdate         `json:"updates"`
	Parts               []JobPart           `json:"parts"`
	Photos              []JobPhoto          `json:"photos"`
}

// CustomerRef referencia a cliente embebida en otros registros.
type CustomerRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// CustomerName nombre del cliente o vacío.
func (j ServiceJob) CustomerName() string {
	if j.Customer == nil {
		return ""
	}
	return j.Customer.Name
}

// VehicleLabel "año marca modelo" cuando los tres existen; si no, marca y modelo disponibles.
func (j ServiceJob) VehicleLabel() string {
	if j.VehicleYear != "" && j.VehicleMake != "" && j.VehicleModel != "" {
		return j.VehicleYear + " " + j.VehicleMake + " " + j.VehicleModel
	}
	return strings.TrimSpace(j.VehicleMake + " " + j.VehicleModel)
}

// CustomerView copia del trabajo sin notas internas ni entradas ocultas al cliente.
func (j ServiceJob) CustomerView() ServiceJob {
	out := j
	out.InternalNotes = ""
	out.Updates = make([]JobUpdate, 0, len(j.Updates))
	for _, u := range j.Updates {
		if u.VisibleToCustomer {
			out.Updates = append(out.Updates, u)
		}
	}
	out.Photos = make([]JobPhoto, 0, len(j.Photos))
	for _, p := range j.Photos {
		if p.VisibleToCustomer {
			out.Photos = append(out.Photos, p)
		}
	}
	return out
}

// JobUpdate entrada de bitácora del trabajo.
type JobUpdate struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	UpdateType        string     `json:"update_type"`
	VisibleToCustomer bool       `json:"is_visible_to_customer"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
	CreatedBy         string     `json:"created_by,omitempty"`
}

// JobPart pieza usada o pedida para el trabajo.
type JobPart struct {
	ID               int64               `json:"id"`
	Name             string              `json:"name"`
	PartNumber       string              `json:"part_number,omitempty"`
	Quantity         int                 `json:"quantity"`
	UnitCost         decimal.NullDecimal `json:"unit_cost"`
	TotalCost        decimal.NullDecimal `json:"total_cost"`
	Supplier         string              `json:"supplier,omitempty"`
	Status           string              `json:"status,omitempty"`
	TrackingNumber   string              `json:"tracking_number,omitempty"`
	ExpectedDelivery *time.Time          `json:"expected_delivery,omitempty"`
}

// JobPhoto foto subida al trabajo (el archivo vive en el backend).
type JobPhoto struct {
	ID                int64      `json:"id"`
	Filename          string     `json:"filename"`
	Caption           string     `json:"caption,omitempty"`
	PhotoType         string     `json:"photo_type,omitempty"`
	VisibleToCustomer bool       `json:"is_visible_to_customer"`
	UploadedAt        *time.Time `json:"uploaded_at,omitempty"`
}

// InvoiceResult respuesta de generar factura para un trabajo.
type InvoiceResult struct {
	Message   string              `json:"message"`
	InvoiceID string              `json:"invoice_id,omitempty"`
	Total     decimal.NullDecimal `json:"total"`
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
