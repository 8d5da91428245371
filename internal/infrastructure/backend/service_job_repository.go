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

var _ repository.ServiceJobRepository = (*ServiceJobRepo)(nil)

// ServiceJobRepo implementa ServiceJobRepository sobre /api/service-jobs.
type ServiceJobRepo struct {
	c *Client
}

// NewServiceJobRepo construye el adaptador.
func NewServiceJobRepo(c *Client) *ServiceJobRepo {
	return &ServiceJobRepo{c: c}
}

type wireJobUpdate struct {
	ID                int64    `json:"id"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	UpdateType        string   `json:"update_type"`
	VisibleToCustomer bool     `json:"is_visible_to_customer"`
	CreatedAt         flexTime `json:"created_at"`
	CreatedBy         string   `json:"created_by"`
}

type wireJobPart struct {
	ID               int64               `json:"id"`
	Name             string              `json:"name"`
	PartNumber       string              `json:"part_number"`
	Quantity         int                 `json:"quantity"`
	UnitCost         decimal.NullDecimal `json:"unit_cost"`
	TotalCost        decimal.NullDecimal `json:"total_cost"`
	Supplier         string              `json:"supplier"`
	Status           string              `json:"status"`
	TrackingNumber   string              `json:"tracking_number"`
	ExpectedDelivery flexTime            `json:"expected_delivery"`
}

type wireJobPhoto struct {
	ID                int64    `json:"id"`
	Filename          string   `json:"filename"`
	Caption           string   `json:"caption"`
	PhotoType         string   `json:"photo_type"`
	VisibleToCustomer bool     `json:"is_visible_to_customer"`
	UploadedAt        flexTime `json:"uploaded_at"`
}

type wireServiceJob struct {
	ID                  int64               `json:"id"`
	JobNumber           string              `json:"job_number"`
	Title               string              `json:"title"`
	Description         string              `json:"description"`
	CustomerID          int64               `json:"customer_id"`
	Customer            *wireCustomerRef    `json:"customer"`
	VehicleYear         flexString          `json:"vehicle_year"`
	VehicleMake         string              `json:"vehicle_make"`
	VehicleModel        string              `json:"vehicle_model"`
	VehicleVIN          string              `json:"vehicle_vin"`
	VehicleMileage      *int                `json:"vehicle_mileage"`
	Status              string              `json:"status"`
	Priority            string              `json:"priority"`
	EstimatedHours      decimal.NullDecimal `json:"estimated_hours"`
	ActualHours         decimal.NullDecimal `json:"actual_hours"`
	EstimatedCompletion flexTime            `json:"estimated_completion"`
	QuotedTotal         decimal.NullDecimal `json:"quoted_total"`
	FinalTotal          decimal.NullDecimal `json:"final_total"`
	DepositRequired     decimal.NullDecimal `json:"deposit_required"`
	DepositPaid         decimal.NullDecimal `json:"deposit_paid"`
	WaveInvoiceID       flexString          `json:"wave_invoice_id"`
	InvoiceSent         bool                `json:"invoice_sent"`
	Notes               string              `json:"notes"`
	InternalNotes       string              `json:"internal_notes"`
	CreatedAt           flexTime            `json:"created_at"`
	StartedAt           flexTime            `json:"started_at"`
	CompletedAt         flexTime            `json:"completed_at"`
	Updates             []wireJobUpdate     `json:"updates"`
	Parts               []wireJobPart       `json:"parts"`
	Photos              []wireJobPhoto      `json:"photos"`
}

func (w wireServiceJob) toEntity() entity.ServiceJob {
	j := entity.ServiceJob{
		ID:                  w.ID,
		JobNumber:           w.JobNumber,
		Title:               w.Title,
		Description:         w.Description,
		CustomerID:          w.CustomerID,
		VehicleYear:         string(w.VehicleYear),
		VehicleMake:         w.VehicleMake,
		VehicleModel:        w.VehicleModel,
		VehicleVIN:          w.VehicleVIN,
		VehicleMileage:      w.VehicleMileage,
		Status:              w.Status,
		Priority:            w.Priority,
		EstimatedHours:      w.EstimatedHours,
		ActualHours:         w.ActualHours,
		EstimatedCompletion: w.EstimatedCompletion.Ptr(),
		QuotedTotal:         w.QuotedTotal,
		FinalTotal:          w.FinalTotal,
		DepositRequired:     w.DepositRequired,
		DepositPaid:         w.DepositPaid,
		WaveInvoiceID:       string(w.WaveInvoiceID),
		InvoiceSent:         w.InvoiceSent,
		Notes:               w.Notes,
		InternalNotes:       w.InternalNotes,
		CreatedAt:           w.CreatedAt.Ptr(),
		StartedAt:           w.StartedAt.Ptr(),
		CompletedAt:         w.CompletedAt.Ptr(),
		Updates:             make([]entity.JobUpdate, 0, len(w.Updates)),
		Parts:               make([]entity.JobPart, 0, len(w.Parts)),
		Photos:              make([]entity.JobPhoto, 0, len(w.Photos)),
	}
	if j.Status == "" {
		j.Status = entity.JobStatusQuoted
	}
	if j.Priority == "" {
		j.Priority = entity.PriorityNormal
	}
	if w.Customer != nil {
		j.Customer = &entity.CustomerRef{ID: w.Customer.ID, Name: w.Customer.Name, Email: w.Customer.Email, Phone: w.Customer.Phone}
	}
	for _, u := range w.Updates {
		j.Updates = append(j.Updates, entity.JobUpdate{
			ID: u.ID, Title: u.Title, Description: u.Description, UpdateType: u.UpdateType,
			VisibleToCustomer: u.VisibleToCustomer, CreatedAt: u.CreatedAt.Ptr(), CreatedBy: u.CreatedBy,
		})
	}
	for _, p := range w.Parts {
		j.Parts = append(j.Parts, entity.JobPart{
			ID: p.ID, Name: p.Name, PartNumber: p.PartNumber, Quantity: p.Quantity,
			UnitCost: p.UnitCost, TotalCost: p.TotalCost, Supplier: p.Supplier, Status: p.Status,
			TrackingNumber: p.TrackingNumber, ExpectedDelivery: p.ExpectedDelivery.Ptr(),
		})
	}
	for _, p := range w.Photos {
		j.Photos = append(j.Photos, entity.JobPhoto{
			ID: p.ID, Filename: p.Filename, Caption: p.Caption, PhotoType: p.PhotoType,
			VisibleToCustomer: p.VisibleToCustomer, UploadedAt: p.UploadedAt.Ptr(),
		})
	}
	return j
}

// List lista trabajos; el backend filtra por estado y cliente.
func (r *ServiceJobRepo) List(ctx context.Context, f repository.ServiceJobFilter) ([]entity.ServiceJob, error) {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.CustomerID > 0 {
		q.Set("customer_id", strconv.FormatInt(f.CustomerID, 10))
	}
	var raw []wireServiceJob
	if err := r.c.get(ctx, "/api/service-jobs/", q, &raw); err != nil {
		return nil, err
	}
	out := make([]entity.ServiceJob, 0, len(raw))
	for _, w := range raw {
		out = append(out, w.toEntity())
	}
	return out, nil
}

// GetByID devuelve el trabajo con bitácora, piezas y fotos.
func (r *ServiceJobRepo) GetByID(ctx context.Context, id int64) (*entity.ServiceJob, error) {
	var w wireServiceJob
	if err := r.c.get(ctx, jobPath(id), nil, &w); err != nil {
		return nil, err
	}
	j := w.toEntity()
	return &j, nil
}

// Create crea el trabajo; el backend asigna job_number.
func (r *ServiceJobRepo) Create(ctx context.Context, in repository.ServiceJobCreate) (*entity.ServiceJob, error) {
	var w wireServiceJob
	if err := r.c.post(ctx, "/api/service-jobs/", in, &w); err != nil {
		return nil, err
	}
	j := w.toEntity()
	return &j, nil
}

// Update aplica un PATCH parcial.
func (r *ServiceJobRepo) Update(ctx context.Context, id int64, patch repository.ServiceJobPatch) error {
	return r.c.patch(ctx, jobPath(id), patch, nil)
}

// Delete elimina el trabajo y sus hijos.
func (r *ServiceJobRepo) Delete(ctx context.Context, id int64) error {
	return r.c.delete(ctx, jobPath(id))
}

// AddUpdate agrega una entrada de bitácora.
func (r *ServiceJobRepo) AddUpdate(ctx context.Context, jobID int64, in repository.JobUpdateCreate) error {
	return r.c.post(ctx, jobPath(jobID)+"/updates", in, nil)
}

// DeleteUpdate elimina una entrada de bitácora.
func (r *ServiceJobRepo) DeleteUpdate(ctx context.Context, updateID int64) error {
	return r.c.delete(ctx, "/api/service-jobs/updates/"+itoa(updateID))
}

// AddPart agrega una pieza.
func (r *ServiceJobRepo) AddPart(ctx context.Context, jobID int64, in repository.JobPartCreate) error {
	return r.c.post(ctx, jobPath(jobID)+"/parts", in, nil)
}

// DeletePart elimina una pieza.
func (r *ServiceJobRepo) DeletePart(ctx context.Context, partID int64) error {
	return r.c.delete(ctx, "/api/service-jobs/parts/"+itoa(partID))
}

// UploadPhoto reenvía la foto como multipart; el almacenamiento es del backend.
func (r *ServiceJobRepo) UploadPhoto(ctx context.Context, jobID int64, in repository.PhotoUpload) error {
	fields := map[string]string{
		"caption":                in.Caption,
		"photo_type":             in.PhotoType,
		"is_visible_to_customer": strconv.FormatBool(in.VisibleToCustomer),
		"uploaded_by":            in.UploadedBy,
	}
	return r.c.upload(ctx, jobPath(jobID)+"/photos", "file", in.Filename, in.ContentType, in.Content, fields, nil)
}

// GenerateInvoice pide al backend la factura Wave del trabajo.
func (r *ServiceJobRepo) GenerateInvoice(ctx context.Context, jobID int64) (*entity.InvoiceResult, error) {
	var raw struct {
		Message   string              `json:"message"`
		InvoiceID flexString          `json:"invoice_id"`
		Total     decimal.NullDecimal `json:"total"`
	}
	if err := r.c.post(ctx, jobPath(jobID)+"/generate-invoice", nil, &raw); err != nil {
		return nil, err
	}
	return &entity.InvoiceResult{Message: raw.Message, InvoiceID: string(raw.InvoiceID), Total: raw.Total}, nil
}

func jobPath(id int64) string {
	return fmt.Sprintf("/api/service-jobs/%d", id)
}
