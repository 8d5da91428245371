// Package servicejobs contiene los casos de uso de trabajos de taller: listado, detalle,
// bitácora, piezas, fotos y facturación.
package servicejobs

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/humble-crm/internal/application/dto"
	"github.com/jhoicas/humble-crm/internal/domain"
	"github.com/jhoicas/humble-crm/internal/domain/entity"
	"github.com/jhoicas/humble-crm/internal/domain/listing"
	"github.com/jhoicas/humble-crm/internal/domain/repository"
	"github.com/jhoicas/humble-crm/pkg/logger"
)

// Valores fijos de las entradas creadas desde el panel.
const (
	DefaultUpdateTitle = "Progress Update"
	UpdateTypeProgress = "progress"
	PhotoTypeProgress  = entity.PhotoTypeProgress
	CreatedByAdmin     = "Admin"
)

// StatusAll desactiva el filtro de estado.
const StatusAll = "all"

// Query listado de trabajos.
type Query struct {
	listing.Query
	Status string
}

// CustomerResolver busca o crea el cliente de un trabajo nuevo.
type CustomerResolver interface {
	FindOrCreate(ctx context.Context, name, email, phone string) (*entity.Customer, bool, error)
}

// Spec búsqueda y orden del listado de trabajos.
var Spec = listing.Spec[entity.ServiceJob]{
	SearchFields: func(j entity.ServiceJob) []string {
		return []string{j.JobNumber, j.Title, j.CustomerName(), strings.TrimSpace(j.VehicleMake + " " + j.VehicleModel)}
	},
	SortKeys: map[string]listing.SortKey[entity.ServiceJob]{
		"job_number":           listing.ByString(func(j entity.ServiceJob) string { return j.JobNumber }),
		"title":                listing.ByString(func(j entity.ServiceJob) string { return j.Title }),
		"customer":             listing.ByString(entity.ServiceJob.CustomerName),
		"vehicle":              listing.ByString(entity.ServiceJob.VehicleLabel),
		"status":               listing.ByInt(func(j entity.ServiceJob) int { return statusRank(j.Status) }),
		"priority":             listing.ByInt(func(j entity.ServiceJob) int { return priorityRank(j.Priority) }),
		"created_at":           listing.ByTime(func(j entity.ServiceJob) *time.Time { return j.CreatedAt }),
		"estimated_completion": listing.ByTime(func(j entity.ServiceJob) *time.Time { return j.EstimatedCompletion }),
		"quoted_total":         listing.ByDecimal(func(j entity.ServiceJob) decimal.NullDecimal { return j.QuotedTotal }),
	},
}

// UseCase casos de uso de trabajos de servicio.
type UseCase struct {
	repo      repository.ServiceJobRepository
	customers repository.CustomerRepository
	resolver  CustomerResolver
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	repo repository.ServiceJobRepository,
	customers repository.CustomerRepository,
	resolver CustomerResolver,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{repo: repo, customers: customers, resolver: resolver, log: log.Component("servicejobs")}
}

// List filtra, ordena y pagina. El estado "all" o vacío no filtra.
func (uc *UseCase) List(ctx context.Context, q Query) (listing.Page[dto.ServiceJobRow], error) {
	status := strings.TrimSpace(q.Status)
	if status == StatusAll {
		status = ""
	}
	if status != "" && !entity.IsValidJobStatus(status) {
		return listing.Page[dto.ServiceJobRow]{}, fmt.Errorf("servicejobs: estado %q: %w", status, domain.ErrInvalidInput)
	}
	all, err := uc.repo.List(ctx, repository.ServiceJobFilter{Status: status})
	if err != nil {
		return listing.Page[dto.ServiceJobRow]{}, fmt.Errorf("servicejobs: listar: %w", err)
	}
	spec := Spec
	if status != "" {
		spec = spec.WithFilter(func(j entity.ServiceJob) bool { return j.Status == status })
	}
	return dto.MapPage(listing.Apply(all, spec, q.Query), dto.NewServiceJobRow), nil
}

// ForCustomer trabajos de un cliente, tal como los ve el cliente.
func (uc *UseCase) ForCustomer(ctx context.Context, customerID int64) ([]entity.ServiceJob, error) {
	all, err := uc.repo.List(ctx, repository.ServiceJobFilter{CustomerID: customerID})
	if err != nil {
		return nil, fmt.Errorf("servicejobs: trabajos del cliente %d: %w", customerID, err)
	}
	out := make([]entity.ServiceJob, 0, len(all))
	for _, j := range all {
		if j.CustomerID == customerID {
			out = append(out, j.CustomerView())
		}
	}
	return out, nil
}

// Get detalle del trabajo.
func (uc *UseCase) Get(ctx context.Context, id int64) (*entity.ServiceJob, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	j, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("servicejobs: trabajo %d: %w", id, err)
	}
	return j, nil
}

// Create da de alta el trabajo. Sin customer_id se busca o crea el cliente por nombre.
// Si hay marca o modelo, se copian al cliente.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateServiceJobRequest) (*entity.ServiceJob, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("servicejobs: título requerido: %w", domain.ErrInvalidInput)
	}
	priority := strings.TrimSpace(in.Priority)
	if priority == "" {
		priority = entity.PriorityNormal
	}
	if !entity.IsValidPriority(priority) {
		return nil, fmt.Errorf("servicejobs: prioridad %q: %w", priority, domain.ErrInvalidInput)
	}

	customerID := in.CustomerID
	if customerID <= 0 {
		if uc.resolver == nil || strings.TrimSpace(in.CustomerName) == "" {
			return nil, fmt.Errorf("servicejobs: cliente requerido: %w", domain.ErrInvalidInput)
		}
		c, _, err := uc.resolver.FindOrCreate(ctx, in.CustomerName, in.CustomerEmail, in.CustomerPhone)
		if err != nil {
			return nil, fmt.Errorf("servicejobs: resolver cliente: %w", err)
		}
		customerID = c.ID
	}

	created, err := uc.repo.Create(ctx, repository.ServiceJobCreate{
		CustomerID:          customerID,
		Title:               title,
		Description:         in.Description,
		VehicleYear:         in.VehicleYear,
		VehicleMake:         in.VehicleMake,
		VehicleModel:        in.VehicleModel,
		VehicleVIN:          in.VehicleVIN,
		VehicleMileage:      in.VehicleMileage,
		Priority:            priority,
		EstimatedHours:      nullable(in.EstimatedHours),
		QuotedTotal:         nullable(in.QuotedTotal),
		DepositRequired:     nullable(in.DepositRequired),
		EstimatedCompletion: in.EstimatedCompletion,
		Notes:               in.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("servicejobs: crear: %w", err)
	}

	if uc.customers != nil && (in.VehicleMake != "" || in.VehicleModel != "") {
		patch := repository.CustomerPatch{}
		if in.VehicleMake != "" {
			patch.VehicleMake = &in.VehicleMake
		}
		if in.VehicleModel != "" {
			patch.VehicleModel = &in.VehicleModel
		}
		// el trabajo ya existe; un fallo aquí no revierte el alta
		if err := uc.customers.Update(ctx, customerID, patch); err != nil {
			uc.log.Warn().Err(err).Int64("customer_id", customerID).Int64("job_id", created.ID).
				Msg("no se pudo copiar el vehículo al cliente")
		}
	}
	return uc.Get(ctx, created.ID)
}

// Update cambia estado, prioridad, horas, importes o notas.
func (uc *UseCase) Update(ctx context.Context, id int64, in dto.UpdateServiceJobRequest) (*entity.ServiceJob, error) {
	if in.Status != nil && !entity.IsValidJobStatus(*in.Status) {
		return nil, fmt.Errorf("servicejobs: estado %q: %w", *in.Status, domain.ErrInvalidInput)
	}
	if in.Priority != nil && !entity.IsValidPriority(*in.Priority) {
		return nil, fmt.Errorf("servicejobs: prioridad %q: %w", *in.Priority, domain.ErrInvalidInput)
	}
	patch := repository.ServiceJobPatch(in)
	if err := uc.repo.Update(ctx, id, patch); err != nil {
		return nil, fmt.Errorf("servicejobs: actualizar %d: %w", id, err)
	}
	return uc.Get(ctx, id)
}

// Delete elimina el trabajo.
func (uc *UseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("servicejobs: eliminar %d: %w", id, err)
	}
	return nil
}

// AddUpdate agrega una entrada de progreso visible para el cliente.
func (uc *UseCase) AddUpdate(ctx context.Context, jobID int64, in dto.AddJobUpdateRequest) (*entity.ServiceJob, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return nil, fmt.Errorf("servicejobs: descripción requerida: %w", domain.ErrInvalidInput)
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = DefaultUpdateTitle
	}
	err := uc.repo.AddUpdate(ctx, jobID, repository.JobUpdateCreate{
		Title:             title,
		Description:       desc,
		UpdateType:        UpdateTypeProgress,
		VisibleToCustomer: true,
		CreatedBy:         CreatedByAdmin,
	})
	if err != nil {
		return nil, fmt.Errorf("servicejobs: agregar actualización a %d: %w", jobID, err)
	}
	return uc.Get(ctx, jobID)
}

// DeleteUpdate elimina una entrada de bitácora y relee el trabajo.
// El backend borra por id de entrada, así que primero se confirma que pertenece al trabajo.
func (uc *UseCase) DeleteUpdate(ctx context.Context, jobID, updateID int64) (*entity.ServiceJob, error) {
	job, err := uc.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !slices.ContainsFunc(job.Updates, func(u entity.JobUpdate) bool { return u.ID == updateID }) {
		return nil, fmt.Errorf("servicejobs: actualización %d en trabajo %d: %w", updateID, jobID, domain.ErrNotFound)
	}
	if err := uc.repo.DeleteUpdate(ctx, updateID); err != nil {
		return nil, fmt.Errorf("servicejobs: eliminar actualización %d: %w", updateID, err)
	}
	return uc.Get(ctx, jobID)
}

// AddPart agrega una pieza. La cantidad por defecto es 1.
func (uc *UseCase) AddPart(ctx context.Context, jobID int64, in dto.AddJobPartRequest) (*entity.ServiceJob, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("servicejobs: nombre de pieza requerido: %w", domain.ErrInvalidInput)
	}
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 1 {
		return nil, fmt.Errorf("servicejobs: cantidad %d: %w", qty, domain.ErrInvalidInput)
	}
	err := uc.repo.AddPart(ctx, jobID, repository.JobPartCreate{
		Name:       name,
		Quantity:   qty,
		UnitCost:   nullable(in.UnitCost),
		Supplier:   in.Supplier,
		PartNumber: in.PartNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("servicejobs: agregar pieza a %d: %w", jobID, err)
	}
	return uc.Get(ctx, jobID)
}

// DeletePart elimina una pieza y relee el trabajo.
func (uc *UseCase) DeletePart(ctx context.Context, jobID, partID int64) (*entity.ServiceJob, error) {
	job, err := uc.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !slices.ContainsFunc(job.Parts, func(p entity.JobPart) bool { return p.ID == partID }) {
		return nil, fmt.Errorf("servicejobs: pieza %d en trabajo %d: %w", partID, jobID, domain.ErrNotFound)
	}
	if err := uc.repo.DeletePart(ctx, partID); err != nil {
		return nil, fmt.Errorf("servicejobs: eliminar pieza %d: %w", partID, err)
	}
	return uc.Get(ctx, jobID)
}

// UploadPhoto reenvía la foto al backend; el almacenamiento no es asunto de este servicio.
func (uc *UseCase) UploadPhoto(ctx context.Context, jobID int64, in repository.PhotoUpload) (*entity.ServiceJob, error) {
	if in.Content == nil || strings.TrimSpace(in.Filename) == "" {
		return nil, fmt.Errorf("servicejobs: archivo requerido: %w", domain.ErrInvalidInput)
	}
	if in.PhotoType == "" {
		in.PhotoType = PhotoTypeProgress
	}
	if in.UploadedBy == "" {
		in.UploadedBy = CreatedByAdmin
	}
	if err := uc.repo.UploadPhoto(ctx, jobID, in); err != nil {
		return nil, fmt.Errorf("servicejobs: subir foto a %d: %w", jobID, err)
	}
	return uc.Get(ctx, jobID)
}

// GenerateInvoice pide al backend la factura del trabajo y lo relee.
func (uc *UseCase) GenerateInvoice(ctx context.Context, jobID int64) (*entity.InvoiceResult, *entity.ServiceJob, error) {
	res, err := uc.repo.GenerateInvoice(ctx, jobID)
	if err != nil {
		return nil, nil, fmt.Errorf("servicejobs: facturar %d: %w", jobID, err)
	}
	job, err := uc.Get(ctx, jobID)
	if err != nil {
		return res, nil, err
	}
	return res, job, nil
}

func nullable(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func statusRank(s string) int {
	for i, st := range entity.JobStatuses() {
		if st == s {
			return i
		}
	}
	return len(entity.JobStatuses())
}

func priorityRank(p string) int {
	switch p {
	case entity.PriorityUrgent:
		return 0
	case entity.PriorityHigh:
		return 1
	case entity.PriorityNormal:
		return 2
	case entity.PriorityLow:
		return 3
	default:
		return 4
	}
}
