// Package customers contiene los casos de uso del listado y la edición de clientes.
package customers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/humble-crm/internal/application/dto"
	"github.com/jhoicas/humble-crm/internal/application/ports"
	"github.com/jhoicas/humble-crm/internal/domain"
	"github.com/jhoicas/humble-crm/internal/domain/entity"
	"github.com/jhoicas/humble-crm/internal/domain/listing"
	"github.com/jhoicas/humble-crm/internal/domain/repository"
)

const suggestLimit = 10 // máximo de sugerencias del autocompletado

// Query listado de clientes.
type Query struct {
	listing.Query
	WithOrdersOnly bool
}

// Spec búsqueda y orden del listado de clientes.
var Spec = listing.Spec[entity.Customer]{
	SearchFields: func(c entity.Customer) []string {
		fields := []string{c.Name, c.Email, c.Phone, c.Source}
		for _, o := range c.Orders {
			fields = append(fields, o.Source, o.InvoiceNumber, o.ExternalID)
		}
		return fields
	},
	SortKeys: map[string]listing.SortKey[entity.Customer]{
		"name":   listing.ByString(func(c entity.Customer) string { return c.Name }),
		"email":  listing.ByString(func(c entity.Customer) string { return c.Email }),
		"source": listing.ByString(func(c entity.Customer) string { return c.Source }),
		"orders": listing.ByInt(func(c entity.Customer) int { return len(c.Orders) }),
	},
}

// UseCase casos de uso de clientes.
type UseCase struct {
	repo     repository.CustomerRepository
	exporter ports.SpreadsheetExporter
}

// NewUseCase construye el caso de uso. exporter puede ser nil si no se exporta.
func NewUseCase(repo repository.CustomerRepository, exporter ports.SpreadsheetExporter) *UseCase {
	return &UseCase{repo: repo, exporter: exporter}
}

// List filtra, ordena y pagina los clientes.
func (uc *UseCase) List(ctx context.Context, q Query) (listing.Page[dto.CustomerRow], error) {
	all, err := uc.repo.List(ctx)
	if err != nil {
		return listing.Page[dto.CustomerRow]{}, fmt.Errorf("customers: listar: %w", err)
	}
	page := listing.Apply(all, specFor(q), q.Query)
	return dto.MapPage(page, dto.NewCustomerRow), nil
}

// Update envía el PATCH y devuelve el cliente releído del backend.
func (uc *UseCase) Update(ctx context.Context, id int64, in dto.UpdateCustomerRequest) (*entity.Customer, error) {
	patch := repository.CustomerPatch{Notes: in.Notes, VehicleMake: in.VehicleMake, VehicleModel: in.VehicleModel}
	if id <= 0 || patch.Empty() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Update(ctx, id, patch); err != nil {
		return nil, fmt.Errorf("customers: actualizar %d: %w", id, err)
	}
	return uc.Get(ctx, id)
}

// Get busca un cliente por id en el listado del backend (no hay endpoint de detalle).
func (uc *UseCase) Get(ctx context.Context, id int64) (*entity.Customer, error) {
	all, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("customers: leer %d: %w", id, err)
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("customers: cliente %d: %w", id, domain.ErrNotFound)
}

// FindOrCreate busca por nombre exacto sin distinguir mayúsculas; si no existe, lo crea.
// El booleano indica si hubo alta.
func (uc *UseCase) FindOrCreate(ctx context.Context, name, email, phone string) (*entity.Customer, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, domain.ErrInvalidInput
	}
	all, err := uc.repo.List(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("customers: buscar %q: %w", name, err)
	}
	if c := MatchByName(all, name); c != nil {
		return c, false, nil
	}
	created, err := uc.repo.Create(ctx, repository.CustomerCreate{
		Name:  name,
		Email: strings.TrimSpace(email),
		Phone: strings.TrimSpace(phone),
	})
	if err != nil {
		return nil, false, fmt.Errorf("customers: crear %q: %w", name, err)
	}
	return created, true, nil
}

// Suggest nombres que contienen el texto, ordenados, máximo 10.
func (uc *UseCase) Suggest(ctx context.Context, text string) ([]dto.CustomerSuggestion, error) {
	out := []dto.CustomerSuggestion{}
	if strings.TrimSpace(text) == "" {
		return out, nil
	}
	all, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("customers: sugerencias: %w", err)
	}
	byName := listing.Spec[entity.Customer]{
		SearchFields: func(c entity.Customer) []string { return []string{c.Name} },
		SortKeys:     map[string]listing.SortKey[entity.Customer]{"name": Spec.SortKeys["name"]},
	}
	for _, c := range listing.Ordered(all, byName, listing.Query{Search: text, SortField: "name"}) {
		if len(out) == suggestLimit {
			break
		}
		out = append(out, dto.CustomerSuggestion{ID: c.ID, Name: c.Name, Phone: c.Phone, Email: c.Email})
	}
	return out, nil
}

// Export todas las filas filtradas y ordenadas (sin paginar) como XLSX.
func (uc *UseCase) Export(ctx context.Context, q Query) ([]byte, error) {
	if uc.exporter == nil {
		return nil, fmt.Errorf("customers: exportación no configurada: %w", domain.ErrNotFound)
	}
	all, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("customers: exportar: %w", err)
	}
	sheet := ports.Sheet{
		Name:    "Customers",
		Headers: []string{"ID", "Name", "Email", "Phone", "Source", "Orders", "Vehicle", "Notes"},
	}
	for _, c := range listing.Ordered(all, specFor(q), q.Query) {
		sheet.Rows = append(sheet.Rows, []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			c.Email,
			c.Phone,
			c.Source,
			strconv.Itoa(len(c.Orders)),
			strings.TrimSpace(c.VehicleMake + " " + c.VehicleModel),
			c.Notes,
		})
	}
	return uc.exporter.Export(ctx, sheet)
}

// MatchByName cliente con el mismo nombre (sin distinguir mayúsculas), o nil.
func MatchByName(all []entity.Customer, name string) *entity.Customer {
	name = strings.TrimSpace(name)
	for i := range all {
		if strings.EqualFold(strings.TrimSpace(all[i].Name), name) {
			return &all[i]
		}
	}
	return nil
}

func specFor(q Query) listing.Spec[entity.Customer] {
	if !q.WithOrdersOnly {
		return Spec
	}
	return Spec.WithFilter(entity.Customer.HasOrders)
}
