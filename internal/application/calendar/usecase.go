// Package calendar unifica los eventos de Google Calendar y las citas del CRM, y
// administra el alta, edición y borrado de citas.
package calendar

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/humble-crm/internal/application/customers"
	"github.com/jhoicas/humble-crm/internal/application/dto"
	"github.com/jhoicas/humble-crm/internal/domain"
	"github.com/jhoicas/humble-crm/internal/domain/entity"
	"github.com/jhoicas/humble-crm/internal/domain/repository"
)

// Valores por defecto del widget de próximas citas.
const (
	DefaultUpcomingDays  = 7
	DefaultUpcomingLimit = 5
)

const metaTimeLayout = "2006-01-02 15:04"

// Config parámetros del widget de próximas citas.
type Config struct {
	UpcomingDays  int
	UpcomingLimit int
}

// UseCase casos de uso del calendario.
type UseCase struct {
	appts     repository.AppointmentRepository
	external  repository.ExternalCalendar
	customers repository.CustomerRepository
	cfg       Config
	now       func() time.Time
}

// NewUseCase construye el caso de uso. external y customers pueden ser nil.
func NewUseCase(
	appts repository.AppointmentRepository,
	external repository.ExternalCalendar,
	customers repository.CustomerRepository,
	cfg Config,
) *UseCase {
	if cfg.UpcomingDays <= 0 {
		cfg.UpcomingDays = DefaultUpcomingDays
	}
	if cfg.UpcomingLimit <= 0 {
		cfg.UpcomingLimit = DefaultUpcomingLimit
	}
	return &UseCase{appts: appts, external: external, customers: customers, cfg: cfg, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Events trae Google y CRM en paralelo y los mezcla ordenados por inicio.
// Si una fuente falla se devuelve la otra con un aviso; si fallan ambas, error.
func (uc *UseCase) Events(ctx context.Context) (*dto.CalendarEventsResponse, error) {
	type result struct {
		events []entity.CalendarEvent
		err    error
	}

	crmCh := make(chan result, 1)
	googleCh := make(chan result, 1)

	go func() {
		ev, err := uc.appts.CalendarEvents(ctx)
		crmCh <- result{ev, err}
	}()
	go func() {
		if uc.external == nil {
			googleCh <- result{}
			return
		}
		ev, err := uc.external.Events(ctx)
		googleCh <- result{ev, err}
	}()

	crm := <-crmCh
	google := <-googleCh

	if crm.err != nil && google.err != nil {
		return nil, fmt.Errorf("calendar: eventos: %w", crm.err)
	}

	out := &dto.CalendarEventsResponse{Events: make([]entity.CalendarEvent, 0, len(crm.events)+len(google.events))}
	if google.err != nil {
		out.Warnings = append(out.Warnings, "google calendar unavailable: "+google.err.Error())
	} else {
		out.Events = append(out.Events, google.events...)
	}
	if crm.err != nil {
		out.Warnings = append(out.Warnings, "crm appointments unavailable: "+crm.err.Error())
	} else {
		out.Events = append(out.Events, crm.events...)
	}
	sortByStart(out.Events)
	return out, nil
}

// Upcoming citas del CRM que empiezan entre ahora y ahora+N días, máximo M.
func (uc *UseCase) Upcoming(ctx context.Context) ([]entity.CalendarEvent, error) {
	events, err := uc.appts.CalendarEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("calendar: próximas: %w", err)
	}
	now := uc.now()
	until := now.AddDate(0, 0, uc.cfg.UpcomingDays)

	out := make([]entity.CalendarEvent, 0, uc.cfg.UpcomingLimit)
	for _, e := range events {
		if !e.Start.Before(now) && !e.Start.After(until) {
			out = append(out, e)
		}
	}
	sortByStart(out)
	if len(out) > uc.cfg.UpcomingLimit {
		out = out[:uc.cfg.UpcomingLimit]
	}
	return out, nil
}

// CreateAppointment arma título y notas con los datos del formulario y crea la cita.
// El cliente es opcional: un nombre que no coincide no da de alta a nadie.
func (uc *UseCase) CreateAppointment(ctx context.Context, in dto.CreateAppointmentRequest) (*entity.Appointment, error) {
	if !entity.IsValidAppointmentType(in.Type) {
		return nil, fmt.Errorf("calendar: tipo de cita %q: %w", in.Type, domain.ErrInvalidInput)
	}
	if in.Start.IsZero() {
		return nil, fmt.Errorf("calendar: inicio requerido: %w", domain.ErrInvalidInput)
	}
	if in.End != nil && in.End.Before(in.Start) {
		return nil, fmt.Errorf("calendar: fin anterior al inicio: %w", domain.ErrInvalidInput)
	}

	name := strings.TrimSpace(in.CustomerName)
	phone := strings.TrimSpace(in.Phone)
	customerID := in.CustomerID
	if customerID == nil && name != "" && uc.customers != nil {
		all, err := uc.customers.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("calendar: buscar cliente: %w", err)
		}
		if c := customers.MatchByName(all, name); c != nil {
			id := c.ID
			customerID = &id
			if phone == "" {
				phone = c.Phone
			}
		}
	}

	created, err := uc.appts.Create(ctx, repository.AppointmentCreate{
		Title:           AppointmentTitle(in.Type, name, in.VehicleModel),
		CustomerID:      customerID,
		StartTime:       in.Start.UTC(),
		EndTime:         utcPtr(in.End),
		AppointmentType: in.Type,
		VehicleMake:     in.VehicleMake,
		VehicleModel:    in.VehicleModel,
		Notes:           MetaNote(in, name, phone) + in.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("calendar: crear cita: %w", err)
	}
	return created, nil
}

// UpdateAppointment edita título, horario o notas.
func (uc *UseCase) UpdateAppointment(ctx context.Context, id int64, in dto.UpdateAppointmentRequest) (*entity.Appointment, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Start != nil && in.End != nil && in.End.Before(*in.Start) {
		return nil, fmt.Errorf("calendar: fin anterior al inicio: %w", domain.ErrInvalidInput)
	}
	a, err := uc.appts.Update(ctx, id, repository.AppointmentPatch{
		Title:     in.Title,
		StartTime: utcPtr(in.Start),
		EndTime:   utcPtr(in.End),
		Notes:     in.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("calendar: actualizar cita %d: %w", id, err)
	}
	return a, nil
}

// DeleteEvent borra una cita del CRM a partir del id del calendario ("appt-12").
// Los eventos de Google no se borran desde aquí.
func (uc *UseCase) DeleteEvent(ctx context.Context, eventID string) error {
	id, ok := entity.ParseAppointmentEventID(strings.TrimSpace(eventID))
	if !ok {
		return fmt.Errorf("calendar: evento %q no es una cita del CRM: %w", eventID, domain.ErrForbidden)
	}
	if err := uc.appts.Delete(ctx, id); err != nil {
		return fmt.Errorf("calendar: eliminar cita %d: %w", id, err)
	}
	return nil
}

// AppointmentTitle "{tipo} - {cliente} - {modelo}".
func AppointmentTitle(kind, customer, model string) string {
	return strings.TrimSpace(kind + " - " + customer + " - " + model)
}

// MetaNote encabezado de notas con los datos del formulario.
func MetaNote(in dto.CreateAppointmentRequest, name, phone string) string {
	if phone == "" {
		phone = "N/A"
	}
	end := ""
	if in.End != nil {
		end = "End: " + in.End.Format(metaTimeLayout)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", name)
	fmt.Fprintf(&b, "Phone: %s\n", phone)
	fmt.Fprintf(&b, "Vehicle: %s %s\n", in.VehicleMake, in.VehicleModel)
	fmt.Fprintf(&b, "Type: %s\n", in.Type)
	fmt.Fprintf(&b, "Title: %s\n", in.Title)
	fmt.Fprintf(&b, "Start: %s\n", in.Start.Format(metaTimeLayout))
	b.WriteString(end + "\n\n")
	b.WriteString("----------------------------\n\n")
	return b.String()
}

func sortByStart(events []entity.CalendarEvent) {
	slices.SortStableFunc(events, func(a, b entity.CalendarEvent) int { return a.Start.Compare(b.Start) })
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
