package backend

import (
	"context"
	"fmt"

	"github.com/jhoicas/humble-crm/internal/domain/entity"
	"github.com/jhoicas/humble-crm/internal/domain/repository"
)

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

// AppointmentRepo implementa AppointmentRepository sobre /api/appointments.
type AppointmentRepo struct {
	c *Client
}

// NewAppointmentRepo construye el adaptador.
func NewAppointmentRepo(c *Client) *AppointmentRepo {
	return &AppointmentRepo{c: c}
}

type wireAppointment struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	CustomerID      *int64   `json:"customer_id"`
	StartTime       flexTime `json:"start_time"`
	EndTime         flexTime `json:"end_time"`
	AppointmentType string   `json:"appointment_type"`
	Notes           string   `json:"notes"`
	VehicleMake     string   `json:"vehicle_make"`
	VehicleModel    string   `json:"vehicle_model"`
}

func (w wireAppointment) toEntity() *entity.Appointment {
	a := &entity.Appointment{
		ID:              w.ID,
		Title:           w.Title,
		CustomerID:      w.CustomerID,
		End:             w.EndTime.Ptr(),
		AppointmentType: w.AppointmentType,
		Notes:           w.Notes,
		VehicleMake:     w.VehicleMake,
		VehicleModel:    w.VehicleModel,
	}
	if t := w.StartTime.Ptr(); t != nil {
		a.Start = *t
	}
	return a
}

// wireCRMEvent cita ya formateada como evento por /appointments/calendar-events.
type wireCRMEvent struct {
	ID          flexString `json:"id"`
	Title       string     `json:"title"`
	Start       flexTime   `json:"start"`
	End         flexTime   `json:"end"`
	Tooltip     string     `json:"tooltip"`
	Description string     `json:"description"`
}

// CalendarEvents citas del CRM como eventos. Sin fin explícito, el fin es el inicio.
func (r *AppointmentRepo) CalendarEvents(ctx context.Context) ([]entity.CalendarEvent, error) {
	var raw []wireCRMEvent
	if err := r.c.get(ctx, "/api/appointments/calendar-events", nil, &raw); err != nil {
		return nil, err
	}
	out := make([]entity.CalendarEvent, 0, len(raw))
	for _, w := range raw {
		start := w.Start.Ptr()
		if start == nil {
			continue
		}
		end := *start
		if e := w.End.Ptr(); e != nil {
			end = *e
		}
		out = append(out, entity.CalendarEvent{
			ID:          string(w.ID),
			Title:       w.Title,
			Start:       *start,
			End:         end,
			Description: firstNonEmpty(w.Description, w.Tooltip),
			Source:      entity.EventSourceCRM,
		})
	}
	return out, nil
}

// Create crea la cita.
func (r *AppointmentRepo) Create(ctx context.Context, in repository.AppointmentCreate) (*entity.Appointment, error) {
	var w wireAppointment
	if err := r.c.post(ctx, "/api/appointments/", in, &w); err != nil {
		return nil, err
	}
	return w.toEntity(), nil
}

// Update aplica un PATCH parcial y devuelve la cita actualizada.
func (r *AppointmentRepo) Update(ctx context.Context, id int64, patch repository.AppointmentPatch) (*entity.Appointment, error) {
	var w wireAppointment
	if err := r.c.patch(ctx, fmt.Sprintf("/api/appointments/%d", id), patch, &w); err != nil {
		return nil, err
	}
	return w.toEntity(), nil
}

// Delete elimina la cita.
func (r *AppointmentRepo) Delete(ctx context.Context, id int64) error {
	return r.c.delete(ctx, fmt.Sprintf("/api/appointments/%d", id))
}

// Today citas de hoy.
func (r *AppointmentRepo) Today(ctx context.Context) ([]entity.TodayAppointment, error) {
	var out []entity.TodayAppointment
	if err := r.c.get(ctx, "/api/appointments/today", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Reminders recordatorios ya formateados por el backend.
func (r *AppointmentRepo) Reminders(ctx context.Context) ([]string, error) {
	var out []string
	if err := r.c.get(ctx, "/api/dashboard/reminders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
