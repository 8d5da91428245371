package repository

import (
	"context"
	"time"

	"github.com/jhoicas/humble-crm/internal/domain/entity"
)

// AppointmentCreate alta de cita.
type AppointmentCreate struct {
	Title           string     `json:"title"`
	CustomerID      *int64     `json:"customer_id"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	AppointmentType string     `json:"appointment_type"`
	VehicleMake     string     `json:"vehicle_make,omitempty"`
	VehicleModel    string     `json:"vehicle_model,omitempty"`
	Notes           string     `json:"notes"`
}

// AppointmentPatch actualización parcial de cita.
type AppointmentPatch struct {
	Title      *string    `json:"title,omitempty"`
	StartTime  *time.Time `json:"start_time,omitempty"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
	CustomerID *int64     `json:"customer_id,omitempty"`
}

// AppointmentRepository define el puerto de citas del CRM.
type AppointmentRepository interface {
	CalendarEvents(ctx context.Context) ([]entity.CalendarEvent, error)
	Create(ctx context.Context, in AppointmentCreate) (*entity.Appointment, error)
	Update(ctx context.Context, id int64, patch AppointmentPatch) (*entity.Appointment, error)
	Delete(ctx context.Context, id int64) error
	Today(ctx context.Context) ([]entity.TodayAppointment, error)
	Reminders(ctx context.Context) ([]string, error)
}

// ExternalCalendar fuente de eventos externa (Google Calendar vía backend).
type ExternalCalendar interface {
	Events(ctx context.Context) ([]entity.CalendarEvent, error)
}
