package dto

import (
	"time"

	"github.com/jhoicas/humble-crm/internal/domain/entity"
)

// CalendarEventsResponse eventos unificados; Warnings lista fuentes que fallaron.
type CalendarEventsResponse struct {
	Events   []entity.CalendarEvent `json:"events"`
	Warnings []string               `json:"warnings,omitempty"`
}

// CreateAppointmentRequest POST /api/appointments. El cliente es opcional.
type CreateAppointmentRequest struct {
	Type         string     `json:"appointment_type" validate:"required,appointment_type"`
	CustomerID   *int64     `json:"customer_id"`
	CustomerName string     `json:"customer_name" validate:"omitempty,max=200"`
	Phone        string     `json:"phone" validate:"omitempty,max=50"`
	VehicleMake  string     `json:"vehicle_make" validate:"omitempty,max=100"`
	VehicleModel string     `json:"vehicle_model" validate:"omitempty,max=100"`
	Title        string     `json:"title" validate:"omitempty,max=200"`
	Start        time.Time  `json:"start_time" validate:"required"`
	End          *time.Time `json:"end_time"`
	Notes        string     `json:"notes"`
}

// UpdateAppointmentRequest PATCH /api/appointments/:id.
type UpdateAppointmentRequest struct {
	Title *string    `json:"title" validate:"omitempty,max=200"`
	Start *time.Time `json:"start_time"`
	End   *time.Time `json:"end_time"`
	Notes *string    `json:"notes"`
}
