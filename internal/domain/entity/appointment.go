package entity

import (
	"strconv"
	"strings"
	"time"
)

// Fuentes de eventos del calendario.
const (
	EventSourceCRM    = "crm"
	EventSourceGoogle = "google"
)

// AppointmentEventPrefix prefijo de id de las citas del CRM en el calendario unificado.
const AppointmentEventPrefix = "appt-"

// Tipos de cita que ofrece el formulario.
var appointmentTypes = []string{
	"Tune", "Service", "Project Drop Off", "Completion Date", "Personal", "Business", "Other",
}

// AppointmentTypes lista de tipos de cita aceptados.
func AppointmentTypes() []string { return append([]string(nil), appointmentTypes...) }

// IsValidAppointmentType indica si t es un tipo de cita aceptado.
func IsValidAppointmentType(t string) bool { return contains(appointmentTypes, t) }

// Appointment cita registrada en el CRM.
type Appointment struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	CustomerID      *int64     `json:"customer_id,omitempty"`
	Start           time.Time  `json:"start_time"`
	End             *time.Time `json:"end_time,omitempty"`
	AppointmentType string     `json:"appointment_type,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	VehicleMake     string     `json:"vehicle_make,omitempty"`
	VehicleModel    string     `json:"vehicle_model,omitempty"`
}

// TodayAppointment fila del widget "citas de hoy".
type TodayAppointment struct {
	ID       int64  `json:"id"`
	Customer string `json:"customer"`
	Type     string `json:"type"`
	Time     string `json:"time"`
}

// CalendarEvent evento ya normalizado para el widget de calendario.
type CalendarEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	AllDay      bool      `json:"all_day"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Source      string    `json:"source"`
}

// ParseAppointmentEventID quita el prefijo "appt-" y parsea el número.
func ParseAppointmentEventID(id string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimPrefix(id, AppointmentEventPrefix), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
