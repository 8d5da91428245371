package dto

import (
	"time"

	"github.com/jhoicas/humble-crm/internal/domain/entity"
)

// AdminLoginRequest POST /api/auth/login.
type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// PortalLoginRequest POST /portal/login.
type PortalLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse sesión emitida.
type LoginResponse struct {
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expires_at"`
	Role       string    `json:"role"`
	CustomerID int64     `json:"customer_id,omitempty"`
}

// PortalOverview lo que ve el cliente en el portal.
type PortalOverview struct {
	Customer    entity.Customer     `json:"customer"`
	Invoices    []OrderRow          `json:"invoices"`
	ServiceJobs []entity.ServiceJob `json:"service_jobs"`
}

// SaveListStateRequest PUT /api/view-state/:screen.
type SaveListStateRequest struct {
	Search    string `json:"search" validate:"max=200"`
	Page      int    `json:"page" validate:"min=0"`
	PageSize  int    `json:"page_size" validate:"min=0,max=100"`
	SortField string `json:"sort_field" validate:"max=50"`
	SortDesc  bool   `json:"sort_desc"`
}

// ToggleResponse resultado de abrir/cerrar una fila.
type ToggleResponse struct {
	ID       string `json:"id"`
	Expanded bool   `json:"expanded"`
}
