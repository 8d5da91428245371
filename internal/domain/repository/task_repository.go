package repository

import (
	"context"

	"github.com/jhoicas/humble-crm/internal/domain/entity"
)

// TaskRepository define el puerto de la lista de pendientes.
type TaskRepository interface {
	List(ctx context.Context) ([]entity.Task, error)
	Create(ctx context.Context, text string) error
	SetDone(ctx context.Context, id int64, done bool) error
	Delete(ctx context.Context, id int64) error
}

// DropShipRepository define el puerto de lectura de órdenes drop-ship.
type DropShipRepository interface {
	List(ctx context.Context) ([]entity.DropShipOrder, error)
}

// PortalAuthenticator verifica credenciales de clientes del portal y devuelve su customer_id.
type PortalAuthenticator interface {
	Login(ctx context.Context, email, password string) (int64, error)
}
