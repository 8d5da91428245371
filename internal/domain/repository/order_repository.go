package repository

import (
	"context"

	"github.com/jhoicas/humble-crm/internal/domain/entity"
)

// OrderRepository define el puerto de lectura de órdenes (solo lectura: las crea la sincronización).
type OrderRepository interface {
	List(ctx context.Context) ([]entity.Order, error)
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	Latest(ctx context.Context, limit int) ([]entity.LatestOrder, error)
}
