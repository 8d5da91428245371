package repository

import (
	"context"

	"github.com/jhoicas/humble-crm/internal/domain/entity"
)

// ViewStateRepository persiste el estado de vista por usuario y pantalla.
// Get devuelve (nil, nil) si aún no hay estado guardado.
type ViewStateRepository interface {
	Get(ctx context.Context, owner, screen string) (*entity.ViewState, error)
	Save(ctx context.Context, vs *entity.ViewState) error
}
