// Package memory implementa repositorios en proceso, usados cuando no hay base de datos.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/jhoicas/humble-crm/internal/domain/entity"
	"github.com/jhoicas/humble-crm/internal/domain/repository"
)

var _ repository.ViewStateRepository = (*ViewStateRepo)(nil)

type viewKey struct{ owner, screen string }

// ViewStateRepo guarda el estado de vista en un mapa protegido por mutex.
// Se pierde al reiniciar el proceso.
type ViewStateRepo struct {
	mu    sync.RWMutex
	items map[viewKey]entity.ViewState
}

// NewViewStateRepo crea el repositorio vacío.
func NewViewStateRepo() *ViewStateRepo {
	return &ViewStateRepo{items: make(map[viewKey]entity.ViewState)}
}

// Get devuelve una copia; (nil, nil) si no existe.
func (r *ViewStateRepo) Get(_ context.Context, owner, screen string) (*entity.ViewState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	vs, ok := r.items[viewKey{owner, screen}]
	if !ok {
		return nil, nil
	}
	vs.Expanded = maps.Clone(vs.Expanded)
	return &vs, nil
}

// Save reemplaza el estado guardado.
func (r *ViewStateRepo) Save(_ context.Context, vs *entity.ViewState) error {
	cp := *vs
	cp.Expanded = maps.Clone(vs.Expanded)
	r.mu.Lock()
	r.items[viewKey{vs.Owner, vs.Screen}] = cp
	r.mu.Unlock()
	return nil
}
