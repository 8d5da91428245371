// Package viewstate guarda por usuario y pantalla qué filas están abiertas y el estado
// del listado (búsqueda, página, tamaño y orden).
package viewstate

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/humble-crm/internal/application/dto"
	"github.com/jhoicas/humble-crm/internal/domain"
	"github.com/jhoicas/humble-crm/internal/domain/entity"
	"github.com/jhoicas/humble-crm/internal/domain/listing"
	"github.com/jhoicas/humble-crm/internal/domain/repository"
)

type sortDefault struct {
	field string
	desc  bool
}

// Orden inicial de cada pantalla.
var screens = map[string]sortDefault{
	entity.ScreenCustomers:   {field: "name"},
	entity.ScreenOrders:      {field: "date", desc: true},
	entity.ScreenServiceJobs: {field: "created_at", desc: true},
	entity.ScreenDropShip:    {},
}

// IsKnownScreen indica si la pantalla admite estado de vista.
func IsKnownScreen(screen string) bool {
	_, ok := screens[screen]
	return ok
}

// UseCase casos de uso del estado de vista.
type UseCase struct {
	repo            repository.ViewStateRepository
	defaultPageSize int
	now             func() time.Time

	// serializa leer-modificar-guardar: el último toggle gana.
	mu sync.Mutex
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ViewStateRepository, defaultPageSize int) *UseCase {
	return &UseCase{repo: repo, defaultPageSize: listing.NormalizePageSize(defaultPageSize), now: time.Now}
}

// Toggle invierte una fila y devuelve el nuevo valor.
func (uc *UseCase) Toggle(ctx context.Context, owner, screen, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, domain.ErrInvalidInput
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	vs, err := uc.load(ctx, owner, screen)
	if err != nil {
		return false, err
	}
	open := !vs.Expanded[id]
	if open {
		vs.Expanded[id] = true
	} else {
		delete(vs.Expanded, id)
	}
	if err := uc.save(ctx, vs); err != nil {
		return false, err
	}
	return open, nil
}

// Expanded ids de filas abiertas, ordenados.
func (uc *UseCase) Expanded(ctx context.Context, owner, screen string) ([]string, error) {
	vs, err := uc.load(ctx, owner, screen)
	if err != nil {
		return nil, err
	}
	return vs.ExpandedIDs(), nil
}

// ListState estado del listado; si no hay nada guardado, el inicial de la pantalla.
func (uc *UseCase) ListState(ctx context.Context, owner, screen string) (listing.State, error) {
	vs, err := uc.load(ctx, owner, screen)
	if err != nil {
		return listing.State{}, err
	}
	return vs.List, nil
}

// SaveListState reemplaza el estado del listado.
func (uc *UseCase) SaveListState(ctx context.Context, owner, screen string, s listing.State) (listing.State, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	vs, err := uc.load(ctx, owner, screen)
	if err != nil {
		return listing.State{}, err
	}
	vs.List = normalize(s)
	if err := uc.save(ctx, vs); err != nil {
		return listing.State{}, err
	}
	return vs.List, nil
}

// Resolve aplica los parámetros recibidos sobre el estado guardado, lo persiste y
// devuelve el estado resultante junto con las filas abiertas.
func (uc *UseCase) Resolve(ctx context.Context, owner, screen string, p dto.ListParams) (listing.State, []string, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	vs, err := uc.load(ctx, owner, screen)
	if err != nil {
		return listing.State{}, nil, err
	}
	next := normalize(p.Apply(vs.List))
	if next != vs.List {
		vs.List = next
		if err := uc.save(ctx, vs); err != nil {
			return listing.State{}, nil, err
		}
	}
	return vs.List, vs.ExpandedIDs(), nil
}

// Remember guarda la página efectiva después de acotarla al total real.
func (uc *UseCase) Remember(ctx context.Context, owner, screen string, s listing.State) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	vs, err := uc.load(ctx, owner, screen)
	if err != nil {
		return err
	}
	if vs.List == s {
		return nil
	}
	vs.List = s
	return uc.save(ctx, vs)
}

func (uc *UseCase) load(ctx context.Context, owner, screen string) (*entity.ViewState, error) {
	def, ok := screens[screen]
	if !ok {
		return nil, fmt.Errorf("viewstate: pantalla %q: %w", screen, domain.ErrNotFound)
	}
	if owner == "" {
		return nil, domain.ErrUnauthorized
	}
	vs, err := uc.repo.Get(ctx, owner, screen)
	if err != nil {
		return nil, fmt.Errorf("viewstate: leer %s: %w", screen, err)
	}
	if vs == nil {
		vs = &entity.ViewState{
			Owner:  owner,
			Screen: screen,
			List:   listing.NewState(uc.defaultPageSize, def.field, def.desc),
		}
	}
	if vs.Expanded == nil {
		vs.Expanded = map[string]bool{}
	}
	vs.List = normalize(vs.List)
	return vs, nil
}

func (uc *UseCase) save(ctx context.Context, vs *entity.ViewState) error {
	vs.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Save(ctx, vs); err != nil {
		return fmt.Errorf("viewstate: guardar %s: %w", vs.Screen, err)
	}
	return nil
}

func normalize(s listing.State) listing.State {
	s.PageSize = listing.NormalizePageSize(s.PageSize)
	s.Page = max(s.Page, 1)
	s.Search = strings.TrimSpace(s.Search)
	return s
}
