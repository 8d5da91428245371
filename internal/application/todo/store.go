// Package todo mantiene la lista de pendientes compartida por todas las pantallas.
// El backend es la fuente de verdad: cada cambio se escribe allí y luego se relee la lista.
package todo

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/jhoicas/humble-crm/internal/domain"
	"github.com/jhoicas/humble-crm/internal/domain/entity"
	"github.com/jhoicas/humble-crm/internal/domain/repository"
	"github.com/jhoicas/humble-crm/pkg/logger"
)

// Store contenedor de estado de las tareas.
type Store struct {
	repo repository.TaskRepository
	log  *logger.Logger

	mu    sync.RWMutex
	tasks []entity.Task

	// serializa las mutaciones para que cada relectura refleje la escritura previa
	writeMu sync.Mutex
}

// NewStore crea el store vacío; llamar Hydrate para cargarlo.
func NewStore(repo repository.TaskRepository, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{repo: repo, log: log.Component("todo"), tasks: []entity.Task{}}
}

// Hydrate recarga la lista desde el backend. Si falla, se conserva la lista anterior.
func (s *Store) Hydrate(ctx context.Context) error {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("no se pudieron cargar las tareas")
		return fmt.Errorf("todo: cargar: %w", err)
	}
	if tasks == nil {
		tasks = []entity.Task{}
	}
	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	return nil
}

// Tasks copia de todas las tareas.
func (s *Store) Tasks() []entity.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

// Active tareas sin terminar.
func (s *Store) Active() []entity.Task {
	return s.filter(false)
}

// Completed tareas terminadas.
func (s *Store) Completed() []entity.Task {
	return s.filter(true)
}

// OpenCount cantidad de tareas sin terminar.
func (s *Store) OpenCount() int {
	return len(s.Active())
}

// Add crea una tarea; el texto se recorta y no puede quedar vacío.
func (s *Store) Add(ctx context.Context, text string) ([]entity.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("todo: texto vacío: %w", domain.ErrInvalidInput)
	}
	return s.mutate(ctx, "crear", func() error { return s.repo.Create(ctx, text) })
}

// Toggle envía el valor opuesto al done actual de la tarea; el done se lee bajo writeMu.
func (s *Store) Toggle(ctx context.Context, id int64) ([]entity.Task, error) {
	return s.mutate(ctx, "marcar", func() error {
		task, ok := s.find(id)
		if !ok {
			return fmt.Errorf("todo: tarea %d: %w", id, domain.ErrNotFound)
		}
		return s.repo.SetDone(ctx, id, !task.Done)
	})
}

// Delete elimina una tarea.
func (s *Store) Delete(ctx context.Context, id int64) ([]entity.Task, error) {
	return s.mutate(ctx, "eliminar", func() error { return s.repo.Delete(ctx, id) })
}

func (s *Store) mutate(ctx context.Context, op string, write func() error) ([]entity.Task, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := write(); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		s.log.Error().Err(err).Str("op", op).Msg("falló la escritura de tareas")
		return nil, fmt.Errorf("todo: %s: %w", op, err)
	}
	if err := s.Hydrate(ctx); err != nil {
		return nil, err
	}
	return s.Tasks(), nil
}

func (s *Store) find(id int64) (entity.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return entity.Task{}, false
}

func (s *Store) filter(done bool) []entity.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []entity.Task{}
	for _, t := range s.tasks {
		if t.Done == done {
			out = append(out, t)
		}
	}
	return out
}
