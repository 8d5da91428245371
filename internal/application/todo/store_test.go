package todo_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/humble-crm/internal/application/todo"
	"github.com/jhoicas/humble-crm/internal/domain"
	"github.com/jhoicas/humble-crm/internal/domain/entity"
)

// fakeTasks simula el backend de tareas.
type fakeTasks struct {
	mu       sync.Mutex
	tasks    []entity.Task
	nextID   int64
	listErr  error
	writeErr error
	setDone  map[int64]bool
}

func newFake(tasks ...entity.Task) *fakeTasks {
	return &fakeTasks{tasks: tasks, nextID: 100, setDone: map[int64]bool{}}
}

func (f *fakeTasks) List(context.Context) ([]entity.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]entity.Task(nil), f.tasks...), nil
}

func (f *fakeTasks) Create(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.nextID++
	f.tasks = append(f.tasks, entity.Task{ID: f.nextID, Text: text})
	return nil
}

func (f *fakeTasks) SetDone(_ context.Context, id int64, done bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.setDone[id] = done
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Done = done
		}
	}
	return nil
}

func (f *fakeTasks) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	out := f.tasks[:0]
	for _, t := range f.tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	f.tasks = out
	return nil
}

func TestHydrate_SplitsActiveAndCompleted(t *testing.T) {
	s := todo.NewStore(newFake(
		entity.Task{ID: 1, Text: "llamar a Ana"},
		entity.Task{ID: 2, Text: "pedir clutch", Done: true},
		entity.Task{ID: 3, Text: "limpiar"},
	), nil)

	require.NoError(t, s.Hydrate(context.Background()))
	assert.Len(t, s.Tasks(), 3)
	assert.Len(t, s.Active(), 2)
	assert.Len(t, s.Completed(), 1)
	assert.Equal(t, 2, s.OpenCount())
}

func TestHydrate_FailureKeepsEmptyList(t *testing.T) {
	f := newFake()
	f.listErr = domain.ErrBackendUnavailable
	s := todo.NewStore(f, nil)

	err := s.Hydrate(context.Background())
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
	assert.NotNil(t, s.Tasks())
	assert.Empty(t, s.Tasks())
}

func TestAdd_TrimsAndRehydrates(t *testing.T) {
	f := newFake()
	s := todo.NewStore(f, nil)

	tasks, err := s.Add(context.Background(), "  comprar aceite  ")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "comprar aceite", tasks[0].Text)
	assert.Equal(t, tasks, s.Tasks())
}

func TestAdd_RejectsEmpty(t *testing.T) {
	s := todo.NewStore(newFake(), nil)

	_, err := s.Add(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestToggle_SendsOpposite(t *testing.T) {
	f := newFake(entity.Task{ID: 1, Text: "a", Done: true})
	s := todo.NewStore(f, nil)
	require.NoError(t, s.Hydrate(context.Background()))

	tasks, err := s.Toggle(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, f.setDone[1])
	assert.False(t, tasks[0].Done)

	_, err = s.Toggle(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, f.setDone[1])
}

func TestToggle_UnknownTask(t *testing.T) {
	s := todo.NewStore(newFake(), nil)

	_, err := s.Toggle(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_WriteFailureKeepsSnapshot(t *testing.T) {
	f := newFake(entity.Task{ID: 1, Text: "a"}, entity.Task{ID: 2, Text: "b"})
	s := todo.NewStore(f, nil)
	require.NoError(t, s.Hydrate(context.Background()))

	f.writeErr = errors.New("timeout")
	_, err := s.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.Len(t, s.Tasks(), 2)

	f.writeErr = nil
	tasks, err := s.Delete(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, int64(2), tasks[0].ID)
}

func TestConcurrentAdds(t *testing.T) {
	f := newFake()
	s := todo.NewStore(f, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Add(context.Background(), "tarea")
			_ = s.Active()
		}()
	}
	wg.Wait()
	assert.Len(t, s.Tasks(), 20)
}

func TestConcurrentToggles_NoSePierden(t *testing.T) {
	f := newFake(entity.Task{ID: 1, Text: "a"})
	s := todo.NewStore(f, nil)
	require.NoError(t, s.Hydrate(context.Background()))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Toggle(context.Background(), 1)
		}()
	}
	wg.Wait()

	// diez toggles: vuelve al estado inicial
	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	assert.False(t, tasks[0].Done)

	_, err := s.Toggle(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, s.Tasks()[0].Done)
}
