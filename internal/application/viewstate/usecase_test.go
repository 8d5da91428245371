package viewstate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/humble-crm/internal/application/dto"
	"github.com/jhoicas/humble-crm/internal/application/viewstate"
	"github.com/jhoicas/humble-crm/internal/domain"
	"github.com/jhoicas/humble-crm/internal/domain/entity"
	"github.com/jhoicas/humble-crm/internal/domain/listing"
	"github.com/jhoicas/humble-crm/internal/infrastructure/memory"
)

type failingRepo struct{ *memory.ViewStateRepo }

func (failingRepo) Save(context.Context, *entity.ViewState) error { return errors.New("disco lleno") }

func ptr[T any](v T) *T { return &v }

func TestToggle_FlipsAndLastToggleWins(t *testing.T) {
	ctx := context.Background()
	uc := viewstate.NewUseCase(memory.NewViewStateRepo(), 20)

	open, err := uc.Toggle(ctx, "admin", entity.ScreenCustomers, "7")
	require.NoError(t, err)
	assert.True(t, open)

	open, err = uc.Toggle(ctx, "admin", entity.ScreenCustomers, "3")
	require.NoError(t, err)
	assert.True(t, open)

	open, err = uc.Toggle(ctx, "admin", entity.ScreenCustomers, "7")
	require.NoError(t, err)
	assert.False(t, open)

	ids, err := uc.Expanded(ctx, "admin", entity.ScreenCustomers)
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, ids)
}

func TestToggle_OwnersAndScreensAreIndependent(t *testing.T) {
	ctx := context.Background()
	uc := viewstate.NewUseCase(memory.NewViewStateRepo(), 20)

	_, err := uc.Toggle(ctx, "admin", entity.ScreenOrders, "1")
	require.NoError(t, err)

	ids, err := uc.Expanded(ctx, "otro", entity.ScreenOrders)
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = uc.Expanded(ctx, "admin", entity.ScreenDropShip)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestToggle_Validation(t *testing.T) {
	ctx := context.Background()
	uc := viewstate.NewUseCase(memory.NewViewStateRepo(), 20)

	_, err := uc.Toggle(ctx, "admin", entity.ScreenOrders, "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Toggle(ctx, "admin", "inventario", "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestToggle_SaveFailureKeepsPreviousState(t *testing.T) {
	ctx := context.Background()
	repo := failingRepo{ViewStateRepo: memory.NewViewStateRepo()}
	uc := viewstate.NewUseCase(repo, 20)

	_, err := uc.Toggle(ctx, "admin", entity.ScreenOrders, "1")
	require.Error(t, err)

	ids, err := uc.Expanded(ctx, "admin", entity.ScreenOrders)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestListState_ScreenDefaults(t *testing.T) {
	ctx := context.Background()
	uc := viewstate.NewUseCase(memory.NewViewStateRepo(), 50)

	s, err := uc.ListState(ctx, "admin", entity.ScreenOrders)
	require.NoError(t, err)
	assert.Equal(t, listing.State{Page: 1, PageSize: 50, SortField: "date", SortDesc: true}, s)

	s, err = uc.ListState(ctx, "admin", entity.ScreenCustomers)
	require.NoError(t, err)
	assert.Equal(t, "name", s.SortField)
	assert.False(t, s.SortDesc)
}

func TestResolve_AppliesParamsOverSavedState(t *testing.T) {
	ctx := context.Background()
	uc := viewstate.NewUseCase(memory.NewViewStateRepo(), 20)

	s, _, err := uc.Resolve(ctx, "admin", entity.ScreenCustomers, dto.ListParams{Page: ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Page)

	// sin parámetros se recupera lo guardado
	s, _, err = uc.Resolve(ctx, "admin", entity.ScreenCustomers, dto.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Page)

	// cambiar la búsqueda vuelve a la página 1
	s, _, err = uc.Resolve(ctx, "admin", entity.ScreenCustomers, dto.ListParams{Search: ptr("smith")})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, "smith", s.Search)

	// cambiar el tamaño también
	_, _, err = uc.Resolve(ctx, "admin", entity.ScreenCustomers, dto.ListParams{Page: ptr(2)})
	require.NoError(t, err)
	s, _, err = uc.Resolve(ctx, "admin", entity.ScreenCustomers, dto.ListParams{PageSize: ptr(50)})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, 50, s.PageSize)
}

func TestSaveListState_Normalizes(t *testing.T) {
	ctx := context.Background()
	uc := viewstate.NewUseCase(memory.NewViewStateRepo(), 20)

	s, err := uc.SaveListState(ctx, "admin", entity.ScreenServiceJobs, listing.State{Search: " brake ", Page: 0, PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, listing.State{Search: "brake", Page: 1, PageSize: listing.MaxPageSize}, s)

	got, err := uc.ListState(ctx, "admin", entity.ScreenServiceJobs)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}
