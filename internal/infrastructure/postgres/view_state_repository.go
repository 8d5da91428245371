package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/humble-crm/internal/domain/entity"
	"github.com/jhoicas/humble-crm/internal/domain/repository"
)

const viewStateTable = "view_state"

var _ repository.ViewStateRepository = (*ViewStateRepo)(nil)

// Querier abstrae pool y tx para ejecutar SQL.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ViewStateRepo persiste el estado de vistas (filas expandidas y listado) por usuario y pantalla.
type ViewStateRepo struct {
	q    Querier
	psql sq.StatementBuilderType
}

// NewViewStateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewViewStateRepository(q Querier) *ViewStateRepo {
	return &ViewStateRepo{q: q, psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar)}
}

// Get devuelve el estado guardado; (nil, nil) si no hay fila.
func (r *ViewStateRepo) Get(ctx context.Context, owner, screen string) (*entity.ViewState, error) {
	query, args, err := r.psql.
		Select("expanded", "list_state", "updated_at").
		From(viewStateTable).
		Where(sq.Eq{"owner": owner, "screen": screen}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select view_state: %w", err)
	}

	var (
		expanded, list []byte
		updatedAt      time.Time
	)
	if err := r.q.QueryRow(ctx, query, args...).Scan(&expanded, &list, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get view_state: %w", err)
	}

	vs := &entity.ViewState{Owner: owner, Screen: screen, UpdatedAt: updatedAt}
	if err := json.Unmarshal(expanded, &vs.Expanded); err != nil {
		return nil, fmt.Errorf("decode expanded: %w", err)
	}
	if err := json.Unmarshal(list, &vs.List); err != nil {
		return nil, fmt.Errorf("decode list_state: %w", err)
	}
	return vs, nil
}

// Save inserta o reemplaza el estado de la pantalla.
func (r *ViewStateRepo) Save(ctx context.Context, vs *entity.ViewState) error {
	expanded := vs.Expanded
	if expanded == nil {
		expanded = map[string]bool{}
	}
	expandedJSON, err := json.Marshal(expanded)
	if err != nil {
		return fmt.Errorf("encode expanded: %w", err)
	}
	listJSON, err := json.Marshal(vs.List)
	if err != nil {
		return fmt.Errorf("encode list_state: %w", err)
	}

	query, args, err := r.psql.
		Insert(viewStateTable).
		Columns("owner", "screen", "expanded", "list_state", "updated_at").
		Values(vs.Owner, vs.Screen, expandedJSON, listJSON, sq.Expr("NOW()")).
		Suffix(`ON CONFLICT (owner, screen) DO UPDATE
			SET expanded = EXCLUDED.expanded,
			    list_state = EXCLUDED.list_state,
			    updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert view_state: %w", err)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert view_state: %w", err)
	}
	return nil
}
