package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jhoicas/humble-crm/internal/domain/entity"
	"github.com/jhoicas/humble-crm/internal/domain/repository"
	"github.com/jhoicas/humble-crm/pkg/logger"
)

// CalendarKey clave del feed externo.
const CalendarKey = "humble-crm:calendar:google"

// ErrMiss la clave no está en caché.
var ErrMiss = errors.New("rediscache: miss")

var _ repository.ExternalCalendar = (*CalendarCache)(nil)

// CalendarCache decora un ExternalCalendar: sirve el feed desde Redis mientras dure el TTL.
// Si Redis falla se consulta la fuente directamente.
type CalendarCache struct {
	next  repository.ExternalCalendar
	store Store
	ttl   time.Duration
	log   *logger.Logger
}

// NewCalendarCache construye el decorador; ttl <= 0 usa 2 minutos.
func NewCalendarCache(next repository.ExternalCalendar, store Store, ttl time.Duration, log *logger.Logger) *CalendarCache {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CalendarCache{next: next, store: store, ttl: ttl, log: log.Component("calendar_cache")}
}

// Events devuelve el feed cacheado o lo pide a la fuente y lo guarda.
func (c *CalendarCache) Events(ctx context.Context) ([]entity.CalendarEvent, error) {
	raw, err := c.store.Get(ctx, CalendarKey)
	switch {
	case err == nil:
		var events []entity.CalendarEvent
		if jerr := json.Unmarshal([]byte(raw), &events); jerr == nil {
			return events, nil
		}
		c.log.Warn().Msg("entrada de caché corrupta; se descarta")
	case !errors.Is(err, ErrMiss):
		c.log.Warn().Err(err).Msg("redis no disponible; consulta directa")
	}

	events, err := c.next.Events(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(events)
	if err != nil {
		return events, nil
	}
	if err := c.store.Set(ctx, CalendarKey, payload, c.ttl); err != nil {
		c.log.Warn().Err(err).Msg("no se pudo guardar el feed en caché")
	}
	return events, nil
}
