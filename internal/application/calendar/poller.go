package calendar

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jhoicas/humble-crm/internal/domain/entity"
	"github.com/jhoicas/humble-crm/pkg/logger"
)

// DefaultPollInterval frecuencia de refresco de las próximas citas.
const DefaultPollInterval = 5 * time.Minute

// UpcomingPoller refresca periódicamente las próximas citas y sirve la última lista buena.
type UpcomingPoller struct {
	uc       *UseCase
	interval time.Duration
	log      *logger.Logger

	// started numera cada consulta; applied es la última aplicada. Una consulta que termina
	// después de otra más nueva se descarta.
	started atomic.Uint64

	mu      sync.RWMutex
	events  []entity.CalendarEvent
	loaded  bool
	applied uint64
}

// NewUpcomingPoller construye el poller; no arranca hasta Run.
func NewUpcomingPoller(uc *UseCase, interval time.Duration, log *logger.Logger) *UpcomingPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UpcomingPoller{uc: uc, interval: interval, log: log.Component("calendar_poller")}
}

// Run refresca al arrancar y luego en cada tick, hasta que ctx se cancela.
func (p *UpcomingPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Refresh(ctx)
		}
	}
}

// Refresh consulta ahora. Si falla se conserva la lista anterior; si mientras tanto ya se
// aplicó una consulta iniciada después, el resultado se descarta.
func (p *UpcomingPoller) Refresh(ctx context.Context) error {
	gen := p.started.Add(1)
	events, err := p.uc.Upcoming(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.log.Warn().Err(err).Msg("no se pudieron refrescar las próximas citas")
		}
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen < p.applied {
		p.log.Debug().Uint64("gen", gen).Msg("consulta vieja descartada")
		return nil
	}
	p.events = events
	p.loaded = true
	p.applied = gen
	return nil
}

// Upcoming devuelve la última lista cargada; si aún no hay ninguna, consulta en el momento.
func (p *UpcomingPoller) Upcoming(ctx context.Context) ([]entity.CalendarEvent, error) {
	p.mu.RLock()
	if p.loaded {
		out := slices.Clone(p.events)
		p.mu.RUnlock()
		return out, nil
	}
	p.mu.RUnlock()

	if err := p.Refresh(ctx); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.events), nil
}
