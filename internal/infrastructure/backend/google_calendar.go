package backend

import (
	"context"

	"github.com/jhoicas/humble-crm/internal/domain/entity"
	"github.com/jhoicas/humble-crm/internal/domain/repository"
)

var _ repository.ExternalCalendar = (*GoogleCalendar)(nil)

// GoogleCalendar lee los eventos de Google Calendar que el backend expone ya autenticados.
type GoogleCalendar struct {
	c *Client
}

// NewGoogleCalendar construye el adaptador.
func NewGoogleCalendar(c *Client) *GoogleCalendar {
	return &GoogleCalendar{c: c}
}

type wireGoogleTime struct {
	DateTime string `json:"dateTime"`
	Date     string `json:"date"`
}

type wireGoogleEvent struct {
	ID          string          `json:"id"`
	Summary     string          `json:"summary"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	Start       *wireGoogleTime `json:"start"`
	End         *wireGoogleTime `json:"end"`
}

// GoogleUntitled título para eventos sin summary.
const GoogleUntitled = "Untitled"

// toEntity start = dateTime ?? date; end = dateTime ?? date ?? start. Sin inicio, el evento se descarta.
func (w wireGoogleEvent) toEntity() (entity.CalendarEvent, bool) {
	if w.Start == nil {
		return entity.CalendarEvent{}, false
	}
	startRaw := firstNonEmpty(w.Start.DateTime, w.Start.Date)
	start, err := parseTime(startRaw)
	if err != nil {
		return entity.CalendarEvent{}, false
	}
	end := start
	if w.End != nil {
		if t, err := parseTime(firstNonEmpty(w.End.DateTime, w.End.Date)); err == nil {
			end = t
		}
	}
	title := w.Summary
	if title == "" {
		title = GoogleUntitled
	}
	return entity.CalendarEvent{
		ID:          w.ID,
		Title:       title,
		Start:       start,
		End:         end,
		AllDay:      w.Start.DateTime == "" && w.Start.Date != "",
		Description: w.Description,
		Location:    w.Location,
		Source:      entity.EventSourceGoogle,
	}, true
}

// Events eventos próximos del calendario externo.
func (g *GoogleCalendar) Events(ctx context.Context) ([]entity.CalendarEvent, error) {
	var raw struct {
		Events []wireGoogleEvent `json:"events"`
	}
	if err := g.c.get(ctx, "/api/google-calendar/events", nil, &raw); err != nil {
		return nil, err
	}
	out := make([]entity.CalendarEvent, 0, len(raw.Events))
	for _, w := range raw.Events {
		if ev, ok := w.toEntity(); ok {
			out = append(out, ev)
		}
	}
	return out, nil
}
