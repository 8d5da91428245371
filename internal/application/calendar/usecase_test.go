package calendar_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/humble-crm/internal/application/calendar"
	"github.com/jhoicas/humble-crm/internal/application/dto"
	"github.com/jhoicas/humble-crm/internal/domain"
	"github.com/jhoicas/humble-crm/internal/domain/entity"
	"github.com/jhoicas/humble-crm/internal/domain/repository"
)

var now = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

// ── fakes ─────────────────────────────────────────────────────────────────────

type fakeAppts struct {
	mu      sync.Mutex
	events  []entity.CalendarEvent
	err     error
	calls   int
	created *repository.AppointmentCreate
	patch   *repository.AppointmentPatch
	deleted []int64
}

func (f *fakeAppts) CalendarEvents(context.Context) ([]entity.CalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]entity.CalendarEvent(nil), f.events...), nil
}

func (f *fakeAppts) Create(_ context.Context, in repository.AppointmentCreate) (*entity.Appointment, error) {
	f.created = &in
	return &entity.Appointment{ID: 9, Title: in.Title, CustomerID: in.CustomerID, Start: in.StartTime}, nil
}

func (f *fakeAppts) Update(_ context.Context, id int64, p repository.AppointmentPatch) (*entity.Appointment, error) {
	f.patch = &p
	return &entity.Appointment{ID: id}, nil
}

func (f *fakeAppts) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAppts) Today(context.Context) ([]entity.TodayAppointment, error) { return nil, nil }
func (f *fakeAppts) Reminders(context.Context) ([]string, error)              { return nil, nil }

type fakeGoogle struct {
	events []entity.CalendarEvent
	err    error
}

func (f fakeGoogle) Events(context.Context) ([]entity.CalendarEvent, error) { return f.events, f.err }

type fakeCustomers struct{ items []entity.Customer }

func (f fakeCustomers) List(context.Context) ([]entity.Customer, error) { return f.items, nil }
func (f fakeCustomers) Create(context.Context, repository.CustomerCreate) (*entity.Customer, error) {
	return nil, errors.New("no debe crear")
}
func (f fakeCustomers) Update(context.Context, int64, repository.CustomerPatch) error { return nil }
func (f fakeCustomers) Inactive(context.Context, int) ([]entity.InactiveCustomer, error) {
	return nil, nil
}

func crm(id string, start time.Time) entity.CalendarEvent {
	return entity.CalendarEvent{ID: id, Title: id, Start: start, End: start, Source: entity.EventSourceCRM}
}

func clock() time.Time { return now }

// ── Events ────────────────────────────────────────────────────────────────────

func TestEvents_MergesAndSorts(t *testing.T) {
	appts := &fakeAppts{events: []entity.CalendarEvent{crm("appt-2", now.Add(2*time.Hour))}}
	google := fakeGoogle{events: []entity.CalendarEvent{
		{ID: "g1", Title: "Untitled", Start: now.Add(time.Hour), Source: entity.EventSourceGoogle},
	}}
	uc := calendar.NewUseCase(appts, google, nil, calendar.Config{})

	got, err := uc.Events(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Events, 2)
	assert.Equal(t, "g1", got.Events[0].ID)
	assert.Equal(t, "appt-2", got.Events[1].ID)
	assert.Empty(t, got.Warnings)
}

func TestEvents_OneSourceFails(t *testing.T) {
	appts := &fakeAppts{events: []entity.CalendarEvent{crm("appt-2", now)}}
	uc := calendar.NewUseCase(appts, fakeGoogle{err: domain.ErrBackendUnavailable}, nil, calendar.Config{})

	got, err := uc.Events(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Events, 1)
	require.Len(t, got.Warnings, 1)
	assert.Contains(t, got.Warnings[0], "google")
}

func TestEvents_BothFail(t *testing.T) {
	appts := &fakeAppts{err: domain.ErrBackendUnavailable}
	uc := calendar.NewUseCase(appts, fakeGoogle{err: errors.New("x")}, nil, calendar.Config{})

	_, err := uc.Events(context.Background())
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
}

func TestEvents_WithoutExternalCalendar(t *testing.T) {
	appts := &fakeAppts{events: []entity.CalendarEvent{crm("appt-1", now)}}
	uc := calendar.NewUseCase(appts, nil, nil, calendar.Config{})

	got, err := uc.Events(context.Background())
	require.NoError(t, err)
	assert.Len(t, got.Events, 1)
}

// ── Upcoming ──────────────────────────────────────────────────────────────────

func TestUpcoming_WindowSortAndLimit(t *testing.T) {
	appts := &fakeAppts{events: []entity.CalendarEvent{
		crm("past", now.Add(-time.Hour)),
		crm("d6", now.AddDate(0, 0, 6)),
		crm("d1", now.AddDate(0, 0, 1)),
		crm("far", now.AddDate(0, 0, 8)),
		crm("d2", now.AddDate(0, 0, 2)),
		crm("d3", now.AddDate(0, 0, 3)),
		crm("d4", now.AddDate(0, 0, 4)),
		crm("d5", now.AddDate(0, 0, 5)),
		crm("now", now),
	}}
	uc := calendar.NewUseCase(appts, nil, nil, calendar.Config{}).WithClock(clock)

	got, err := uc.Upcoming(context.Background())
	require.NoError(t, err)
	ids := []string{}
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"now", "d1", "d2", "d3", "d4"}, ids)
}

func TestPoller_ServesLastGoodList(t *testing.T) {
	appts := &fakeAppts{events: []entity.CalendarEvent{crm("d1", now.AddDate(0, 0, 1))}}
	uc := calendar.NewUseCase(appts, nil, nil, calendar.Config{}).WithClock(clock)
	p := calendar.NewUpcomingPoller(uc, time.Hour, nil)

	got, err := p.Upcoming(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)

	appts.mu.Lock()
	appts.err = domain.ErrBackendUnavailable
	appts.mu.Unlock()

	require.Error(t, p.Refresh(context.Background()))
	got, err = p.Upcoming(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

// slowFirstAppts bloquea la primera consulta hasta que se cierra release y devuelve stale.
type slowFirstAppts struct {
	*fakeAppts
	started chan struct{}
	release chan struct{}
	stale   []entity.CalendarEvent
	once    sync.Once
}

func (f *slowFirstAppts) CalendarEvents(ctx context.Context) ([]entity.CalendarEvent, error) {
	first := false
	f.once.Do(func() { first = true })
	if first {
		close(f.started)
		<-f.release
		return f.stale, nil
	}
	return f.fakeAppts.CalendarEvents(ctx)
}

func TestPoller_ConsultaLentaNoPisaLaNueva(t *testing.T) {
	appts := &slowFirstAppts{
		fakeAppts: &fakeAppts{events: []entity.CalendarEvent{crm("nuevo", now.AddDate(0, 0, 2))}},
		started:   make(chan struct{}),
		release:   make(chan struct{}),
		stale:     []entity.CalendarEvent{crm("viejo", now.AddDate(0, 0, 1))},
	}
	uc := calendar.NewUseCase(appts, nil, nil, calendar.Config{}).WithClock(clock)
	p := calendar.NewUpcomingPoller(uc, time.Hour, nil)

	slow := make(chan error, 1)
	go func() { slow <- p.Refresh(context.Background()) }()
	<-appts.started

	require.NoError(t, p.Refresh(context.Background()))
	close(appts.release)
	require.NoError(t, <-slow)

	got, err := p.Upcoming(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "nuevo", got[0].ID)
}

func TestPoller_RunStopsOnCancel(t *testing.T) {
	appts := &fakeAppts{}
	uc := calendar.NewUseCase(appts, nil, nil, calendar.Config{}).WithClock(clock)
	p := calendar.NewUpcomingPoller(uc, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		appts.mu.Lock()
		defer appts.mu.Unlock()
		return appts.calls >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("el poller no se detuvo")
	}
}

// ── Appointments ──────────────────────────────────────────────────────────────

func TestCreateAppointment_MatchesCustomerAndBuildsNotes(t *testing.T) {
	appts := &fakeAppts{}
	cust := fakeCustomers{items: []entity.Customer{{ID: 4, Name: "Ana López", Phone: "555-1234"}}}
	uc := calendar.NewUseCase(appts, nil, cust, calendar.Config{})
	end := now.Add(time.Hour)

	a, err := uc.CreateAppointment(context.Background(), dto.CreateAppointmentRequest{
		Type:         "Tune",
		CustomerName: "ana lópez",
		VehicleMake:  "Honda",
		VehicleModel: "Civic",
		Title:        "Dyno",
		Start:        now,
		End:          &end,
		Notes:        "traer llaves",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), a.ID)

	in := appts.created
	require.NotNil(t, in.CustomerID)
	assert.Equal(t, int64(4), *in.CustomerID)
	assert.Equal(t, "Tune - ana lópez - Civic", in.Title)
	assert.Equal(t, "Tune", in.AppointmentType)
	assert.True(t, strings.HasPrefix(in.Notes, "Name: ana lópez\nPhone: 555-1234\nVehicle: Honda Civic\nType: Tune\nTitle: Dyno\nStart: 2024-06-10 09:00\nEnd: 2024-06-10 10:00\n"))
	assert.True(t, strings.HasSuffix(in.Notes, "----------------------------\n\ntraer llaves"))
}

func TestCreateAppointment_UnknownCustomerIsNotCreated(t *testing.T) {
	appts := &fakeAppts{}
	uc := calendar.NewUseCase(appts, nil, fakeCustomers{}, calendar.Config{})

	_, err := uc.CreateAppointment(context.Background(), dto.CreateAppointmentRequest{
		Type: "Personal", CustomerName: "Nadie", Start: now,
	})
	require.NoError(t, err)
	assert.Nil(t, appts.created.CustomerID)
	assert.Nil(t, appts.created.EndTime)
	assert.Contains(t, appts.created.Notes, "Phone: N/A\n")
}

func TestCreateAppointment_Validation(t *testing.T) {
	uc := calendar.NewUseCase(&fakeAppts{}, nil, nil, calendar.Config{})
	ctx := context.Background()
	before := now.Add(-time.Hour)

	_, err := uc.CreateAppointment(ctx, dto.CreateAppointmentRequest{Type: "Party", Start: now})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateAppointment(ctx, dto.CreateAppointmentRequest{Type: "Service"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateAppointment(ctx, dto.CreateAppointmentRequest{Type: "Service", Start: now, End: &before})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateAppointment(t *testing.T) {
	appts := &fakeAppts{}
	uc := calendar.NewUseCase(appts, nil, nil, calendar.Config{})
	title := "Nuevo"

	_, err := uc.UpdateAppointment(context.Background(), 3, dto.UpdateAppointmentRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Nuevo", *appts.patch.Title)
	assert.Nil(t, appts.patch.StartTime)
}

func TestDeleteEvent(t *testing.T) {
	appts := &fakeAppts{}
	uc := calendar.NewUseCase(appts, nil, nil, calendar.Config{})

	require.NoError(t, uc.DeleteEvent(context.Background(), "appt-12"))
	assert.Equal(t, []int64{12}, appts.deleted)

	err := uc.DeleteEvent(context.Background(), "5qk1googleid")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
