package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/humble-crm/internal/application/auth"
	"github.com/jhoicas/humble-crm/internal/application/calendar"
	"github.com/jhoicas/humble-crm/internal/application/customers"
	"github.com/jhoicas/humble-crm/internal/application/dto"
	"github.com/jhoicas/humble-crm/internal/application/portal"
	"github.com/jhoicas/humble-crm/internal/application/todo"
	"github.com/jhoicas/humble-crm/internal/application/viewstate"
	"github.com/jhoicas/humble-crm/internal/domain"
	"github.com/jhoicas/humble-crm/internal/domain/entity"
	"github.com/jhoicas/humble-crm/internal/domain/repository"
	"github.com/jhoicas/humble-crm/internal/infrastructure/memory"
	"github.com/jhoicas/humble-crm/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/humble-crm/internal/interfaces/http"
)

// ── fakes ────────────────────────────────────────────────────────────────────

type fakeCustomers struct {
	mu      sync.Mutex
	items   []entity.Customer
	listErr error
	nextID  int64
}

func (f *fakeCustomers) List(context.Context) ([]entity.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]entity.Customer(nil), f.items...), nil
}

func (f *fakeCustomers) Create(_ context.Context, in repository.CustomerCreate) (*entity.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c := entity.Customer{ID: 100 + f.nextID, Name: in.Name, Email: in.Email, Phone: in.Phone, Source: entity.SourceManual}
	f.items = append(f.items, c)
	return &c, nil
}

func (f *fakeCustomers) Update(context.Context, int64, repository.CustomerPatch) error { return nil }

func (f *fakeCustomers) Inactive(context.Context, int) ([]entity.InactiveCustomer, error) {
	return nil, nil
}

type fakeTasks struct {
	mu     sync.Mutex
	items  []entity.Task
	nextID int64
}

func (f *fakeTasks) List(context.Context) ([]entity.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Task(nil), f.items...), nil
}

func (f *fakeTasks) Create(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.items = append(f.items, entity.Task{ID: f.nextID, Text: text})
	return nil
}

func (f *fakeTasks) SetDone(_ context.Context, id int64, done bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Done = done
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeTasks) Delete(context.Context, int64) error { return nil }

type fakeAppointments struct {
	repository.AppointmentRepository
	deleted []int64
}

func (f *fakeAppointments) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakePortalAuth struct{}

func (fakePortalAuth) Login(_ context.Context, email, password string) (int64, error) {
	if email == "ana@example.com" && password == "secreta" {
		return 7, nil
	}
	return 0, domain.ErrUnauthorized
}

type portalCustomers struct{}

func (portalCustomers) Get(_ context.Context, id int64) (*entity.Customer, error) {
	if id != 7 {
		return nil, domain.ErrNotFound
	}
	return &entity.Customer{ID: 7, Name: "Ana Pérez", Notes: "paga tarde"}, nil
}

type portalOrders struct{}

func (portalOrders) ForCustomer(context.Context, int64) ([]entity.Order, error) { return nil, nil }

type portalJobs struct{}

func (portalJobs) ForCustomer(context.Context, int64) ([]entity.ServiceJob, error) { return nil, nil }

// ── harness ──────────────────────────────────────────────────────────────────

type harness struct {
	app       *fiber.App
	customers *fakeCustomers
	tasks     *fakeTasks
	appts     *fakeAppointments
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		customers: &fakeCustomers{items: []entity.Customer{
			{ID: 1, Name: "Ana Pérez", Email: "a.perez@example.com", Source: entity.SourceWeb},
			{ID: 2, Name: "Bruno Díaz", Email: "bruno@example.com", Source: entity.SourceWave},
			{ID: 3, Name: "Carla Gómez", Email: "carla@example.com", Source: entity.SourceManual},
		}},
		tasks: &fakeTasks{},
		appts: &fakeAppointments{},
	}
	hash, err := auth.HashPassword("panel-secreto")
	require.NoError(t, err)

	views := viewstate.NewUseCase(memory.NewViewStateRepo(), 20)
	customerUC := customers.NewUseCase(h.customers, xlsx.NewExporter())

	app := fiber.New()
	app.Use(apphttp.RequestID())
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(hash, fakePortalAuth{}, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		CustomerUC:  customerUC,
		CalendarUC:  calendar.NewUseCase(h.appts, nil, nil, calendar.Config{}),
		Todos:       todo.NewStore(h.tasks, nil),
		ViewStateUC: views,
		PortalUC:    portal.NewUseCase(portalCustomers{}, portalOrders{}, portalJobs{}),
		JWTSecret:   testJWTSecret,
	})
	h.app = app
	return h
}

func (h *harness) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

type customerPage struct {
	Items []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"items"`
	Total int `json:"total"`
	State struct {
		Search   string `json:"search"`
		Page     int    `json:"page"`
		PageSize int    `json:"page_size"`
	} `json:"state"`
}

// ── rutas del panel ──────────────────────────────────────────────────────────

func TestCustomers_RequiereAdmin(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/api/customers", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = h.do(t, http.MethodGet, "/api/customers", customerToken(t, 7), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCustomers_ListRecuerdaBusqueda(t *testing.T) {
	h := newHarness(t)
	token := adminToken(t)

	resp := h.do(t, http.MethodGet, "/api/customers?q=ana", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decode[customerPage](t, resp)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Ana Pérez", page.Items[0].Name)
	assert.Equal(t, "ana", page.State.Search)
	assert.Equal(t, 20, page.State.PageSize)

	// sin parámetros se reutiliza el estado guardado
	page = decode[customerPage](t, h.do(t, http.MethodGet, "/api/customers", token, nil))
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, "ana", page.State.Search)

	page = decode[customerPage](t, h.do(t, http.MethodGet, "/api/customers?q=", token, nil))
	assert.Equal(t, 3, page.Total)
}

func TestCustomers_ParametrosInvalidos(t *testing.T) {
	h := newHarness(t)
	for _, q := range []string{"page=abc", "page_size=x", "order=up", "sort=telefono"} {
		resp := h.do(t, http.MethodGet, "/api/customers?"+q, adminToken(t), nil)
		body := decode[dto.ErrorResponse](t, resp)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
		assert.Equal(t, "VALIDATION", body.Code, q)
	}
}

func TestCustomers_SortConocido(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, http.MethodGet, "/api/customers?sort=orders&order=desc", adminToken(t), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCustomers_BackendCaidoEs503(t *testing.T) {
	h := newHarness(t)
	h.customers.listErr = domain.ErrBackendUnavailable

	resp := h.do(t, http.MethodGet, "/api/customers", adminToken(t), nil)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "BACKEND_UNAVAILABLE", body.Code)
}

func TestCustomers_FindOrCreate(t *testing.T) {
	h := newHarness(t)
	token := adminToken(t)

	resp := h.do(t, http.MethodPost, "/api/customers/find-or-create", token, map[string]string{"name": "ana pérez"})
	found := decode[dto.FindOrCreateCustomerResponse](t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, found.Created)
	assert.Equal(t, int64(1), found.Customer.ID)

	resp = h.do(t, http.MethodPost, "/api/customers/find-or-create", token, map[string]string{"name": "Diego Ruiz", "phone": "555"})
	created := decode[dto.FindOrCreateCustomerResponse](t, resp)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, created.Created)
	assert.Equal(t, "Diego Ruiz", created.Customer.Name)

	resp = h.do(t, http.MethodPost, "/api/customers/find-or-create", token, map[string]string{"email": "x@example.com"})
	bad := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", bad.Code)
	assert.Contains(t, bad.Message, "name es requerido")
}

func TestCustomers_ExportXLSX(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/api/customers/export", adminToken(t), nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "customers.xlsx")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("PK")), "un xlsx es un zip")
}

func TestViewState_ToggleYPantallaDesconocida(t *testing.T) {
	h := newHarness(t)
	token := adminToken(t)

	resp := h.do(t, http.MethodPost, "/api/view-state/customers/toggle/12", token, nil)
	first := decode[dto.ToggleResponse](t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.ToggleResponse{ID: "12", Expanded: true}, first)

	second := decode[dto.ToggleResponse](t, h.do(t, http.MethodPost, "/api/view-state/customers/toggle/12", token, nil))
	assert.False(t, second.Expanded)

	resp = h.do(t, http.MethodGet, "/api/view-state/invoices", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestViewState_GuardarYLeer(t *testing.T) {
	h := newHarness(t)
	token := adminToken(t)

	resp := h.do(t, http.MethodPut, "/api/view-state/orders", token, dto.SaveListStateRequest{
		Search: " wave ", Page: 3, PageSize: 50, SortField: "total", SortDesc: true,
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decode[apphttp.ViewStateResponse](t, h.do(t, http.MethodGet, "/api/view-state/orders", token, nil))
	assert.Equal(t, "orders", got.Screen)
	assert.Equal(t, "wave", got.State.Search)
	assert.Equal(t, 3, got.State.Page)
	assert.Equal(t, 50, got.State.PageSize)
	assert.Equal(t, "total", got.State.SortField)
	assert.True(t, got.State.SortDesc)
	assert.Empty(t, got.Expanded)

	resp = h.do(t, http.MethodPut, "/api/view-state/orders", token, map[string]int{"page_size": 500})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTodos_CrearMarcarListar(t *testing.T) {
	h := newHarness(t)
	token := adminToken(t)

	resp := h.do(t, http.MethodPost, "/api/todos", token, dto.CreateTaskRequest{Text: "  pedir filtros  "})
	created := decode[dto.TaskListResponse](t, resp)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, created.Active, 1)
	assert.Equal(t, "pedir filtros", created.Active[0].Text)

	resp = h.do(t, http.MethodPut, "/api/todos/1/toggle", token, nil)
	toggled := decode[dto.TaskListResponse](t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, toggled.Active)
	require.Len(t, toggled.Completed, 1)

	listed := decode[dto.TaskListResponse](t, h.do(t, http.MethodGet, "/api/todos", token, nil))
	assert.Len(t, listed.Completed, 1)

	resp = h.do(t, http.MethodPut, "/api/todos/99/toggle", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = h.do(t, http.MethodPost, "/api/todos", token, dto.CreateTaskRequest{Text: ""})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCalendar_DeleteEvent(t *testing.T) {
	h := newHarness(t)
	token := adminToken(t)

	resp := h.do(t, http.MethodDelete, "/api/calendar/events/appt-12", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, []int64{12}, h.appts.deleted)

	resp = h.do(t, http.MethodDelete, "/api/calendar/events/google-abc", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Len(t, h.appts.deleted, 1)
}

func TestCalendar_CreateAppointmentValidaTipo(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodPost, "/api/appointments", adminToken(t), map[string]string{
		"appointment_type": "Picnic",
		"start_time":       "2026-10-20T10:00:00Z",
	})
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body.Message, "appointment_type")
}

// ── auth y portal ────────────────────────────────────────────────────────────

func TestAdminLogin(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodPost, "/api/auth/login", "", dto.AdminLoginRequest{Password: "panel-secreto"})
	out := decode[dto.LoginResponse](t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin", out.Role)

	// el token emitido abre las rutas del panel
	list := h.do(t, http.MethodGet, "/api/customers", "Bearer "+out.Token, nil)
	list.Body.Close()
	assert.Equal(t, http.StatusOK, list.StatusCode)

	resp = h.do(t, http.MethodPost, "/api/auth/login", "", dto.AdminLoginRequest{Password: "otra"})
	bad := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", bad.Code)
}

func TestPortal_LoginYMe(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodPost, "/portal/login", "", dto.PortalLoginRequest{Email: "Ana@Example.com", Password: "secreta"})
	login := decode[dto.LoginResponse](t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(7), login.CustomerID)

	resp = h.do(t, http.MethodGet, "/portal/me", "Bearer "+login.Token, nil)
	me := decode[dto.PortalOverview](t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ana Pérez", me.Customer.Name)
	assert.Empty(t, me.Customer.Notes)

	// un token admin no abre el portal
	resp = h.do(t, http.MethodGet, "/portal/me", adminToken(t), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = h.do(t, http.MethodPost, "/portal/login", "", dto.PortalLoginRequest{Email: "ana@example.com", Password: "mal"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequestID_SeDevuelveEnCabecera(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/api/customers", "", nil)
	resp.Body.Close()
	id := resp.Header.Get(apphttp.HeaderRequestID)
	assert.Len(t, id, 36)
	assert.Equal(t, 4, strings.Count(id, "-"))
}
