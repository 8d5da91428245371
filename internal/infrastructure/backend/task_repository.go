package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/jhoicas/humble-crm/internal/domain/entity"
	"github.com/jhoicas/humble-crm/internal/domain/repository"
)

var (
	_ repository.TaskRepository      = (*TaskRepo)(nil)
	_ repository.DropShipRepository  = (*DropShipRepo)(nil)
	_ repository.PortalAuthenticator = (*PortalAuth)(nil)
)

// TaskRepo implementa TaskRepository sobre /api/todos.
type TaskRepo struct {
	c *Client
}

// NewTaskRepo construye el adaptador.
func NewTaskRepo(c *Client) *TaskRepo {
	return &TaskRepo{c: c}
}

// List devuelve las tareas (el backend las ordena por id descendente).
func (r *TaskRepo) List(ctx context.Context) ([]entity.Task, error) {
	var out []entity.Task
	if err := r.c.get(ctx, "/api/todos", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []entity.Task{}
	}
	return out, nil
}

// Create crea una tarea.
func (r *TaskRepo) Create(ctx context.Context, text string) error {
	return r.c.post(ctx, "/api/todos", map[string]string{"text": text}, nil)
}

// SetDone marca o desmarca una tarea (PUT con ?done=).
func (r *TaskRepo) SetDone(ctx context.Context, id int64, done bool) error {
	return r.c.put(ctx, "/api/todos/"+itoa(id), url.Values{"done": {strconv.FormatBool(done)}}, nil)
}

// Delete elimina una tarea.
func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	return r.c.delete(ctx, "/api/todos/"+itoa(id))
}

// DropShipRepo implementa DropShipRepository sobre /api/drop_ship_orders.
type DropShipRepo struct {
	c *Client
}

// NewDropShipRepo construye el adaptador.
func NewDropShipRepo(c *Client) *DropShipRepo {
	return &DropShipRepo{c: c}
}

type wireDropShipItem struct {
	ItemID         int64      `json:"item_id"`
	Name           string     `json:"name"`
	Brand          string     `json:"brand"`
	DropShip       bool       `json:"drop_ship"`
	Status         string     `json:"status"`
	TrackingNumber flexString `json:"tracking_number"`
	Vendor         string     `json:"vendor"`
	VendorPhone    string     `json:"vendor_phone"`
	VendorEmail    string     `json:"vendor_email"`
	LastContacted  flexTime   `json:"last_contacted"`
	Notes          string     `json:"notes"`
}

type wireDropShipOrder struct {
	InvoiceID int64              `json:"invoice_id"`
	Date      string             `json:"date"`
	Customer  string             `json:"customer"`
	Items     []wireDropShipItem `json:"items"`
}

// List órdenes con ítems drop-ship, más recientes primero.
func (r *DropShipRepo) List(ctx context.Context) ([]entity.DropShipOrder, error) {
	var raw []wireDropShipOrder
	if err := r.c.get(ctx, "/api/drop_ship_orders", nil, &raw); err != nil {
		return nil, err
	}
	out := make([]entity.DropShipOrder, 0, len(raw))
	for _, w := range raw {
		o := entity.DropShipOrder{
			InvoiceID: w.InvoiceID,
			Date:      w.Date,
			Customer:  w.Customer,
			Items:     make([]entity.DropShipItem, 0, len(w.Items)),
		}
		for _, it := range w.Items {
			status := it.Status
			if status == "" {
				status = entity.DropShipStatusInShop
			}
			o.Items = append(o.Items, entity.DropShipItem{
				ItemID:         it.ItemID,
				Name:           it.Name,
				Brand:          it.Brand,
				DropShip:       it.DropShip,
				Status:         status,
				TrackingNumber: string(it.TrackingNumber),
				Vendor:         it.Vendor,
				VendorPhone:    it.VendorPhone,
				VendorEmail:    it.VendorEmail,
				LastContacted:  it.LastContacted.Ptr(),
				Notes:          it.Notes,
			})
		}
		out = append(out, o)
	}
	return out, nil
}

// PortalAuth verifica credenciales del portal contra /portal/login.
type PortalAuth struct {
	c *Client
}

// NewPortalAuth construye el adaptador.
func NewPortalAuth(c *Client) *PortalAuth {
	return &PortalAuth{c: c}
}

// Login devuelve el customer_id. El token del backend se descarta: la sesión la emite este servicio.
func (p *PortalAuth) Login(ctx context.Context, email, password string) (int64, error) {
	var resp struct {
		Token      string `json:"token"`
		CustomerID int64  `json:"customer_id"`
	}
	in := map[string]string{"email": email, "password": password}
	if err := p.c.post(ctx, "/portal/login", in, &resp); err != nil {
		return 0, err
	}
	return resp.CustomerID, nil
}
