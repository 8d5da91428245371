package entity

import (
	"slices"
	"time"

	"github.com/jhoicas/humble-crm/internal/domain/listing"
)

// Pantallas con estado de vista persistido.
const (
	ScreenCustomers   = "customers"
	ScreenOrders      = "orders"
	ScreenServiceJobs = "service_jobs"
	ScreenDropShip    = "drop_ship"
)

// ViewState estado de vista de una pantalla para un usuario: filas expandidas y listado.
type ViewState struct {
	Owner     string          `json:"owner"`
	Screen    string          `json:"screen"`
	Expanded  map[string]bool `json:"expanded"`
	List      listing.State   `json:"list"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ExpandedIDs ids con la fila abierta, ordenados.
func (v ViewState) ExpandedIDs() []string {
	out := make([]string, 0, len(v.Expanded))
	for id, open := range v.Expanded {
		if open {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}
