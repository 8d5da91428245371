// Package dropship arma las tarjetas de órdenes con ítems enviados por el proveedor.
package dropship

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jhoicas/humble-crm/internal/application/dto"
	"github.com/jhoicas/humble-crm/internal/domain/repository"
)

// MaxDots puntos de estado visibles por tarjeta; el resto se cuenta como "+N".
const MaxDots = 10

// UseCase listado drop-ship.
type UseCase struct {
	repo repository.DropShipRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.DropShipRepository) *UseCase {
	return &UseCase{repo: repo}
}

// List devuelve una tarjeta por orden. expanded son los invoice_id con la tarjeta abierta.
func (uc *UseCase) List(ctx context.Context, expanded []string) ([]dto.DropShipCard, error) {
	orders, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dropship: listar: %w", err)
	}
	open := make(map[string]bool, len(expanded))
	for _, id := range expanded {
		open[id] = true
	}

	cards := make([]dto.DropShipCard, 0, len(orders))
	for _, o := range orders {
		dots := make([]string, 0, min(len(o.Items), MaxDots))
		for i, it := range o.Items {
			if i == MaxDots {
				break
			}
			dots = append(dots, it.Indicator())
		}
		cards = append(cards, dto.DropShipCard{
			DropShipOrder: o,
			Dots:          dots,
			Overflow:      max(len(o.Items)-MaxDots, 0),
			Expanded:      open[strconv.FormatInt(o.InvoiceID, 10)],
		})
	}
	return cards, nil
}
