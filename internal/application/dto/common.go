package dto

import "github.com/jhoicas/humble-crm/internal/domain/listing"

// ListParams parámetros de listado recibidos por query string.
// nil significa "no enviado": se usa el valor guardado en el estado de la pantalla.
type ListParams struct {
	Search   *string
	Page     *int
	PageSize *int
	Sort     *string
	Desc     *bool
}

// Apply superpone los parámetros recibidos sobre el estado guardado. Cambiar búsqueda o
// tamaño vuelve a la página 1 salvo que también se pida una página explícita.
func (p ListParams) Apply(s listing.State) listing.State {
	if p.Search != nil {
		s = s.WithSearch(*p.Search)
	}
	if p.PageSize != nil {
		s = s.WithPageSize(*p.PageSize)
	}
	if p.Sort != nil {
		desc := false
		if p.Desc != nil {
			desc = *p.Desc
		}
		s = s.WithSort(*p.Sort, desc)
	} else if p.Desc != nil {
		s.SortDesc = *p.Desc
	}
	if p.Page != nil {
		s = s.WithPage(*p.Page)
	}
	return s
}

// ListResponse página de un listado más el estado de vista que la produjo.
type ListResponse[T any] struct {
	listing.Page[T]
	State     listing.State `json:"state"`
	Expanded  []string      `json:"expanded"`
	PageSizes []int         `json:"page_sizes"`
}

// NewListResponse arma la respuesta; el estado se devuelve con la página ya acotada.
func NewListResponse[T any](p listing.Page[T], s listing.State, expanded []string) ListResponse[T] {
	if expanded == nil {
		expanded = []string{}
	}
	return ListResponse[T]{
		Page:      p,
		State:     s.Clamped(p.TotalPages),
		Expanded:  expanded,
		PageSizes: listing.PageSizes,
	}
}

// MapPage convierte los ítems de una página conservando sus metadatos.
func MapPage[T, U any](p listing.Page[T], f func(T) U) listing.Page[U] {
	items := make([]U, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, f(it))
	}
	return listing.Page[U]{
		Items:      items,
		Total:      p.Total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
		HasPrev:    p.HasPrev,
		HasNext:    p.HasNext,
		Buttons:    p.Buttons,
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}
