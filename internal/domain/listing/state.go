package listing

// State estado persistido de un listado (búsqueda, página, tamaño y orden).
// Las transiciones devuelven un valor nuevo; el receptor no cambia.
type State struct {
	Search    string `json:"search"`
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
	SortField string `json:"sort_field,omitempty"`
	SortDesc  bool   `json:"sort_desc"`
}

// NewState estado inicial con el orden por defecto de la pantalla.
func NewState(pageSize int, sortField string, sortDesc bool) State {
	return State{Page: 1, PageSize: NormalizePageSize(pageSize), SortField: sortField, SortDesc: sortDesc}
}

// WithSearch cambia la búsqueda; si cambia, vuelve a la página 1.
func (s State) WithSearch(q string) State {
	if q != s.Search {
		s.Search = q
		s.Page = 1
	}
	return s
}

// WithPageSize cambia el tamaño; si cambia, vuelve a la página 1.
func (s State) WithPageSize(size int) State {
	size = NormalizePageSize(size)
	if size != s.PageSize {
		s.PageSize = size
		s.Page = 1
	}
	return s
}

// WithPage fija la página pedida; se acota al paginar.
func (s State) WithPage(p int) State {
	s.Page = max(p, 1)
	return s
}

// ToggleSort el mismo campo invierte la dirección; un campo nuevo empieza ascendente.
func (s State) ToggleSort(field string) State {
	if field == s.SortField {
		s.SortDesc = !s.SortDesc
		return s
	}
	s.SortField = field
	s.SortDesc = false
	return s
}

// WithSort fija campo y dirección explícitos.
func (s State) WithSort(field string, desc bool) State {
	s.SortField = field
	s.SortDesc = desc
	return s
}

// Query convierte el estado en parámetros de listado.
func (s State) Query() Query {
	return Query{
		Search:    s.Search,
		Page:      s.Page,
		PageSize:  s.PageSize,
		SortField: s.SortField,
		SortDesc:  s.SortDesc,
	}
}

// Clamped devuelve el estado con la página acotada al total real.
func (s State) Clamped(totalPages int) State {
	s.Page = ClampPage(s.Page, totalPages)
	return s
}
