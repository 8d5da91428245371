package listing

// Umbral a partir del cual el paginador se comprime con "…" y radio de la ventana.
const (
	compactThreshold = 7
	windowRadius     = 3
)

// PageButton botón del paginador. Ellipsis marca un hueco comprimido (sin página).
type PageButton struct {
	Page     int  `json:"page,omitempty"`
	Current  bool `json:"current,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// Buttons secuencia de botones de página. Con pocas páginas se listan todas; con más,
// la primera, la última y current±3, colapsando los huecos en "…".
// Con una sola página devuelve solo [1]; sin páginas devuelve nil.
func Buttons(current, total int) []PageButton {
	if total <= 0 {
		return nil
	}
	current = ClampPage(current, total)

	if total <= compactThreshold {
		out := make([]PageButton, 0, total)
		for p := 1; p <= total; p++ {
			out = append(out, PageButton{Page: p, Current: p == current})
		}
		return out
	}

	lo := max(1, current-windowRadius)
	hi := min(total, current+windowRadius)

	var out []PageButton
	push := func(p int) {
		out = append(out, PageButton{Page: p, Current: p == current})
	}

	if lo > 1 {
		push(1)
		if lo > 2 {
			out = append(out, PageButton{Ellipsis: true})
		}
	}
	for p := lo; p <= hi; p++ {
		push(p)
	}
	if hi < total {
		if hi < total-1 {
			out = append(out, PageButton{Ellipsis: true})
		}
		push(total)
	}
	return out
}
