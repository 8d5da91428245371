// Package listing filtra, ordena y pagina colecciones ya cargadas en memoria.
// Todas las funciones son puras: no hacen E/S ni modifican la entrada.
package listing

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// Límites de tamaño de página.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageSizes tamaños ofrecidos en el selector de los listados.
var PageSizes = []int{20, 50, 100}

// Query parámetros de un listado.
type Query struct {
	Search    string
	Page      int
	PageSize  int
	SortField string
	SortDesc  bool
}

// SortKey comparador de un campo. Missing marca valores ausentes, que siempre van al final.
type SortKey[T any] struct {
	Missing func(T) bool
	Compare func(a, b T) int
}

// Spec describe cómo filtrar y ordenar un tipo de entidad.
type Spec[T any] struct {
	// Exclude descarta elementos siempre, sin importar la búsqueda.
	Exclude func(T) bool
	// SearchFields campos donde se busca el texto libre.
	SearchFields func(T) []string
	// Filters filtros booleanos activos; todos deben cumplirse.
	Filters []func(T) bool
	// SortKeys campos ordenables por nombre.
	SortKeys map[string]SortKey[T]
}

// WithFilter devuelve una copia del spec con un filtro adicional.
func (s Spec[T]) WithFilter(f func(T) bool) Spec[T] {
	out := s
	out.Filters = append(slices.Clip(s.Filters), f)
	return out
}

// Sortable indica si el campo tiene comparador.
func (s Spec[T]) Sortable(field string) bool {
	_, ok := s.SortKeys[field]
	return ok
}

// Page ventana visible del listado más los metadatos para pintar el paginador.
type Page[T any] struct {
	Items      []T          `json:"items"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int          `json:"total_pages"`
	HasPrev    bool         `json:"has_prev"`
	HasNext    bool         `json:"has_next"`
	Buttons    []PageButton `json:"buttons"`
}

// fold normaliza para comparar sin distinguir mayúsculas (Unicode). Un Caser tiene
// estado, así que se crea uno por llamada.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Filter aplica exclusiones, búsqueda (subcadena sin distinguir mayúsculas) y filtros booleanos.
// Conserva el orden de entrada.
func Filter[T any](items []T, spec Spec[T], search string) []T {
	needle := fold(strings.TrimSpace(search))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if spec.Exclude != nil && spec.Exclude(it) {
			continue
		}
		if !passesFilters(it, spec.Filters) {
			continue
		}
		if needle != "" && !matches(it, spec.SearchFields, needle) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func passesFilters[T any](it T, filters []func(T) bool) bool {
	for _, f := range filters {
		if f != nil && !f(it) {
			return false
		}
	}
	return true
}

func matches[T any](it T, fields func(T) []string, needle string) bool {
	if fields == nil {
		return false
	}
	for _, f := range fields(it) {
		if f != "" && strings.Contains(fold(f), needle) {
			return true
		}
	}
	return false
}

// Sort ordena de forma estable por el campo pedido. Los valores ausentes quedan al final
// en ambas direcciones. Un campo desconocido deja el orden original.
func Sort[T any](items []T, spec Spec[T], field string, desc bool) []T {
	out := slices.Clone(items)
	key, ok := spec.SortKeys[field]
	if !ok || key.Compare == nil {
		return out
	}
	slices.SortStableFunc(out, func(a, b T) int {
		if key.Missing != nil {
			ma, mb := key.Missing(a), key.Missing(b)
			switch {
			case ma && mb:
				return 0
			case ma:
				return 1
			case mb:
				return -1
			}
		}
		c := key.Compare(a, b)
		if desc {
			return -c
		}
		return c
	})
	return out
}

// NormalizePageSize aplica el tamaño por defecto y el máximo.
func NormalizePageSize(size int) int {
	switch {
	case size <= 0:
		return DefaultPageSize
	case size > MaxPageSize:
		return MaxPageSize
	default:
		return size
	}
}

// TotalPages ceil(n/size); 0 para una colección vacía.
func TotalPages(n, size int) int {
	size = NormalizePageSize(size)
	if n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// ClampPage lleva la página al rango [1, max(total,1)].
func ClampPage(page, totalPages int) int {
	return max(1, min(page, max(totalPages, 1)))
}

// Paginate corta la ventana de la página pedida (acotada) y calcula el paginador.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	size := NormalizePageSize(pageSize)
	total := TotalPages(len(items), size)
	page = ClampPage(page, total)

	start := (page - 1) * size
	end := min(start+size, len(items))
	window := []T{}
	if start < end {
		window = slices.Clone(items[start:end])
	}
	return Page[T]{
		Items:      window,
		Total:      len(items),
		Page:       page,
		PageSize:   size,
		TotalPages: total,
		HasPrev:    page > 1,
		HasNext:    page < total,
		Buttons:    Buttons(page, total),
	}
}

// Apply encadena Filter, Sort y Paginate.
func Apply[T any](items []T, spec Spec[T], q Query) Page[T] {
	filtered := Filter(items, spec, q.Search)
	sorted := Sort(filtered, spec, q.SortField, q.SortDesc)
	return Paginate(sorted, q.Page, q.PageSize)
}

// Ordered devuelve todos los elementos filtrados y ordenados, sin paginar (exportaciones).
func Ordered[T any](items []T, spec Spec[T], q Query) []T {
	return Sort(Filter(items, spec, q.Search), spec, q.SortField, q.SortDesc)
}

// ─── Comparadores ───────────────────────────────────────────────────────────

// ByString compara texto sin distinguir mayúsculas; cadena vacía cuenta como ausente.
func ByString[T any](get func(T) string) SortKey[T] {
	return SortKey[T]{
		Missing: func(v T) bool { return strings.TrimSpace(get(v)) == "" },
		Compare: func(a, b T) int { return strings.Compare(fold(get(a)), fold(get(b))) },
	}
}

// ByTime compara fechas; nil o cero cuenta como ausente.
func ByTime[T any](get func(T) *time.Time) SortKey[T] {
	return SortKey[T]{
		Missing: func(v T) bool {
			t := get(v)
			return t == nil || t.IsZero()
		},
		Compare: func(a, b T) int { return get(a).Compare(*get(b)) },
	}
}

// ByDecimal compara importes; un NullDecimal inválido cuenta como ausente.
func ByDecimal[T any](get func(T) decimal.NullDecimal) SortKey[T] {
	return SortKey[T]{
		Missing: func(v T) bool { return !get(v).Valid },
		Compare: func(a, b T) int { return get(a).Decimal.Cmp(get(b).Decimal) },
	}
}

// ByInt compara enteros; nunca hay ausentes.
func ByInt[T any](get func(T) int) SortKey[T] {
	return SortKey[T]{
		Compare: func(a, b T) int { return cmp.Compare(get(a), get(b)) },
	}
}
