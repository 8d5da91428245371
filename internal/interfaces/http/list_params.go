package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/humble-crm/internal/application/dto"
	"github.com/jhoicas/humble-crm/internal/application/viewstate"
	"github.com/jhoicas/humble-crm/internal/domain/listing"
)

// parseListParams lee q, page, page_size, sort y order. Un parámetro ausente queda en nil
// para que se use el valor guardado de la pantalla.
func parseListParams(c *fiber.Ctx) (dto.ListParams, error) {
	var p dto.ListParams
	args := c.Context().QueryArgs()

	if args.Has("q") {
		q := c.Query("q")
		p.Search = &q
	}
	for _, f := range []struct {
		name string
		dst  **int
	}{{"page", &p.Page}, {"page_size", &p.PageSize}} {
		if !args.Has(f.name) {
			continue
		}
		n, err := strconv.Atoi(c.Query(f.name))
		if err != nil {
			return dto.ListParams{}, invalidParam(f.name + " debe ser numérico")
		}
		*f.dst = &n
	}
	if args.Has("sort") {
		s := strings.TrimSpace(c.Query("sort"))
		p.Sort = &s
	}
	if args.Has("order") {
		var desc bool
		switch strings.ToLower(c.Query("order")) {
		case "asc":
		case "desc":
			desc = true
		default:
			return dto.ListParams{}, invalidParam("order debe ser asc o desc")
		}
		p.Desc = &desc
	}
	return p, nil
}

// parseBoolQuery lee un flag opcional ("true"/"1"); ausente o inválido es false.
func parseBoolQuery(c *fiber.Ctx, name string) bool {
	v, err := strconv.ParseBool(c.Query(name))
	return err == nil && v
}

// listState resuelve el estado de la pantalla con los parámetros de la petición.
// sortable rechaza un sort sin comparador en el listado de la pantalla.
func listState(c *fiber.Ctx, views *viewstate.UseCase, screen string, sortable func(string) bool) (listing.State, []string, error) {
	p, err := parseListParams(c)
	if err != nil {
		return listing.State{}, nil, err
	}
	if p.Sort != nil && *p.Sort != "" && !sortable(*p.Sort) {
		return listing.State{}, nil, invalidParam("sort no soportado: " + *p.Sort)
	}
	return views.Resolve(c.UserContext(), GetSubject(c), screen, p)
}

// remember guarda la página acotada; un fallo no invalida la respuesta ya calculada.
func remember(c *fiber.Ctx, views *viewstate.UseCase, screen string, s listing.State, totalPages int) listing.State {
	clamped := s.Clamped(totalPages)
	if err := views.Remember(c.UserContext(), GetSubject(c), screen, clamped); err != nil {
		RequestLogger(c).Warn().Err(err).Str("screen", screen).Msg("no se pudo guardar el estado del listado")
	}
	return clamped
}

// paramID lee un id numérico positivo del path.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidParam(name + " inválido")
	}
	return id, nil
}
