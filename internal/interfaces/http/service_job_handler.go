package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/humble-crm/internal/application/dto"
	"github.com/jhoicas/humble-crm/internal/application/servicejobs"
	"github.com/jhoicas/humble-crm/internal/application/viewstate"
	"github.com/jhoicas/humble-crm/internal/domain/entity"
	"github.com/jhoicas/humble-crm/internal/domain/repository"
)

// ServiceJobHandler maneja los trabajos de servicio del taller.
type ServiceJobHandler struct {
	uc    *servicejobs.UseCase
	views *viewstate.UseCase
}

// NewServiceJobHandler construye el handler.
func NewServiceJobHandler(uc *servicejobs.UseCase, views *viewstate.UseCase) *ServiceJobHandler {
	return &ServiceJobHandler{uc: uc, views: views}
}

// InvoiceResponse respuesta de POST /api/service-jobs/:id/generate-invoice.
type InvoiceResponse struct {
	Invoice *entity.InvoiceResult `json:"invoice"`
	Job     *entity.ServiceJob    `json:"job,omitempty"`
}

// List godoc
// @Summary      Listar trabajos de servicio
// @Tags         service-jobs
// @Produce      json
// @Param        status  query  string  false  "all, quoted, approved, in_progress, completed, delivered"
// @Param        q       query  string  false  "búsqueda"
// @Param        sort    query  string  false  "job_number, title, customer, vehicle, status, priority, created_at, estimated_completion, quoted_total"
// @Success      200  {object}  dto.ListResponse[dto.ServiceJobRow]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/service-jobs [get]
func (h *ServiceJobHandler) List(c *fiber.Ctx) error {
	state, expanded, err := listState(c, h.views, entity.ScreenServiceJobs, servicejobs.Spec.Sortable)
	if err != nil {
		return respondError(c, err)
	}
	page, err := h.uc.List(c.UserContext(), servicejobs.Query{Query: state.Query(), Status: c.Query("status")})
	if err != nil {
		return respondError(c, err)
	}
	state = remember(c, h.views, entity.ScreenServiceJobs, state, page.TotalPages)
	return c.JSON(dto.NewListResponse(page, state, expanded))
}

// Get GET /api/service-jobs/:id
func (h *ServiceJobHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	job, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(job)
}

// Create godoc
// @Summary      Crear trabajo de servicio
// @Tags         service-jobs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateServiceJobRequest  true  "customer_id o customer_name, title, vehículo"
// @Success      201   {object}  entity.ServiceJob
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/service-jobs [post]
func (h *ServiceJobHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateServiceJobRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	job, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

// Update PATCH /api/service-jobs/:id
func (h *ServiceJobHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateServiceJobRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	job, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(job)
}

// Delete DELETE /api/service-jobs/:id
func (h *ServiceJobHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddUpdate POST /api/service-jobs/:id/updates
func (h *ServiceJobHandler) AddUpdate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.AddJobUpdateRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	job, err := h.uc.AddUpdate(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

// DeleteUpdate DELETE /api/service-jobs/:id/updates/:updateId
func (h *ServiceJobHandler) DeleteUpdate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	updateID, err := paramID(c, "updateId")
	if err != nil {
		return respondError(c, err)
	}
	job, err := h.uc.DeleteUpdate(c.UserContext(), id, updateID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(job)
}

// AddPart POST /api/service-jobs/:id/parts
func (h *ServiceJobHandler) AddPart(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.AddJobPartRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	job, err := h.uc.AddPart(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

// DeletePart DELETE /api/service-jobs/:id/parts/:partId
func (h *ServiceJobHandler) DeletePart(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	partID, err := paramID(c, "partId")
	if err != nil {
		return respondError(c, err)
	}
	job, err := h.uc.DeletePart(c.UserContext(), id, partID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(job)
}

// UploadPhoto godoc
// @Summary      Subir foto del trabajo (multipart)
// @Tags         service-jobs
// @Accept       multipart/form-data
// @Produce      json
// @Param        file                    formData  file    true   "imagen"
// @Param        caption                 formData  string  false  "leyenda"
// @Param        photo_type              formData  string  false  "progress, before, after, issue, dyno"
// @Param        is_visible_to_customer  formData  bool    false  "por defecto true"
// @Success      201  {object}  entity.ServiceJob
// @Router       /api/service-jobs/{id}/photos [post]
func (h *ServiceJobHandler) UploadPhoto(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return respondError(c, invalidParam("file es requerido"))
	}
	photoType := c.FormValue("photo_type")
	if photoType != "" && !entity.IsValidPhotoType(photoType) {
		return respondError(c, invalidParam("photo_type inválido"))
	}
	visible := true
	if v := c.FormValue("is_visible_to_customer"); v != "" {
		if visible, err = strconv.ParseBool(v); err != nil {
			return respondError(c, invalidParam("is_visible_to_customer debe ser booleano"))
		}
	}

	f, err := fh.Open()
	if err != nil {
		return respondError(c, invalidParam("no se pudo leer el archivo"))
	}
	defer f.Close()

	job, err := h.uc.UploadPhoto(c.UserContext(), id, repository.PhotoUpload{
		Filename:          fh.Filename,
		ContentType:       fh.Header.Get(fiber.HeaderContentType),
		Content:           f,
		Caption:           c.FormValue("caption"),
		PhotoType:         photoType,
		VisibleToCustomer: visible,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

// GenerateInvoice POST /api/service-jobs/:id/generate-invoice
func (h *ServiceJobHandler) GenerateInvoice(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	res, job, err := h.uc.GenerateInvoice(c.UserContext(), id)
	if err != nil && res == nil {
		return respondError(c, err)
	}
	if err != nil {
		RequestLogger(c).Warn().Err(err).Int64("job_id", id).Msg("factura generada; no se pudo releer el trabajo")
	}
	return c.JSON(InvoiceResponse{Invoice: res, Job: job})
}
