package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/humble-crm/internal/application/auth"
	"github.com/jhoicas/humble-crm/internal/application/dto"
)

// AuthHandler login del panel y del portal de clientes.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// AdminLogin godoc
// @Summary      Iniciar sesión en el panel
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdminLoginRequest  true  "password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var in dto.AdminLoginRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.AdminLogin(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PortalLogin godoc
// @Summary      Iniciar sesión en el portal de clientes
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PortalLoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /portal/login [post]
func (h *AuthHandler) PortalLogin(c *fiber.Ctx) error {
	var in dto.PortalLoginRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.PortalLogin(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
