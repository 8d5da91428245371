// Package auth emite las sesiones del panel (admin) y del portal de clientes.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/humble-crm/internal/application/dto"
	"github.com/jhoicas/humble-crm/internal/domain"
	"github.com/jhoicas/humble-crm/internal/domain/repository"
	"github.com/jhoicas/humble-crm/pkg/jwt"
)

// AdminSubject sujeto del token del administrador.
const AdminSubject = "admin"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login del panel y del portal.
type AuthUseCase struct {
	adminHash []byte
	portal    repository.PortalAuthenticator
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso. adminHash es el hash bcrypt de la contraseña del panel.
func NewAuthUseCase(adminHash string, portal repository.PortalAuthenticator, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{adminHash: []byte(strings.TrimSpace(adminHash)), portal: portal, jwtCfg: jwtCfg}
}

// AdminLogin compara la contraseña con el hash configurado y emite un token admin.
// Sin hash configurado el login del panel queda deshabilitado.
func (uc *AuthUseCase) AdminLogin(in dto.AdminLoginRequest) (*dto.LoginResponse, error) {
	if len(uc.adminHash) == 0 || in.Password == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(uc.adminHash, []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(jwt.Session{Subject: AdminSubject, Role: jwt.RoleAdmin})
}

// PortalLogin delega la verificación al backend y emite un token propio con el customer_id.
// El token del backend nunca llega al navegador.
func (uc *AuthUseCase) PortalLogin(ctx context.Context, in dto.PortalLoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrUnauthorized
	}
	customerID, err := uc.portal.Login(ctx, email, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth: login portal: %w", err)
	}
	if customerID <= 0 {
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(jwt.Session{Subject: email, CustomerID: customerID, Role: jwt.RoleCustomer})
}

// HashPassword genera el hash bcrypt para ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (uc *AuthUseCase) issue(s jwt.Session) (*dto.LoginResponse, error) {
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, s, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresAt: exp, Role: s.Role, CustomerID: s.CustomerID}, nil
}
