package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles emitidos por el servicio.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// ErrInvalidToken token mal firmado, expirado o con claims incompletos.
var ErrInvalidToken = errors.New("jwt: token inválido")

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// CustomerID solo viaja en sesiones del portal de clientes.
type Claims struct {
	jwt.RegisteredClaims
	CustomerID int64  `json:"customer_id,omitempty"`
	Role       string `json:"role"`
}

// Session datos de sesión extraídos de un token válido.
type Session struct {
	Subject    string
	CustomerID int64
	Role       string
	ExpiresAt  time.Time
}

// Generate genera un token HS256 con expiración.
func Generate(secret, issuer string, s Session, expMinutes int) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	exp := now.Add(time.Duration(expMinutes) * time.Minute)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   s.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		CustomerID: s.CustomerID,
		Role:       s.Role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: firmar: %w", err)
	}
	return signed, exp, nil
}

// Parse valida el token y devuelve la sesión.
// Retorna ErrInvalidToken si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (Session, error) {
	if secret == "" {
		return Session{}, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Role == "" {
		return Session{}, ErrInvalidToken
	}
	if claims.Role == RoleCustomer && claims.CustomerID == 0 {
		return Session{}, ErrInvalidToken
	}
	s := Session{Subject: claims.Subject, CustomerID: claims.CustomerID, Role: claims.Role}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}
