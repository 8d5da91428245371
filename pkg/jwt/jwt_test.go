package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/humble-crm/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateParse_RoundTripCustomer(t *testing.T) {
	token, exp, err := jwt.Generate(secret, "humble-crm", jwt.Session{
		Subject: "ana@example.com", CustomerID: 7, Role: jwt.RoleCustomer,
	}, 30)
	require.NoError(t, err)
	require.False(t, exp.IsZero())

	s, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), s.CustomerID)
	assert.Equal(t, jwt.RoleCustomer, s.Role)
	assert.Equal(t, "ana@example.com", s.Subject)
	assert.WithinDuration(t, exp, s.ExpiresAt, time.Second)
}

func TestParse_Expired(t *testing.T) {
	token, _, err := jwt.Generate(secret, "humble-crm", jwt.Session{Subject: "admin", Role: jwt.RoleAdmin}, -1)
	require.NoError(t, err)

	_, err = jwt.Parse(secret, token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestParse_WrongSecret(t *testing.T) {
	token, _, err := jwt.Generate(secret, "humble-crm", jwt.Session{Subject: "admin", Role: jwt.RoleAdmin}, 10)
	require.NoError(t, err)

	_, err = jwt.Parse("otro", token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestParse_CustomerWithoutID(t *testing.T) {
	claims := jwt.Claims{Role: jwt.RoleCustomer}
	claims.ExpiresAt = gojwt.NewNumericDate(time.Now().Add(10 * time.Minute))
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = jwt.Parse(secret, token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, _, err := jwt.Generate("", "x", jwt.Session{Role: jwt.RoleAdmin}, 10)
	assert.Error(t, err)
}
