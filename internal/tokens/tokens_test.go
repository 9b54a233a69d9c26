package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("unit-test-secret")

func TestSignParse_Roundtrip(t *testing.T) {
	id := uuid.New()

	raw, err := Sign(id, "a@example.com", RoleAdmin, secret)
	require.NoError(t, err)

	claims, err := Parse(raw, secret)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.Subject)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.WithinDuration(t, time.Now().Add(TTL), claims.ExpiresAt.Time, time.Minute)
}

func TestParse_WrongSecret(t *testing.T) {
	raw, err := Sign(uuid.New(), "a@example.com", RoleUser, secret)
	require.NoError(t, err)

	claims, err := Parse(raw, []byte("some-other-secret"))
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestParse_Expired(t *testing.T) {
	expired := AccessClaims{
		Email: "a@example.com",
		Role:  RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * TTL)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-TTL)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString(secret)
	require.NoError(t, err)

	claims, err := Parse(raw, secret)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestParse_RejectsUnsignedToken(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: uuid.NewString()})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := Parse(raw, secret)
	assert.Error(t, err)
	assert.Nil(t, claims)
}
