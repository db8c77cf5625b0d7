package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")

	token, err := SignAccessToken(42, "jane@example.com", "customer", secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := AccessClaimsFromToken(token, secret)
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
	assert.NotEmpty(t, claims.ID)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.EqualValues(t, 42, userID)

	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestAccessClaimsFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := SignAccessToken(1, "jane@example.com", "customer", []byte("right"), time.Hour)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, []byte("wrong"))
	require.Error(t, err)
}

func TestAccessClaimsFromToken_Expired(t *testing.T) {
	t.Parallel()

	token, err := SignAccessToken(1, "jane@example.com", "customer", []byte("secret"), -time.Minute)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, []byte("secret"))
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestAccessClaimsFromToken_RejectsUnsignedToken(t *testing.T) {
	t.Parallel()

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, AccessClaims{
		Email: "jane@example.com",
		Role:  "admin",
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(raw, []byte("secret"))
	require.Error(t, err)
}
