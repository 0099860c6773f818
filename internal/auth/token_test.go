package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/config"
)

func testIssuer(ttl time.Duration) *TokenIssuer {
	return NewTokenIssuer(config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  ttl,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := testIssuer(time.Hour)
	userID := uuid.New()

	token, err := issuer.Issue(userID, "margaret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, subject.UserID)
	assert.Equal(t, "margaret", subject.Username)
}

func TestTokenExpired(t *testing.T) {
	issuer := testIssuer(-time.Minute)

	token, err := issuer.Issue(uuid.New(), "margaret")
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := testIssuer(time.Hour).Issue(uuid.New(), "margaret")
	require.NoError(t, err)

	other := NewTokenIssuer(config.AuthConfig{JWTSecret: "other-secret", TokenTTL: time.Hour})
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenGarbage(t *testing.T) {
	_, err := testIssuer(time.Hour).Verify("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHasherRoundTrip(t *testing.T) {
	h := NewHasher(4) // minimum cost keeps the test fast

	hashed, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, h.Compare("correct horse battery staple", hashed))
	assert.False(t, h.Compare("wrong password", hashed))
}
