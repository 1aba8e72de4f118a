package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panchito04/BackHogEle/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)
	user := &models.User{ID: 7, Email: "marta@example.com", Name: "Marta", Role: models.RoleAdmin}

	signed, err := tokens.Issue(user)
	require.NoError(t, err)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "marta@example.com", claims.Email)
	assert.Equal(t, "Marta", claims.Name)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("right-secret", time.Hour)
	verifier := NewTokenManager("wrong-secret", time.Hour)

	signed, err := issuer.Issue(&models.User{ID: 1, Role: models.RoleSeller})
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	require.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	// A negative ttl issues tokens that are already expired
	expired := NewTokenManager("test-secret", -time.Minute)
	fresh := NewTokenManager("test-secret", time.Hour)

	signed, err := expired.Issue(&models.User{ID: 1, Role: models.RoleSeller})
	require.NoError(t, err)

	_, err = fresh.Verify(signed)
	require.Error(t, err)
}

func TestZeroTTLDefaultsToSevenDays(t *testing.T) {
	tokens := NewTokenManager("test-secret", 0)
	assert.Equal(t, 7*24*time.Hour, tokens.ttl)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)
	_, err := tokens.Verify("not-a-token")
	require.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "secret124"))
}
