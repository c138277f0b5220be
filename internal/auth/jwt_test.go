package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/arefin-dev/messwallet/internal/models"
)

func TestGenerateAndParseToken(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(userID, "rahim@example.com", models.RoleFounder, "secret", time.Hour)
	assert.NoError(t, err)

	claims, err := ParseToken(token, "secret")
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "rahim@example.com", claims.Email)
	assert.Equal(t, models.RoleFounder, claims.Role)
	assert.Equal(t, "messwallet", claims.Issuer)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "rahim@example.com", models.RoleMember, "secret", time.Hour)
	assert.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "rahim@example.com", models.RoleMember, "secret", -time.Minute)
	assert.NoError(t, err)

	_, err = ParseToken(token, "secret")
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not-a-token", "secret")
	assert.Error(t, err)
}
