package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "storefront-test"},
		JWT: config.JWTConfig{
			Secret:      "test-secret-key-that-is-long-enough",
			TokenExpiry: time.Hour,
		},
	}
}

func TestGenerateAndValidateAdminToken(t *testing.T) {
	manager := NewJWTManager(testConfig())

	token, err := manager.GenerateAdminToken()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateAdminToken(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "admin", claims.TokenType)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "storefront-test", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	manager := NewJWTManager(testConfig())
	token, err := manager.GenerateAdminToken()
	require.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "a-different-secret-key-also-long-enough"
	_, err = NewJWTManager(other).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.TokenExpiry = -time.Minute

	manager := NewJWTManager(cfg)
	token, err := manager.GenerateAdminToken()
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	manager := NewJWTManager(testConfig())
	_, err := manager.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateAdminTokenRejectsNonAdminClaims(t *testing.T) {
	cfg := testConfig()
	now := time.Now().UTC()
	claims := &Claims{
		IsAdmin:   false,
		TokenType: "session",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWT.Secret))
	require.NoError(t, err)

	manager := NewJWTManager(cfg)

	// Signature is valid, claims are not admin claims
	_, err = manager.ValidateToken(token)
	require.NoError(t, err)
	_, err = manager.ValidateAdminToken(token)
	assert.Error(t, err)
}
