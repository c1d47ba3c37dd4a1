package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
)

func passwordConfig() *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{BcryptCost: 4},
	}
}

func TestVerifyAdminPasswordWithHash(t *testing.T) {
	cfg := passwordConfig()
	manager := NewPasswordManager(cfg)

	hash, err := manager.HashPassword("sesame")
	require.NoError(t, err)
	cfg.Admin = config.AdminConfig{PasswordHash: hash}

	assert.NoError(t, manager.VerifyAdminPassword("sesame"))
	assert.Error(t, manager.VerifyAdminPassword("wrong"))
	assert.Error(t, manager.VerifyAdminPassword(""))
}

func TestVerifyAdminPasswordPlaintextFallback(t *testing.T) {
	cfg := passwordConfig()
	cfg.Admin = config.AdminConfig{Password: "local-dev-password"}
	manager := NewPasswordManager(cfg)

	assert.NoError(t, manager.VerifyAdminPassword("local-dev-password"))
	assert.Error(t, manager.VerifyAdminPassword("LOCAL-DEV-PASSWORD"))
}

func TestVerifyAdminPasswordHashTakesPrecedence(t *testing.T) {
	cfg := passwordConfig()
	manager := NewPasswordManager(cfg)

	hash, err := manager.HashPassword("hashed-secret")
	require.NoError(t, err)
	cfg.Admin = config.AdminConfig{PasswordHash: hash, Password: "plain-secret"}

	assert.NoError(t, manager.VerifyAdminPassword("hashed-secret"))
	assert.Error(t, manager.VerifyAdminPassword("plain-secret"))
}

func TestVerifyAdminPasswordUnconfigured(t *testing.T) {
	manager := NewPasswordManager(passwordConfig())
	err := manager.VerifyAdminPassword("anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
