// internal/pkg/auth/password.go
package auth

import (
	"crypto/subtle"
	"fmt"

	"github.com/your-org/storefront-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// PasswordManager verifies the admin password. Production deployments set a
// bcrypt hash; the plaintext fallback exists for local development only.
type PasswordManager struct {
	config *config.Config
}

// NewPasswordManager creates a new password manager
func NewPasswordManager(cfg *config.Config) *PasswordManager {
	return &PasswordManager{
		config: cfg,
	}
}

// HashPassword hashes a password using bcrypt
func (p *PasswordManager) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.config.Security.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// VerifyAdminPassword checks a login attempt against the configured admin
// credential.
func (p *PasswordManager) VerifyAdminPassword(password string) error {
	if hash := p.config.Admin.PasswordHash; hash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
			return fmt.Errorf("invalid password")
		}
		return nil
	}

	if plain := p.config.Admin.Password; plain != "" {
		if subtle.ConstantTimeCompare([]byte(plain), []byte(password)) != 1 {
			return fmt.Errorf("invalid password")
		}
		return nil
	}

	return fmt.Errorf("admin password not configured")
}
