// internal/domain/payment/entity.go
package payment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentMethod is a manual payment channel shown at checkout: an account
// the shopper transfers to before sending proof over chat. There is no
// gateway integration.
type PaymentMethod struct {
	ID            string         `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name          string         `json:"name" gorm:"not null"`
	AccountNumber string         `json:"account_number"`
	AccountName   string         `json:"account_name"`
	QRCodeURL     string         `json:"qr_code_url"`
	Instructions  string         `json:"instructions"`
	IsActive      bool           `json:"is_active" gorm:"default:true"`
	SortOrder     int            `json:"sort_order" gorm:"default:0"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName overrides table name
func (PaymentMethod) TableName() string {
	return "payment_methods"
}

// BeforeCreate sets UUID
func (m *PaymentMethod) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
