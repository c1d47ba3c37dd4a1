// internal/domain/payment/service.go
package payment

import (
	"errors"
	"fmt"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles payment method business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new payment service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreatePaymentMethodRequest represents a payment method creation request
type CreatePaymentMethodRequest struct {
	Name          string `json:"name" binding:"required"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	QRCodeURL     string `json:"qr_code_url"`
	Instructions  string `json:"instructions"`
	SortOrder     int    `json:"sort_order"`
}

// UpdatePaymentMethodRequest represents a payment method update
type UpdatePaymentMethodRequest struct {
	Name          *string `json:"name"`
	AccountNumber *string `json:"account_number"`
	AccountName   *string `json:"account_name"`
	QRCodeURL     *string `json:"qr_code_url"`
	Instructions  *string `json:"instructions"`
	IsActive      *bool   `json:"is_active"`
	SortOrder     *int    `json:"sort_order"`
}

// GetActiveMethods returns the methods offered to shoppers, in display order
func (s *Service) GetActiveMethods() ([]PaymentMethod, error) {
	var methods []PaymentMethod
	err := s.db.Where("is_active = ?", true).
		Order("sort_order ASC, created_at ASC").
		Find(&methods).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get payment methods: %w", err)
	}
	return methods, nil
}

// GetMethods returns all methods for the admin panel
func (s *Service) GetMethods() ([]PaymentMethod, error) {
	var methods []PaymentMethod
	err := s.db.Order("sort_order ASC, created_at ASC").Find(&methods).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get payment methods: %w", err)
	}
	return methods, nil
}

// GetMethod returns a payment method by id
func (s *Service) GetMethod(id string) (*PaymentMethod, error) {
	var method PaymentMethod
	if err := s.db.Where("id = ?", id).First(&method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment method not found")
		}
		return nil, fmt.Errorf("failed to get payment method: %w", err)
	}
	return &method, nil
}

// GetActiveMethod returns an active payment method by id, for checkout
func (s *Service) GetActiveMethod(id string) (*PaymentMethod, error) {
	var method PaymentMethod
	err := s.db.Where("id = ? AND is_active = ?", id, true).First(&method).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment method not available")
		}
		return nil, fmt.Errorf("failed to get payment method: %w", err)
	}
	return &method, nil
}

// CreateMethod creates a payment method
func (s *Service) CreateMethod(req *CreatePaymentMethodRequest) (*PaymentMethod, error) {
	method := &PaymentMethod{
		Name:          req.Name,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
		QRCodeURL:     req.QRCodeURL,
		Instructions:  req.Instructions,
		IsActive:      true,
		SortOrder:     req.SortOrder,
	}
	if err := s.db.Create(method).Error; err != nil {
		return nil, fmt.Errorf("failed to create payment method: %w", err)
	}
	return method, nil
}

// UpdateMethod applies an admin update
func (s *Service) UpdateMethod(id string, req *UpdatePaymentMethodRequest) (*PaymentMethod, error) {
	method, err := s.GetMethod(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		method.Name = *req.Name
	}
	if req.AccountNumber != nil {
		method.AccountNumber = *req.AccountNumber
	}
	if req.AccountName != nil {
		method.AccountName = *req.AccountName
	}
	if req.QRCodeURL != nil {
		method.QRCodeURL = *req.QRCodeURL
	}
	if req.Instructions != nil {
		method.Instructions = *req.Instructions
	}
	if req.IsActive != nil {
		method.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		method.SortOrder = *req.SortOrder
	}

	if err := s.db.Save(method).Error; err != nil {
		return nil, fmt.Errorf("failed to update payment method: %w", err)
	}
	return method, nil
}

// DeleteMethod soft deletes a payment method
func (s *Service) DeleteMethod(id string) error {
	result := s.db.Where("id = ?", id).Delete(&PaymentMethod{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete payment method: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("payment method not found")
	}
	return nil
}
