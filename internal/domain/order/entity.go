// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Status represents the order fulfilment status
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// validTransitions lists the forward path plus cancellation. Delivered and
// cancelled are terminal.
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
}

// CanTransitionTo reports whether the status may move to target
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsValid reports whether s is a known status value
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order is a placed order: the customer's contact and shipping details plus
// a priced snapshot of the cart at checkout time. Amounts are minor units
// and never change after placement; only Status moves.
type Order struct {
	ID              string         `json:"id" gorm:"type:varchar(36);primaryKey"`
	OrderNumber     string         `json:"order_number" gorm:"uniqueIndex;not null"`
	CustomerName    string         `json:"customer_name" gorm:"not null"`
	ContactNumber   string         `json:"contact_number" gorm:"not null"`
	Email           string         `json:"email"`
	Street          string         `json:"street" gorm:"not null"`
	City            string         `json:"city" gorm:"not null"`
	Province        string         `json:"province" gorm:"not null"`
	PostalCode      string         `json:"postal_code" gorm:"not null"`
	Country         string         `json:"country" gorm:"default:'Philippines'"`
	ShippingMethod  string         `json:"shipping_method" gorm:"not null"`
	ShippingFee     int64          `json:"shipping_fee" gorm:"not null"`
	Subtotal        int64          `json:"subtotal" gorm:"not null"`
	VoucherDiscount int64          `json:"voucher_discount" gorm:"default:0"`
	TotalAmount     int64          `json:"total_amount" gorm:"not null"`
	PaymentMethod   string         `json:"payment_method" gorm:"not null"`
	Notes           string         `json:"notes"`
	Status          Status         `json:"status" gorm:"type:varchar(20);default:'pending'"`
	VoucherID       *string        `json:"voucher_id" gorm:"type:varchar(36)"`
	VoucherCode     *string        `json:"voucher_code"`
	Items           []OrderItem    `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName overrides table name
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate sets UUID
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

// OrderItem is one cart line frozen into the order. AddOns holds the chosen
// add-on multiset as JSON since add-ons are display data once the order is
// priced.
type OrderItem struct {
	ID                 string         `json:"id" gorm:"type:varchar(36);primaryKey"`
	OrderID            string         `json:"order_id" gorm:"type:varchar(36);not null;index"`
	ProductID          string         `json:"product_id" gorm:"type:varchar(36);not null"`
	ProductName        string         `json:"product_name" gorm:"not null"`
	ProductDescription string         `json:"product_description"`
	BasePrice          int64          `json:"base_price" gorm:"not null"`
	DiscountedPrice    *int64         `json:"discounted_price"`
	Quantity           int            `json:"quantity" gorm:"not null"`
	VariationID        *string        `json:"variation_id" gorm:"type:varchar(36)"`
	VariationName      *string        `json:"variation_name"`
	VariationPrice     int64          `json:"variation_price" gorm:"default:0"`
	AddOns             datatypes.JSON `json:"add_ons"`
	ItemTotal          int64          `json:"item_total" gorm:"not null"`
	CreatedAt          time.Time      `json:"created_at"`
}

// TableName overrides table name
func (OrderItem) TableName() string {
	return "order_items"
}

// BeforeCreate sets UUID
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}
