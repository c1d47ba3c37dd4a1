// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a sellable storefront product. Prices are stored in
// currency minor units. Stock is nullable: absence means the stock level is
// unknown and the product is treated as unsellable until an admin sets it.
type Product struct {
	ID              string         `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string         `gorm:"not null;size:255" json:"name"`
	Description     string         `gorm:"type:text" json:"description"`
	BasePrice       int64          `gorm:"not null" json:"base_price"`
	DiscountedPrice *int64         `json:"discounted_price,omitempty"` // Must be below BasePrice when set
	CategoryID      string         `gorm:"type:uuid;not null;index" json:"category_id"`
	SubcategoryID   *string        `gorm:"type:uuid;index" json:"subcategory_id,omitempty"`
	Popular         bool           `gorm:"default:false" json:"popular"`
	Available       bool           `gorm:"default:true" json:"available"`
	Stock           *int           `json:"stock,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category    Category       `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	Subcategory *Category      `gorm:"foreignKey:SubcategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"subcategory,omitempty"`
	Images      []ProductImage `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images,omitempty"`
	Variations  []Variation    `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"variations,omitempty"`
	AddOns      []AddOn        `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"add_ons,omitempty"`
}

// Variation is a selectable size/type option for a product. Price is a delta
// added to the product's effective price. Stock, when present, overrides the
// product-level stock ceiling for this variation.
type Variation struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID string         `gorm:"type:uuid;not null;index" json:"product_id"`
	Name      string         `gorm:"not null;size:255" json:"name"`
	Price     int64          `gorm:"not null;default:0" json:"price"`
	ImageURL  string         `gorm:"size:500" json:"image_url,omitempty"`
	Stock     *int           `json:"stock,omitempty"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// AddOn is an optional extra attached to a line item. Category is a grouping
// label only and has no pricing effect.
type AddOn struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID string         `gorm:"type:uuid;not null;index" json:"product_id"`
	Name      string         `gorm:"not null;size:255" json:"name"`
	Price     int64          `gorm:"not null;default:0" json:"price"`
	Category  string         `gorm:"size:100" json:"category"`
	ImageURL  string         `gorm:"size:500" json:"image_url,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Category represents a product category. Subcategories reference their
// parent through ParentID.
type Category struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"not null;size:255" json:"name"`
	Slug      string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	ParentID  *string        `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Parent   *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

// ProductImage represents a product image reference
type ProductImage struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID string    `gorm:"type:uuid;not null;index" json:"product_id"`
	URL       string    `gorm:"not null;size:500" json:"url"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides
func (Product) TableName() string      { return "products" }
func (Variation) TableName() string    { return "variations" }
func (AddOn) TableName() string        { return "add_ons" }
func (Category) TableName() string     { return "categories" }
func (ProductImage) TableName() string { return "product_images" }

// BeforeCreate hooks assign UUID primary keys

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

func (v *Variation) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}

func (a *AddOn) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

func (i *ProductImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

// Business methods for Product

// EffectiveBasePrice returns the discounted price when one is set below the
// base price, otherwise the base price.
func (p *Product) EffectiveBasePrice() int64 {
	if p.DiscountedPrice != nil && *p.DiscountedPrice < p.BasePrice {
		return *p.DiscountedPrice
	}
	return p.BasePrice
}

// StockOnHand returns the sellable stock count. A missing stock value is
// treated as zero: unknown stock is not sellable.
func (p *Product) StockOnHand() int {
	if p.Stock == nil {
		return 0
	}
	return *p.Stock
}

// IsInStock reports whether the product has sellable stock
func (p *Product) IsInStock() bool {
	return p.StockOnHand() > 0
}

// StockOnHand returns the variation's own stock when set, falling back to
// the product-level count.
func (v *Variation) StockOnHand(p *Product) int {
	if v.Stock != nil {
		return *v.Stock
	}
	return p.StockOnHand()
}
