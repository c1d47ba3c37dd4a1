// internal/domain/catalog/service.go
package catalog

import (
	"fmt"
	"strings"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ProductListRequest represents product list query parameters
type ProductListRequest struct {
	Page          int    `form:"page,default=1"`
	Limit         int    `form:"limit,default=20"`
	CategoryID    string `form:"category_id"`
	SubcategoryID string `form:"subcategory_id"`
	Search        string `form:"search"`
	Popular       *bool  `form:"popular"`
	Available     *bool  `form:"available"`
	SortBy        string `form:"sort_by,default=created_at"`
	SortOrder     string `form:"sort_order,default=desc"`
}

// VariationInput represents a variation in create/update payloads
type VariationInput struct {
	Name      string `json:"name" binding:"required"`
	Price     int64  `json:"price"`
	ImageURL  string `json:"image_url"`
	Stock     *int   `json:"stock"`
	SortOrder int    `json:"sort_order"`
}

// AddOnInput represents an add-on in create/update payloads
type AddOnInput struct {
	Name     string `json:"name" binding:"required"`
	Price    int64  `json:"price"`
	Category string `json:"category"`
	ImageURL string `json:"image_url"`
}

// ProductCreateRequest represents product creation data
type ProductCreateRequest struct {
	Name            string           `json:"name" binding:"required"`
	Description     string           `json:"description"`
	BasePrice       int64            `json:"base_price" binding:"required"`
	DiscountedPrice *int64           `json:"discounted_price"`
	CategoryID      string           `json:"category_id" binding:"required"`
	SubcategoryID   *string          `json:"subcategory_id"`
	Popular         bool             `json:"popular"`
	Available       bool             `json:"available"`
	Stock           *int             `json:"stock"`
	Images          []string         `json:"images"`
	Variations      []VariationInput `json:"variations"`
	AddOns          []AddOnInput     `json:"add_ons"`
}

// ProductUpdateRequest represents product update data. Nil fields are left
// unchanged; Images/Variations/AddOns, when present, replace the existing
// sets.
type ProductUpdateRequest struct {
	Name            *string           `json:"name"`
	Description     *string           `json:"description"`
	BasePrice       *int64            `json:"base_price"`
	DiscountedPrice *int64            `json:"discounted_price"`
	ClearDiscount   bool              `json:"clear_discount"`
	CategoryID      *string           `json:"category_id"`
	SubcategoryID   *string           `json:"subcategory_id"`
	Popular         *bool             `json:"popular"`
	Available       *bool             `json:"available"`
	Stock           *int              `json:"stock"`
	Images          *[]string         `json:"images"`
	Variations      *[]VariationInput `json:"variations"`
	AddOns          *[]AddOnInput     `json:"add_ons"`
}

// ProductResponse represents product response with pagination
type ProductResponse struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// GetProducts retrieves products with filtering and pagination
func (s *Service) GetProducts(req *ProductListRequest) (*ProductResponse, error) {
	var products []Product
	var total int64

	query := s.db.Model(&Product{}).
		Preload("Category").
		Preload("Subcategory").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Preload("Variations", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("AddOns")

	if req.CategoryID != "" {
		query = query.Where("category_id = ?", req.CategoryID)
	}

	if req.SubcategoryID != "" {
		query = query.Where("subcategory_id = ?", req.SubcategoryID)
	}

	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", search, search)
	}

	if req.Popular != nil {
		query = query.Where("popular = ?", *req.Popular)
	}

	if req.Available != nil {
		query = query.Where("available = ?", *req.Available)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	// Sorting; whitelist of allowed columns
	sortBy := req.SortBy
	switch sortBy {
	case "name", "base_price", "created_at", "updated_at":
	default:
		sortBy = "created_at"
	}
	sortOrder := "DESC"
	if strings.EqualFold(req.SortOrder, "asc") {
		sortOrder = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	// Pagination
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}
	offset := (req.Page - 1) * req.Limit

	if err := query.Offset(offset).Limit(req.Limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return &ProductResponse{
		Products: products,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

// GetStorefrontProducts retrieves the products exposed to the public
// storefront: available products only.
func (s *Service) GetStorefrontProducts(req *ProductListRequest) (*ProductResponse, error) {
	available := true
	req.Available = &available
	return s.GetProducts(req)
}

// GetProduct retrieves a single product with all its relations
func (s *Service) GetProduct(id string) (*Product, error) {
	var product Product
	err := s.db.
		Preload("Category").
		Preload("Subcategory").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Preload("Variations", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("AddOns").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &product, nil
}

// CreateProduct creates a new product with its variations, add-ons and images
func (s *Service) CreateProduct(req *ProductCreateRequest) (*Product, error) {
	if req.DiscountedPrice != nil && *req.DiscountedPrice >= req.BasePrice {
		return nil, fmt.Errorf("discounted price must be below base price")
	}
	if req.Stock != nil && *req.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}

	var category Category
	if err := s.db.Where("id = ?", req.CategoryID).First(&category).Error; err != nil {
		return nil, fmt.Errorf("category not found")
	}

	product := Product{
		Name:            req.Name,
		Description:     req.Description,
		BasePrice:       req.BasePrice,
		DiscountedPrice: req.DiscountedPrice,
		CategoryID:      req.CategoryID,
		SubcategoryID:   req.SubcategoryID,
		Popular:         req.Popular,
		Available:       req.Available,
		Stock:           req.Stock,
	}

	for i, url := range req.Images {
		product.Images = append(product.Images, ProductImage{URL: url, SortOrder: i})
	}
	for _, v := range req.Variations {
		if v.Price < 0 {
			return nil, fmt.Errorf("variation price cannot be negative")
		}
		product.Variations = append(product.Variations, Variation{
			Name:      v.Name,
			Price:     v.Price,
			ImageURL:  v.ImageURL,
			Stock:     v.Stock,
			SortOrder: v.SortOrder,
		})
	}
	for _, a := range req.AddOns {
		if a.Price < 0 {
			return nil, fmt.Errorf("add-on price cannot be negative")
		}
		product.AddOns = append(product.AddOns, AddOn{
			Name:     a.Name,
			Price:    a.Price,
			Category: a.Category,
			ImageURL: a.ImageURL,
		})
	}

	if err := s.db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return s.GetProduct(product.ID)
}

// UpdateProduct updates an existing product
func (s *Service) UpdateProduct(id string, req *ProductUpdateRequest) (*Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.BasePrice != nil {
		product.BasePrice = *req.BasePrice
	}
	if req.ClearDiscount {
		product.DiscountedPrice = nil
	} else if req.DiscountedPrice != nil {
		product.DiscountedPrice = req.DiscountedPrice
	}
	if product.DiscountedPrice != nil && *product.DiscountedPrice >= product.BasePrice {
		return nil, fmt.Errorf("discounted price must be below base price")
	}
	if req.CategoryID != nil {
		var category Category
		if err := s.db.Where("id = ?", *req.CategoryID).First(&category).Error; err != nil {
			return nil, fmt.Errorf("category not found")
		}
		product.CategoryID = *req.CategoryID
	}
	if req.SubcategoryID != nil {
		product.SubcategoryID = req.SubcategoryID
	}
	if req.Popular != nil {
		product.Popular = *req.Popular
	}
	if req.Available != nil {
		product.Available = *req.Available
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, fmt.Errorf("stock cannot be negative")
		}
		product.Stock = req.Stock
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(product).
			Select("name", "description", "base_price", "discounted_price", "category_id",
				"subcategory_id", "popular", "available", "stock").
			Updates(product).Error; err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}

		if req.Images != nil {
			if err := tx.Where("product_id = ?", id).Delete(&ProductImage{}).Error; err != nil {
				return fmt.Errorf("failed to replace images: %w", err)
			}
			for i, url := range *req.Images {
				img := ProductImage{ProductID: id, URL: url, SortOrder: i}
				if err := tx.Create(&img).Error; err != nil {
					return fmt.Errorf("failed to create image: %w", err)
				}
			}
		}

		if req.Variations != nil {
			if err := tx.Where("product_id = ?", id).Delete(&Variation{}).Error; err != nil {
				return fmt.Errorf("failed to replace variations: %w", err)
			}
			for _, v := range *req.Variations {
				variation := Variation{
					ProductID: id,
					Name:      v.Name,
					Price:     v.Price,
					ImageURL:  v.ImageURL,
					Stock:     v.Stock,
					SortOrder: v.SortOrder,
				}
				if err := tx.Create(&variation).Error; err != nil {
					return fmt.Errorf("failed to create variation: %w", err)
				}
			}
		}

		if req.AddOns != nil {
			if err := tx.Where("product_id = ?", id).Delete(&AddOn{}).Error; err != nil {
				return fmt.Errorf("failed to replace add-ons: %w", err)
			}
			for _, a := range *req.AddOns {
				addOn := AddOn{
					ProductID: id,
					Name:      a.Name,
					Price:     a.Price,
					Category:  a.Category,
					ImageURL:  a.ImageURL,
				}
				if err := tx.Create(&addOn).Error; err != nil {
					return fmt.Errorf("failed to create add-on: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetProduct(id)
}

// UpdateStock sets the stock-on-hand count for a product or one of its
// variations.
func (s *Service) UpdateStock(productID string, variationID *string, stock int) error {
	if stock < 0 {
		return fmt.Errorf("stock cannot be negative")
	}

	if variationID != nil {
		result := s.db.Model(&Variation{}).
			Where("id = ? AND product_id = ?", *variationID, productID).
			Update("stock", stock)
		if result.Error != nil {
			return fmt.Errorf("failed to update variation stock: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("variation not found")
		}
		return nil
	}

	result := s.db.Model(&Product{}).Where("id = ?", productID).Update("stock", stock)
	if result.Error != nil {
		return fmt.Errorf("failed to update product stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}

// DeleteProduct soft-deletes a product
func (s *Service) DeleteProduct(id string) error {
	result := s.db.Where("id = ?", id).Delete(&Product{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}
