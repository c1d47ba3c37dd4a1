// internal/domain/catalog/category_service.go
package catalog

import (
	"fmt"
	"strings"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// CategoryService handles category business logic
type CategoryService struct {
	db     *gorm.DB
	config *config.Config
}

// NewCategoryService creates a new category service
func NewCategoryService(db *gorm.DB, cfg *config.Config) *CategoryService {
	return &CategoryService{
		db:     db,
		config: cfg,
	}
}

// CategoryCreateRequest represents category creation data
type CategoryCreateRequest struct {
	Name      string  `json:"name" binding:"required"`
	ParentID  *string `json:"parent_id"`
	SortOrder int     `json:"sort_order"`
	IsActive  *bool   `json:"is_active"`
}

// CategoryUpdateRequest represents category update data
type CategoryUpdateRequest struct {
	Name      *string `json:"name"`
	ParentID  *string `json:"parent_id"`
	SortOrder *int    `json:"sort_order"`
	IsActive  *bool   `json:"is_active"`
}

// GetCategories retrieves the category tree: top-level categories with their
// subcategories preloaded, ordered by sort order.
func (s *CategoryService) GetCategories(activeOnly bool) ([]Category, error) {
	var categories []Category

	query := s.db.Where("parent_id IS NULL").
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			if activeOnly {
				db = db.Where("is_active = ?", true)
			}
			return db.Order("sort_order ASC, name ASC")
		}).
		Order("sort_order ASC, name ASC")

	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}

	return categories, nil
}

// GetCategory retrieves a single category
func (s *CategoryService) GetCategory(id string) (*Category, error) {
	var category Category
	err := s.db.Preload("Children").Preload("Parent").Where("id = ?", id).First(&category).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("category not found")
		}
		return nil, fmt.Errorf("failed to retrieve category: %w", err)
	}
	return &category, nil
}

// CreateCategory creates a new category or subcategory
func (s *CategoryService) CreateCategory(req *CategoryCreateRequest) (*Category, error) {
	if req.ParentID != nil {
		var parent Category
		if err := s.db.Where("id = ?", *req.ParentID).First(&parent).Error; err != nil {
			return nil, fmt.Errorf("parent category not found")
		}
		// Single level of nesting only
		if parent.ParentID != nil {
			return nil, fmt.Errorf("subcategories cannot have their own subcategories")
		}
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	category := Category{
		Name:      req.Name,
		Slug:      slugify(req.Name),
		ParentID:  req.ParentID,
		SortOrder: req.SortOrder,
		IsActive:  isActive,
	}

	if err := s.db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &category, nil
}

// UpdateCategory updates an existing category
func (s *CategoryService) UpdateCategory(id string, req *CategoryUpdateRequest) (*Category, error) {
	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
		category.Slug = slugify(*req.Name)
	}
	if req.ParentID != nil {
		if *req.ParentID == id {
			return nil, fmt.Errorf("category cannot be its own parent")
		}
		var parent Category
		if err := s.db.Where("id = ?", *req.ParentID).First(&parent).Error; err != nil {
			return nil, fmt.Errorf("parent category not found")
		}
		category.ParentID = req.ParentID
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.db.Model(category).
		Select("name", "slug", "parent_id", "sort_order", "is_active").
		Updates(category).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// DeleteCategory deletes a category. Categories that still have
// subcategories or products are protected.
func (s *CategoryService) DeleteCategory(id string) error {
	var childCount int64
	if err := s.db.Model(&Category{}).Where("parent_id = ?", id).Count(&childCount).Error; err != nil {
		return fmt.Errorf("failed to check subcategories: %w", err)
	}
	if childCount > 0 {
		return fmt.Errorf("category has %d subcategories; remove them first", childCount)
	}

	var productCount int64
	if err := s.db.Model(&Product{}).
		Where("category_id = ? OR subcategory_id = ?", id, id).
		Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to check products: %w", err)
	}
	if productCount > 0 {
		return fmt.Errorf("category has %d products; move them first", productCount)
	}

	result := s.db.Where("id = ?", id).Delete(&Category{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("category not found")
	}
	return nil
}

// slugify converts a category name into a URL-safe slug
func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}
