// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// Service handles session cart business logic. Carts live in Redis, keyed by
// browser session; the catalog database supplies product data and the stock
// snapshots that cart mutations check against. Stock checks are advisory:
// nothing is reserved until an order is placed.
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
	}
}

// AddOnSelection identifies one chosen add-on in an add-to-cart request.
// Repeating the same add-on id across entries sums into one multiset entry.
type AddOnSelection struct {
	AddOnID  string `json:"add_on_id" binding:"required"`
	Quantity int    `json:"quantity"`
}

// AddToCartRequest represents an add-to-cart request
type AddToCartRequest struct {
	ProductID   string           `json:"product_id" binding:"required"`
	VariationID *string          `json:"variation_id"`
	Quantity    int              `json:"quantity" binding:"required,min=1"`
	AddOns      []AddOnSelection `json:"add_ons"`
}

// UpdateItemRequest represents a quantity update. Zero removes the line.
type UpdateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// GetCart retrieves the session's cart, returning an empty cart when none
// exists yet.
func (s *Service) GetCart(ctx context.Context, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required")
	}

	data, err := s.redisClient.Get(ctx, cartKey(sessionID)).Result()
	if err == redis.Nil {
		return NewCart(sessionID), nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var c Cart
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &c, nil
}

// AddToCart resolves the requested product, variation and add-ons against
// the catalog, snapshots them and adds them to the session cart.
func (s *Service) AddToCart(ctx context.Context, sessionID string, req *AddToCartRequest) (*Cart, error) {
	var product catalog.Product
	err := s.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC").Limit(1)
	}).Preload("Variations").Preload("AddOns").
		Where("id = ? AND available = ?", req.ProductID, true).
		First(&product).Error
	if err != nil {
		return nil, ErrProductUnavailable
	}

	snapshot := productSnapshot(&product)

	var variation *VariationSnapshot
	if req.VariationID != nil {
		for _, v := range product.Variations {
			if v.ID == *req.VariationID {
				variation = &VariationSnapshot{ID: v.ID, Name: v.Name, Price: v.Price, Stock: v.Stock}
				break
			}
		}
		if variation == nil {
			return nil, ErrVariationNotFound
		}
	}

	var addOns []ChosenAddOn
	for _, sel := range req.AddOns {
		var match *catalog.AddOn
		for i := range product.AddOns {
			if product.AddOns[i].ID == sel.AddOnID {
				match = &product.AddOns[i]
				break
			}
		}
		if match == nil {
			return nil, ErrAddOnNotFound
		}
		addOns = append(addOns, ChosenAddOn{
			ID:       match.ID,
			Name:     match.Name,
			Price:    match.Price,
			Quantity: sel.Quantity,
		})
	}

	c, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if _, err := c.AddItem(snapshot, req.Quantity, variation, addOns); err != nil {
		return nil, err
	}

	if err := s.saveCart(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateItem sets a line's quantity after refreshing its stock snapshot
// from the catalog. Zero quantity removes the line.
func (s *Service) UpdateItem(ctx context.Context, sessionID, lineID string, quantity int) (*Cart, error) {
	c, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if line := c.Line(lineID); line != nil && quantity > 0 {
		s.refreshStock(line)
	}

	if err := c.UpdateQuantity(lineID, quantity); err != nil {
		return nil, err
	}

	if err := s.saveCart(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem deletes a line unconditionally
func (s *Service) RemoveItem(ctx context.Context, sessionID, lineID string) (*Cart, error) {
	c, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := c.RemoveLine(lineID); err != nil {
		return nil, err
	}

	if err := s.saveCart(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ClearCart empties the session's cart
func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	if err := s.redisClient.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// ItemCount returns the total quantity held in the session's cart
func (s *Service) ItemCount(ctx context.Context, sessionID string) (int, error) {
	c, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return c.TotalItems(), nil
}

func (s *Service) saveCart(ctx context.Context, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.redisClient.Set(ctx, cartKey(c.SessionID), data, s.config.Store.CartTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// refreshStock re-reads the line's stock ceiling from the catalog so the
// quantity check runs against the latest snapshot. Lookup failures keep the
// stored snapshot; stock validation stays advisory either way.
func (s *Service) refreshStock(line *CartLine) {
	if line.SelectedVariation != nil {
		var variation catalog.Variation
		if err := s.db.Select("stock").Where("id = ?", line.SelectedVariation.ID).First(&variation).Error; err == nil {
			line.SelectedVariation.Stock = variation.Stock
		}
		return
	}

	var product catalog.Product
	if err := s.db.Select("stock").Where("id = ?", line.Product.ID).First(&product).Error; err == nil {
		line.Product.Stock = product.Stock
	}
}

func productSnapshot(p *catalog.Product) ProductSnapshot {
	imageURL := ""
	if len(p.Images) > 0 {
		imageURL = p.Images[0].URL
	}
	return ProductSnapshot{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		BasePrice:       p.BasePrice,
		DiscountedPrice: p.DiscountedPrice,
		ImageURL:        imageURL,
		Stock:           p.Stock,
	}
}
