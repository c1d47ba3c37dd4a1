// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"github.com/your-org/storefront-backend/internal/domain/voucher"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		&catalog.Category{},
		&catalog.Product{},
		&catalog.ProductImage{},
		&catalog.Variation{},
		&catalog.AddOn{},

		&voucher.Voucher{},
		&payment.PaymentMethod{},

		&order.Order{},
		&order.OrderItem{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category_available ON products(category_id, available)",
		"CREATE INDEX IF NOT EXISTS idx_products_popular ON products(popular, available)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Category indexes
		"CREATE INDEX IF NOT EXISTS idx_categories_parent_active ON categories(parent_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_categories_slug ON categories(slug)",
		"CREATE INDEX IF NOT EXISTS idx_categories_sort_order ON categories(sort_order)",

		// Variation and add-on indexes
		"CREATE INDEX IF NOT EXISTS idx_variations_product ON variations(product_id, sort_order)",
		"CREATE INDEX IF NOT EXISTS idx_add_ons_product ON add_ons(product_id)",

		// Product image indexes
		"CREATE INDEX IF NOT EXISTS idx_product_images_sort_order ON product_images(product_id, sort_order)",

		// Voucher indexes
		"CREATE INDEX IF NOT EXISTS idx_vouchers_code_active ON vouchers(code, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_vouchers_expires_at ON vouchers(expires_at)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_order_number ON orders(order_number)",
		"CREATE INDEX IF NOT EXISTS idx_orders_customer_name ON orders(customer_name)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",

		// Order items indexes
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",

		// Payment method indexes
		"CREATE INDEX IF NOT EXISTS idx_payment_methods_active_sort ON payment_methods(is_active, sort_order)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	if err := m.seedPaymentMethods(); err != nil {
		return fmt.Errorf("failed to seed payment methods: %w", err)
	}

	if err := m.seedProducts(); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	if err := m.seedVouchers(); err != nil {
		return fmt.Errorf("failed to seed vouchers: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedCategories creates default product categories
func (m *Migration) seedCategories() error {
	log.Println("🏷️ Seeding categories...")

	var count int64
	m.db.Model(&catalog.Category{}).Count(&count)
	if count > 0 {
		log.Println("Categories already exist, skipping seed")
		return nil
	}

	categories := []catalog.Category{
		{Name: "Hair Care", Slug: "hair-care", IsActive: true, SortOrder: 1},
		{Name: "Body Care", Slug: "body-care", IsActive: true, SortOrder: 2},
		{Name: "Beauty", Slug: "beauty", IsActive: true, SortOrder: 3},
	}

	for i := range categories {
		if err := m.db.Create(&categories[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

// seedPaymentMethods creates the default manual payment channels
func (m *Migration) seedPaymentMethods() error {
	log.Println("💳 Seeding payment methods...")

	var count int64
	m.db.Model(&payment.PaymentMethod{}).Count(&count)
	if count > 0 {
		log.Println("Payment methods already exist, skipping seed")
		return nil
	}

	methods := []payment.PaymentMethod{
		{
			Name:          "GCash",
			AccountNumber: "09171234567",
			AccountName:   "H&HBC Shoppe",
			Instructions:  "Send the exact amount and attach a screenshot of the receipt",
			IsActive:      true,
			SortOrder:     1,
		},
		{
			Name:          "Maya",
			AccountNumber: "09171234567",
			AccountName:   "H&HBC Shoppe",
			Instructions:  "Send the exact amount and attach a screenshot of the receipt",
			IsActive:      true,
			SortOrder:     2,
		},
		{
			Name:          "Bank Transfer",
			AccountNumber: "1234-5678-90",
			AccountName:   "H&HBC Shoppe",
			Instructions:  "BPI savings account, attach the deposit slip or transfer confirmation",
			IsActive:      true,
			SortOrder:     3,
		},
	}

	for i := range methods {
		if err := m.db.Create(&methods[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

// seedProducts creates sample products for development
func (m *Migration) seedProducts() error {
	log.Println("📦 Seeding products...")

	var count int64
	m.db.Model(&catalog.Product{}).Count(&count)
	if count > 0 {
		log.Println("Products already exist, skipping seed")
		return nil
	}

	var hairCare catalog.Category
	if err := m.db.Where("slug = ?", "hair-care").First(&hairCare).Error; err != nil {
		return err
	}

	stock := func(v int) *int { return &v }
	price := func(v int64) *int64 { return &v }

	products := []catalog.Product{
		{
			Name:        "Herbal Shampoo",
			Description: "Gentle daily shampoo with natural extracts",
			BasePrice:   20000,
			CategoryID:  hairCare.ID,
			Popular:     true,
			Available:   true,
			Stock:       stock(50),
			Variations: []catalog.Variation{
				{Name: "250ml", Price: 0, SortOrder: 1},
				{Name: "500ml", Price: 8000, Stock: stock(20), SortOrder: 2},
			},
			AddOns: []catalog.AddOn{
				{Name: "Pump Dispenser", Price: 2500, Category: "Accessories"},
			},
		},
		{
			Name:            "Argan Oil Conditioner",
			Description:     "Deep conditioning treatment",
			BasePrice:       25000,
			DiscountedPrice: price(22000),
			CategoryID:      hairCare.ID,
			Available:       true,
			Stock:           stock(30),
		},
	}

	for i := range products {
		if err := m.db.Create(&products[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

// seedVouchers creates a sample voucher for development
func (m *Migration) seedVouchers() error {
	log.Println("🎟️ Seeding vouchers...")

	var count int64
	m.db.Model(&voucher.Voucher{}).Count(&count)
	if count > 0 {
		log.Println("Vouchers already exist, skipping seed")
		return nil
	}

	v := voucher.Voucher{
		Code:         "SAVE10",
		Description:  "10% off your first order",
		DiscountType: voucher.DiscountPercentage,
		Value:        10,
		IsActive:     true,
	}

	return m.db.Create(&v).Error
}
