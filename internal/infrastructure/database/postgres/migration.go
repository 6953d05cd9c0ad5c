// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"context"
	"fmt"
	"log"

	"github.com/your-org/storefront-api/internal/domain/product"
	"github.com/your-org/storefront-api/internal/domain/user"
	"github.com/your-org/storefront-api/internal/gateway"
	"golang.org/x/crypto/bcrypt"
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

	if err := m.db.AutoMigrate(&user.User{}); err != nil {
		return fmt.Errorf("failed to migrate users: %w", err)
	}
	if err := gateway.AutoMigrate(m.db); err != nil {
		return fmt.Errorf("failed to migrate storefront tables: %w", err)
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_slug ON products(slug)",
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_products_brand ON products(brand)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_products_name ON products(name)",

		// Cart indexes
		"CREATE INDEX IF NOT EXISTS idx_cart_items_created_at ON cart_items(created_at)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_order_number ON orders(order_number)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
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

	if err := m.seedTestUser(); err != nil {
		return fmt.Errorf("failed to seed test user: %w", err)
	}

	if err := m.seedCatalog(); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedTestUser creates a development login
func (m *Migration) seedTestUser() error {
	log.Println("👤 Seeding test user...")

	var existing user.User
	result := m.db.Where("email = ?", "test@example.com").First(&existing)
	if result.Error == nil {
		log.Println("⏭️ Test user already exists")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("test123"), 10)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	testUser := user.User{
		Email:     "test@example.com",
		Password:  string(hashedPassword),
		FirstName: "Test",
		LastName:  "User",
		IsActive:  true,
	}

	if err := m.db.Create(&testUser).Error; err != nil {
		return err
	}

	log.Println("✅ Created test user: test@example.com (password: test123)")
	return nil
}

// seedCatalog inserts the development catalog when the products table is
// empty
func (m *Migration) seedCatalog() error {
	log.Println("🛍️ Seeding catalog...")

	gw := gateway.New(m.db, nil, nil)
	if err := gw.SeedProducts(context.Background(), catalogSeed()); err != nil {
		return err
	}

	log.Println("✅ Catalog seeding completed")
	return nil
}

func floatPtr(f float64) *float64 { return &f }

// catalogSeed is the development product set. Facet values line up with
// what the filter engine exposes.
func catalogSeed() []product.Product {
	return []product.Product{
		{
			Name:           "Aurora X5 Pro",
			Slug:           "aurora-x5-pro",
			Description:    "Flagship smartphone with a 6.7 inch OLED display, triple camera system and all-day battery life.",
			Price:          999.00,
			CompareAtPrice: floatPtr(1099.00),
			Images:         []string{"/images/aurora-x5-pro-1.jpg", "/images/aurora-x5-pro-2.jpg"},
			Category:       "Smartphones",
			Brand:          "Aurora",
			Color:          "Black",
			Memory:         "256GB",
			ScreenSize:     "6.7\"",
			Condition:      product.ConditionNew,
			Inventory:      40,
			Rating:         4.8,
			IsActive:       true,
		},
		{
			Name:        "Aurora X5",
			Slug:        "aurora-x5",
			Description: "Compact smartphone with a 6.1 inch display and the same camera system as the Pro.",
			Price:       699.00,
			Images:      []string{"/images/aurora-x5-1.jpg"},
			Category:    "Smartphones",
			Brand:       "Aurora",
			Color:       "Blue",
			Memory:      "128GB",
			ScreenSize:  "6.1\"",
			Condition:   product.ConditionNew,
			Inventory:   65,
			Rating:      4.6,
			IsActive:    true,
		},
		{
			Name:           "Nimbus Book 14",
			Slug:           "nimbus-book-14",
			Description:    "Thin and light 14 inch laptop with 16GB of memory and a full-day battery.",
			Price:          1299.00,
			CompareAtPrice: floatPtr(1499.00),
			Images:         []string{"/images/nimbus-book-14-1.jpg"},
			Category:       "Laptops",
			Brand:          "Nimbus",
			Color:          "Silver",
			Memory:         "512GB",
			ScreenSize:     "14\"",
			Condition:      product.ConditionNew,
			Inventory:      22,
			Rating:         4.7,
			IsActive:       true,
		},
		{
			Name:        "Nimbus Book 16",
			Slug:        "nimbus-book-16",
			Description: "16 inch creator laptop with a color-accurate display and discrete graphics.",
			Price:       1899.00,
			Images:      []string{"/images/nimbus-book-16-1.jpg"},
			Category:    "Laptops",
			Brand:       "Nimbus",
			Color:       "Gray",
			Memory:      "1TB",
			ScreenSize:  "16\"",
			Condition:   product.ConditionNew,
			Inventory:   12,
			Rating:      4.9,
			IsActive:    true,
		},
		{
			Name:           "Vela Tab S",
			Slug:           "vela-tab-s",
			Description:    "11 inch tablet for reading, sketching and streaming with stylus support.",
			Price:          449.00,
			CompareAtPrice: floatPtr(529.00),
			Images:         []string{"/images/vela-tab-s-1.jpg"},
			Category:       "Tablets",
			Brand:          "Vela",
			Color:          "Gray",
			Memory:         "128GB",
			ScreenSize:     "11\"",
			Condition:      product.ConditionNew,
			Inventory:      33,
			Rating:         4.5,
			IsActive:       true,
		},
		{
			Name:        "Vela Tab Mini",
			Slug:        "vela-tab-mini",
			Description: "8 inch tablet that fits in one hand. Refurbished to like-new condition.",
			Price:       249.00,
			Images:      []string{"/images/vela-tab-mini-1.jpg"},
			Category:    "Tablets",
			Brand:       "Vela",
			Color:       "White",
			Memory:      "64GB",
			ScreenSize:  "8\"",
			Condition:   product.ConditionLikeNew,
			Inventory:   18,
			Rating:      4.3,
			IsActive:    true,
		},
		{
			Name:           "Pulse Buds Pro",
			Slug:           "pulse-buds-pro",
			Description:    "Wireless earbuds with active noise cancellation and wireless charging case.",
			Price:          199.00,
			CompareAtPrice: floatPtr(249.00),
			Images:         []string{"/images/pulse-buds-pro-1.jpg"},
			Category:       "Audio",
			Brand:          "Pulse",
			Color:          "White",
			Condition:      product.ConditionNew,
			Inventory:      80,
			Rating:         4.4,
			IsActive:       true,
		},
		{
			Name:        "Pulse Over-Ear Studio",
			Slug:        "pulse-over-ear-studio",
			Description: "Open-box studio headphones with a detachable cable and plush ear cushions.",
			Price:       279.00,
			Images:      []string{"/images/pulse-over-ear-studio-1.jpg"},
			Category:    "Audio",
			Brand:       "Pulse",
			Color:       "Black",
			Condition:   product.ConditionOpenBox,
			Inventory:   9,
			Rating:      4.6,
			IsActive:    true,
		},
		{
			Name:        "Nimbus Dock Pro",
			Slug:        "nimbus-dock-pro",
			Description: "Thunderbolt dock with dual display output, ten ports and 90W charging.",
			Price:       189.00,
			Images:      []string{"/images/nimbus-dock-pro-1.jpg"},
			Category:    "Accessories",
			Brand:       "Nimbus",
			Color:       "Gray",
			Condition:   product.ConditionNew,
			Inventory:   47,
			Rating:      4.2,
			IsActive:    true,
		},
		{
			Name:        "Aurora Charge Stand",
			Slug:        "aurora-charge-stand",
			Description: "Magnetic charging stand for phones and earbuds with a braided cable.",
			Price:       59.00,
			Images:      []string{"/images/aurora-charge-stand-1.jpg"},
			Category:    "Accessories",
			Brand:       "Aurora",
			Color:       "White",
			Condition:   product.ConditionNew,
			Inventory:   120,
			Rating:      4.1,
			IsActive:    true,
		},
	}
}
