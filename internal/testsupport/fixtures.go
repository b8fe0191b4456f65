package testsupport

import (
	"testing"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedClient inserts a client row and returns its id.
func SeedClient(t *testing.T, db *gorm.DB, name string) kernel.UUID {
	t.Helper()

	id := kernel.NewUUID()
	err := db.Exec("INSERT INTO clients (id, name, email) VALUES (?, ?, ?)",
		id.String(), name, name+"@example.com").Error
	if err != nil {
		t.Fatalf("failed to seed client: %v", err)
	}
	return id
}

// SeedProduct inserts a catalog product and returns its id.
func SeedProduct(t *testing.T, db *gorm.DB, name, category string, price decimal.Decimal) kernel.UUID {
	t.Helper()

	id := kernel.NewUUID()
	err := db.Exec("INSERT INTO products (id, name, description, price, category) VALUES (?, ?, ?, ?, ?)",
		id.String(), name, name+" description", price, category).Error
	if err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return id
}
