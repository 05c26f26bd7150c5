package service

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/JeansCordoba/Fruteria/pkg/database"
)

// newTestDB opens an isolated in-memory database per test and runs the
// migrations against it.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// newServices wires the full service set over one database handle.
type services struct {
	categories *CategoryService
	suppliers  *SupplierService
	products   *ProductService
	clients    *ClientService
	roles      *RoleService
	payments   *PaymentService
	users      *UserService
	sales      *SaleService
}

func newServices(db *gorm.DB) *services {
	categories := NewCategoryService(db)
	suppliers := NewSupplierService(db)
	roles := NewRoleService(db)
	return &services{
		categories: categories,
		suppliers:  suppliers,
		products:   NewProductService(db, categories, suppliers),
		clients:    NewClientService(db),
		roles:      roles,
		payments:   NewPaymentService(db),
		users:      NewUserService(db, roles),
		sales:      NewSaleService(db),
	}
}
