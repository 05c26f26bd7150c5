package service

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/JeansCordoba/Fruteria/internal/apperr"
	"github.com/JeansCordoba/Fruteria/internal/model"
	"github.com/JeansCordoba/Fruteria/internal/validate"
)

// ProductService manages the product catalog. Category references are
// validated through the category service's existence gate, so a product can
// never point at a category that does not exist.
type ProductService struct {
	db         *gorm.DB
	categories *CategoryService
	suppliers  *SupplierService
}

func NewProductService(db *gorm.DB, categories *CategoryService, suppliers *SupplierService) *ProductService {
	return &ProductService{db: db, categories: categories, suppliers: suppliers}
}

// ProductPatch carries the fields a partial update may touch. Nil fields are
// left untouched. Stock is deliberately absent: it changes only through
// UpdateStock or through sales.
type ProductPatch struct {
	Name       *string          `json:"name"`
	Price      *decimal.Decimal `json:"price"`
	CategoryID *uint            `json:"category_id"`
	SupplierID *uint            `json:"supplier_id"`
}

// List returns every product.
func (s *ProductService) List() ([]model.Product, error) {
	var products []model.Product
	if err := s.db.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListByCategory returns the products of one category. The category itself
// must exist.
func (s *ProductService) ListByCategory(categoryID uint) ([]model.Product, error) {
	if _, err := s.categories.Get(categoryID); err != nil {
		return nil, err
	}
	var products []model.Product
	if err := s.db.Where("category_id = ?", categoryID).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Get is the existence gate: it returns the product or NotFound.
func (s *ProductService) Get(id uint) (*model.Product, error) {
	var product model.Product
	err := s.db.First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Product not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Create validates and inserts a new product.
func (s *ProductService) Create(name string, price decimal.Decimal, categoryID uint, stock int, supplierID *uint) (*model.Product, error) {
	if err := validate.StringField(&name, "Name", true); err != nil {
		return nil, err
	}
	if err := validate.Price(&price, "Price", true); err != nil {
		return nil, err
	}
	if err := validate.IntField(&stock, "Stock", 0, true); err != nil {
		return nil, err
	}

	category, err := s.categories.Get(categoryID)
	if err != nil {
		return nil, err
	}
	if supplierID != nil {
		if _, err := s.suppliers.Get(*supplierID); err != nil {
			return nil, err
		}
	}

	var count int64
	if err := s.db.Model(&model.Product{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Conflict("Product already exists: %s", name)
	}

	product := model.Product{
		Name:       name,
		Price:      price,
		Stock:      stock,
		CategoryID: category.ID,
		SupplierID: supplierID,
	}
	if err := s.db.Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Update applies a partial update, re-validating only the supplied fields.
func (s *ProductService) Update(id uint, patch ProductPatch) (*model.Product, error) {
	product, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := validate.StringField(patch.Name, "Name", false); err != nil {
		return nil, err
	}
	if err := validate.Price(patch.Price, "Price", false); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		var count int64
		if err := s.db.Model(&model.Product{}).Where("name = ? AND id != ?", *patch.Name, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperr.Conflict("Product already exists: %s", *patch.Name)
		}
		product.Name = *patch.Name
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.CategoryID != nil {
		category, err := s.categories.Get(*patch.CategoryID)
		if err != nil {
			return nil, err
		}
		product.CategoryID = category.ID
	}
	if patch.SupplierID != nil {
		supplier, err := s.suppliers.Get(*patch.SupplierID)
		if err != nil {
			return nil, err
		}
		product.SupplierID = &supplier.ID
	}

	if err := s.db.Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateStock replaces the stock level of a product.
func (s *ProductService) UpdateStock(id uint, stock int) (*model.Product, error) {
	if err := validate.IntField(&stock, "Stock", 0, true); err != nil {
		return nil, err
	}
	product, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	product.Stock = stock
	if err := s.db.Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product unless sale lines still reference it.
func (s *ProductService) Delete(id uint) error {
	product, err := s.Get(id)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&model.SaleDetail{}).Where("product_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Cannot delete product that is referenced by sales")
	}

	return s.db.Delete(product).Error
}
