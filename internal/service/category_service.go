// Package service implements the business rules between the HTTP handlers
// and the store. Every service follows the same validate-then-mutate shape:
// field validation first, then existence and uniqueness checks, then a single
// persistence call. Errors are apperr values that propagate untouched to the
// handler layer.
package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/JeansCordoba/Fruteria/internal/apperr"
	"github.com/JeansCordoba/Fruteria/internal/model"
	"github.com/JeansCordoba/Fruteria/internal/validate"
)

// CategoryService manages product categories.
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// List returns every category.
func (s *CategoryService) List() ([]model.Category, error) {
	var categories []model.Category
	if err := s.db.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Get is the existence gate: it returns the category or NotFound.
func (s *CategoryService) Get(id uint) (*model.Category, error) {
	var category model.Category
	err := s.db.First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Category not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Create validates and inserts a new category.
func (s *CategoryService) Create(name string) (*model.Category, error) {
	if err := validate.StringField(&name, "Name", true); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&model.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Conflict("Category already exists: %s", name)
	}

	category := model.Category{Name: name}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Update renames an existing category. Renaming to a name held by another
// category is rejected; renaming to the current name is not.
func (s *CategoryService) Update(id uint, name string) (*model.Category, error) {
	category, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := validate.StringField(&name, "Name", true); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&model.Category{}).Where("name = ? AND id != ?", name, id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Conflict("Category already exists: %s", name)
	}

	category.Name = name
	if err := s.db.Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category unless products still reference it.
func (s *CategoryService) Delete(id uint) error {
	category, err := s.Get(id)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&model.Product{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Cannot delete category that is being used by products")
	}

	return s.db.Delete(category).Error
}
