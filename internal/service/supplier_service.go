package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/JeansCordoba/Fruteria/internal/apperr"
	"github.com/JeansCordoba/Fruteria/internal/model"
	"github.com/JeansCordoba/Fruteria/internal/validate"
)

// SupplierService manages suppliers. Name and NIT are both natural keys.
type SupplierService struct {
	db *gorm.DB
}

func NewSupplierService(db *gorm.DB) *SupplierService {
	return &SupplierService{db: db}
}

// SupplierPatch carries the fields a partial update may touch.
type SupplierPatch struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	NIT     *string `json:"nit"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

// List returns every supplier.
func (s *SupplierService) List() ([]model.Supplier, error) {
	var suppliers []model.Supplier
	if err := s.db.Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// Get is the existence gate: it returns the supplier or NotFound.
func (s *SupplierService) Get(id uint) (*model.Supplier, error) {
	var supplier model.Supplier
	err := s.db.First(&supplier, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Supplier not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

// GetByNIT looks a supplier up by its tax ID.
func (s *SupplierService) GetByNIT(nit string) (*model.Supplier, error) {
	var supplier model.Supplier
	err := s.db.Where("nit = ?", nit).First(&supplier).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Supplier not found: %s", nit)
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (s *SupplierService) checkNameConflict(name string, excludeID uint) error {
	var count int64
	if err := s.db.Model(&model.Supplier{}).Where("name = ? AND id != ?", name, excludeID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Supplier already exists: %s", name)
	}
	return nil
}

func (s *SupplierService) checkNITConflict(nit string, excludeID uint) error {
	var count int64
	if err := s.db.Model(&model.Supplier{}).Where("nit = ? AND id != ?", nit, excludeID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Supplier with NIT already exists: %s", nit)
	}
	return nil
}

// Create validates and inserts a new supplier.
func (s *SupplierService) Create(name, phone, nit, email, address string) (*model.Supplier, error) {
	if err := validate.StringField(&name, "Name", true); err != nil {
		return nil, err
	}
	if err := validate.Phone(&phone, true); err != nil {
		return nil, err
	}
	if err := validate.NIT(&nit, true); err != nil {
		return nil, err
	}
	if err := validate.Email(&email, true); err != nil {
		return nil, err
	}
	if err := validate.Address(&address, true); err != nil {
		return nil, err
	}

	if err := s.checkNITConflict(nit, 0); err != nil {
		return nil, err
	}
	if err := s.checkNameConflict(name, 0); err != nil {
		return nil, err
	}

	supplier := model.Supplier{
		Name:    name,
		Phone:   phone,
		NIT:     nit,
		Email:   email,
		Address: address,
	}
	if err := s.db.Create(&supplier).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

// Update applies a partial update, re-validating only the supplied fields.
func (s *SupplierService) Update(id uint, patch SupplierPatch) (*model.Supplier, error) {
	supplier, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := validate.StringField(patch.Name, "Name", false); err != nil {
		return nil, err
	}
	if err := validate.Phone(patch.Phone, false); err != nil {
		return nil, err
	}
	if err := validate.NIT(patch.NIT, false); err != nil {
		return nil, err
	}
	if err := validate.Email(patch.Email, false); err != nil {
		return nil, err
	}
	if err := validate.Address(patch.Address, false); err != nil {
		return nil, err
	}

	if patch.NIT != nil {
		if err := s.checkNITConflict(*patch.NIT, id); err != nil {
			return nil, err
		}
		supplier.NIT = *patch.NIT
	}
	if patch.Name != nil {
		if err := s.checkNameConflict(*patch.Name, id); err != nil {
			return nil, err
		}
		supplier.Name = *patch.Name
	}
	if patch.Phone != nil {
		supplier.Phone = *patch.Phone
	}
	if patch.Email != nil {
		supplier.Email = *patch.Email
	}
	if patch.Address != nil {
		supplier.Address = *patch.Address
	}

	if err := s.db.Save(supplier).Error; err != nil {
		return nil, err
	}
	return supplier, nil
}

// Delete removes a supplier unless products still reference it.
func (s *SupplierService) Delete(id uint) error {
	supplier, err := s.Get(id)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&model.Product{}).Where("supplier_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Cannot delete supplier that is being used by products")
	}

	return s.db.Delete(supplier).Error
}
