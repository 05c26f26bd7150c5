package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/JeansCordoba/Fruteria/internal/apperr"
	"github.com/JeansCordoba/Fruteria/internal/model"
	"github.com/JeansCordoba/Fruteria/internal/validate"
)

// PaymentService manages payment methods.
type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// PaymentPatch carries the fields a partial update may touch.
type PaymentPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// List returns every payment method.
func (s *PaymentService) List() ([]model.Payment, error) {
	var payments []model.Payment
	if err := s.db.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// Get is the existence gate: it returns the payment method or NotFound.
func (s *PaymentService) Get(id uint) (*model.Payment, error) {
	var payment model.Payment
	err := s.db.First(&payment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Payment method not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// Create validates and inserts a new payment method.
func (s *PaymentService) Create(name string, description *string) (*model.Payment, error) {
	if err := validate.StringField(&name, "Name", true); err != nil {
		return nil, err
	}
	if err := validate.StringField(description, "Description", false); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&model.Payment{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Conflict("Payment method already exists: %s", name)
	}

	payment := model.Payment{Name: name, Description: description}
	if err := s.db.Create(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// Update applies a partial update, re-validating only the supplied fields.
func (s *PaymentService) Update(id uint, patch PaymentPatch) (*model.Payment, error) {
	payment, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := validate.StringField(patch.Name, "Name", false); err != nil {
		return nil, err
	}
	if err := validate.StringField(patch.Description, "Description", false); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		var count int64
		if err := s.db.Model(&model.Payment{}).Where("name = ? AND id != ?", *patch.Name, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperr.Conflict("Payment method already exists: %s", *patch.Name)
		}
		payment.Name = *patch.Name
	}
	if patch.Description != nil {
		payment.Description = patch.Description
	}

	if err := s.db.Save(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

// Delete removes a payment method unless sales still reference it.
func (s *PaymentService) Delete(id uint) error {
	payment, err := s.Get(id)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&model.Sale{}).Where("payment_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Cannot delete payment method that is referenced by sales")
	}

	return s.db.Delete(payment).Error
}
