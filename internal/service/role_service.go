package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/JeansCordoba/Fruteria/internal/apperr"
	"github.com/JeansCordoba/Fruteria/internal/model"
	"github.com/JeansCordoba/Fruteria/internal/validate"
)

// RoleService manages user roles.
type RoleService struct {
	db *gorm.DB
}

func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{db: db}
}

// RolePatch carries the fields a partial update may touch.
type RolePatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// List returns every role.
func (s *RoleService) List() ([]model.Role, error) {
	var roles []model.Role
	if err := s.db.Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// Get is the existence gate: it returns the role or NotFound.
func (s *RoleService) Get(id uint) (*model.Role, error) {
	var role model.Role
	err := s.db.First(&role, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Role not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// Create validates and inserts a new role.
func (s *RoleService) Create(name string, description *string) (*model.Role, error) {
	if err := validate.StringField(&name, "Name", true); err != nil {
		return nil, err
	}
	if err := validate.StringField(description, "Description", false); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&model.Role{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Conflict("Role already exists: %s", name)
	}

	role := model.Role{Name: name, Description: description}
	if err := s.db.Create(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// Update applies a partial update, re-validating only the supplied fields.
func (s *RoleService) Update(id uint, patch RolePatch) (*model.Role, error) {
	role, err := s.Get(id)
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
		if err := s.db.Model(&model.Role{}).Where("name = ? AND id != ?", *patch.Name, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperr.Conflict("Role already exists: %s", *patch.Name)
		}
		role.Name = *patch.Name
	}
	if patch.Description != nil {
		role.Description = patch.Description
	}

	if err := s.db.Save(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

// Delete removes a role unless users still reference it.
func (s *RoleService) Delete(id uint) error {
	role, err := s.Get(id)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&model.User{}).Where("role_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Cannot delete role that is assigned to users")
	}

	return s.db.Delete(role).Error
}
