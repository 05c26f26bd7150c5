package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/JeansCordoba/Fruteria/internal/apperr"
	"github.com/JeansCordoba/Fruteria/internal/model"
	"github.com/JeansCordoba/Fruteria/internal/validate"
)

// ClientService manages clients, keyed naturally by identity card.
type ClientService struct {
	db *gorm.DB
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{db: db}
}

// ClientPatch carries the fields a partial update may touch.
type ClientPatch struct {
	Name         *string `json:"name"`
	LastName     *string `json:"last_name"`
	IdentityCard *string `json:"identity_card"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	Address      *string `json:"address"`
}

// List returns every client.
func (s *ClientService) List() ([]model.Client, error) {
	var clients []model.Client
	if err := s.db.Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// Get is the existence gate: it returns the client or NotFound.
func (s *ClientService) Get(id uint) (*model.Client, error) {
	var client model.Client
	err := s.db.First(&client, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Client not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// SearchByIdentityCard looks a client up by identity card number.
func (s *ClientService) SearchByIdentityCard(identityCard string) (*model.Client, error) {
	if err := validate.IdentityCard(&identityCard, true); err != nil {
		return nil, err
	}
	var client model.Client
	err := s.db.Where("identity_card = ?", identityCard).First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Client not found: %s", identityCard)
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *ClientService) checkIdentityCardConflict(identityCard string, excludeID uint) error {
	var count int64
	if err := s.db.Model(&model.Client{}).Where("identity_card = ? AND id != ?", identityCard, excludeID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Client already exists: %s", identityCard)
	}
	return nil
}

// Create validates and inserts a new client. Email and address are optional;
// the registration date is set by the store at insert time.
func (s *ClientService) Create(name, lastName, identityCard, phone string, email, address *string) (*model.Client, error) {
	if err := validate.StringField(&name, "Name", true); err != nil {
		return nil, err
	}
	if err := validate.StringField(&lastName, "Last name", true); err != nil {
		return nil, err
	}
	if err := validate.Phone(&phone, true); err != nil {
		return nil, err
	}
	if err := validate.IdentityCard(&identityCard, true); err != nil {
		return nil, err
	}
	if err := validate.Email(email, false); err != nil {
		return nil, err
	}
	if err := validate.Address(address, false); err != nil {
		return nil, err
	}

	if err := s.checkIdentityCardConflict(identityCard, 0); err != nil {
		return nil, err
	}

	client := model.Client{
		Name:         name,
		LastName:     lastName,
		IdentityCard: identityCard,
		Phone:        phone,
		Email:        email,
		Address:      address,
	}
	if err := s.db.Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// Update applies a partial update, re-validating only the supplied fields.
func (s *ClientService) Update(id uint, patch ClientPatch) (*model.Client, error) {
	client, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := validate.StringField(patch.Name, "Name", false); err != nil {
		return nil, err
	}
	if err := validate.StringField(patch.LastName, "Last name", false); err != nil {
		return nil, err
	}
	if err := validate.Phone(patch.Phone, false); err != nil {
		return nil, err
	}
	if err := validate.IdentityCard(patch.IdentityCard, false); err != nil {
		return nil, err
	}
	if err := validate.Email(patch.Email, false); err != nil {
		return nil, err
	}
	if err := validate.Address(patch.Address, false); err != nil {
		return nil, err
	}

	if patch.IdentityCard != nil {
		if err := s.checkIdentityCardConflict(*patch.IdentityCard, id); err != nil {
			return nil, err
		}
		client.IdentityCard = *patch.IdentityCard
	}
	if patch.Name != nil {
		client.Name = *patch.Name
	}
	if patch.LastName != nil {
		client.LastName = *patch.LastName
	}
	if patch.Phone != nil {
		client.Phone = *patch.Phone
	}
	if patch.Email != nil {
		client.Email = patch.Email
	}
	if patch.Address != nil {
		client.Address = patch.Address
	}

	if err := s.db.Save(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

// Delete removes a client unless sales still reference it.
func (s *ClientService) Delete(id uint) error {
	client, err := s.Get(id)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&model.Sale{}).Where("client_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Cannot delete client that is referenced by sales")
	}

	return s.db.Delete(client).Error
}
