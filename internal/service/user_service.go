package service

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/JeansCordoba/Fruteria/internal/apperr"
	"github.com/JeansCordoba/Fruteria/internal/model"
	"github.com/JeansCordoba/Fruteria/internal/validate"
)

// usernameSuffixCap bounds the collision loop when deriving usernames.
const usernameSuffixCap = 100

// UserService manages system users. Usernames are derived, never supplied,
// and passwords are stored only as bcrypt hashes.
type UserService struct {
	db    *gorm.DB
	roles *RoleService
}

func NewUserService(db *gorm.DB, roles *RoleService) *UserService {
	return &UserService{db: db, roles: roles}
}

// UserPatch carries the fields a partial update may touch. Username is
// deliberately absent: it is derived once at creation and never changes.
type UserPatch struct {
	Name     *string `json:"name"`
	LastName *string `json:"last_name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	RoleID   *uint   `json:"role_id"`
	IsActive *bool   `json:"is_active"`
}

// List returns every user.
func (s *UserService) List() ([]model.User, error) {
	var users []model.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Get is the existence gate: it returns the user or NotFound.
func (s *UserService) Get(id uint) (*model.User, error) {
	var user model.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername looks a user up by username.
func (s *UserService) GetByUsername(username string) (*model.User, error) {
	var user model.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found: %s", username)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ByRole returns the users holding a role. The role itself must exist.
func (s *UserService) ByRole(roleID uint) ([]model.User, error) {
	if _, err := s.roles.Get(roleID); err != nil {
		return nil, err
	}
	var users []model.User
	if err := s.db.Where("role_id = ?", roleID).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func slugify(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", ".")
}

// deriveUsername builds name.lastname, appending a numeric suffix while the
// candidate is taken. The loop is bounded so a pathological run of
// collisions cannot spin forever.
func (s *UserService) deriveUsername(name, lastName string) (string, error) {
	base := slugify(name) + "." + slugify(lastName)
	candidate := base
	for i := 1; ; i++ {
		var count int64
		if err := s.db.Model(&model.User{}).Where("username = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		if i > usernameSuffixCap {
			return "", apperr.Conflict("Could not derive a unique username for %s %s", name, lastName)
		}
		candidate = fmt.Sprintf("%s.%d", base, i)
	}
}

func (s *UserService) checkEmailConflict(email string, excludeID uint) error {
	var count int64
	if err := s.db.Model(&model.User{}).Where("email = ? AND id != ?", email, excludeID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Email already exists: %s", email)
	}
	return nil
}

// Create validates the fields, derives a unique username, hashes the
// password and inserts the user.
func (s *UserService) Create(name, lastName, email, password string, roleID uint) (*model.User, error) {
	if err := validate.StringField(&name, "Name", true); err != nil {
		return nil, err
	}
	if err := validate.StringField(&lastName, "Last name", true); err != nil {
		return nil, err
	}
	if err := validate.Email(&email, true); err != nil {
		return nil, err
	}
	if err := validate.Password(&password, true); err != nil {
		return nil, err
	}

	if err := s.checkEmailConflict(email, 0); err != nil {
		return nil, err
	}
	if _, err := s.roles.Get(roleID); err != nil {
		return nil, err
	}

	username, err := s.deriveUsername(name, lastName)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Username: username,
		Password: string(hashed),
		Name:     name,
		LastName: lastName,
		Email:    email,
		IsActive: true,
		RoleID:   roleID,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies a partial update, re-validating only the supplied fields.
// A supplied password is re-hashed; the stored hash is otherwise untouched.
func (s *UserService) Update(id uint, patch UserPatch) (*model.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := validate.StringField(patch.Name, "Name", false); err != nil {
		return nil, err
	}
	if err := validate.StringField(patch.LastName, "Last name", false); err != nil {
		return nil, err
	}
	if err := validate.Email(patch.Email, false); err != nil {
		return nil, err
	}
	if err := validate.Password(patch.Password, false); err != nil {
		return nil, err
	}

	if patch.Email != nil {
		if err := s.checkEmailConflict(*patch.Email, id); err != nil {
			return nil, err
		}
		user.Email = *patch.Email
	}
	if patch.RoleID != nil {
		role, err := s.roles.Get(*patch.RoleID)
		if err != nil {
			return nil, err
		}
		user.RoleID = role.ID
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}
	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user unless sales still reference it.
func (s *UserService) Delete(id uint) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&model.Sale{}).Where("user_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Cannot delete user that is referenced by sales")
	}

	return s.db.Delete(user).Error
}

// Authenticate verifies a username/password pair. Unknown usernames and
// wrong passwords both come back as the same Unauthorized error so callers
// cannot probe which usernames exist.
func (s *UserService) Authenticate(username, password string) (*model.User, error) {
	var user model.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unauthorized("Invalid username or password")
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("Invalid username or password")
	}
	if !user.IsActive {
		return nil, apperr.Unauthorized("Invalid username or password")
	}
	return &user, nil
}
