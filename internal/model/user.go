package model

// User is a system operator. Username is derived from name and last name at
// creation time and never supplied by the caller. Password holds a bcrypt
// hash, never plaintext, and never leaves the API.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"type:varchar(50);not null;uniqueIndex"`
	Password string `json:"-" gorm:"type:varchar(100);not null"`
	Name     string `json:"name" gorm:"type:varchar(50);not null"`
	LastName string `json:"last_name" gorm:"type:varchar(50);not null"`
	Email    string `json:"email" gorm:"type:varchar(50);not null;uniqueIndex"`
	IsActive bool   `json:"is_active" gorm:"not null;default:true"`
	RoleID   uint   `json:"role_id" gorm:"not null;index"`
}
