package model

// Role names a set of responsibilities assigned to users.
type Role struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"type:varchar(20);not null;uniqueIndex"`
	Description *string `json:"description" gorm:"type:varchar(100)"`
}
