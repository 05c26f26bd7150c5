package model

import "time"

// Client is a buyer, identified by a unique identity card number.
// RegistrationDate is set once when the row is created.
type Client struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Name             string    `json:"name" gorm:"type:varchar(50);not null"`
	LastName         string    `json:"last_name" gorm:"type:varchar(50);not null"`
	IdentityCard     string    `json:"identity_card" gorm:"type:varchar(20);not null;uniqueIndex"`
	Phone            string    `json:"phone" gorm:"type:varchar(20);not null"`
	Email            *string   `json:"email" gorm:"type:varchar(50)"`
	Address          *string   `json:"address" gorm:"type:varchar(100)"`
	RegistrationDate time.Time `json:"registration_date" gorm:"not null;autoCreateTime"`
}
