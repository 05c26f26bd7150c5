package model

// Payment is a payment method accepted for sales (cash, card, transfer...).
type Payment struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"type:varchar(30);not null;uniqueIndex"`
	Description *string `json:"description" gorm:"type:varchar(100)"`
}
