package model

// Supplier is a product provider identified by its NIT (tax ID).
type Supplier struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"type:varchar(50);not null;uniqueIndex"`
	Phone   string `json:"phone" gorm:"type:varchar(20);not null"`
	Email   string `json:"email" gorm:"type:varchar(50);not null"`
	Address string `json:"address" gorm:"type:varchar(100);not null"`
	NIT     string `json:"nit" gorm:"column:nit;type:varchar(20);not null;uniqueIndex"`
}
