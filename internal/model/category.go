package model

// Category groups products for browsing and reporting.
type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(50);not null;uniqueIndex"`
}
