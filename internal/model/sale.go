package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus is the lifecycle state of a sale.
type SaleStatus string

const (
	SaleCompleted SaleStatus = "completed"
	SaleCancelled SaleStatus = "cancelled"
	SalePending   SaleStatus = "pending"
)

// Sale is the order header. Total always equals the sum of the detail
// subtotals; both are written in the same transaction.
type Sale struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Date      time.Time       `json:"date" gorm:"not null;autoCreateTime"`
	Total     decimal.Decimal `json:"total" gorm:"type:numeric(10,2);not null;default:0"`
	Status    SaleStatus      `json:"status" gorm:"type:varchar(20);not null;default:completed"`
	ClientID  uint            `json:"client_id" gorm:"not null;index"`
	UserID    uint            `json:"user_id" gorm:"not null;index"`
	PaymentID uint            `json:"payment_id" gorm:"not null;index"`
	Details   []SaleDetail    `json:"details" gorm:"foreignKey:SaleID"`
}

// SaleDetail is one line of a sale. Price snapshots the product's unit price
// at sale time; Subtotal equals Quantity times Price.
type SaleDetail struct {
	SaleID    uint            `json:"sale_id" gorm:"primaryKey;autoIncrement:false"`
	ProductID uint            `json:"product_id" gorm:"primaryKey;autoIncrement:false"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`
	Subtotal  decimal.Decimal `json:"subtotal" gorm:"type:numeric(10,2);not null"`
}
