package service

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/JeansCordoba/Fruteria/internal/apperr"
	"github.com/JeansCordoba/Fruteria/internal/model"
)

// SaleService manages the sale aggregate: the header plus its lines. The
// header write, the line writes and the stock decrements always commit as
// one transaction, so Total equals the sum of line subtotals on every
// committed sale and stock never drifts from what was sold.
type SaleService struct {
	db *gorm.DB
}

func NewSaleService(db *gorm.DB) *SaleService {
	return &SaleService{db: db}
}

// SaleItemInput is one requested line of a new sale. The unit price is not
// accepted from the caller; it is snapshotted from the product row inside
// the transaction.
type SaleItemInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// List returns every sale with its lines.
func (s *SaleService) List() ([]model.Sale, error) {
	var sales []model.Sale
	if err := s.db.Preload("Details").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// Get is the existence gate: it returns the sale with its lines or NotFound.
func (s *SaleService) Get(id uint) (*model.Sale, error) {
	var sale model.Sale
	err := s.db.Preload("Details").First(&sale, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Sale not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// ByClient returns the sales of one client. The client itself must exist.
func (s *SaleService) ByClient(clientID uint) ([]model.Sale, error) {
	var count int64
	if err := s.db.Model(&model.Client{}).Where("id = ?", clientID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.NotFound("Client not found: %d", clientID)
	}

	var sales []model.Sale
	if err := s.db.Preload("Details").Where("client_id = ?", clientID).Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

func existsIn(tx *gorm.DB, value interface{}, id uint) (bool, error) {
	var count int64
	if err := tx.Model(value).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create builds a sale as one atomic unit: validate the client, user and
// payment method, check every product's stock, snapshot unit prices, compute
// line subtotals and the header total, decrement stock and write header plus
// lines. Nothing is persisted if any step fails.
func (s *SaleService) Create(clientID, userID, paymentID uint, items []SaleItemInput) (*model.Sale, error) {
	if len(items) == 0 {
		return nil, apperr.BadRequest("At least one item is required")
	}
	seen := make(map[uint]bool, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, apperr.BadRequest("Quantity must be greater than or equal to 1")
		}
		if seen[item.ProductID] {
			return nil, apperr.BadRequest("Duplicate product in items: %d", item.ProductID)
		}
		seen[item.ProductID] = true
	}

	var sale model.Sale
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if ok, err := existsIn(tx, &model.Client{}, clientID); err != nil {
			return err
		} else if !ok {
			return apperr.NotFound("Client not found: %d", clientID)
		}
		if ok, err := existsIn(tx, &model.User{}, userID); err != nil {
			return err
		} else if !ok {
			return apperr.NotFound("User not found: %d", userID)
		}
		if ok, err := existsIn(tx, &model.Payment{}, paymentID); err != nil {
			return err
		} else if !ok {
			return apperr.NotFound("Payment method not found: %d", paymentID)
		}

		total := decimal.Zero
		details := make([]model.SaleDetail, 0, len(items))
		for _, item := range items {
			var product model.Product
			err := tx.First(&product, item.ProductID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Product not found: %d", item.ProductID)
			}
			if err != nil {
				return err
			}
			if product.Stock < item.Quantity {
				return apperr.Conflict("Insufficient stock for product %s: have %d, want %d",
					product.Name, product.Stock, item.Quantity)
			}

			subtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
			total = total.Add(subtotal)

			details = append(details, model.SaleDetail{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				Price:     product.Price,
				Subtotal:  subtotal,
			})

			product.Stock -= item.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}
		}

		sale = model.Sale{
			Total:     total,
			Status:    model.SaleCompleted,
			ClientID:  clientID,
			UserID:    userID,
			PaymentID: paymentID,
			Details:   details,
		}
		return tx.Create(&sale).Error
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// Cancel marks a sale cancelled and returns its quantities to stock, as one
// transaction. Cancelling an already cancelled sale is rejected so stock is
// never restored twice.
func (s *SaleService) Cancel(id uint) (*model.Sale, error) {
	var sale model.Sale
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Preload("Details").First(&sale, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Sale not found: %d", id)
		}
		if err != nil {
			return err
		}
		if sale.Status == model.SaleCancelled {
			return apperr.Conflict("Sale is already cancelled: %d", id)
		}

		for _, detail := range sale.Details {
			res := tx.Model(&model.Product{}).Where("id = ?", detail.ProductID).
				Update("stock", gorm.Expr("stock + ?", detail.Quantity))
			if res.Error != nil {
				return res.Error
			}
		}

		sale.Status = model.SaleCancelled
		return tx.Model(&model.Sale{}).Where("id = ?", id).
			Update("status", model.SaleCancelled).Error
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}
