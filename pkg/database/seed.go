package database

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/JeansCordoba/Fruteria/internal/model"
)

func strPtr(s string) *string { return &s }

// Seed inserts the baseline reference data a fresh install needs: the two
// roles, the common payment methods and an initial admin user. Existing rows
// are left untouched, so seeding is safe to run on every boot.
func Seed(db *gorm.DB) error {
	roles := []model.Role{
		{Name: "admin", Description: strPtr("Administrador del sistema")},
		{Name: "seller", Description: strPtr("Vendedor")},
	}
	for i := range roles {
		if err := db.Where(model.Role{Name: roles[i].Name}).FirstOrCreate(&roles[i]).Error; err != nil {
			return err
		}
	}

	payments := []model.Payment{
		{Name: "Efectivo", Description: strPtr("Pago en efectivo")},
		{Name: "Tarjeta", Description: strPtr("Pago con tarjeta de crédito/débito")},
		{Name: "Transferencia", Description: strPtr("Transferencia bancaria")},
	}
	for i := range payments {
		if err := db.Where(model.Payment{Name: payments[i].Name}).FirstOrCreate(&payments[i]).Error; err != nil {
			return err
		}
	}

	var count int64
	if err := db.Model(&model.User{}).Where("username = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := model.User{
			Username: "admin",
			Password: string(hashed),
			Name:     "Admin",
			LastName: "System",
			Email:    "admin@fruteria.com",
			IsActive: true,
			RoleID:   roles[0].ID,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
	}

	return nil
}
