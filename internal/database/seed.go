package database

import (
	"fmt"

	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"github.com/liftwerk/zeiterfassung-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedDemoData creates one account per role for local development. Runs
// only against an empty users table.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	demo := []struct {
		email    string
		password string
		name     string
		role     string
	}{
		{"admin@liftwerk.de", "admin123", "Armin Admin", models.RoleAdmin},
		{"monteur@liftwerk.de", "monteur123", "Max Monteur", models.RoleMonteur},
		{"buero@liftwerk.de", "buero123", "Bianca Büro", models.RoleBuero},
		{"lohn@liftwerk.de", "lohn123", "Ludwig Lohn", models.RoleLohn},
	}

	for _, d := range demo {
		hash, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := &models.User{
			Email:             d.email,
			EncryptedPassword: string(hash),
			FullName:          d.name,
			Role:              d.role,
			Status:            models.StatusActive,
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", d.email, err)
		}
	}

	logger.Info("Seeded demo users", "count", len(demo))
	return nil
}
