package config

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kathamala/katha-backend/models"
)

// EnsureSuperAdmin creates the bootstrap super admin from env if no
// super_admin row exists yet. Without it a fresh deployment has no way to
// log into the back office.
func EnsureSuperAdmin(db *gorm.DB) {
	var existing models.Admin
	if err := db.Where("role = ?", models.RoleSuperAdmin).First(&existing).Error; err == nil {
		return
	}

	email := getenv("SUPER_ADMIN_EMAIL", "admin@example.com")
	password := getenv("SUPER_ADMIN_PASSWORD", "ChangeThisPass123!")
	fullName := getenv("SUPER_ADMIN_NAME", "Super Admin")
	mobile := getenv("SUPER_ADMIN_MOBILE", "0000000000")

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("cannot hash super admin password:", err)
		return
	}

	admin := models.Admin{
		FullName: fullName,
		Email:    email,
		Mobile:   mobile,
		Password: string(hashed),
		Role:     models.RoleSuperAdmin,
		Status:   models.AdminStatusActive,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Println("cannot create super admin:", err)
		return
	}
	log.Println("super admin created:", email)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
