package seeder

import (
	"context"
	"log"
	"time"

	"hrms/models"
	"hrms/pkg/password"
	"hrms/repository"
)

const (
	defaultAdminEmail    = "admin@hrms.local"
	defaultAdminPassword = "Admin@123456"
)

// SeedAdmin creates the default admin account when none exists, so a
// fresh deployment is reachable.
func SeedAdmin(userRepo *repository.UserRepository) {
	log.Println("Checking for default admin account...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	existing, err := userRepo.FindByEmail(ctx, defaultAdminEmail)
	if err != nil {
		log.Printf("Failed to look up admin account: %v", err)
		return
	}
	if existing != nil {
		log.Println("Admin account already exists, skipping seed.")
		return
	}

	hashed, err := password.HashPassword(defaultAdminPassword)
	if err != nil {
		log.Printf("Failed to hash admin password: %v", err)
		return
	}

	admin := &models.User{
		Email:    defaultAdminEmail,
		Password: hashed,
		Role:     "admin",
		IsActive: true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Printf("Failed to seed admin account: %v", err)
		return
	}

	log.Printf("Admin account %s seeded. Change the password after first login.", defaultAdminEmail)
}
