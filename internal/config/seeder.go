package config

import (
	"context"
	"fmt"
	"log"
	"strings"

	"eventhire/internal/adapters/persistence/models"
	"eventhire/internal/adapters/persistence/repositories"
	"eventhire/internal/core/domain"
	"eventhire/internal/pkg/password"
)

// Seeder handles database seeding
type Seeder struct {
	store repositories.Store
	admin SuperAdminConfig
}

// NewSeeder creates a new seeder instance
func NewSeeder(store repositories.Store, admin SuperAdminConfig) *Seeder {
	return &Seeder{store: store, admin: admin}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedSuperAdmin(ctx); err != nil {
		return fmt.Errorf("seed superadmin: %w", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedSuperAdmin creates the admin account from SUPERADMIN_EMAIL and
// SUPERADMIN_PASSWORD. An existing account with that email is left alone.
func (s *Seeder) seedSuperAdmin(ctx context.Context) error {
	email := strings.ToLower(strings.TrimSpace(s.admin.Email))
	if email == "" || s.admin.Password == "" {
		log.Println("⚠️ Skipping superadmin seed: SUPERADMIN_EMAIL or SUPERADMIN_PASSWORD not set")
		return nil
	}
	if !password.ValidatePassword(s.admin.Password) {
		return fmt.Errorf("SUPERADMIN_PASSWORD must be at least %d characters", password.MinLength)
	}

	exists, err := s.store.Users().ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hashed, err := password.Hash(s.admin.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:    email,
		Password: hashed,
		Role:     string(domain.RoleAdmin),
		IsActive: true,
	}
	if err := s.store.Users().Create(ctx, admin); err != nil {
		return err
	}

	log.Printf("✅ Superadmin created: %s", admin.Email)
	return nil
}
