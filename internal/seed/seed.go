// Package seed provides database seeding for development and testing.
package seed

import (
	"context"
	"fmt"

	"echos/internal/middleware"
	"echos/internal/models"
	"echos/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the demo seeder.
type Options struct {
	NumUsers int
	NumPosts int
	Password string
}

// DefaultOptions is a small but representative demo data set.
var DefaultOptions = Options{
	NumUsers: 10,
	NumPosts: 30,
	Password: "password123",
}

// defaultTags is the stock tag catalog created on first boot.
var defaultTags = []models.Tag{
	{Name: "Idea", Color: "#0d6efd"},
	{Name: "Bug Report", Color: "#dc3545"},
	{Name: "Improvement", Color: "#198754"},
	{Name: "Question", Color: "#ffc107"},
	{Name: "Other", Color: models.DefaultTagColor},
}

// defaultAccounts are the stock leader and member accounts. Their password
// is the demo password; real deployments replace them.
var defaultAccounts = []models.User{
	{Email: "leader@example.com", Role: models.RoleLeader},
	{Email: "member@example.com", Role: models.RoleMember},
}

// EnsureDefaults creates the stock tag catalog and accounts if they are not
// present yet. Safe to run on every boot.
func EnsureDefaults(ctx context.Context, db *gorm.DB) error {
	for _, tag := range defaultTags {
		var count int64
		if err := db.WithContext(ctx).Model(&models.Tag{}).Where("name = ?", tag.Name).Count(&count).Error; err != nil {
			return fmt.Errorf("checking tag %q: %w", tag.Name, err)
		}
		if count > 0 {
			continue
		}
		tag := tag
		if err := db.WithContext(ctx).Create(&tag).Error; err != nil {
			return fmt.Errorf("creating tag %q: %w", tag.Name, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultOptions.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := repository.NewUserRepository(db)
	for _, account := range defaultAccounts {
		existing, err := users.GetByEmail(ctx, account.Email)
		if err != nil {
			return fmt.Errorf("checking account %q: %w", account.Email, err)
		}
		if existing != nil {
			continue
		}
		account := account
		account.Password = string(hash)
		if err := users.Create(ctx, &account); err != nil {
			return fmt.Errorf("creating account %q: %w", account.Email, err)
		}
		middleware.Logger.Info("seeded default account", "email", account.Email, "role", account.Role)
	}

	return nil
}
