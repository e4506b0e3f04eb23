// Package bootstrap establishes runtime dependencies shared by the
// application commands.
package bootstrap

import (
	"fmt"
	"strings"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/seed"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoEmail is the login of the development account created on startup.
const DemoEmail = "demo@inkwell.local"

// InitRuntime connects to the database and Redis. In development it also
// makes sure a known demo account exists so a fresh checkout can log in
// without seeding first. The Redis client may be nil if unreachable; the
// cache layer degrades to pass-through.
func InitRuntime(cfg *config.Config) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := ensureDemoAccount(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap demo account: %w", err)
	}

	return db, r, nil
}

func ensureDemoAccount(cfg *config.Config, db *gorm.DB) error {
	if !strings.EqualFold(cfg.Env, "development") {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", DemoEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		FirstName: "Demo",
		LastName:  "Writer",
		Username:  uuid.New().String(),
		Email:     DemoEmail,
		Password:  string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		return err
	}

	middleware.Logger.Info("created development demo account", "email", DemoEmail)
	return nil
}
