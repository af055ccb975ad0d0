// Command create-admin seeds the administrator account. It is idempotent:
// rerunning against a database that already has the admin is a no-op.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Justinvibez/prime-vault/internal/config"
	"github.com/Justinvibez/prime-vault/internal/models"
	"github.com/Justinvibez/prime-vault/internal/repository/postgres"
	"github.com/Justinvibez/prime-vault/internal/utils"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.AdminPassword == "" {
		logger.Fatal("ADMIN_PASSWORD must be set")
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Migrate(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	store := postgres.NewStore(db)
	ctx := context.Background()

	if existing, err := store.AccountByEmail(ctx, cfg.AdminEmail); err == nil {
		logger.Info("Admin account already exists",
			zap.String("email", existing.Email),
			zap.String("account_number", existing.AccountNumber))
		return
	} else if !errors.Is(err, models.ErrNotFound) {
		logger.Fatal("Failed to look up admin account", zap.Error(err))
	}

	passwordHash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		logger.Fatal("Failed to hash admin password", zap.Error(err))
	}

	admin := &models.Account{
		Name:          "Admin",
		Email:         cfg.AdminEmail,
		PasswordHash:  passwordHash,
		AccountNumber: utils.GenerateAccountNumber(),
		BalanceCents:  0,
		IsAuthorized:  true,
		IsAdmin:       true,
		CreatedAt:     time.Now().UTC(),
	}
	if err := store.CreateAccount(ctx, admin); err != nil {
		logger.Fatal("Failed to create admin account", zap.Error(err))
	}

	logger.Info("Seeded admin account",
		zap.String("email", admin.Email),
		zap.String("account_number", admin.AccountNumber))
}
