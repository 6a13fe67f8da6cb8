// Package bootstrap handles one-time initialization tasks for the application.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dukerupert/tantuka/internal/auth"
	"github.com/dukerupert/tantuka/internal/domain"
)

// AdminConfig contains configuration for the initial admin user.
type AdminConfig struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Validate checks that the admin configuration is valid.
func (c *AdminConfig) Validate() error {
	if c.Email == "" {
		return errors.New("admin email is required")
	}
	if c.Password == "" {
		return errors.New("admin password is required")
	}
	if len(c.Password) < 12 {
		return errors.New("admin password must be at least 12 characters")
	}
	if len(c.Password) > auth.MaxPasswordBytes {
		return fmt.Errorf("admin password must be at most %d bytes", auth.MaxPasswordBytes)
	}
	return nil
}

// EnsureAdmin creates the initial admin user if it doesn't exist.
// This function is idempotent - safe to call on every startup.
//
// If AdminConfig is nil or has empty Email/Password, it logs a warning and skips.
//
// Returns error if:
// - Password is too short (< 12 characters)
// - The user service fails
func EnsureAdmin(
	ctx context.Context,
	users domain.UserService,
	cfg *AdminConfig,
	logger *slog.Logger,
) error {
	if cfg == nil || cfg.Email == "" || cfg.Password == "" {
		logger.Warn("bootstrap: skipping admin creation - ADMIN_EMAIL or ADMIN_PASSWORD not set",
			"hint", "Set these environment variables to create an admin user on first startup",
		)
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid admin configuration: %w", err)
	}

	firstName := cfg.FirstName
	if firstName == "" {
		firstName = "Admin"
	}
	lastName := cfg.LastName
	if lastName == "" {
		lastName = "User"
	}

	user, created, err := users.EnsureAdmin(ctx, domain.RegisterInput{
		Email:     cfg.Email,
		Password:  cfg.Password,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return fmt.Errorf("failed to ensure admin user: %w", err)
	}

	if !created {
		logger.Info("bootstrap: admin user already exists",
			"email", user.Email,
			"role", user.Role,
		)
		if !user.IsAdmin() {
			logger.Warn("bootstrap: configured admin email belongs to a non-admin account",
				"email", user.Email,
			)
		}
		return nil
	}

	logger.Info("bootstrap: admin user created successfully",
		"email", user.Email,
		"user_id", user.ID,
	)

	return nil
}
