package domain

import (
	"context"
	"strings"
	"time"
)

// =============================================================================
// USER DOMAIN TYPES
// =============================================================================

// UserRole controls what a user may do. Only admins reach the admin routes.
type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleAdmin    UserRole = "admin"
	UserRoleSeller   UserRole = "seller"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleCustomer, UserRoleAdmin, UserRoleSeller:
		return true
	}
	return false
}

// User is an account. PasswordHash never leaves the service layer.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        *string   `json:"phone"`
	Role         UserRole  `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// FullName returns the user's first and last name joined by a space.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// RegisterInput is the body of a registration request.
type RegisterInput struct {
	Email     string  `json:"email" validate:"required,email,max=255"`
	Password  string  `json:"password" validate:"required,min=8"`
	FirstName string  `json:"first_name" validate:"required,min=2,max=50"`
	LastName  string  `json:"last_name" validate:"required,min=2,max=50"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
}

// UserUpdate is a partial profile update; nil fields are left unchanged.
type UserUpdate struct {
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	FirstName *string `json:"first_name" validate:"omitempty,min=2,max=50"`
	LastName  *string `json:"last_name" validate:"omitempty,min=2,max=50"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
	Password  *string `json:"password" validate:"omitempty,min=8"`
}

// Token is the response of a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// =============================================================================
// SERVICE INTERFACE
// =============================================================================

// UserService provides account and authentication operations.
type UserService interface {
	// Register creates a customer account.
	Register(ctx context.Context, input RegisterInput) (*User, error)

	// Authenticate verifies email/password and returns the user if valid.
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// Login authenticates and issues a bearer token.
	Login(ctx context.Context, email, password string) (*Token, error)

	// UserFromToken resolves a bearer token to an active user.
	UserFromToken(ctx context.Context, token string) (*User, error)

	GetUser(ctx context.Context, id int64) (*User, error)
	ListUsers(ctx context.Context, skip, limit int32) ([]User, error)
	UpdateUser(ctx context.Context, id int64, input UserUpdate) (*User, error)

	// EnsureAdmin creates an admin account from input unless a user with that
	// email already exists. The boolean reports whether an account was created.
	EnsureAdmin(ctx context.Context, input RegisterInput) (*User, bool, error)
}

// =============================================================================
// DOMAIN ERRORS
// =============================================================================

var (
	ErrUserNotFound       = &Error{Code: ENOTFOUND, Message: "User not found"}
	ErrUserExists         = &Error{Code: ECONFLICT, Message: "Email already registered"}
	ErrInvalidCredentials = &Error{Code: EUNAUTHORIZED, Message: "Incorrect email or password"}
	ErrInvalidToken       = &Error{Code: EUNAUTHORIZED, Message: "Could not validate credentials"}
	ErrInactiveUser       = &Error{Code: EFORBIDDEN, Message: "Inactive user"}
	ErrNotAdmin           = &Error{Code: EFORBIDDEN, Message: "Not authorized for admin access"}
)
