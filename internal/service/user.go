package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dukerupert/tantuka/internal/auth"
	"github.com/dukerupert/tantuka/internal/domain"
	"github.com/dukerupert/tantuka/internal/repository"
)

// TokenIssuer signs and verifies access tokens.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
	Verify(token string) (int64, error)
}

type userService struct {
	store  repository.Store
	tokens TokenIssuer
	hash   func(password string) (string, error)
}

// NewUserService creates a UserService backed by store that issues tokens with tokens.
func NewUserService(store repository.Store, tokens TokenIssuer) domain.UserService {
	return &userService{
		store:  store,
		tokens: tokens,
		hash:   auth.HashPassword,
	}
}

func (s *userService) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
	const op = "user.register"

	if err := checkPassword(op, input.Password); err != nil {
		return nil, err
	}

	return s.createUser(ctx, op, input, domain.UserRoleCustomer)
}

// checkPassword reports a password policy failure as a field error.
func checkPassword(op, password string) error {
	return passwordError(op, auth.CheckPassword(password))
}

func (s *userService) hashPassword(op, password string) (string, error) {
	hash, err := s.hash(password)
	if err != nil {
		var pe *auth.PolicyError
		if errors.As(err, &pe) {
			return "", passwordError(op, err)
		}
		return "", domain.Internal(err, op, "failed to hash password")
	}
	return hash, nil
}

func passwordError(op string, err error) error {
	var pe *auth.PolicyError
	if errors.As(err, &pe) {
		return domain.NewValidationError(op, "password", pe.Message)
	}
	return err
}

func (s *userService) createUser(ctx context.Context, op string, input domain.RegisterInput, role domain.UserRole) (*domain.User, error) {
	hash, err := s.hashPassword(op, input.Password)
	if err != nil {
		return nil, err
	}

	var row repository.User
	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		email := normalizeEmail(input.Email)
		if _, err := q.GetUserByEmail(ctx, email); err == nil {
			return domain.WithOp(domain.ErrUserExists, op)
		} else if !repository.IsNotFound(err) {
			return err
		}

		row, err = q.CreateUser(ctx, repository.CreateUserParams{
			Email:        email,
			PasswordHash: hash,
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			Phone:        input.Phone,
			Role:         string(role),
			IsActive:     true,
		})
		if repository.IsUniqueViolation(err, repository.ConstraintUserEmail) {
			return domain.WithOp(domain.ErrUserExists, op)
		}
		return err
	})
	if err != nil {
		return nil, storeError(err, op, "failed to create user")
	}

	return toDomainUser(row), nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	const op = "user.authenticate"

	row, err := s.store.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.WithOp(domain.ErrInvalidCredentials, op)
		}
		return nil, storeError(err, op, "failed to look up user")
	}

	if err := auth.VerifyPassword(password, row.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, domain.WithOp(domain.ErrInvalidCredentials, op)
		}
		return nil, domain.Internal(err, op, "failed to verify password")
	}

	return toDomainUser(row), nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*domain.Token, error) {
	const op = "user.login"

	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.WithOp(domain.ErrInactiveUser, op)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to issue token")
	}

	return &domain.Token{AccessToken: token, TokenType: "bearer"}, nil
}

func (s *userService) UserFromToken(ctx context.Context, token string) (*domain.User, error) {
	const op = "user.from_token"

	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, &domain.Error{Code: domain.EUNAUTHORIZED, Message: domain.ErrInvalidToken.Message, Op: op, Err: err}
	}

	row, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.WithOp(domain.ErrInvalidToken, op)
		}
		return nil, storeError(err, op, "failed to load user")
	}
	if !row.IsActive {
		return nil, domain.WithOp(domain.ErrInactiveUser, op)
	}

	return toDomainUser(row), nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	const op = "user.get"

	row, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.WithOp(domain.ErrUserNotFound, op)
		}
		return nil, storeError(err, op, "failed to get user")
	}
	return toDomainUser(row), nil
}

func (s *userService) ListUsers(ctx context.Context, skip, limit int32) ([]domain.User, error) {
	skip, limit = page(skip, limit)

	rows, err := s.store.ListUsers(ctx, repository.ListParams{Offset: skip, Limit: limit})
	if err != nil {
		return nil, storeError(err, "user.list", "failed to list users")
	}

	users := make([]domain.User, len(rows))
	for i, row := range rows {
		users[i] = *toDomainUser(row)
	}
	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, id int64, input domain.UserUpdate) (*domain.User, error) {
	const op = "user.update"

	var hash string
	if input.Password != nil {
		if err := checkPassword(op, *input.Password); err != nil {
			return nil, err
		}
		var err error
		if hash, err = s.hashPassword(op, *input.Password); err != nil {
			return nil, err
		}
	}

	var row repository.User
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		current, err := q.GetUserByID(ctx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return domain.WithOp(domain.ErrUserNotFound, op)
			}
			return err
		}

		params := repository.UpdateUserParams{
			ID:           current.ID,
			Email:        current.Email,
			PasswordHash: current.PasswordHash,
			FirstName:    current.FirstName,
			LastName:     current.LastName,
			Phone:        current.Phone,
		}
		if input.Email != nil {
			email := normalizeEmail(*input.Email)
			if email != current.Email {
				if _, err := q.GetUserByEmail(ctx, email); err == nil {
					return domain.WithOp(domain.ErrUserExists, op)
				} else if !repository.IsNotFound(err) {
					return err
				}
			}
			params.Email = email
		}
		if input.FirstName != nil {
			params.FirstName = *input.FirstName
		}
		if input.LastName != nil {
			params.LastName = *input.LastName
		}
		if input.Phone != nil {
			params.Phone = input.Phone
		}
		if hash != "" {
			params.PasswordHash = hash
		}

		row, err = q.UpdateUser(ctx, params)
		if repository.IsUniqueViolation(err, repository.ConstraintUserEmail) {
			return domain.WithOp(domain.ErrUserExists, op)
		}
		return err
	})
	if err != nil {
		return nil, storeError(err, op, "failed to update user")
	}

	return toDomainUser(row), nil
}

func (s *userService) EnsureAdmin(ctx context.Context, input domain.RegisterInput) (*domain.User, bool, error) {
	const op = "user.ensure_admin"

	row, err := s.store.GetUserByEmail(ctx, normalizeEmail(input.Email))
	if err == nil {
		return toDomainUser(row), false, nil
	}
	if !repository.IsNotFound(err) {
		return nil, false, storeError(err, op, "failed to check for existing admin")
	}

	user, err := s.createUser(ctx, op, input, domain.UserRoleAdmin)
	if errors.Is(err, domain.ErrUserExists) {
		// Created concurrently by another instance.
		user, err = s.getUserByEmail(ctx, op, input.Email)
		return user, false, err
	}
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *userService) getUserByEmail(ctx context.Context, op, email string) (*domain.User, error) {
	row, err := s.store.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.WithOp(domain.ErrUserNotFound, op)
		}
		return nil, storeError(err, op, "failed to get user")
	}
	return toDomainUser(row), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toDomainUser(u repository.User) *domain.User {
	return &domain.User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		Role:         domain.UserRole(u.Role),
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
