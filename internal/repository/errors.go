package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Constraint names referenced by callers that translate violations.
const (
	ConstraintUserEmail    = "users_email_key"
	ConstraintCategorySlug = "categories_slug_key"
	ConstraintProductSlug  = "products_slug_key"
	ConstraintVariantSKU   = "product_variants_sku_key"
	ConstraintCartUser     = "carts_user_id_key"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNumericOutOfRange   = "22003"
)

// IsNotFound reports whether err means the query matched no rows.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsUniqueViolation reports whether err is a unique violation of the named
// constraint. An empty constraint matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	return isViolation(err, codeUniqueViolation, constraint)
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return isViolation(err, codeForeignKeyViolation, "")
}

// IsCheckViolation reports whether err is a check constraint violation.
func IsCheckViolation(err error) bool {
	return isViolation(err, codeCheckViolation, "")
}

// IsOutOfRange reports whether err is a numeric value that overflowed its
// column, such as a cart quantity past the int4 maximum.
func IsOutOfRange(err error) bool {
	return isViolation(err, codeNumericOutOfRange, "")
}

func isViolation(err error, code, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != code {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
