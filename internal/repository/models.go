package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        *string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Category struct {
	ID          int64
	Name        string
	Slug        string
	ParentID    *int64
	Description *string
	CreatedAt   time.Time
}

type Product struct {
	ID              int64
	Name            string
	Slug            string
	Description     *string
	CategoryID      *int64
	Brand           *string
	BasePrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	IsActive        bool
	IsFeatured      bool
	Metadata        []byte
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ProductVariant struct {
	ID          int64
	ProductID   int64
	Sku         string
	VariantName *string
	Price       decimal.Decimal
	StockQty    int32
	Attributes  []byte
	IsActive    bool
}

type ProductImage struct {
	ID        int64
	ProductID int64
	ImageUrl  string
	AltText   *string
	IsPrimary bool
	SortOrder int32
}

type Cart struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CartItem struct {
	ID        int64
	CartID    int64
	VariantID int64
	Quantity  int32
}

type Order struct {
	ID          int64
	UserID      *int64
	Status      string
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
}
