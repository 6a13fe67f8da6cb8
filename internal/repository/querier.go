package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Querier interface {
	// users
	CreateUser(ctx context.Context, arg CreateUserParams) (User, error)
	GetUserByID(ctx context.Context, id int64) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ListUsers(ctx context.Context, arg ListParams) ([]User, error)
	UpdateUser(ctx context.Context, arg UpdateUserParams) (User, error)
	CountUsers(ctx context.Context) (int64, error)
	CountUsersByDay(ctx context.Context, since time.Time) ([]CountUsersByDayRow, error)

	// categories
	CreateCategory(ctx context.Context, arg CreateCategoryParams) (Category, error)
	GetCategoryByID(ctx context.Context, id int64) (Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (Category, error)
	ListCategories(ctx context.Context, arg ListParams) ([]Category, error)
	ListAllCategories(ctx context.Context) ([]Category, error)
	UpdateCategory(ctx context.Context, arg UpdateCategoryParams) (Category, error)
	DeleteCategory(ctx context.Context, id int64) (int64, error)
	CountChildCategories(ctx context.Context, parentID int64) (int64, error)
	CategorySlugExists(ctx context.Context, slug string) (bool, error)
	CountCategories(ctx context.Context) (int64, error)
	CountProductsPerCategory(ctx context.Context) ([]CountProductsPerCategoryRow, error)

	// products
	CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error)
	GetProductByID(ctx context.Context, id int64) (Product, error)
	GetProductBySlug(ctx context.Context, slug string) (Product, error)
	ListProducts(ctx context.Context, arg ListProductsParams) ([]Product, error)
	ListFeaturedProducts(ctx context.Context, limit int32) ([]Product, error)
	UpdateProduct(ctx context.Context, arg UpdateProductParams) (Product, error)
	DeleteProduct(ctx context.Context, id int64) (int64, error)
	ProductSlugExists(ctx context.Context, slug string) (bool, error)
	CountProducts(ctx context.Context) (int64, error)
	GetProductDistribution(ctx context.Context) (ProductDistributionRow, error)

	// variants and images
	CreateVariant(ctx context.Context, arg CreateVariantParams) (ProductVariant, error)
	GetActiveVariant(ctx context.Context, id int64) (ProductVariant, error)
	ListVariantsByProductIDs(ctx context.Context, productIDs []int64) ([]ProductVariant, error)
	CountVariants(ctx context.Context) (int64, error)
	CreateImage(ctx context.Context, arg CreateImageParams) (ProductImage, error)
	ClearPrimaryImages(ctx context.Context, productID int64) error
	ListImagesByProductIDs(ctx context.Context, productIDs []int64) ([]ProductImage, error)

	// carts
	GetCartByUserID(ctx context.Context, userID int64) (Cart, error)
	InsertCartIfAbsent(ctx context.Context, userID int64) error
	TouchCart(ctx context.Context, id int64) error
	UpsertCartItem(ctx context.Context, arg UpsertCartItemParams) (CartItem, error)
	UpdateCartItemQuantity(ctx context.Context, arg UpdateCartItemQuantityParams) (CartItem, error)
	DeleteCartItem(ctx context.Context, arg DeleteCartItemParams) (int64, error)
	ClearCartItems(ctx context.Context, cartID int64) (int64, error)
	GetCartLines(ctx context.Context, cartID int64) ([]GetCartLinesRow, error)

	// orders
	ListOrders(ctx context.Context, arg ListParams) ([]Order, error)
	CountOrders(ctx context.Context) (int64, error)
	SumDeliveredOrders(ctx context.Context) (decimal.Decimal, error)
}

var _ Querier = (*Queries)(nil)

// ListParams pages through a listing.
type ListParams struct {
	Offset int32
	Limit  int32
}
