package api

import (
	"context"
	"time"

	"github.com/dukerupert/tantuka/internal/domain"
)

// Each mock embeds its interface so unused methods panic if a test reaches
// them unexpectedly.

type mockCartService struct {
	domain.CartService
	GetCartWithDetailsFunc func(ctx context.Context, userID int64) (*domain.CartView, error)
	AddItemFunc            func(ctx context.Context, userID, variantID int64, quantity int32) (*domain.CartLine, error)
	UpdateItemFunc         func(ctx context.Context, userID, itemID int64, quantity int32) (*domain.CartLine, error)
	RemoveItemFunc         func(ctx context.Context, userID, itemID int64) error
	ClearFunc              func(ctx context.Context, userID int64) error
}

func (m *mockCartService) GetCartWithDetails(ctx context.Context, userID int64) (*domain.CartView, error) {
	return m.GetCartWithDetailsFunc(ctx, userID)
}

func (m *mockCartService) AddItem(ctx context.Context, userID, variantID int64, quantity int32) (*domain.CartLine, error) {
	return m.AddItemFunc(ctx, userID, variantID, quantity)
}

func (m *mockCartService) UpdateItem(ctx context.Context, userID, itemID int64, quantity int32) (*domain.CartLine, error) {
	return m.UpdateItemFunc(ctx, userID, itemID, quantity)
}

func (m *mockCartService) RemoveItem(ctx context.Context, userID, itemID int64) error {
	return m.RemoveItemFunc(ctx, userID, itemID)
}

func (m *mockCartService) Clear(ctx context.Context, userID int64) error {
	return m.ClearFunc(ctx, userID)
}

type mockProductService struct {
	domain.ProductService
	ListProductsFunc       func(ctx context.Context, filter domain.ProductFilter) ([]domain.ProductDetail, error)
	GetProductFunc         func(ctx context.Context, id int64) (*domain.ProductDetail, error)
	GetProductBySlugFunc   func(ctx context.Context, slug string) (*domain.ProductDetail, error)
	CreateProductFunc      func(ctx context.Context, input domain.ProductInput) (*domain.ProductDetail, error)
	UpdateProductFunc      func(ctx context.Context, id int64, input domain.ProductUpdate) (*domain.ProductDetail, error)
	DeleteProductFunc      func(ctx context.Context, id int64) error
	AddVariantFunc         func(ctx context.Context, productID int64, input domain.VariantInput) (*domain.Variant, error)
	AddImageFunc           func(ctx context.Context, productID int64, input domain.ImageInput) (*domain.Image, error)
	GenerateUniqueSlugFunc func(ctx context.Context, name string) (string, error)
}

func (m *mockProductService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.ProductDetail, error) {
	return m.ListProductsFunc(ctx, filter)
}

func (m *mockProductService) GetProduct(ctx context.Context, id int64) (*domain.ProductDetail, error) {
	return m.GetProductFunc(ctx, id)
}

func (m *mockProductService) GetProductBySlug(ctx context.Context, slug string) (*domain.ProductDetail, error) {
	return m.GetProductBySlugFunc(ctx, slug)
}

func (m *mockProductService) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.ProductDetail, error) {
	return m.CreateProductFunc(ctx, input)
}

func (m *mockProductService) UpdateProduct(ctx context.Context, id int64, input domain.ProductUpdate) (*domain.ProductDetail, error) {
	return m.UpdateProductFunc(ctx, id, input)
}

func (m *mockProductService) DeleteProduct(ctx context.Context, id int64) error {
	return m.DeleteProductFunc(ctx, id)
}

func (m *mockProductService) AddVariant(ctx context.Context, productID int64, input domain.VariantInput) (*domain.Variant, error) {
	return m.AddVariantFunc(ctx, productID, input)
}

func (m *mockProductService) AddImage(ctx context.Context, productID int64, input domain.ImageInput) (*domain.Image, error) {
	return m.AddImageFunc(ctx, productID, input)
}

func (m *mockProductService) GenerateUniqueSlug(ctx context.Context, name string) (string, error) {
	return m.GenerateUniqueSlugFunc(ctx, name)
}

type mockCategoryService struct {
	domain.CategoryService
	ListCategoriesFunc     func(ctx context.Context, skip, limit int32) ([]domain.Category, error)
	GetCategoryTreeFunc    func(ctx context.Context) ([]domain.CategoryNode, error)
	GetCategoryFunc        func(ctx context.Context, id int64) (*domain.Category, error)
	GetCategoryBySlugFunc  func(ctx context.Context, slug string) (*domain.Category, error)
	CreateCategoryFunc     func(ctx context.Context, input domain.CategoryInput) (*domain.Category, error)
	UpdateCategoryFunc     func(ctx context.Context, id int64, input domain.CategoryUpdate) (*domain.Category, error)
	DeleteCategoryFunc     func(ctx context.Context, id int64) error
	GenerateUniqueSlugFunc func(ctx context.Context, name string) (string, error)
}

func (m *mockCategoryService) ListCategories(ctx context.Context, skip, limit int32) ([]domain.Category, error) {
	return m.ListCategoriesFunc(ctx, skip, limit)
}

func (m *mockCategoryService) GetCategoryTree(ctx context.Context) ([]domain.CategoryNode, error) {
	return m.GetCategoryTreeFunc(ctx)
}

func (m *mockCategoryService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return m.GetCategoryFunc(ctx, id)
}

func (m *mockCategoryService) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return m.GetCategoryBySlugFunc(ctx, slug)
}

func (m *mockCategoryService) CreateCategory(ctx context.Context, input domain.CategoryInput) (*domain.Category, error) {
	return m.CreateCategoryFunc(ctx, input)
}

func (m *mockCategoryService) UpdateCategory(ctx context.Context, id int64, input domain.CategoryUpdate) (*domain.Category, error) {
	return m.UpdateCategoryFunc(ctx, id, input)
}

func (m *mockCategoryService) DeleteCategory(ctx context.Context, id int64) error {
	return m.DeleteCategoryFunc(ctx, id)
}

func (m *mockCategoryService) GenerateUniqueSlug(ctx context.Context, name string) (string, error) {
	return m.GenerateUniqueSlugFunc(ctx, name)
}

type mockUserService struct {
	domain.UserService
	RegisterFunc   func(ctx context.Context, input domain.RegisterInput) (*domain.User, error)
	LoginFunc      func(ctx context.Context, email, password string) (*domain.Token, error)
	GetUserFunc    func(ctx context.Context, id int64) (*domain.User, error)
	ListUsersFunc  func(ctx context.Context, skip, limit int32) ([]domain.User, error)
	UpdateUserFunc func(ctx context.Context, id int64, input domain.UserUpdate) (*domain.User, error)
}

func (m *mockUserService) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
	return m.RegisterFunc(ctx, input)
}

func (m *mockUserService) Login(ctx context.Context, email, password string) (*domain.Token, error) {
	return m.LoginFunc(ctx, email, password)
}

func (m *mockUserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return m.GetUserFunc(ctx, id)
}

func (m *mockUserService) ListUsers(ctx context.Context, skip, limit int32) ([]domain.User, error) {
	return m.ListUsersFunc(ctx, skip, limit)
}

func (m *mockUserService) UpdateUser(ctx context.Context, id int64, input domain.UserUpdate) (*domain.User, error) {
	return m.UpdateUserFunc(ctx, id, input)
}

type mockDashboardService struct {
	domain.DashboardService
	StatsFunc      func(ctx context.Context) (*domain.DashboardStats, error)
	SummaryFunc    func(ctx context.Context, now time.Time) (*domain.DashboardSummary, error)
	ListOrdersFunc func(ctx context.Context, skip, limit int32) ([]domain.Order, error)
	HealthFunc     func(ctx context.Context) *domain.SystemHealth
}

func (m *mockDashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	return m.StatsFunc(ctx)
}

func (m *mockDashboardService) Summary(ctx context.Context, now time.Time) (*domain.DashboardSummary, error) {
	return m.SummaryFunc(ctx, now)
}

func (m *mockDashboardService) ListOrders(ctx context.Context, skip, limit int32) ([]domain.Order, error) {
	return m.ListOrdersFunc(ctx, skip, limit)
}

func (m *mockDashboardService) Health(ctx context.Context) *domain.SystemHealth {
	return m.HealthFunc(ctx)
}
