package domain

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PRODUCT DOMAIN TYPES
// =============================================================================

var (
	ErrProductNotFound    = &Error{Code: ENOTFOUND, Message: "Product not found"}
	ErrDuplicateProduct   = &Error{Code: ECONFLICT, Message: "A product with this slug already exists"}
	ErrDuplicateSKU       = &Error{Code: ECONFLICT, Message: "A variant with this SKU already exists"}
	ErrSlugSpace          = &Error{Code: EINVALID, Message: "slug cannot contain spaces"}
	ErrSlugUnavailable    = &Error{Code: ECONFLICT, Message: "Could not find a free slug, please choose one"}
	ErrEmptySlugCandidate = &Error{Code: EINVALID, Message: "Name does not contain any characters usable in a slug"}
)

// Product is a catalog entry. FinalPrice is derived from BasePrice and
// DiscountPercent whenever a product is read.
type Product struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Description     *string         `json:"description"`
	CategoryID      *int64          `json:"category_id"`
	Brand           *string         `json:"brand"`
	BasePrice       decimal.Decimal `json:"base_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	IsActive        bool            `json:"is_active"`
	IsFeatured      bool            `json:"is_featured"`
	Metadata        json.RawMessage `json:"product_metadata"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// FinalPrice applies the product discount to its base price.
func (p Product) FinalPrice() decimal.Decimal {
	return FinalPrice(p.BasePrice, p.DiscountPercent)
}

// Variant is a purchasable SKU-level instance of a product.
type Variant struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	SKU         string          `json:"sku"`
	VariantName *string         `json:"variant_name"`
	Price       decimal.Decimal `json:"price"`
	StockQty    int32           `json:"stock_qty"`
	Attributes  json.RawMessage `json:"attributes"`
	IsActive    bool            `json:"is_active"`
}

// Image is a product image. At most one image per product is primary.
type Image struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	ImageURL  string  `json:"image_url"`
	AltText   *string `json:"alt_text"`
	IsPrimary bool    `json:"is_primary"`
	Order     int32   `json:"order"`
}

// ProductDetail is the serialized form of a product for clients.
type ProductDetail struct {
	Product
	FinalPrice decimal.Decimal `json:"final_price"`
	Variants   []Variant       `json:"variants"`
	Images     []Image         `json:"images"`
	Category   *Category       `json:"category,omitempty"`
}

// NewProductDetail builds the client view of a product. Every read path goes
// through here so the final price is computed the same way everywhere.
func NewProductDetail(p Product, variants []Variant, images []Image, category *Category) ProductDetail {
	if variants == nil {
		variants = []Variant{}
	}
	if images == nil {
		images = []Image{}
	}
	return ProductDetail{
		Product:    p,
		FinalPrice: p.FinalPrice(),
		Variants:   variants,
		Images:     images,
		Category:   category,
	}
}

// ProductSortColumns lists the columns a listing may be sorted by.
var ProductSortColumns = map[string]bool{
	"name":             true,
	"base_price":       true,
	"discount_percent": true,
	"created_at":       true,
	"updated_at":       true,
}

// ProductFilter holds listing options. Nil pointers mean "no filter".
type ProductFilter struct {
	Skip       int32
	Limit      int32
	CategoryID *int64
	Search     *string
	SortBy     string
	SortOrder  string
	IsActive   *bool
	IsFeatured *bool
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

// VariantInput describes a variant to create.
type VariantInput struct {
	SKU         string          `json:"sku" validate:"required,max=100"`
	VariantName *string         `json:"variant_name" validate:"omitempty,max=150"`
	Price       decimal.Decimal `json:"price"`
	StockQty    int32           `json:"stock_qty" validate:"gte=0"`
	Attributes  json.RawMessage `json:"attributes"`
	IsActive    *bool           `json:"is_active"`
}

// ImageInput describes an image to attach.
type ImageInput struct {
	ImageURL  string  `json:"image_url" validate:"required"`
	AltText   *string `json:"alt_text" validate:"omitempty,max=255"`
	IsPrimary bool    `json:"is_primary"`
	Order     int32   `json:"order"`
}

// ProductInput is used to create a product. An empty Slug asks the service to
// derive one from Name.
type ProductInput struct {
	Name            string          `json:"name" validate:"required,max=200"`
	Slug            string          `json:"slug" validate:"omitempty,max=250"`
	Description     *string         `json:"description"`
	CategoryID      *int64          `json:"category_id"`
	Brand           *string         `json:"brand" validate:"omitempty,max=100"`
	BasePrice       decimal.Decimal `json:"base_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	IsActive        *bool           `json:"is_active"`
	IsFeatured      bool            `json:"is_featured"`
	Metadata        json.RawMessage `json:"product_metadata"`
	Variants        []VariantInput  `json:"variants" validate:"dive"`
	Images          []ImageInput    `json:"images" validate:"dive"`
}

// ProductUpdate is a partial update; nil fields are left unchanged.
type ProductUpdate struct {
	Name            *string          `json:"name" validate:"omitempty,max=200"`
	Slug            *string          `json:"slug" validate:"omitempty,max=250"`
	Description     *string          `json:"description"`
	CategoryID      *int64           `json:"category_id"`
	Brand           *string          `json:"brand" validate:"omitempty,max=100"`
	BasePrice       *decimal.Decimal `json:"base_price"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	IsActive        *bool            `json:"is_active"`
	IsFeatured      *bool            `json:"is_featured"`
	Metadata        json.RawMessage  `json:"product_metadata"`
}

// ProductService provides catalog operations on products.
type ProductService interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]ProductDetail, error)
	GetProduct(ctx context.Context, id int64) (*ProductDetail, error)
	GetProductBySlug(ctx context.Context, slug string) (*ProductDetail, error)
	CreateProduct(ctx context.Context, input ProductInput) (*ProductDetail, error)
	UpdateProduct(ctx context.Context, id int64, input ProductUpdate) (*ProductDetail, error)
	DeleteProduct(ctx context.Context, id int64) error
	AddVariant(ctx context.Context, productID int64, input VariantInput) (*Variant, error)
	AddImage(ctx context.Context, productID int64, input ImageInput) (*Image, error)
	GenerateUniqueSlug(ctx context.Context, name string) (string, error)
}
