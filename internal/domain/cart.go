package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CART DOMAIN ERRORS
// =============================================================================

var (
	ErrCartItemNotFound = &Error{Code: ENOTFOUND, Message: "Cart item not found"}
	ErrVariantNotFound  = &Error{Code: ENOTFOUND, Message: "Product variant not found or is not active"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
	ErrQuantityTooLarge = &Error{Code: EINVALID, Message: "Quantity is larger than a cart line can hold"}
)

// CartService provides the cart operations for a single authenticated user.
// Every method runs as one store transaction.
type CartService interface {
	// GetOrCreateCart returns the user's cart, creating it on first access.
	GetOrCreateCart(ctx context.Context, userID int64) (*Cart, error)

	// AddItem adds a variant to the cart. If the variant is already present its
	// quantity is incremented instead of creating a second line.
	AddItem(ctx context.Context, userID, variantID int64, quantity int32) (*CartLine, error)

	// UpdateItem replaces the quantity of a line in the user's cart.
	UpdateItem(ctx context.Context, userID, itemID int64, quantity int32) (*CartLine, error)

	// RemoveItem deletes a line from the user's cart.
	RemoveItem(ctx context.Context, userID, itemID int64) error

	// Clear deletes every line in the user's cart. Clearing an empty cart succeeds.
	Clear(ctx context.Context, userID int64) error

	// GetCartWithDetails returns the cart with joined catalog data and totals.
	GetCartWithDetails(ctx context.Context, userID int64) (*CartView, error)
}

// Cart is the single active cart of a user.
type Cart struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartLine associates a cart with a variant and a positive quantity.
type CartLine struct {
	ID        int64 `json:"id"`
	CartID    int64 `json:"cart_id"`
	VariantID int64 `json:"variant_id"`
	Quantity  int32 `json:"quantity"`
}

// CartLineView is a cart line joined with its variant, product and primary image.
type CartLineView struct {
	ID          int64           `json:"id"`
	CartID      int64           `json:"cart_id"`
	VariantID   int64           `json:"variant_id"`
	Quantity    int32           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`       // variant unit price, summed into the subtotal
	FinalPrice  decimal.Decimal `json:"final_price"` // Price less the product discount; display only
	VariantName *string         `json:"variant_name"`
	ProductName string          `json:"product_name"`
	ProductSlug string          `json:"product_slug"`
	ImageURL    *string         `json:"image_url"`
}

// CartView is the cart response with derived totals.
//
// Subtotal is the sum of each line's unit Price times Quantity. It does not
// use the lines' discounted FinalPrice, so it will not match a total built
// from final_price when a product carries a discount. Subtotal is rounded
// once over the whole cart, never per line. A client that rounds each line
// itself can be a cent off the published subtotal on large carts.
type CartView struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user_id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Items      []CartLineView  `json:"items"`
	TotalItems int64           `json:"total_items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// NewCartView folds line views into a CartView, computing total_items and the
// subtotal (sum of price * quantity, rounded half-even to cents at the end).
func NewCartView(cart Cart, lines []CartLineView) *CartView {
	view := &CartView{
		ID:        cart.ID,
		UserID:    cart.UserID,
		CreatedAt: cart.CreatedAt,
		UpdatedAt: cart.UpdatedAt,
		Items:     make([]CartLineView, 0, len(lines)),
		Subtotal:  decimal.Zero,
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		view.TotalItems += int64(line.Quantity)
		subtotal = subtotal.Add(line.Price.Mul(decimal.NewFromInt32(line.Quantity)))
		view.Items = append(view.Items, line)
	}
	view.Subtotal = RoundMoney(subtotal)

	return view
}
