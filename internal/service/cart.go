package service

import (
	"context"

	"github.com/dukerupert/tantuka/internal/domain"
	"github.com/dukerupert/tantuka/internal/repository"
)

type cartService struct {
	store repository.Store
}

// NewCartService creates a CartService backed by store.
func NewCartService(store repository.Store) domain.CartService {
	return &cartService{store: store}
}

// getOrCreateCart resolves the user's cart inside an open transaction. The
// insert is a no-op when a concurrent request created the cart first.
func getOrCreateCart(ctx context.Context, q repository.Querier, userID int64) (repository.Cart, error) {
	cart, err := q.GetCartByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !repository.IsNotFound(err) {
		return repository.Cart{}, err
	}

	if err := q.InsertCartIfAbsent(ctx, userID); err != nil {
		return repository.Cart{}, err
	}
	return q.GetCartByUserID(ctx, userID)
}

func (s *cartService) GetOrCreateCart(ctx context.Context, userID int64) (*domain.Cart, error) {
	const op = "cart.get_or_create"

	var cart repository.Cart
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		var err error
		cart, err = getOrCreateCart(ctx, q, userID)
		return err
	})
	if err != nil {
		return nil, storeError(err, op, "failed to load cart")
	}

	return toDomainCart(cart), nil
}

func (s *cartService) AddItem(ctx context.Context, userID, variantID int64, quantity int32) (*domain.CartLine, error) {
	const op = "cart.add_item"

	if quantity <= 0 {
		return nil, domain.WithOp(domain.ErrInvalidQuantity, op)
	}

	var item repository.CartItem
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		cart, err := getOrCreateCart(ctx, q, userID)
		if err != nil {
			return err
		}

		if _, err := q.GetActiveVariant(ctx, variantID); err != nil {
			if repository.IsNotFound(err) {
				return domain.WithOp(domain.ErrVariantNotFound, op)
			}
			return err
		}

		item, err = q.UpsertCartItem(ctx, repository.UpsertCartItemParams{
			CartID:    cart.ID,
			VariantID: variantID,
			Quantity:  quantity,
		})
		if repository.IsOutOfRange(err) {
			return domain.WithOp(domain.ErrQuantityTooLarge, op)
		}
		if err != nil {
			return err
		}
		return q.TouchCart(ctx, cart.ID)
	})
	if err != nil {
		return nil, storeError(err, op, "failed to add item to cart")
	}

	return toDomainCartLine(item), nil
}

func (s *cartService) UpdateItem(ctx context.Context, userID, itemID int64, quantity int32) (*domain.CartLine, error) {
	const op = "cart.update_item"

	if quantity <= 0 {
		return nil, domain.WithOp(domain.ErrInvalidQuantity, op)
	}

	var item repository.CartItem
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		cart, err := getOrCreateCart(ctx, q, userID)
		if err != nil {
			return err
		}

		item, err = q.UpdateCartItemQuantity(ctx, repository.UpdateCartItemQuantityParams{
			ID:       itemID,
			CartID:   cart.ID,
			Quantity: quantity,
		})
		if err != nil {
			if repository.IsNotFound(err) {
				return domain.WithOp(domain.ErrCartItemNotFound, op)
			}
			return err
		}
		return q.TouchCart(ctx, cart.ID)
	})
	if err != nil {
		return nil, storeError(err, op, "failed to update cart item")
	}

	return toDomainCartLine(item), nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, itemID int64) error {
	const op = "cart.remove_item"

	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		cart, err := getOrCreateCart(ctx, q, userID)
		if err != nil {
			return err
		}

		deleted, err := q.DeleteCartItem(ctx, repository.DeleteCartItemParams{ID: itemID, CartID: cart.ID})
		if err != nil {
			return err
		}
		if deleted == 0 {
			return domain.WithOp(domain.ErrCartItemNotFound, op)
		}
		return q.TouchCart(ctx, cart.ID)
	})
	if err != nil {
		return storeError(err, op, "failed to remove cart item")
	}

	return nil
}

func (s *cartService) Clear(ctx context.Context, userID int64) error {
	const op = "cart.clear"

	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		cart, err := getOrCreateCart(ctx, q, userID)
		if err != nil {
			return err
		}

		if _, err := q.ClearCartItems(ctx, cart.ID); err != nil {
			return err
		}
		return q.TouchCart(ctx, cart.ID)
	})
	if err != nil {
		return storeError(err, op, "failed to clear cart")
	}

	return nil
}

func (s *cartService) GetCartWithDetails(ctx context.Context, userID int64) (*domain.CartView, error) {
	const op = "cart.get_details"

	var (
		cart repository.Cart
		rows []repository.GetCartLinesRow
	)
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		var err error
		cart, err = getOrCreateCart(ctx, q, userID)
		if err != nil {
			return err
		}
		rows, err = q.GetCartLines(ctx, cart.ID)
		return err
	})
	if err != nil {
		return nil, storeError(err, op, "failed to load cart")
	}

	lines := make([]domain.CartLineView, len(rows))
	for i, row := range rows {
		lines[i] = domain.CartLineView{
			ID:          row.ID,
			CartID:      row.CartID,
			VariantID:   row.VariantID,
			Quantity:    row.Quantity,
			Price:       row.Price,
			FinalPrice:  domain.FinalPrice(row.Price, row.DiscountPercent),
			VariantName: row.VariantName,
			ProductName: row.ProductName,
			ProductSlug: row.ProductSlug,
			ImageURL:    row.ImageUrl,
		}
	}

	return domain.NewCartView(*toDomainCart(cart), lines), nil
}

func toDomainCart(c repository.Cart) *domain.Cart {
	return &domain.Cart{
		ID:        c.ID,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toDomainCartLine(i repository.CartItem) *domain.CartLine {
	return &domain.CartLine{
		ID:        i.ID,
		CartID:    i.CartID,
		VariantID: i.VariantID,
		Quantity:  i.Quantity,
	}
}
