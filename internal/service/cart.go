package service

import (
	"context"
	"fmt"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
	"github.com/saleem-shalabi/Medi-Care-App/internal/repository"
)

type cartService struct {
	store repository.Store
}

func NewCartService(store repository.Store) CartService {
	return &cartService{store: store}
}

func (s *cartService) AddToCart(ctx context.Context, userID, productID int64, quantity int32, txType domain.TransactionType) (*domain.CartItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}
	if txType != domain.TransactionTypeSale && txType != domain.TransactionTypeRent {
		return nil, fmt.Errorf("%w: transaction type %q", domain.ErrInvalidStatus, txType)
	}

	// Validate the product exists before touching the cart. Stock is not
	// reserved here; reservation happens at checkout.
	if _, err := s.store.Repos().Products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	item := &domain.CartItem{
		UserID:          userID,
		ProductID:       productID,
		Quantity:        quantity,
		TransactionType: txType,
	}
	if err := s.store.Repos().Carts.Upsert(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *cartService) UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int32) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	return s.store.Repos().Carts.UpdateQuantity(ctx, userID, itemID, quantity)
}

func (s *cartService) RemoveFromCart(ctx context.Context, userID, itemID int64) error {
	return s.store.Repos().Carts.Delete(ctx, userID, itemID)
}

func (s *cartService) ListCart(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	return s.store.Repos().Carts.ListByUser(ctx, userID)
}
