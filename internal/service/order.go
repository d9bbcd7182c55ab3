package service

import (
	"context"
	"fmt"
	"time"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
	"github.com/saleem-shalabi/Medi-Care-App/internal/logger"
	"github.com/saleem-shalabi/Medi-Care-App/internal/repository"
	"github.com/saleem-shalabi/Medi-Care-App/internal/utils"
)

type orderService struct {
	store repository.Store
	email EmailService
}

func NewOrderService(store repository.Store, email EmailService) OrderService {
	return &orderService{store: store, email: email}
}

// CreateOrderFromCart resolves the user's cart into a PENDING order. All
// prices are snapshotted from the product catalog at this moment, stock
// is reserved for every item, and the cart is emptied. Everything happens
// in one transaction: a single out-of-stock item voids the whole checkout.
func (s *orderService) CreateOrderFromCart(ctx context.Context, userID int64, input CreateOrderInput) (*domain.Order, error) {
	log := logger.WithService("order")

	rentalDates := make(map[int64]domain.RentalDetail, len(input.RentalDetails))
	for _, d := range input.RentalDetails {
		rentalDates[d.CartItemID] = d
	}

	var order *domain.Order
	err := s.store.InTx(ctx, func(r repository.Repositories) error {
		cartItems, err := r.Carts.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return domain.ErrEmptyCart
		}

		now := time.Now().UTC()
		order = &domain.Order{
			UserID:    userID,
			Status:    domain.OrderStatusPending,
			CreatedOn: now,
			UpdatedOn: now,
		}
		if input.ShippingAddress != "" {
			addr := input.ShippingAddress
			order.ShippingAddress = &addr
		}

		items := make([]domain.OrderItem, 0, len(cartItems))
		var total int64
		for _, ci := range cartItems {
			product, err := r.Products.GetByID(ctx, ci.ProductID)
			if err != nil {
				return err
			}

			item := domain.OrderItem{
				ProductID:       ci.ProductID,
				Quantity:        ci.Quantity,
				TransactionType: ci.TransactionType,
				CostCents:       product.CostCents,
			}

			switch ci.TransactionType {
			case domain.TransactionTypeSale:
				item.PriceCents = product.SellPriceCents
				if err := r.Products.AdjustStock(ctx, ci.ProductID, domain.StockPoolSale, -ci.Quantity); err != nil {
					return err
				}
			case domain.TransactionTypeRent:
				detail, ok := rentalDates[ci.ID]
				if !ok {
					return fmt.Errorf("%w: cart item %d", domain.ErrMissingRentalDates, ci.ID)
				}
				start, err := utils.ParseDate(detail.StartDate)
				if err != nil {
					return err
				}
				end, err := utils.ParseDate(detail.EndDate)
				if err != nil {
					return err
				}
				if !start.Before(end) {
					return fmt.Errorf("%w: %s .. %s", domain.ErrInvalidDateRange, detail.StartDate, detail.EndDate)
				}
				item.RentalStartDate = &start
				item.RentalEndDate = &end
				item.PriceCents = utils.RentalCostCents(product.RentPriceCents, start, end)
				if err := r.Products.AdjustStock(ctx, ci.ProductID, domain.StockPoolRent, -ci.Quantity); err != nil {
					return err
				}
			default:
				return fmt.Errorf("%w: transaction type %q on cart item %d", domain.ErrInvalidStatus, ci.TransactionType, ci.ID)
			}

			total += item.PriceCents * int64(item.Quantity)
			items = append(items, item)
		}

		order.TotalAmountCents = total
		if err := r.Orders.Create(ctx, order); err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
			if err := r.Orders.CreateItem(ctx, &items[i]); err != nil {
				return err
			}
		}
		order.Items = items

		return r.Carts.DeleteByUser(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	log.Info("order created from cart",
		"order_id", order.ID,
		"user_id", userID,
		"items", len(order.Items),
		"total_cents", order.TotalAmountCents)
	return order, nil
}

// UpdateOrderStatus applies one transition from the order state machine.
// CANCELLED returns reserved stock and cancels contracts the order
// created; DELIVERED activates the order's upcoming contracts.
func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID int64, newStatus domain.OrderStatus) (*domain.Order, error) {
	log := logger.WithService("order")

	if !domain.ValidOrderStatus(newStatus) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, newStatus)
	}

	var order *domain.Order
	err := s.store.InTx(ctx, func(r repository.Repositories) error {
		var err error
		order, err = r.Orders.GetByIDWithItems(ctx, orderID)
		if err != nil {
			return err
		}
		if !order.Status.CanTransitionTo(newStatus) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, newStatus)
		}

		switch newStatus {
		case domain.OrderStatusCancelled:
			if err := s.releaseOrder(ctx, r, order); err != nil {
				return err
			}
		case domain.OrderStatusDelivered:
			if err := s.activateContracts(ctx, r, order); err != nil {
				return err
			}
		}

		if err := r.Orders.UpdateStatus(ctx, orderID, newStatus); err != nil {
			return err
		}
		order.Status = newStatus
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("order status updated", "order_id", orderID, "status", newStatus)
	s.notifyStatusChange(ctx, order)
	return order, nil
}

// releaseOrder undoes a cancelled order's side effects: stock reserved at
// checkout goes back to its pool and contracts created by this order are
// cancelled. Extension items reserve no stock and must not touch the
// contract they were going to extend. A rental item whose contract was
// already returned put its unit back at return time, so it releases
// nothing here.
func (s *orderService) releaseOrder(ctx context.Context, r repository.Repositories, order *domain.Order) error {
	contracts, err := r.Contracts.ListByOrder(ctx, order.ID)
	if err != nil {
		return err
	}
	returnedItems := make(map[int64]bool)
	for i := range contracts {
		c := &contracts[i]
		if c.OrderItemID != nil && c.ConditionOnReturn != nil {
			returnedItems[*c.OrderItemID] = true
		}
	}

	for _, item := range order.Items {
		if item.IsExtension() {
			continue
		}
		pool := domain.StockPoolSale
		if item.TransactionType == domain.TransactionTypeRent {
			pool = domain.StockPoolRent
			if returnedItems[item.ID] {
				continue
			}
		}
		if err := r.Products.AdjustStock(ctx, item.ProductID, pool, item.Quantity); err != nil {
			return err
		}
	}

	extended := make(map[int64]bool)
	for _, item := range order.Items {
		if item.ExtendedContractID != nil {
			extended[*item.ExtendedContractID] = true
		}
	}
	for i := range contracts {
		c := &contracts[i]
		if c.Status.IsTerminal() || extended[c.ID] {
			continue
		}
		c.Status = domain.RentalStatusCancelled
		c.AppendNote(fmt.Sprintf("Cancelled with order #%d.", order.ID))
		if err := r.Contracts.Update(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// activateContracts flips an order's UPCOMING contracts to ACTIVE once the
// equipment is in the customer's hands.
func (s *orderService) activateContracts(ctx context.Context, r repository.Repositories, order *domain.Order) error {
	contracts, err := r.Contracts.ListByOrder(ctx, order.ID)
	if err != nil {
		return err
	}
	for i := range contracts {
		c := &contracts[i]
		if c.Status != domain.RentalStatusUpcoming {
			continue
		}
		c.Status = domain.RentalStatusActive
		if err := r.Contracts.Update(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// notifyStatusChange emails the customer after the transaction commits.
// Email failures are logged, never surfaced.
func (s *orderService) notifyStatusChange(ctx context.Context, order *domain.Order) {
	if s.email == nil {
		return
	}
	log := logger.WithService("order")
	user, err := s.store.Repos().Users.GetByID(ctx, order.UserID)
	if err != nil {
		log.Warn("skipping status email, user lookup failed", "order_id", order.ID, "error", err)
		return
	}
	if err := s.email.SendOrderStatusUpdate(ctx, user.Email, user.Username, order); err != nil {
		log.Warn("failed to send order status email", "order_id", order.ID, "error", err)
	}
}

func (s *orderService) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.store.Repos().Orders.GetByIDWithItems(ctx, orderID)
}

func (s *orderService) ListUserOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.store.Repos().Orders.ListByUser(ctx, userID)
}

func (s *orderService) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	return s.store.Repos().Orders.ListAll(ctx)
}
