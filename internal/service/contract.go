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

type contractService struct {
	store  repository.Store
	email  EmailService
	events EventPublisher
}

func NewContractService(store repository.Store, email EmailService, events EventPublisher) ContractService {
	return &contractService{store: store, email: email, events: events}
}

// CreateExtensionOrder prepares a PENDING order that, once paid, pushes
// an active contract's end date out to newEndDate. The extension reserves
// no stock: the unit is already with the customer. Availability is checked
// against other contracts overlapping the extra window.
func (s *contractService) CreateExtensionOrder(ctx context.Context, userID, contractID int64, newEndDate time.Time) (*domain.Order, error) {
	log := logger.WithService("contract")

	var order *domain.Order
	err := s.store.InTx(ctx, func(r repository.Repositories) error {
		contract, err := r.Contracts.GetByID(ctx, contractID)
		if err != nil {
			return err
		}
		if contract.UserID != userID {
			return fmt.Errorf("%w: contract %d does not belong to user %d", domain.ErrForbidden, contractID, userID)
		}
		if contract.Status != domain.RentalStatusActive {
			return fmt.Errorf("%w: contract %s is %s", domain.ErrContractNotActive, contract.ContractNumber, contract.Status)
		}
		if !newEndDate.After(contract.EndDate) {
			return fmt.Errorf("%w: contract ends %s", domain.ErrInvalidEndDate, contract.EndDate.Format("2006-01-02"))
		}

		product, err := r.Products.GetByID(ctx, contract.ProductID)
		if err != nil {
			return err
		}

		// The unit only conflicts during the added window. Competing
		// contracts already overlapping the current term hold their own
		// stock.
		overlapping, err := r.Contracts.CountOverlapping(ctx, contract.ProductID, contract.EndDate, newEndDate, contract.ID)
		if err != nil {
			return err
		}
		if overlapping >= product.RentStock {
			return fmt.Errorf("%w: product %d through %s", domain.ErrNotAvailable,
				contract.ProductID, newEndDate.Format("2006-01-02"))
		}

		extensionCost := utils.RentalCostCents(product.RentPriceCents, contract.EndDate, newEndDate)
		now := time.Now().UTC()
		order = &domain.Order{
			UserID:           userID,
			TotalAmountCents: extensionCost,
			Status:           domain.OrderStatusPending,
			CreatedOn:        now,
			UpdatedOn:        now,
		}
		if err := r.Orders.Create(ctx, order); err != nil {
			return err
		}

		end := newEndDate
		item := domain.OrderItem{
			OrderID:            order.ID,
			ProductID:          contract.ProductID,
			Quantity:           1,
			TransactionType:    domain.TransactionTypeRent,
			PriceCents:         extensionCost,
			CostCents:          product.CostCents,
			ExtendedContractID: &contract.ID,
			NewEndDate:         &end,
		}
		if err := r.Orders.CreateItem(ctx, &item); err != nil {
			return err
		}
		order.Items = []domain.OrderItem{item}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("extension order created",
		"order_id", order.ID,
		"contract_id", contractID,
		"new_end_date", newEndDate.Format("2006-01-02"),
		"total_cents", order.TotalAmountCents)
	return order, nil
}

// UpdateContractStatus applies an operator-driven status change. Terminal
// contracts are immutable; moving to COMPLETED stamps the return date if
// the normal return flow did not run.
func (s *contractService) UpdateContractStatus(ctx context.Context, contractID int64, newStatus domain.RentalStatus) (*domain.RentalContract, error) {
	log := logger.WithService("contract")

	if !domain.ValidRentalStatus(newStatus) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, newStatus)
	}

	var contract *domain.RentalContract
	err := s.store.InTx(ctx, func(r repository.Repositories) error {
		var err error
		contract, err = r.Contracts.GetByID(ctx, contractID)
		if err != nil {
			return err
		}
		if contract.Status.IsTerminal() {
			return fmt.Errorf("%w: contract %s is %s", domain.ErrTerminalState, contract.ContractNumber, contract.Status)
		}

		contract.Status = newStatus
		if newStatus == domain.RentalStatusCompleted && contract.ActualReturnDate == nil {
			now := time.Now().UTC()
			contract.ActualReturnDate = &now
		}
		return r.Contracts.Update(ctx, contract)
	})
	if err != nil {
		return nil, err
	}

	log.Info("contract status updated", "contract_id", contractID, "status", newStatus)
	s.notifyStatusChange(ctx, contract)
	return contract, nil
}

// ProcessContractReturn closes out a rental: the contract completes with
// the inspected condition on record, and the unit goes back into the
// rental pool. Works for ACTIVE and OVERDUE contracts.
func (s *contractService) ProcessContractReturn(ctx context.Context, contractID int64, input ReturnInput) (*domain.RentalContract, error) {
	log := logger.WithService("contract")

	if !domain.ValidAssetCondition(input.ConditionOnReturn) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCondition, input.ConditionOnReturn)
	}

	var contract *domain.RentalContract
	err := s.store.InTx(ctx, func(r repository.Repositories) error {
		var err error
		contract, err = r.Contracts.GetByID(ctx, contractID)
		if err != nil {
			return err
		}
		if contract.Status != domain.RentalStatusActive && contract.Status != domain.RentalStatusOverdue {
			return fmt.Errorf("%w: contract %s is %s", domain.ErrNotReturnable, contract.ContractNumber, contract.Status)
		}
		if contract.OrderItemID == nil {
			return fmt.Errorf("%w: contract %s has no linked order item", domain.ErrDataInconsistency, contract.ContractNumber)
		}

		item, err := r.Orders.GetItem(ctx, *contract.OrderItemID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		condition := input.ConditionOnReturn
		contract.Status = domain.RentalStatusCompleted
		contract.ConditionOnReturn = &condition
		contract.ActualReturnDate = &now
		contract.AppendNote(input.Notes)
		if err := r.Contracts.Update(ctx, contract); err != nil {
			return err
		}

		return r.Products.AdjustStock(ctx, contract.ProductID, domain.StockPoolRent, item.Quantity)
	})
	if err != nil {
		return nil, err
	}

	log.Info("contract returned",
		"contract_id", contractID,
		"contract_number", contract.ContractNumber,
		"condition", input.ConditionOnReturn)
	if s.events != nil {
		if err := s.events.PublishContractReturned(ctx, contract); err != nil {
			log.Warn("failed to publish contract returned event", "contract_id", contract.ID, "error", err)
		}
	}
	s.notifyStatusChange(ctx, contract)
	return contract, nil
}

func (s *contractService) notifyStatusChange(ctx context.Context, contract *domain.RentalContract) {
	if s.email == nil {
		return
	}
	log := logger.WithService("contract")
	user, err := s.store.Repos().Users.GetByID(ctx, contract.UserID)
	if err != nil {
		log.Warn("skipping contract email, user lookup failed", "contract_id", contract.ID, "error", err)
		return
	}
	if err := s.email.SendContractStatusUpdate(ctx, user.Email, user.Username, contract); err != nil {
		log.Warn("failed to send contract status email", "contract_id", contract.ID, "error", err)
	}
}

// GetContract fetches one contract, enforcing ownership. userID 0 skips
// the ownership check for operator callers.
func (s *contractService) GetContract(ctx context.Context, userID, contractID int64) (*domain.RentalContract, error) {
	contract, err := s.store.Repos().Contracts.GetByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if userID != 0 && contract.UserID != userID {
		return nil, fmt.Errorf("%w: contract %d does not belong to user %d", domain.ErrForbidden, contractID, userID)
	}
	return contract, nil
}

func (s *contractService) ListUserContracts(ctx context.Context, userID int64) ([]domain.RentalContract, error) {
	return s.store.Repos().Contracts.ListByUser(ctx, userID)
}
