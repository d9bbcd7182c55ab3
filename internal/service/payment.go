package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
	"github.com/saleem-shalabi/Medi-Care-App/internal/logger"
	"github.com/saleem-shalabi/Medi-Care-App/internal/repository"
	"github.com/saleem-shalabi/Medi-Care-App/internal/utils"
)

type paymentService struct {
	store     repository.Store
	provider  PaymentProvider
	documents DocumentService
	email     EmailService
	events    EventPublisher
}

func NewPaymentService(store repository.Store, provider PaymentProvider, documents DocumentService, email EmailService, events EventPublisher) PaymentService {
	return &paymentService{
		store:     store,
		provider:  provider,
		documents: documents,
		email:     email,
		events:    events,
	}
}

// CreateCheckoutIntent builds the hosted checkout page for a PENDING
// order and returns its URL. No database state changes here; the order
// stays PENDING until the provider confirms payment.
func (s *paymentService) CreateCheckoutIntent(ctx context.Context, orderID int64) (string, error) {
	repos := s.store.Repos()

	order, err := repos.Orders.GetByIDWithItems(ctx, orderID)
	if err != nil {
		return "", err
	}
	if order.Status != domain.OrderStatusPending {
		return "", fmt.Errorf("%w: order %d is %s", domain.ErrOrderNotPending, orderID, order.Status)
	}

	user, err := repos.Users.GetByID(ctx, order.UserID)
	if err != nil {
		return "", err
	}

	lines := make([]CheckoutLineItem, 0, len(order.Items))
	for _, item := range order.Items {
		product, err := repos.Products.GetByID(ctx, item.ProductID)
		if err != nil {
			return "", err
		}
		name := product.NameEn
		switch {
		case item.IsExtension():
			name = fmt.Sprintf("%s (rental extension)", name)
		case item.TransactionType == domain.TransactionTypeRent:
			days := utils.RentalDays(*item.RentalStartDate, *item.RentalEndDate)
			name = fmt.Sprintf("%s (rental, %d days)", name, days)
		}
		lines = append(lines, CheckoutLineItem{
			Name:            name,
			UnitAmountCents: item.PriceCents,
			Quantity:        int64(item.Quantity),
		})
	}

	return s.provider.CreateCheckoutIntent(ctx, order, user.Email, lines)
}

// ConfirmOrderPayment is the single entry point for marking an order paid.
// It is idempotent through the PENDING guard: a second confirmation for
// the same order fails with ErrOrderNotPending and changes nothing. Stock
// was already reserved at checkout, so confirmation only records the
// payment and materializes rental contracts.
func (s *paymentService) ConfirmOrderPayment(ctx context.Context, orderID int64, details domain.PaymentDetails) (*domain.Order, error) {
	log := logger.WithService("payment")

	var (
		order             *domain.Order
		newContracts      []*domain.RentalContract
		extendedContracts []*domain.RentalContract
	)
	err := s.store.InTx(ctx, func(r repository.Repositories) error {
		var err error
		order, err = r.Orders.GetByIDWithItems(ctx, orderID)
		if err != nil {
			return err
		}
		if order.Status != domain.OrderStatusPending {
			return fmt.Errorf("%w: order %d is %s", domain.ErrOrderNotPending, orderID, order.Status)
		}
		if details.AmountPaidCents != order.TotalAmountCents {
			return fmt.Errorf("%w: paid %d, expected %d", domain.ErrAmountMismatch,
				details.AmountPaidCents, order.TotalAmountCents)
		}

		if err := r.Orders.UpdateStatus(ctx, orderID, domain.OrderStatusPaid); err != nil {
			return err
		}
		order.Status = domain.OrderStatusPaid

		payment := &domain.Payment{
			OrderID:       orderID,
			AmountCents:   details.AmountPaidCents,
			PaymentMethod: details.PaymentMethod,
			TransactionID: details.TransactionID,
			Status:        domain.PaymentStatusSuccess,
		}
		if err := r.Payments.Create(ctx, payment); err != nil {
			return err
		}

		now := time.Now().UTC()
		for i := range order.Items {
			item := &order.Items[i]
			if item.TransactionType != domain.TransactionTypeRent {
				continue
			}
			if item.IsExtension() {
				contract, err := s.applyExtension(ctx, r, item)
				if err != nil {
					return err
				}
				extendedContracts = append(extendedContracts, contract)
				continue
			}

			itemID := item.ID
			contract := &domain.RentalContract{
				ContractNumber:  newContractNumber(now),
				UserID:          order.UserID,
				ProductID:       item.ProductID,
				OrderItemID:     &itemID,
				StartDate:       *item.RentalStartDate,
				EndDate:         *item.RentalEndDate,
				Status:          domain.RentalStatusUpcoming,
				AgreedToTermsAt: now,
			}
			if err := r.Contracts.Create(ctx, contract); err != nil {
				return err
			}
			newContracts = append(newContracts, contract)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("order payment confirmed",
		"order_id", orderID,
		"amount_cents", details.AmountPaidCents,
		"transaction_id", details.TransactionID,
		"contracts_created", len(newContracts),
		"contracts_extended", len(extendedContracts))

	s.runPostPaymentEffects(ctx, order, newContracts, extendedContracts)
	return order, nil
}

// applyExtension moves an existing contract's end date forward to the
// window this extension item paid for, and re-homes the contract on the
// extension item so the latest paid term owns it. Returns the updated
// contract so its agreement document can be regenerated after commit.
func (s *paymentService) applyExtension(ctx context.Context, r repository.Repositories, item *domain.OrderItem) (*domain.RentalContract, error) {
	contract, err := r.Contracts.GetByID(ctx, *item.ExtendedContractID)
	if err != nil {
		return nil, err
	}
	if contract.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: contract %s is %s", domain.ErrTerminalState, contract.ContractNumber, contract.Status)
	}
	if item.NewEndDate == nil {
		return nil, fmt.Errorf("%w: extension item %d has no new end date", domain.ErrDataInconsistency, item.ID)
	}

	itemID := item.ID
	contract.EndDate = *item.NewEndDate
	contract.OrderItemID = &itemID
	contract.AppendNote(fmt.Sprintf("Extended to %s via order item #%d.",
		item.NewEndDate.Format("2006-01-02"), item.ID))
	if err := r.Contracts.Update(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// runPostPaymentEffects performs the best-effort side effects after the
// payment transaction commits: contract documents, emails, and domain
// events. Extended contracts get their agreement regenerated so the
// stored document always reflects the current end date. None of these
// can fail the already-recorded payment; every failure is logged with
// enough ids to reconcile by hand.
func (s *paymentService) runPostPaymentEffects(ctx context.Context, order *domain.Order, created, extended []*domain.RentalContract) {
	log := logger.WithService("payment")

	user, err := s.store.Repos().Users.GetByID(ctx, order.UserID)
	if err != nil {
		log.Error("post-payment effects skipped, user lookup failed", "order_id", order.ID, "error", err)
		return
	}

	var docURLs []string
	for _, contract := range append(append([]*domain.RentalContract{}, created...), extended...) {
		product, err := s.store.Repos().Products.GetByID(ctx, contract.ProductID)
		if err != nil {
			log.Error("contract document skipped, product lookup failed",
				"contract_id", contract.ID, "product_id", contract.ProductID, "error", err)
			continue
		}
		if s.documents != nil {
			url, err := s.documents.GenerateContractDocument(ctx, user, product, contract)
			if err != nil {
				log.Error("failed to generate contract document",
					"contract_id", contract.ID, "contract_number", contract.ContractNumber, "error", err)
			} else {
				if err := s.store.Repos().Contracts.SetDocumentURL(ctx, contract.ID, url); err != nil {
					log.Error("failed to save contract document url",
						"contract_id", contract.ID, "url", url, "error", err)
				} else {
					contract.DocumentURL = &url
					docURLs = append(docURLs, url)
				}
			}
		}
	}

	if s.events != nil {
		for _, contract := range created {
			if err := s.events.PublishContractCreated(ctx, contract); err != nil {
				log.Warn("failed to publish contract created event",
					"contract_id", contract.ID, "error", err)
			}
		}
	}

	if s.email != nil {
		if err := s.email.SendOrderConfirmation(ctx, user.Email, user.Username, order, docURLs); err != nil {
			log.Warn("failed to send order confirmation email", "order_id", order.ID, "error", err)
		}
	}
	if s.events != nil {
		if err := s.events.PublishOrderPaid(ctx, order); err != nil {
			log.Warn("failed to publish order paid event", "order_id", order.ID, "error", err)
		}
	}
}

// HandleWebhook verifies and dispatches one raw provider callback.
// Unrecognized event types are acknowledged and dropped.
func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	log := logger.WithService("payment")

	event, err := s.provider.VerifyWebhook(payload, signatureHeader)
	if err != nil {
		return fmt.Errorf("webhook verification failed: %w", err)
	}
	if event == nil {
		log.Debug("ignoring unhandled webhook event type")
		return nil
	}

	_, err = s.ConfirmOrderPayment(ctx, event.OrderID, domain.PaymentDetails{
		PaymentMethod:   event.PaymentMethod,
		AmountPaidCents: event.AmountPaidCents,
		TransactionID:   event.TransactionID,
	})
	return err
}

// newContractNumber mints a human-readable contract number, unique
// through the embedded UUID fragment.
func newContractNumber(now time.Time) string {
	return fmt.Sprintf("MC-%d-%s", now.Year(), uuid.NewString()[:8])
}
