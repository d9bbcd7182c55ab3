package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
	"github.com/saleem-shalabi/Medi-Care-App/internal/service"
)

const (
	OrderPaidQueue        = "order.paid"
	ContractCreatedQueue  = "contract.created"
	ContractReturnedQueue = "contract.returned"
)

// OrderPaid is emitted after a payment transaction commits.
type OrderPaid struct {
	EventType        string    `json:"event_type"`
	OrderID          int64     `json:"order_id"`
	UserID           int64     `json:"user_id"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	Timestamp        time.Time `json:"timestamp"`
}

// ContractEvent covers both contract creation and return.
type ContractEvent struct {
	EventType      string    `json:"event_type"`
	ContractID     int64     `json:"contract_id"`
	ContractNumber string    `json:"contract_number"`
	UserID         int64     `json:"user_id"`
	ProductID      int64     `json:"product_id"`
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
}

// Publisher emits persistent JSON events onto durable queues.
type Publisher struct {
	ch *amqp.Channel
}

func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// Declare queues so publish never fails due to missing infra
	for _, queue := range []string{OrderPaidQueue, ContractCreatedQueue, ContractReturnedQueue} {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return nil, fmt.Errorf("declare %s: %w", queue, err)
		}
	}

	return &Publisher{ch: ch}, nil
}

var _ service.EventPublisher = (*Publisher)(nil)

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) PublishOrderPaid(ctx context.Context, order *domain.Order) error {
	ev := OrderPaid{
		EventType:        "OrderPaid",
		OrderID:          order.ID,
		UserID:           order.UserID,
		TotalAmountCents: order.TotalAmountCents,
		Timestamp:        time.Now().UTC(),
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal OrderPaid: %w", err)
	}
	return p.publishJSON(ctx, OrderPaidQueue, body)
}

func (p *Publisher) PublishContractCreated(ctx context.Context, contract *domain.RentalContract) error {
	return p.publishContract(ctx, ContractCreatedQueue, "ContractCreated", contract)
}

func (p *Publisher) PublishContractReturned(ctx context.Context, contract *domain.RentalContract) error {
	return p.publishContract(ctx, ContractReturnedQueue, "ContractReturned", contract)
}

func (p *Publisher) publishContract(ctx context.Context, queue, eventType string, contract *domain.RentalContract) error {
	ev := ContractEvent{
		EventType:      eventType,
		ContractID:     contract.ID,
		ContractNumber: contract.ContractNumber,
		UserID:         contract.UserID,
		ProductID:      contract.ProductID,
		Status:         string(contract.Status),
		Timestamp:      time.Now().UTC(),
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", eventType, err)
	}
	return p.publishJSON(ctx, queue, body)
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		"",         // default exchange
		routingKey, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// NoopPublisher drops every event. Used when the broker is disabled.
type NoopPublisher struct{}

var _ service.EventPublisher = NoopPublisher{}

func (NoopPublisher) PublishOrderPaid(ctx context.Context, order *domain.Order) error { return nil }
func (NoopPublisher) PublishContractCreated(ctx context.Context, contract *domain.RentalContract) error {
	return nil
}
func (NoopPublisher) PublishContractReturned(ctx context.Context, contract *domain.RentalContract) error {
	return nil
}
