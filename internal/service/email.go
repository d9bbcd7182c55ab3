package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) send(message *mail.SGMailV3) error {
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *sendGridEmailService) SendOrderStatusUpdate(ctx context.Context, to, name string, order *domain.Order) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(name, to)

	subject := fmt.Sprintf("Order #%d update: %s", order.ID, order.Status)
	plainText := fmt.Sprintf("Hello %s,\n\nYour order #%d is now %s.\n\nBest regards,\nThe MediCare Team",
		name, order.ID, order.Status)
	htmlContent := fmt.Sprintf("<p>Hello %s,</p><p>Your order <strong>#%d</strong> is now <strong>%s</strong>.</p><p>Best regards,<br>The MediCare Team</p>",
		name, order.ID, order.Status)

	return s.send(mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent))
}

func (s *sendGridEmailService) SendOrderConfirmation(ctx context.Context, to, name string, order *domain.Order, documentURLs []string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(name, to)

	subject := fmt.Sprintf("Payment received for order #%d", order.ID)

	plainText := fmt.Sprintf("Hello %s,\n\nWe received your payment of %.2f for order #%d.",
		name, float64(order.TotalAmountCents)/100, order.ID)
	htmlContent := fmt.Sprintf("<p>Hello %s,</p><p>We received your payment of <strong>%.2f</strong> for order <strong>#%d</strong>.</p>",
		name, float64(order.TotalAmountCents)/100, order.ID)
	if len(documentURLs) > 0 {
		plainText += "\n\nYour rental agreements:"
		htmlContent += "<p>Your rental agreements:</p><ul>"
		for _, url := range documentURLs {
			plainText += "\n" + url
			htmlContent += fmt.Sprintf(`<li><a href="%s">%s</a></li>`, url, url)
		}
		htmlContent += "</ul>"
	}
	plainText += "\n\nBest regards,\nThe MediCare Team"
	htmlContent += "<p>Best regards,<br>The MediCare Team</p>"

	return s.send(mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent))
}

func (s *sendGridEmailService) SendContractStatusUpdate(ctx context.Context, to, name string, contract *domain.RentalContract) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(name, to)

	subject := fmt.Sprintf("Rental contract %s update: %s", contract.ContractNumber, contract.Status)
	plainText := fmt.Sprintf("Hello %s,\n\nYour rental contract %s is now %s.\n\nBest regards,\nThe MediCare Team",
		name, contract.ContractNumber, contract.Status)
	htmlContent := fmt.Sprintf("<p>Hello %s,</p><p>Your rental contract <strong>%s</strong> is now <strong>%s</strong>.</p><p>Best regards,<br>The MediCare Team</p>",
		name, contract.ContractNumber, contract.Status)

	return s.send(mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent))
}
