// internal/pkg/email/service.go
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/order"
)

// Service sends transactional email over SMTP. When email is disabled in
// configuration every send becomes a logged no-op so checkout never blocks
// on a mail server.
type Service struct {
	config   *config.Config
	logger   *logrus.Logger
	template *template.Template
}

// NewService creates a new email service
func NewService(cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		config:   cfg,
		logger:   logger,
		template: template.Must(template.New("order_confirmation").Parse(orderConfirmationTemplate)),
	}
}

// SendOrderConfirmation emails the order summary to the customer
func (s *Service) SendOrderConfirmation(to string, o order.Order) error {
	if !s.config.Email.Enabled {
		s.logger.WithFields(logrus.Fields{
			"order_number": o.OrderNumber,
			"to":           to,
		}).Info("Email disabled, skipping order confirmation")
		return nil
	}

	var body bytes.Buffer
	if err := s.template.Execute(&body, o); err != nil {
		return fmt.Errorf("failed to render order confirmation: %w", err)
	}

	subject := fmt.Sprintf("Order confirmation %s", o.OrderNumber)
	if err := s.send([]string{to}, subject, body.String()); err != nil {
		return fmt.Errorf("failed to send order confirmation: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"order_number": o.OrderNumber,
		"to":           to,
	}).Info("Order confirmation sent")
	return nil
}

// send delivers an HTML email over SMTP
func (s *Service) send(to []string, subject, htmlContent string) error {
	cfg := s.config.Email
	if cfg.SMTPHost == "" {
		return fmt.Errorf("SMTP configuration incomplete: missing host")
	}

	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}

	from := cfg.FromEmail
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromEmail)
	}

	var msg bytes.Buffer
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(to, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlContent)

	serverAddr := fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort)
	return smtp.SendMail(serverAddr, auth, cfg.FromEmail, to, msg.Bytes())
}

const orderConfirmationTemplate = `<html>
<body>
	<h1>Thanks for your order!</h1>
	<p>Your order <strong>{{.OrderNumber}}</strong> has been placed.</p>
	<table>
		<tr><th align="left">Item</th><th align="right">Qty</th><th align="right">Price</th></tr>
		{{range .Items}}
		<tr>
			<td>{{.ProductName}}</td>
			<td align="right">{{.Quantity}}</td>
			<td align="right">${{printf "%.2f" .Price}}</td>
		</tr>
		{{end}}
	</table>
	<p>Total: <strong>${{printf "%.2f" .Total}}</strong></p>
	<p>Shipping: {{.ShippingMethod}}</p>
</body>
</html>`
