// Package notify sends transactional storefront mail. Every send is
// best-effort: a failed notification is logged and never blocks the
// operation that triggered it.
package notify

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/mailer"
)

type Service struct {
	mail     mailer.Service
	fromName string
	from     string
	log      *slog.Logger
}

func NewService(mail mailer.Service, fromName, from string, logger *slog.Logger) *Service {
	return &Service{mail: mail, fromName: fromName, from: from, log: logger}
}

// OrderPlaced mails the order confirmation.
func (s *Service) OrderPlaced(ctx context.Context, email, name, orderNumber, total string) {
	if name == "" {
		name = "customer"
	}
	e := mailer.Email{
		FromName: s.fromName,
		From:     s.from,
		To:       []string{email},
		Subject:  "Order " + orderNumber + " confirmed",
		TextBody: fmt.Sprintf("Hello %s,\n\nYour order %s has been placed. Total: %s\n\nThank you for shopping with us!",
			name, orderNumber, total),
		HTMLBody: fmt.Sprintf(`
<html>
  <body style="font-family: sans-serif;">
    <h2>Order confirmed</h2>
    <p>Hello %s,</p>
    <p>Your order has been placed.</p>
    <p><strong>Order:</strong> %s</p>
    <p><strong>Total:</strong> %s</p>
    <p>Thank you for shopping with us!</p>
  </body>
</html>
`, html.EscapeString(name), html.EscapeString(orderNumber), html.EscapeString(total)),
	}
	if err := s.mail.Send(ctx, e); err != nil {
		s.log.LogAttrs(ctx, slog.LevelWarn, "order_mail_failed",
			slog.String("order", orderNumber),
			slog.Any("err", err),
		)
	}
}
