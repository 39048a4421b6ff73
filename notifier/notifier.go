// Package notifier tells buyers that their order was placed.
package notifier

import (
	"context"
	"fmt"
	"strconv"

	"github.com/issue-tracker/config"
	"github.com/issue-tracker/models"
	"github.com/rs/zerolog/log"
)

// Confirmation is what a buyer is told about a placed order
type Confirmation struct {
	OrderID   uint
	Recipient string
	Name      string
	Total     float64
	Lines     int
}

// Subject is the confirmation headline
func (c Confirmation) Subject() string {
	return fmt.Sprintf("Order #%d Confirmation - Thank You for Your Purchase!", c.OrderID)
}

// Text is the plain text body of the confirmation
func (c Confirmation) Text() string {
	return fmt.Sprintf(
		"Dear %s,\n\nThank you for your order! Your order #%d has been successfully placed.\n\n"+
			"Order Details:\nOrder ID: %d\nItems: %d\nTotal Amount: %s\n\nBest regards,\nThe Shop Team",
		c.Name, c.OrderID, c.OrderID, c.Lines, strconv.FormatFloat(c.Total, 'f', 2, 64))
}

// NewConfirmation summarizes a committed order for recipient
func NewConfirmation(order models.Order, recipient string) Confirmation {
	var total float64
	for _, line := range order.Products {
		total += float64(line.Qty) * line.Product.Price
	}
	return Confirmation{
		OrderID:   order.ID,
		Recipient: recipient,
		Name:      order.Name,
		Total:     total,
		Lines:     len(order.Products),
	}
}

// Notifier delivers order confirmations
type Notifier interface {
	OrderPlaced(ctx context.Context, c Confirmation) error
}

// LogNotifier only records confirmations in the log
type LogNotifier struct{}

// OrderPlaced logs the confirmation
func (LogNotifier) OrderPlaced(_ context.Context, c Confirmation) error {
	log.Info().
		Uint("order_id", c.OrderID).
		Str("recipient", c.Recipient).
		Float64("total", c.Total).
		Int("lines", c.Lines).
		Msg("order placed")
	return nil
}

// New picks SES when a sender is configured, the log otherwise
func New(ctx context.Context, cfg config.Email) (Notifier, error) {
	if cfg.Sender == "" {
		return LogNotifier{}, nil
	}
	return NewSESNotifier(ctx, cfg)
}
