package services

import (
	"context"
	"fmt"
	"time"

	"github.com/issue-tracker/database"
	"github.com/issue-tracker/dto"
	"github.com/issue-tracker/errs"
	"github.com/issue-tracker/models"
	"github.com/issue-tracker/notifier"
	"github.com/issue-tracker/repositories"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const notifyTimeout = 30 * time.Second

// OrderService turns a session's cart into an order
type OrderService struct {
	orderRepo   *repositories.OrderRepository
	cartRepo    *repositories.CartRepository
	productRepo *repositories.ProductRepository
	notifier    notifier.Notifier
}

// NewOrderService creates a new order service instance. n may be nil.
func NewOrderService(n notifier.Notifier) *OrderService {
	return &OrderService{
		orderRepo:   repositories.NewOrderRepository(),
		cartRepo:    repositories.NewCartRepository(),
		productRepo: repositories.NewProductRepository(),
		notifier:    n,
	}
}

// PlaceOrder creates an order from the session's cart in one transaction.
// Lines whose quantity exceeds the current stock are dropped; the others
// take their quantity off the product. The cart is emptied either way.
// Stock is read without row locks, so concurrent orders can oversell.
func (s *OrderService) PlaceOrder(sessionKey string, form dto.OrderForm, caller *models.User) (models.Order, error) {
	order := models.Order{
		Name:    form.Name,
		Phone:   form.Phone,
		Address: form.Address,
	}
	if caller != nil {
		order.UserID = &caller.ID
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		created, err := orderRepo.Create(order)
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		order = created

		if sessionKey == "" {
			return nil
		}

		cart, err := cartRepo.ListWithProduct(sessionKey)
		if err != nil {
			return fmt.Errorf("failed to load cart: %w", err)
		}

		lines := make([]models.OrderProduct, 0, len(cart))
		products := make([]models.Product, 0, len(cart))
		for _, item := range cart {
			if item.Qty > item.Product.Amount {
				continue
			}
			product := item.Product
			product.Amount -= item.Qty
			products = append(products, product)
			lines = append(lines, models.OrderProduct{
				OrderID:   order.ID,
				ProductID: product.ID,
				Qty:       item.Qty,
			})
		}

		if err := orderRepo.CreateLines(lines); err != nil {
			return fmt.Errorf("failed to create order lines: %w", err)
		}
		if err := s.productRepo.WithTx(tx).SaveAll(products); err != nil {
			return fmt.Errorf("failed to update stock: %w", err)
		}
		return cartRepo.Clear(sessionKey)
	})
	if err != nil {
		return models.Order{}, err
	}

	placed, err := s.orderRepo.FindByID(order.ID)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to reload order %d: %w", order.ID, err)
	}

	s.notify(placed, caller)
	return placed, nil
}

// ListOrders returns the caller's orders with their lines
func (s *OrderService) ListOrders(caller *models.User) ([]models.Order, error) {
	if caller == nil {
		return nil, errs.ErrUnauthenticated
	}
	return s.orderRepo.FindByUserID(caller.ID)
}

func (s *OrderService) notify(order models.Order, caller *models.User) {
	if s.notifier == nil {
		return
	}
	recipient := ""
	if caller != nil {
		recipient = caller.Email
	}
	confirmation := notifier.NewConfirmation(order, recipient)

	go func(c notifier.Confirmation) {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.OrderPlaced(ctx, c); err != nil {
			log.Error().Err(err).Uint("order_id", c.OrderID).Msg("failed to send order confirmation")
		}
	}(confirmation)
}
