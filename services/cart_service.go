package services

import (
	"errors"
	"fmt"

	"github.com/issue-tracker/dto"
	"github.com/issue-tracker/errs"
	"github.com/issue-tracker/models"
	"github.com/issue-tracker/repositories"
)

// CartService manages the cart of one session at a time. The caller passes
// the session key explicitly; an empty key owns no lines.
type CartService struct {
	cartRepo    *repositories.CartRepository
	productRepo *repositories.ProductRepository
}

// NewCartService creates a new cart service instance
func NewCartService() *CartService {
	return &CartService{
		cartRepo:    repositories.NewCartRepository(),
		productRepo: repositories.NewProductRepository(),
	}
}

// Add puts qty units of a product in the session's cart. The change is
// skipped when it would take the line above the product's stock; the
// returned bool reports whether the cart changed.
func (s *CartService) Add(sessionKey string, productID uint, qty int) (bool, error) {
	if sessionKey == "" {
		return false, errs.ErrNoSession
	}
	if qty < 1 {
		return false, nil
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return false, err
	}
	if err := s.cartRepo.EnsureSession(sessionKey); err != nil {
		return false, fmt.Errorf("failed to persist session: %w", err)
	}

	line, err := s.cartRepo.FindLine(sessionKey, product.ID)
	switch {
	case errors.Is(err, errs.ErrCartLineNotFound):
		if qty > product.Amount {
			return false, nil
		}
		_, err = s.cartRepo.Create(models.Cart{
			SessionKey: sessionKey,
			ProductID:  product.ID,
			Qty:        qty,
		})
		if err != nil {
			return false, fmt.Errorf("failed to add product %d: %w", product.ID, err)
		}
		return true, nil
	case err != nil:
		return false, err
	}

	if line.Qty+qty > product.Amount {
		return false, nil
	}
	line.Qty += qty
	if err := s.cartRepo.UpdateQty(line); err != nil {
		return false, fmt.Errorf("failed to update cart line %d: %w", line.ID, err)
	}
	return true, nil
}

// RemoveOne takes one unit off a line, deleting it when nothing is left
func (s *CartService) RemoveOne(sessionKey string, lineID uint) error {
	line, err := s.findLine(sessionKey, lineID)
	if err != nil {
		return err
	}

	line.Qty--
	if line.Qty <= 0 {
		return s.cartRepo.Delete(line)
	}
	return s.cartRepo.UpdateQty(line)
}

// Remove deletes a line whatever its quantity
func (s *CartService) Remove(sessionKey string, lineID uint) error {
	line, err := s.findLine(sessionKey, lineID)
	if err != nil {
		return err
	}
	return s.cartRepo.Delete(line)
}

// View returns the session's lines and their total
func (s *CartService) View(sessionKey string) (dto.CartResponse, error) {
	if sessionKey == "" {
		return dto.CartResponse{Lines: []models.Cart{}}, nil
	}

	lines, err := s.cartRepo.ListWithProduct(sessionKey)
	if err != nil {
		return dto.CartResponse{}, fmt.Errorf("failed to load cart: %w", err)
	}
	total, err := s.cartRepo.Total(sessionKey)
	if err != nil {
		return dto.CartResponse{}, fmt.Errorf("failed to total cart: %w", err)
	}
	return dto.CartResponse{Lines: lines, CartTotal: total}, nil
}

func (s *CartService) findLine(sessionKey string, lineID uint) (models.Cart, error) {
	if sessionKey == "" {
		return models.Cart{}, errs.ErrCartLineNotFound
	}
	return s.cartRepo.FindLineByID(sessionKey, lineID)
}
