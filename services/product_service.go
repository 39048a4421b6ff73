package services

import (
	"fmt"

	"github.com/issue-tracker/authz"
	"github.com/issue-tracker/dto"
	"github.com/issue-tracker/errs"
	"github.com/issue-tracker/models"
	"github.com/issue-tracker/repositories"
)

// ProductService handles the shop catalogue
type ProductService struct {
	productRepo *repositories.ProductRepository
}

// NewProductService creates a new product service instance
func NewProductService() *ProductService {
	return &ProductService{
		productRepo: repositories.NewProductRepository(),
	}
}

// ListProducts returns every product
func (s *ProductService) ListProducts() ([]models.Product, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetProduct retrieves one product
func (s *ProductService) GetProduct(id uint) (models.Product, error) {
	return s.productRepo.FindByID(id)
}

// CreateProduct stocks a new product
func (s *ProductService) CreateProduct(form dto.ProductForm, caller *models.User) (models.Product, error) {
	if caller == nil {
		return models.Product{}, errs.ErrUnauthenticated
	}
	if !authz.CanManageProducts(caller) {
		return models.Product{}, errs.ErrPermissionDenied
	}

	product := models.Product{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		Amount:      form.Amount,
	}
	return s.productRepo.Create(product)
}
