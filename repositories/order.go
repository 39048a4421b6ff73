package repositories

import (
	"github.com/issue-tracker/models"
	"gorm.io/gorm"
)

// OrderRepository handles database operations for orders
type OrderRepository struct{ base }

// NewOrderRepository creates a new order repository instance
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// WithTx returns a repository bound to tx
func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{base{db: tx}}
}

// Create inserts the order header
func (r *OrderRepository) Create(order models.Order) (models.Order, error) {
	order.Products = nil
	err := r.conn().Omit("User", "Products").Create(&order).Error
	return order, err
}

// CreateLines inserts every line item in one batch
func (r *OrderRepository) CreateLines(lines []models.OrderProduct) error {
	if len(lines) == 0 {
		return nil
	}
	return r.conn().Omit("Product").CreateInBatches(&lines, len(lines)).Error
}

// FindByID retrieves an order with its lines and products
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := r.conn().Preload("Products.Product").First(&order, id).Error
	return order, err
}

// FindByUserID lists a user's orders, newest first
func (r *OrderRepository) FindByUserID(userID string) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	err := r.conn().Preload("Products.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&orders).Error
	return orders, err
}
