package repositories

import (
	"github.com/issue-tracker/errs"
	"github.com/issue-tracker/models"
	"gorm.io/gorm"
)

// ProductRepository handles database operations for products
type ProductRepository struct{ base }

// NewProductRepository creates a new product repository instance
func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// WithTx returns a repository bound to tx
func (r *ProductRepository) WithTx(tx *gorm.DB) *ProductRepository {
	return &ProductRepository{base{db: tx}}
}

// FindAll retrieves all products
func (r *ProductRepository) FindAll() ([]models.Product, error) {
	var products []models.Product
	err := r.conn().Order("id ASC").Find(&products).Error
	return products, err
}

// FindByID retrieves a product by its ID
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := r.conn().First(&product, id).Error
	return product, notFound(err, errs.ErrProductNotFound)
}

// Create inserts a new product into the database
func (r *ProductRepository) Create(product models.Product) (models.Product, error) {
	err := r.conn().Create(&product).Error
	return product, err
}

// SaveAll upserts every product row in one statement
func (r *ProductRepository) SaveAll(products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.conn().Save(&products).Error
}
