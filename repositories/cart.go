package repositories

import (
	"github.com/issue-tracker/errs"
	"github.com/issue-tracker/models"
	"gorm.io/gorm"
)

// CartRepository handles cart lines. Every query is scoped to one session key.
type CartRepository struct{ base }

// NewCartRepository creates a new cart repository instance
func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

// WithTx returns a repository bound to tx
func (r *CartRepository) WithTx(tx *gorm.DB) *CartRepository {
	return &CartRepository{base{db: tx}}
}

// EnsureSession persists the session row if it does not exist yet
func (r *CartRepository) EnsureSession(key string) error {
	session := models.Session{Key: key}
	return r.conn().Where(models.Session{Key: key}).FirstOrCreate(&session).Error
}

// FindLine returns the session's line for productID
func (r *CartRepository) FindLine(sessionKey string, productID uint) (models.Cart, error) {
	var line models.Cart
	err := r.conn().Where("session_key = ? AND product_id = ?", sessionKey, productID).First(&line).Error
	return line, notFound(err, errs.ErrCartLineNotFound)
}

// FindLineByID returns a line only if it belongs to the session
func (r *CartRepository) FindLineByID(sessionKey string, id uint) (models.Cart, error) {
	var line models.Cart
	err := r.conn().Where("session_key = ?", sessionKey).First(&line, id).Error
	return line, notFound(err, errs.ErrCartLineNotFound)
}

// Create inserts a new line
func (r *CartRepository) Create(line models.Cart) (models.Cart, error) {
	err := r.conn().Omit("Session", "Product").Create(&line).Error
	return line, err
}

// UpdateQty writes a line's quantity
func (r *CartRepository) UpdateQty(line models.Cart) error {
	return r.conn().Model(&models.Cart{ID: line.ID}).Update("qty", line.Qty).Error
}

// Delete removes one line
func (r *CartRepository) Delete(line models.Cart) error {
	return r.conn().Delete(&models.Cart{}, line.ID).Error
}

// ListWithProduct returns the session's lines with their products
func (r *CartRepository) ListWithProduct(sessionKey string) ([]models.Cart, error) {
	lines := make([]models.Cart, 0)
	err := r.conn().Preload("Product").
		Where("session_key = ?", sessionKey).
		Order("id ASC").
		Find(&lines).Error
	return lines, err
}

// Total sums qty * price over the session's lines
func (r *CartRepository) Total(sessionKey string) (float64, error) {
	var total float64
	err := r.conn().Model(&models.Cart{}).
		Joins("JOIN products ON products.id = carts.product_id").
		Where("carts.session_key = ?", sessionKey).
		Select("COALESCE(SUM(carts.qty * products.price), 0)").
		Scan(&total).Error
	return total, err
}

// Clear deletes every line of the session
func (r *CartRepository) Clear(sessionKey string) error {
	return r.conn().Where("session_key = ?", sessionKey).Delete(&models.Cart{}).Error
}
