package repositories

import (
	"github.com/issue-tracker/errs"
	"github.com/issue-tracker/models"
)

// ReferenceRepository reads the fixed status and type tables
type ReferenceRepository struct{ base }

// NewReferenceRepository creates a new reference repository instance
func NewReferenceRepository() *ReferenceRepository {
	return &ReferenceRepository{}
}

// Statuses returns every status
func (r *ReferenceRepository) Statuses() ([]models.Status, error) {
	var statuses []models.Status
	err := r.conn().Order("id ASC").Find(&statuses).Error
	return statuses, err
}

// Types returns every issue type
func (r *ReferenceRepository) Types() ([]models.Type, error) {
	var types []models.Type
	err := r.conn().Order("id ASC").Find(&types).Error
	return types, err
}

// FindStatus retrieves a status by its ID
func (r *ReferenceRepository) FindStatus(id uint) (models.Status, error) {
	var status models.Status
	err := r.conn().First(&status, id).Error
	return status, notFound(err, errs.ErrStatusNotFound)
}

// FindTypes retrieves the types with the given IDs; any unknown id is an error
func (r *ReferenceRepository) FindTypes(ids []uint) ([]models.Type, error) {
	unique := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	types := make([]models.Type, 0, len(unique))
	if len(unique) == 0 {
		return types, nil
	}
	if err := r.conn().Where("id IN ?", ids).Order("id ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	if len(types) != len(unique) {
		return nil, errs.ErrTypeNotFound
	}
	return types, nil
}
