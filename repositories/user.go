package repositories

import (
	"github.com/issue-tracker/models"
)

// UserRepository handles database operations for users
type UserRepository struct{ base }

// NewUserRepository creates a new user repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByID retrieves a user by its ID
func (r *UserRepository) FindByID(id string) (models.User, error) {
	var user models.User
	err := r.conn().Where("id = ?", id).First(&user).Error
	return user, err
}

// FindByEmail retrieves a user by email
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := r.conn().Where("email = ?", email).First(&user).Error
	return user, err
}

// ExistsByEmail checks whether an email is registered
func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.conn().Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// ExistsByUsername checks whether a username is taken
func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.conn().Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// Create inserts a new user
func (r *UserRepository) Create(user models.User) (models.User, error) {
	err := r.conn().Create(&user).Error
	return user, err
}
