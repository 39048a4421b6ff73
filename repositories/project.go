package repositories

import (
	"github.com/issue-tracker/errs"
	"github.com/issue-tracker/models"
	"github.com/issue-tracker/pagination"
	"gorm.io/gorm"
)

// ProjectRepository handles database operations for projects.
// Every read hides soft-deleted rows.
type ProjectRepository struct{ base }

// NewProjectRepository creates a new project repository instance
func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{}
}

// WithTx returns a repository bound to tx
func (r *ProjectRepository) WithTx(tx *gorm.DB) *ProjectRepository {
	return &ProjectRepository{base{db: tx}}
}

// FindWithPagination lists live projects matching search, ordered by start date
func (r *ProjectRepository) FindWithPagination(search, rawPage string, p pagination.Paginator) ([]models.Project, pagination.Page, error) {
	query := r.conn().Model(&models.Project{}).
		Scopes(NotDeleted, ContainsFold(search, "name", "description"))

	var totalCount int64
	if err := query.Session(&gorm.Session{}).Count(&totalCount).Error; err != nil {
		return nil, pagination.Page{}, err
	}
	page := p.GetPage(totalCount, rawPage)

	projects := make([]models.Project, 0, page.Limit())
	err := query.Session(&gorm.Session{}).
		Order("starts_date ASC").Order("id ASC").
		Offset(page.Offset()).Limit(page.Limit()).
		Find(&projects).Error
	return projects, page, err
}

// FindByID retrieves a live project by its ID
func (r *ProjectRepository) FindByID(id uint) (models.Project, error) {
	var project models.Project
	err := r.conn().Scopes(NotDeleted).First(&project, id).Error
	return project, notFound(err, errs.ErrProjectNotFound)
}

// FindByIDs retrieves the live projects among ids; unknown ids are skipped
func (r *ProjectRepository) FindByIDs(ids []uint) ([]models.Project, error) {
	projects := make([]models.Project, 0, len(ids))
	if len(ids) == 0 {
		return projects, nil
	}
	err := r.conn().Scopes(NotDeleted).Where("id IN ?", ids).Order("id ASC").Find(&projects).Error
	return projects, err
}

// Create inserts a new project into the database
func (r *ProjectRepository) Create(project models.Project) (models.Project, error) {
	result := r.conn().Create(&project)
	return project, result.Error
}

// Update modifies an existing project
func (r *ProjectRepository) Update(project models.Project) error {
	return r.conn().Save(&project).Error
}

// SoftDelete flags one project as deleted
func (r *ProjectRepository) SoftDelete(id uint) error {
	result := r.conn().Model(&models.Project{}).Scopes(NotDeleted).
		Where("id = ?", id).Update("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrProjectNotFound
	}
	return nil
}

// SoftDeleteMany flags every live project among ids and returns how many changed
func (r *ProjectRepository) SoftDeleteMany(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.conn().Model(&models.Project{}).Scopes(NotDeleted).
		Where("id IN ?", ids).Update("is_deleted", true)
	return result.RowsAffected, result.Error
}

// CountIssues counts issues referencing any of ids
func (r *ProjectRepository) CountIssues(ids []uint) (int64, error) {
	var count int64
	err := r.conn().Model(&models.Issue{}).Where("project_id IN ?", ids).Count(&count).Error
	return count, err
}

// HardDelete removes the given projects in a single statement
func (r *ProjectRepository) HardDelete(projects []models.Project) (int64, error) {
	if len(projects) == 0 {
		return 0, nil
	}
	ids := make([]uint, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	result := r.conn().Where("id IN ?", ids).Delete(&models.Project{})
	return result.RowsAffected, result.Error
}
