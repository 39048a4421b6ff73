package repositories

import (
	"github.com/issue-tracker/errs"
	"github.com/issue-tracker/models"
	"github.com/issue-tracker/pagination"
	"gorm.io/gorm"
)

// IssueRepository handles database operations for issues
type IssueRepository struct{ base }

// NewIssueRepository creates a new issue repository instance
func NewIssueRepository() *IssueRepository {
	return &IssueRepository{}
}

func (r *IssueRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Status").Preload("Types", func(db *gorm.DB) *gorm.DB {
		return db.Order("types.id ASC")
	})
}

// FindWithPagination lists issues whose summary or description contain search
func (r *IssueRepository) FindWithPagination(search, rawPage string, p pagination.Paginator) ([]models.Issue, pagination.Page, error) {
	query := r.conn().Model(&models.Issue{}).Scopes(ContainsFold(search, "summary", "description"))

	var totalCount int64
	if err := query.Session(&gorm.Session{}).Count(&totalCount).Error; err != nil {
		return nil, pagination.Page{}, err
	}
	page := p.GetPage(totalCount, rawPage)
	issues, err := r.paginate(query, page)
	return issues, page, err
}

// FindByProject lists the issues of one project. An empty set returns no page.
func (r *IssueRepository) FindByProject(projectID uint, rawPage string, p pagination.Paginator) ([]models.Issue, *pagination.Page, error) {
	query := r.conn().Model(&models.Issue{}).Where("project_id = ?", projectID)

	var count int64
	if err := query.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, nil, err
	}
	if count == 0 {
		return []models.Issue{}, nil, nil
	}
	page := p.GetPage(count, rawPage)
	issues, err := r.paginate(query, page)
	if err != nil {
		return nil, nil, err
	}
	return issues, &page, nil
}

func (r *IssueRepository) paginate(query *gorm.DB, page pagination.Page) ([]models.Issue, error) {
	issues := make([]models.Issue, 0, page.Limit())
	err := r.withRelations(query.Session(&gorm.Session{})).
		Order("issues.id ASC").
		Offset(page.Offset()).Limit(page.Limit()).
		Find(&issues).Error
	return issues, err
}

// FindByID retrieves an issue with its status and types
func (r *IssueRepository) FindByID(id uint) (models.Issue, error) {
	var issue models.Issue
	err := r.withRelations(r.conn()).First(&issue, id).Error
	return issue, notFound(err, errs.ErrIssueNotFound)
}

// Create inserts an issue and links its types
func (r *IssueRepository) Create(issue models.Issue, types []models.Type) (models.Issue, error) {
	err := r.conn().Transaction(func(tx *gorm.DB) error {
		issue.Types = nil
		if err := tx.Omit("Status", "Types", "Project", "Author").Create(&issue).Error; err != nil {
			return err
		}
		return tx.Model(&issue).Association("Types").Replace(types)
	})
	if err != nil {
		return models.Issue{}, err
	}
	return r.FindByID(issue.ID)
}

// Update saves the editable fields of an issue and replaces its types
func (r *IssueRepository) Update(issue models.Issue, types []models.Type) (models.Issue, error) {
	err := r.conn().Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Issue{ID: issue.ID}).
			Updates(map[string]interface{}{
				"summary":     issue.Summary,
				"description": issue.Description,
				"status_id":   issue.StatusID,
			}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Issue{ID: issue.ID}).Association("Types").Replace(types)
	})
	if err != nil {
		return models.Issue{}, err
	}
	return r.FindByID(issue.ID)
}

// Delete removes an issue and its type links
func (r *IssueRepository) Delete(issue models.Issue) error {
	return r.conn().Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&issue).Association("Types").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Issue{}, issue.ID).Error
	})
}
