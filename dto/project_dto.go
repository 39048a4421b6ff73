package dto

import (
	"time"

	"github.com/issue-tracker/models"
	"github.com/issue-tracker/pagination"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// ProjectForm is the create/update payload for a project
type ProjectForm struct {
	Name        string `form:"name" json:"name" binding:"required,max=50"`
	Description string `form:"description" json:"description" binding:"required,max=300"`
	StartsDate  string `form:"starts_date" json:"starts_date" binding:"required,datetime=2006-01-02"`
	FinishDate  string `form:"finish_date" json:"finish_date" binding:"omitempty,datetime=2006-01-02"`
}

// Apply copies the form onto project. Dates were validated by binding.
func (f ProjectForm) Apply(project *models.Project) {
	project.Name = f.Name
	project.Description = f.Description
	project.StartsDate, _ = time.Parse(DateLayout, f.StartsDate)
	project.FinishDate = nil
	if f.FinishDate != "" {
		finish, _ := time.Parse(DateLayout, f.FinishDate)
		project.FinishDate = &finish
	}
}

// ProjectFormFrom fills a form with a project's current values
func ProjectFormFrom(project models.Project) ProjectForm {
	form := ProjectForm{
		Name:        project.Name,
		Description: project.Description,
		StartsDate:  project.StartsDate.Format(DateLayout),
	}
	if project.FinishDate != nil {
		form.FinishDate = project.FinishDate.Format(DateLayout)
	}
	return form
}

// SearchForm is the free-text filter of the listings
type SearchForm struct {
	Search string `form:"search" binding:"max=100"`
}

// IDsForm carries the selected record ids of a bulk request
type IDsForm struct {
	IDs []uint `form:"id" json:"id"`
}

// MassActionForm selects projects and, with Confirm, applies the action
type MassActionForm struct {
	IDs     []uint `form:"id" json:"id"`
	Confirm string `form:"confirm" json:"confirm"`
}

// Confirmed reports whether the caller sent the explicit confirm signal
func (f MassActionForm) Confirmed() bool {
	return f.Confirm != ""
}

// ProjectListResponse represents paginated project list response
type ProjectListResponse struct {
	Projects    []models.Project `json:"projects"`
	Page        pagination.Page  `json:"page"`
	IsPaginated bool             `json:"isPaginated"`
	Search      string           `json:"search,omitempty"`
}

// ProjectDetailResponse is a project with one page of its issues
type ProjectDetailResponse struct {
	Project     models.Project   `json:"project"`
	Issues      []models.Issue   `json:"issues"`
	Page        *pagination.Page `json:"page"`
	IsPaginated bool             `json:"isPaginated"`
}

// BulkDeleteResponse reports how many projects a bulk soft delete flagged
type BulkDeleteResponse struct {
	Deleted int64 `json:"deleted"`
}
