package dto

import (
	"github.com/issue-tracker/models"
	"github.com/issue-tracker/pagination"
)

// IssueForm is the create/update payload for an issue
type IssueForm struct {
	Summary     string `form:"summary" json:"summary" binding:"required,max=300,capitalized"`
	Description string `form:"description" json:"description" binding:"max=3500,nozero"`
	Status      uint   `form:"status" json:"status" binding:"required"`
	Type        []uint `form:"type" json:"type" binding:"required,min=1"`
}

// IssueFormFrom fills a form with an issue's current values
func IssueFormFrom(issue models.Issue) IssueForm {
	types := make([]uint, len(issue.Types))
	for i, t := range issue.Types {
		types[i] = t.ID
	}
	return IssueForm{
		Summary:     issue.Summary,
		Description: issue.Description,
		Status:      issue.StatusID,
		Type:        types,
	}
}

// IssueListResponse represents paginated issue list response
type IssueListResponse struct {
	Issues      []models.Issue  `json:"issues"`
	Page        pagination.Page `json:"page"`
	IsPaginated bool            `json:"isPaginated"`
	Search      string          `json:"search,omitempty"`
}

// IssueDeleteResponse names the project the deleted issue belonged to
type IssueDeleteResponse struct {
	ProjectID uint `json:"projectId"`
}
