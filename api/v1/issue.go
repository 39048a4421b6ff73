package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/issue-tracker/dto"
	"github.com/issue-tracker/middleware"
	"github.com/issue-tracker/services"
)

// IssueController handles issue endpoints
type IssueController struct {
	issueService *services.IssueService
}

// NewIssueController creates a new issue controller
func NewIssueController() *IssueController {
	return &IssueController{
		issueService: services.NewIssueService(),
	}
}

// ListIssues lists issues, five per page
func (ic *IssueController) ListIssues(c *gin.Context) {
	response, err := ic.issueService.ListIssues(searchTerm(c), c.Query("page"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, response)
}

// GetIssue shows one issue
func (ic *IssueController) GetIssue(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	issue, err := ic.issueService.GetIssue(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, issue)
}

// CreateIssue files an issue under the project in the path
func (ic *IssueController) CreateIssue(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var form dto.IssueForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err)
		return
	}

	issue, err := ic.issueService.CreateIssue(projectID, form, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, issue)
}

// EditIssue returns the current values of the update form
func (ic *IssueController) EditIssue(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	issue, err := ic.issueService.GetIssue(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.IssueFormFrom(issue))
}

// UpdateIssue overwrites an issue
func (ic *IssueController) UpdateIssue(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var form dto.IssueForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err)
		return
	}

	issue, err := ic.issueService.UpdateIssue(id, form, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, issue)
}

// DeleteIssue removes an issue and names its project
func (ic *IssueController) DeleteIssue(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	projectID, err := ic.issueService.DeleteIssue(id, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.IssueDeleteResponse{ProjectID: projectID})
}

// ListStatuses returns the status choices
func (ic *IssueController) ListStatuses(c *gin.Context) {
	statuses, err := ic.issueService.Statuses()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, statuses)
}

// ListTypes returns the type choices
func (ic *IssueController) ListTypes(c *gin.Context) {
	types, err := ic.issueService.Types()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, types)
}
