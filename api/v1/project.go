package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/issue-tracker/dto"
	"github.com/issue-tracker/middleware"
	"github.com/issue-tracker/services"
)

// ProjectController handles project endpoints
type ProjectController struct {
	projectService *services.ProjectService
}

// NewProjectController creates a new project controller
func NewProjectController() *ProjectController {
	return &ProjectController{
		projectService: services.NewProjectService(),
	}
}

// searchTerm returns the validated search query, or "" when it is invalid
func searchTerm(c *gin.Context) string {
	var form dto.SearchForm
	if err := c.ShouldBindQuery(&form); err != nil {
		return ""
	}
	return form.Search
}

// ListProjects lists live projects, three per page
func (pc *ProjectController) ListProjects(c *gin.Context) {
	response, err := pc.projectService.ListProjects(searchTerm(c), c.Query("page"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, response)
}

// GetProject shows a project with one page of its issues
func (pc *ProjectController) GetProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	response, err := pc.projectService.GetProjectDetail(id, c.Query("page"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, response)
}

// CreateProject creates a project authored by the caller
func (pc *ProjectController) CreateProject(c *gin.Context) {
	var form dto.ProjectForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := pc.projectService.CreateProject(form, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, project)
}

// EditProject returns the current values of the update form
func (pc *ProjectController) EditProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	project, err := pc.projectService.GetProject(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.ProjectFormFrom(project))
}

// UpdateProject overwrites a project
func (pc *ProjectController) UpdateProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var form dto.ProjectForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := pc.projectService.UpdateProject(id, form, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, project)
}

// DeleteProject soft deletes one project
func (pc *ProjectController) DeleteProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := pc.projectService.DeleteProject(id, middleware.CurrentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Project deleted successfully",
	})
}

// DeleteProjects soft deletes every selected project
func (pc *ProjectController) DeleteProjects(c *gin.Context) {
	var form dto.IDsForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err)
		return
	}

	deleted, err := pc.projectService.DeleteProjects(form.IDs, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.BulkDeleteResponse{Deleted: deleted})
}

// MassAction permanently deletes the selected projects once confirmed.
// Without confirmation the caller is sent back to the index.
func (pc *ProjectController) MassAction(c *gin.Context) {
	var form dto.MassActionForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := pc.projectService.MassDelete(form, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if !result.Confirmed {
		c.Redirect(http.StatusFound, "/")
		return
	}
	respondOK(c, http.StatusOK, dto.BulkDeleteResponse{Deleted: result.Deleted})
}
