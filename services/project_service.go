package services

import (
	"fmt"

	"github.com/issue-tracker/authz"
	"github.com/issue-tracker/database"
	"github.com/issue-tracker/dto"
	"github.com/issue-tracker/errs"
	"github.com/issue-tracker/models"
	"github.com/issue-tracker/pagination"
	"github.com/issue-tracker/repositories"
	"gorm.io/gorm"
)

var (
	// ProjectListPaginator pages the project index
	ProjectListPaginator = pagination.New(3, 1)
	// ProjectIssuesPaginator pages the issues shown on a project
	ProjectIssuesPaginator = pagination.New(3, 0)
)

// ProjectService handles business logic for projects
type ProjectService struct {
	projectRepo *repositories.ProjectRepository
	issueRepo   *repositories.IssueRepository
}

// NewProjectService creates a new project service instance
func NewProjectService() *ProjectService {
	return &ProjectService{
		projectRepo: repositories.NewProjectRepository(),
		issueRepo:   repositories.NewIssueRepository(),
	}
}

// ListProjects retrieves live projects matching search, one page at a time
func (s *ProjectService) ListProjects(search, rawPage string) (dto.ProjectListResponse, error) {
	projects, page, err := s.projectRepo.FindWithPagination(search, rawPage, ProjectListPaginator)
	if err != nil {
		return dto.ProjectListResponse{}, fmt.Errorf("failed to list projects: %w", err)
	}
	return dto.ProjectListResponse{
		Projects:    projects,
		Page:        page,
		IsPaginated: page.IsPaginated(),
		Search:      search,
	}, nil
}

// GetProject retrieves a live project
func (s *ProjectService) GetProject(id uint) (models.Project, error) {
	return s.projectRepo.FindByID(id)
}

// GetProjectDetail retrieves a project and one page of its issues
func (s *ProjectService) GetProjectDetail(id uint, rawPage string) (dto.ProjectDetailResponse, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		return dto.ProjectDetailResponse{}, err
	}

	issues, page, err := s.issueRepo.FindByProject(project.ID, rawPage, ProjectIssuesPaginator)
	if err != nil {
		return dto.ProjectDetailResponse{}, fmt.Errorf("failed to list issues of project %d: %w", id, err)
	}

	response := dto.ProjectDetailResponse{
		Project: project,
		Issues:  issues,
		Page:    page,
	}
	if page != nil {
		response.IsPaginated = page.IsPaginated()
	}
	return response, nil
}

// CreateProject stores a new project authored by caller
func (s *ProjectService) CreateProject(form dto.ProjectForm, caller *models.User) (models.Project, error) {
	if caller == nil {
		return models.Project{}, errs.ErrUnauthenticated
	}

	var project models.Project
	form.Apply(&project)
	project.AuthorID = &caller.ID

	created, err := s.projectRepo.Create(project)
	if err != nil {
		return models.Project{}, fmt.Errorf("failed to create project: %w", err)
	}
	return created, nil
}

// UpdateProject overwrites a live project's fields
func (s *ProjectService) UpdateProject(id uint, form dto.ProjectForm, caller *models.User) (models.Project, error) {
	if !authz.CanChangeProject(caller) {
		return models.Project{}, errs.ErrPermissionDenied
	}

	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		return models.Project{}, err
	}

	form.Apply(&project)
	if err := s.projectRepo.Update(project); err != nil {
		return models.Project{}, fmt.Errorf("failed to update project %d: %w", id, err)
	}
	return project, nil
}

// DeleteProject flags one project as deleted. The row and its issues stay.
func (s *ProjectService) DeleteProject(id uint, caller *models.User) error {
	if caller == nil {
		return errs.ErrUnauthenticated
	}

	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		return err
	}
	if !authz.CanDeleteProject(caller, project) {
		return errs.ErrPermissionDenied
	}
	return s.projectRepo.SoftDelete(project.ID)
}

// DeleteProjects flags every live project among ids. Unknown ids are ignored.
func (s *ProjectService) DeleteProjects(ids []uint, caller *models.User) (int64, error) {
	if caller == nil {
		return 0, errs.ErrUnauthenticated
	}
	deleted, err := s.projectRepo.SoftDeleteMany(ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete projects: %w", err)
	}
	return deleted, nil
}

// MassActionResult reports what a mass action did
type MassActionResult struct {
	Confirmed bool
	Deleted   int64
}

// MassDelete permanently removes the selected projects once confirmed.
// The selection is resolved once and the same set is authorized and deleted.
func (s *ProjectService) MassDelete(form dto.MassActionForm, caller *models.User) (MassActionResult, error) {
	if caller == nil {
		return MassActionResult{}, errs.ErrUnauthenticated
	}

	projects, err := s.projectRepo.FindByIDs(form.IDs)
	if err != nil {
		return MassActionResult{}, fmt.Errorf("failed to resolve selection: %w", err)
	}
	if !authz.CanMassAct(caller, projects) {
		return MassActionResult{}, errs.ErrPermissionDenied
	}
	if !form.Confirmed() {
		return MassActionResult{}, nil
	}

	result := MassActionResult{Confirmed: true}
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.projectRepo.WithTx(tx)

		ids := make([]uint, len(projects))
		for i, p := range projects {
			ids[i] = p.ID
		}
		if len(ids) > 0 {
			count, err := repo.CountIssues(ids)
			if err != nil {
				return err
			}
			if count > 0 {
				return errs.ErrProjectHasIssues
			}
		}

		deleted, err := repo.HardDelete(projects)
		if err != nil {
			return err
		}
		result.Deleted = deleted
		return nil
	})
	if err != nil {
		return MassActionResult{}, err
	}
	return result, nil
}
