package services

import (
	"fmt"

	"github.com/issue-tracker/authz"
	"github.com/issue-tracker/dto"
	"github.com/issue-tracker/errs"
	"github.com/issue-tracker/models"
	"github.com/issue-tracker/pagination"
	"github.com/issue-tracker/repositories"
)

// IssueListPaginator pages the issue index
var IssueListPaginator = pagination.New(5, 0)

// IssueService handles business logic for issues
type IssueService struct {
	issueRepo     *repositories.IssueRepository
	projectRepo   *repositories.ProjectRepository
	referenceRepo *repositories.ReferenceRepository
}

// NewIssueService creates a new issue service instance
func NewIssueService() *IssueService {
	return &IssueService{
		issueRepo:     repositories.NewIssueRepository(),
		projectRepo:   repositories.NewProjectRepository(),
		referenceRepo: repositories.NewReferenceRepository(),
	}
}

// ListIssues retrieves issues matching search, one page at a time
func (s *IssueService) ListIssues(search, rawPage string) (dto.IssueListResponse, error) {
	issues, page, err := s.issueRepo.FindWithPagination(search, rawPage, IssueListPaginator)
	if err != nil {
		return dto.IssueListResponse{}, fmt.Errorf("failed to list issues: %w", err)
	}
	return dto.IssueListResponse{
		Issues:      issues,
		Page:        page,
		IsPaginated: page.IsPaginated(),
		Search:      search,
	}, nil
}

// GetIssue retrieves an issue with its status and types
func (s *IssueService) GetIssue(id uint) (models.Issue, error) {
	return s.issueRepo.FindByID(id)
}

// Statuses lists the status choices
func (s *IssueService) Statuses() ([]models.Status, error) {
	return s.referenceRepo.Statuses()
}

// Types lists the type choices
func (s *IssueService) Types() ([]models.Type, error) {
	return s.referenceRepo.Types()
}

// CreateIssue files a new issue under a live project
func (s *IssueService) CreateIssue(projectID uint, form dto.IssueForm, caller *models.User) (models.Issue, error) {
	if caller == nil {
		return models.Issue{}, errs.ErrUnauthenticated
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return models.Issue{}, err
	}

	types, err := s.resolveChoices(form)
	if err != nil {
		return models.Issue{}, err
	}

	issue := models.Issue{
		ProjectID:   project.ID,
		Summary:     form.Summary,
		Description: form.Description,
		StatusID:    form.Status,
		AuthorID:    &caller.ID,
	}
	created, err := s.issueRepo.Create(issue, types)
	if err != nil {
		return models.Issue{}, fmt.Errorf("failed to create issue: %w", err)
	}
	return created, nil
}

// UpdateIssue overwrites an issue's fields and types
func (s *IssueService) UpdateIssue(id uint, form dto.IssueForm, caller *models.User) (models.Issue, error) {
	if !authz.CanChangeIssue(caller) {
		return models.Issue{}, errs.ErrPermissionDenied
	}

	issue, err := s.issueRepo.FindByID(id)
	if err != nil {
		return models.Issue{}, err
	}

	types, err := s.resolveChoices(form)
	if err != nil {
		return models.Issue{}, err
	}

	issue.Summary = form.Summary
	issue.Description = form.Description
	issue.StatusID = form.Status
	updated, err := s.issueRepo.Update(issue, types)
	if err != nil {
		return models.Issue{}, fmt.Errorf("failed to update issue %d: %w", id, err)
	}
	return updated, nil
}

// DeleteIssue removes an issue and returns the project it belonged to
func (s *IssueService) DeleteIssue(id uint, caller *models.User) (uint, error) {
	if caller == nil {
		return 0, errs.ErrUnauthenticated
	}

	issue, err := s.issueRepo.FindByID(id)
	if err != nil {
		return 0, err
	}
	if !authz.CanDeleteIssue(caller, issue) {
		return 0, errs.ErrPermissionDenied
	}
	if err := s.issueRepo.Delete(issue); err != nil {
		return 0, fmt.Errorf("failed to delete issue %d: %w", id, err)
	}
	return issue.ProjectID, nil
}

func (s *IssueService) resolveChoices(form dto.IssueForm) ([]models.Type, error) {
	if _, err := s.referenceRepo.FindStatus(form.Status); err != nil {
		return nil, err
	}
	types, err := s.referenceRepo.FindTypes(form.Type)
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		return nil, errs.ErrTypeNotFound
	}
	return types, nil
}
