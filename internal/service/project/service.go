package project

import (
	"context"
	"log/slog"

	"github.com/clocklab/timesheet-backend-go/internal/domain/project"
	"github.com/clocklab/timesheet-backend-go/internal/domain/user"
)

type Service struct {
	project.ProjectRepository
	userRepo user.UserRepository
	logger   *slog.Logger
}

func NewService(projectRepo project.ProjectRepository, userRepo user.UserRepository, logger *slog.Logger) *Service {
	return &Service{
		ProjectRepository: projectRepo,
		userRepo:          userRepo,
		logger:            logger,
	}
}

func (s *Service) Create(ctx context.Context, req project.CreateProjectRequest) (project.ProjectResponse, error) {
	if err := req.Validate(); err != nil {
		return project.ProjectResponse{}, err
	}

	created, err := s.ProjectRepository.Create(ctx, project.Project{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	})
	if err != nil {
		return project.ProjectResponse{}, err
	}

	s.logger.InfoContext(ctx, "project created",
		slog.String("project_id", created.ID),
		slog.String("name", created.Name),
	)

	return project.ToResponse(created), nil
}

func (s *Service) Get(ctx context.Context, id string) (project.ProjectResponse, error) {
	p, err := s.ProjectRepository.GetByID(ctx, id)
	if err != nil {
		return project.ProjectResponse{}, err
	}
	return project.ToResponse(p), nil
}

func (s *Service) List(ctx context.Context) ([]project.ProjectResponse, error) {
	projects, err := s.ProjectRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]project.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		items = append(items, project.ToResponse(p))
	}
	return items, nil
}

func (s *Service) AddMember(ctx context.Context, projectID string, req project.AddMemberRequest) (project.Member, error) {
	if err := req.Validate(); err != nil {
		return project.Member{}, err
	}

	if _, err := s.ProjectRepository.GetByID(ctx, projectID); err != nil {
		return project.Member{}, err
	}
	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return project.Member{}, err
	}

	member, err := s.ProjectRepository.AddMember(ctx, projectID, req.UserID)
	if err != nil {
		return project.Member{}, err
	}

	s.logger.InfoContext(ctx, "project member added",
		slog.String("project_id", projectID),
		slog.String("user_id", req.UserID),
	)

	return member, nil
}

func (s *Service) RemoveMember(ctx context.Context, projectID, userID string) error {
	return s.ProjectRepository.RemoveMember(ctx, projectID, userID)
}

func (s *Service) ListMembers(ctx context.Context, projectID string) ([]project.Member, error) {
	if _, err := s.ProjectRepository.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.ProjectRepository.ListMembers(ctx, projectID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.ProjectRepository.SoftDelete(ctx, id)
}
