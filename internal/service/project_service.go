package service

import (
	"context"
	"time"

	"study-assistant-be/internal/apperror"
	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/repository/specification"
	"study-assistant-be/internal/repository/unitofwork"
)

type IProjectService interface {
	Create(ctx context.Context, userIdx int64, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	List(ctx context.Context, userIdx int64) ([]*dto.ProjectResponse, error)
	Show(ctx context.Context, userIdx, projectId int64) (*dto.ProjectWithSessionsResponse, error)
	Update(ctx context.Context, userIdx, projectId int64, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	Delete(ctx context.Context, userIdx, projectId int64) error
	AttachSession(ctx context.Context, userIdx, projectId, sessionId int64) error
	DetachSession(ctx context.Context, userIdx, sessionId int64) error
}

type projectService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewProjectService(uowFactory unitofwork.RepositoryFactory) IProjectService {
	return &projectService{
		uowFactory: uowFactory,
	}
}

func projectToResponse(project *entity.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ProjectId:   project.ProjectId,
		ProjectName: project.ProjectName,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

func (s *projectService) findOwnedProject(ctx context.Context, uow unitofwork.UnitOfWork, userIdx, projectId int64) (*entity.Project, error) {
	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByProjectPK{ProjectId: projectId})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.NotFound("project not found")
	}
	if project.UserIdx != userIdx {
		return nil, apperror.Forbidden("project belongs to another user")
	}
	return project, nil
}

func (s *projectService) Create(ctx context.Context, userIdx int64, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	project := entity.Project{
		UserIdx:     userIdx,
		ProjectName: req.ProjectName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uow.ProjectRepository().Create(ctx, &project); err != nil {
		return nil, err
	}

	return projectToResponse(&project), nil
}

func (s *projectService) List(ctx context.Context, userIdx int64) ([]*dto.ProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	projects, err := uow.ProjectRepository().FindAll(ctx,
		specification.OwnedBy{UserIdx: userIdx},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		result = append(result, projectToResponse(project))
	}
	return result, nil
}

func (s *projectService) Show(ctx context.Context, userIdx, projectId int64) (*dto.ProjectWithSessionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := s.findOwnedProject(ctx, uow, userIdx, projectId)
	if err != nil {
		return nil, err
	}

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.ByProjectID{ProjectId: projectId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	sessionResponses := make([]*dto.ChatSessionResponse, 0, len(sessions))
	for _, session := range sessions {
		sessionResponses = append(sessionResponses, sessionToResponse(session))
	}

	return &dto.ProjectWithSessionsResponse{
		ProjectId:   project.ProjectId,
		ProjectName: project.ProjectName,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
		Sessions:    sessionResponses,
	}, nil
}

func (s *projectService) Update(ctx context.Context, userIdx, projectId int64, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := s.findOwnedProject(ctx, uow, userIdx, projectId)
	if err != nil {
		return nil, err
	}

	project.ProjectName = req.ProjectName
	project.UpdatedAt = time.Now()
	if err := uow.ProjectRepository().Update(ctx, project); err != nil {
		return nil, err
	}

	return projectToResponse(project), nil
}

// Delete removes the project and detaches its sessions. Sessions survive a
// project deletion, only the back-reference is cleared.
func (s *projectService) Delete(ctx context.Context, userIdx, projectId int64) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findOwnedProject(ctx, uow, userIdx, projectId); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().ClearProject(ctx, projectId); err != nil {
		return err
	}
	if err := uow.ProjectRepository().Delete(ctx, projectId); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *projectService) AttachSession(ctx context.Context, userIdx, projectId, sessionId int64) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findOwnedProject(ctx, uow, userIdx, projectId); err != nil {
		return err
	}

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.BySessionID{ChatSessionId: sessionId})
	if err != nil {
		return err
	}
	if session == nil {
		return apperror.NotFound("chat session not found")
	}
	if session.UserIdx != userIdx {
		return apperror.Forbidden("chat session belongs to another user")
	}

	session.ProjectId = &projectId
	session.UpdatedAt = time.Now()
	return uow.ChatSessionRepository().Update(ctx, session)
}

func (s *projectService) DetachSession(ctx context.Context, userIdx, sessionId int64) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.BySessionID{ChatSessionId: sessionId})
	if err != nil {
		return err
	}
	if session == nil {
		return apperror.NotFound("chat session not found")
	}
	if session.UserIdx != userIdx {
		return apperror.Forbidden("chat session belongs to another user")
	}

	session.ProjectId = nil
	session.UpdatedAt = time.Now()
	return uow.ChatSessionRepository().Update(ctx, session)
}
