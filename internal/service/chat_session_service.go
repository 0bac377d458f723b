package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"study-assistant-be/internal/apperror"
	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/repository/specification"
	"study-assistant-be/internal/repository/unitofwork"
)

type IChatSessionService interface {
	Create(ctx context.Context, userIdx int64, req *dto.CreateSessionRequest) (*dto.ChatSessionResponse, error)
	GetByID(ctx context.Context, userIdx, sessionId int64) (*dto.ChatSessionResponse, error)
	ListByOwner(ctx context.Context, userIdx int64, projectId *int64) ([]*dto.ChatSessionResponse, error)
	SearchByTitle(ctx context.Context, userIdx int64, query string, limit, offset int) (*dto.SessionSearchData, error)
	ListRecent(ctx context.Context, userIdx int64, limit, offset int) (*dto.SessionSearchData, error)
	UpdateTitle(ctx context.Context, userIdx, sessionId int64, req *dto.UpdateSessionTitleRequest) (*dto.ChatSessionResponse, error)
	Delete(ctx context.Context, userIdx, sessionId int64) error
}

type chatSessionService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewChatSessionService(uowFactory unitofwork.RepositoryFactory) IChatSessionService {
	return &chatSessionService{
		uowFactory: uowFactory,
	}
}

// clampPagination normalizes limit/offset to the listing bounds.
func clampPagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = constant.SessionListDefaultLimit
	}
	if limit > constant.SessionListMaxLimit {
		limit = constant.SessionListMaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// normalizeTitle trims the title and maps empty to unset. Stored titles are
// never longer than TitleMaxChars, same bound generated titles are clipped to.
func normalizeTitle(title *string) (*string, error) {
	if title == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*title)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > constant.TitleMaxChars {
		return nil, apperror.InvalidArgument("title must be at most 40 characters")
	}
	return &trimmed, nil
}

func sessionToResponse(session *entity.ChatSession) *dto.ChatSessionResponse {
	return &dto.ChatSessionResponse{
		ChatSessionId: session.ChatSessionId,
		ProjectId:     session.ProjectId,
		Title:         session.Title,
		UserLang:      session.UserLang,
		CreatedAt:     session.CreatedAt,
		UpdatedAt:     session.UpdatedAt,
	}
}

func (c *chatSessionService) Create(ctx context.Context, userIdx int64, req *dto.CreateSessionRequest) (*dto.ChatSessionResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	projectId := req.ProjectId
	if projectId != nil && *projectId <= 0 {
		projectId = nil
	}
	if projectId != nil {
		exists, err := uow.ProjectRepository().Exists(ctx, *projectId)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperror.InvalidArgument("referenced project does not exist")
		}
	}

	lang := req.UserLang
	if lang == "" {
		lang = constant.DefaultLang
	}

	title, err := normalizeTitle(req.Title)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := entity.ChatSession{
		UserIdx:   userIdx,
		ProjectId: projectId,
		Title:     title,
		UserLang:  lang,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	return sessionToResponse(&session), nil
}

func (c *chatSessionService) GetByID(ctx context.Context, userIdx, sessionId int64) (*dto.ChatSessionResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := c.findOwnedSession(ctx, uow, userIdx, sessionId)
	if err != nil {
		return nil, err
	}

	return sessionToResponse(session), nil
}

func (c *chatSessionService) ListByOwner(ctx context.Context, userIdx int64, projectId *int64) ([]*dto.ChatSessionResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OwnedBy{UserIdx: userIdx},
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if projectId != nil {
		specs = append(specs, specification.ByProjectID{ProjectId: *projectId})
	}

	sessions, err := uow.ChatSessionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChatSessionResponse, 0, len(sessions))
	for _, session := range sessions {
		result = append(result, sessionToResponse(session))
	}
	return result, nil
}

func (c *chatSessionService) SearchByTitle(ctx context.Context, userIdx int64, query string, limit, offset int) (*dto.SessionSearchData, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.InvalidArgument("search query must not be empty")
	}

	limit, offset = clampPagination(limit, offset)
	uow := c.uowFactory.NewUnitOfWork(ctx)

	filters := []specification.Specification{
		specification.OwnedBy{UserIdx: userIdx},
		specification.TitleSearch{Query: query},
	}

	total, err := uow.ChatSessionRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	specs := append(filters,
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Paginate{Limit: limit, Offset: offset},
	)
	sessions, err := uow.ChatSessionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	results := make([]*dto.ChatSessionResponse, 0, len(sessions))
	for _, session := range sessions {
		results = append(results, sessionToResponse(session))
	}

	return &dto.SessionSearchData{
		Query:   query,
		Results: results,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}, nil
}

func (c *chatSessionService) ListRecent(ctx context.Context, userIdx int64, limit, offset int) (*dto.SessionSearchData, error) {
	limit, offset = clampPagination(limit, offset)
	uow := c.uowFactory.NewUnitOfWork(ctx)

	filters := []specification.Specification{
		specification.OwnedBy{UserIdx: userIdx},
	}

	total, err := uow.ChatSessionRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	specs := append(filters,
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Paginate{Limit: limit, Offset: offset},
	)
	sessions, err := uow.ChatSessionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	results := make([]*dto.ChatSessionResponse, 0, len(sessions))
	for _, session := range sessions {
		results = append(results, sessionToResponse(session))
	}

	return &dto.SessionSearchData{
		Results: results,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}, nil
}

func (c *chatSessionService) UpdateTitle(ctx context.Context, userIdx, sessionId int64, req *dto.UpdateSessionTitleRequest) (*dto.ChatSessionResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := c.findOwnedSession(ctx, uow, userIdx, sessionId)
	if err != nil {
		return nil, err
	}

	title, err := normalizeTitle(req.Title)
	if err != nil {
		return nil, err
	}
	session.Title = title
	session.UpdatedAt = time.Now()

	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	return sessionToResponse(session), nil
}

func (c *chatSessionService) Delete(ctx context.Context, userIdx, sessionId int64) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	if _, err := c.findOwnedSession(ctx, uow, userIdx, sessionId); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.MessageFeedbackRepository().DeleteBySessionId(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.ChatMessageRepository().DeleteBySessionId(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		return err
	}

	return uow.Commit()
}

// findOwnedSession loads a session and enforces ownership.
func (c *chatSessionService) findOwnedSession(ctx context.Context, uow unitofwork.UnitOfWork, userIdx, sessionId int64) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.BySessionID{ChatSessionId: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("chat session not found")
	}
	if session.UserIdx != userIdx {
		return nil, apperror.Forbidden("chat session belongs to another user")
	}
	return session, nil
}
