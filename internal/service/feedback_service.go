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

type IFeedbackService interface {
	Upsert(ctx context.Context, userIdx int64, req *dto.FeedbackUpsertRequest) (*dto.FeedbackResponse, error)
	Get(ctx context.Context, userIdx, sessionId, messageId int64) (*dto.FeedbackResponse, error)
}

type feedbackService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewFeedbackService(uowFactory unitofwork.RepositoryFactory) IFeedbackService {
	return &feedbackService{
		uowFactory: uowFactory,
	}
}

func ratingValue(rating string) (int16, error) {
	switch rating {
	case "like":
		return entity.RatingLike, nil
	case "dislike":
		return entity.RatingDislike, nil
	}
	return 0, apperror.InvalidArgument("rating must be like or dislike")
}

func feedbackToResponse(fb *entity.MessageFeedback) *dto.FeedbackResponse {
	return &dto.FeedbackResponse{
		FeedbackId:    fb.FeedbackId,
		ChatSessionId: fb.ChatSessionId,
		MessageId:     fb.MessageId,
		Rating:        fb.Rating,
		CreatedAt:     fb.CreatedAt,
	}
}

func (c *feedbackService) Upsert(ctx context.Context, userIdx int64, req *dto.FeedbackUpsertRequest) (*dto.FeedbackResponse, error) {
	rating, err := ratingValue(req.Rating)
	if err != nil {
		return nil, err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.BySessionID{ChatSessionId: req.ChatSessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("chat session not found")
	}
	if session.UserIdx != userIdx {
		return nil, apperror.Forbidden("chat session belongs to another user")
	}

	msg, err := uow.ChatMessageRepository().FindOne(ctx,
		specification.ByMessageID{MessageId: req.MessageId},
		specification.BySessionID{ChatSessionId: req.ChatSessionId},
	)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, apperror.NotFound("message not found in this session")
	}

	feedback := entity.MessageFeedback{
		ChatSessionId: req.ChatSessionId,
		MessageId:     req.MessageId,
		Rating:        rating,
		CreatedAt:     time.Now(),
	}
	if err := uow.MessageFeedbackRepository().Upsert(ctx, &feedback); err != nil {
		return nil, err
	}

	return feedbackToResponse(&feedback), nil
}

func (c *feedbackService) Get(ctx context.Context, userIdx, sessionId, messageId int64) (*dto.FeedbackResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

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

	feedback, err := uow.MessageFeedbackRepository().FindBySessionAndMessage(ctx, sessionId, messageId)
	if err != nil {
		return nil, err
	}
	if feedback == nil {
		return nil, nil
	}

	return feedbackToResponse(feedback), nil
}
