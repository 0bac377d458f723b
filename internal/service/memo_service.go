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

type IMemoService interface {
	Create(ctx context.Context, userIdx int64, req *dto.CreateMemoRequest) (*dto.MemoResponse, error)
	List(ctx context.Context, userIdx int64) ([]*dto.MemoResponse, error)
	Update(ctx context.Context, userIdx, memoId int64, req *dto.UpdateMemoRequest) (*dto.MemoResponse, error)
	Delete(ctx context.Context, userIdx, memoId int64) error
}

type memoService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewMemoService(uowFactory unitofwork.RepositoryFactory) IMemoService {
	return &memoService{
		uowFactory: uowFactory,
	}
}

func memoToResponse(memo *entity.Memo) *dto.MemoResponse {
	return &dto.MemoResponse{
		MemoId:    memo.MemoId,
		Content:   memo.Content,
		CreatedAt: memo.CreatedAt,
		UpdatedAt: memo.UpdatedAt,
	}
}

func (s *memoService) findOwnedMemo(ctx context.Context, uow unitofwork.UnitOfWork, userIdx, memoId int64) (*entity.Memo, error) {
	memo, err := uow.MemoRepository().FindOne(ctx, specification.ByMemoID{MemoId: memoId})
	if err != nil {
		return nil, err
	}
	if memo == nil {
		return nil, apperror.NotFound("memo not found")
	}
	if memo.UserIdx != userIdx {
		return nil, apperror.Forbidden("memo belongs to another user")
	}
	return memo, nil
}

func (s *memoService) Create(ctx context.Context, userIdx int64, req *dto.CreateMemoRequest) (*dto.MemoResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	memo := entity.Memo{
		UserIdx:   userIdx,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uow.MemoRepository().Create(ctx, &memo); err != nil {
		return nil, err
	}

	return memoToResponse(&memo), nil
}

func (s *memoService) List(ctx context.Context, userIdx int64) ([]*dto.MemoResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	memos, err := uow.MemoRepository().FindAll(ctx,
		specification.OwnedBy{UserIdx: userIdx},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MemoResponse, 0, len(memos))
	for _, memo := range memos {
		result = append(result, memoToResponse(memo))
	}
	return result, nil
}

func (s *memoService) Update(ctx context.Context, userIdx, memoId int64, req *dto.UpdateMemoRequest) (*dto.MemoResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	memo, err := s.findOwnedMemo(ctx, uow, userIdx, memoId)
	if err != nil {
		return nil, err
	}

	memo.Content = req.Content
	memo.UpdatedAt = time.Now()
	if err := uow.MemoRepository().Update(ctx, memo); err != nil {
		return nil, err
	}

	return memoToResponse(memo), nil
}

func (s *memoService) Delete(ctx context.Context, userIdx, memoId int64) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findOwnedMemo(ctx, uow, userIdx, memoId); err != nil {
		return err
	}

	return uow.MemoRepository().Delete(ctx, memoId)
}
