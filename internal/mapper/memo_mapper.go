package mapper

import (
	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/model"
)

type MemoMapper struct{}

func NewMemoMapper() *MemoMapper {
	return &MemoMapper{}
}

func (m *MemoMapper) ToEntity(memo *model.Memo) *entity.Memo {
	if memo == nil {
		return nil
	}

	return &entity.Memo{
		MemoId:    memo.MemoId,
		UserIdx:   memo.UserIdx,
		Content:   memo.Content,
		CreatedAt: memo.CreatedAt,
		UpdatedAt: memo.UpdatedAt,
	}
}

func (m *MemoMapper) ToModel(memo *entity.Memo) *model.Memo {
	if memo == nil {
		return nil
	}

	return &model.Memo{
		MemoId:    memo.MemoId,
		UserIdx:   memo.UserIdx,
		Content:   memo.Content,
		CreatedAt: memo.CreatedAt,
		UpdatedAt: memo.UpdatedAt,
	}
}
