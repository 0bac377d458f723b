package contract

import (
	"context"

	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/repository/specification"
)

type MemoRepository interface {
	Create(ctx context.Context, memo *entity.Memo) error
	Update(ctx context.Context, memo *entity.Memo) error
	Delete(ctx context.Context, id int64) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Memo, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Memo, error)
}
