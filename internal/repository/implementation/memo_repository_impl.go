package implementation

import (
	"context"
	"errors"

	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/mapper"
	"study-assistant-be/internal/model"
	"study-assistant-be/internal/repository/contract"
	"study-assistant-be/internal/repository/specification"

	"gorm.io/gorm"
)

type MemoRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MemoMapper
}

func NewMemoRepository(db *gorm.DB) contract.MemoRepository {
	return &MemoRepositoryImpl{
		db:     db,
		mapper: mapper.NewMemoMapper(),
	}
}

func (r *MemoRepositoryImpl) Create(ctx context.Context, memo *entity.Memo) error {
	m := r.mapper.ToModel(memo)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*memo = *r.mapper.ToEntity(m)
	return nil
}

func (r *MemoRepositoryImpl) Update(ctx context.Context, memo *entity.Memo) error {
	m := r.mapper.ToModel(memo)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*memo = *r.mapper.ToEntity(m)
	return nil
}

func (r *MemoRepositoryImpl) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Memo{}, id).Error
}

func (r *MemoRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Memo, error) {
	var m model.Memo
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MemoRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Memo, error) {
	var models []*model.Memo
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Memo, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
