package mapper

import (
	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}

	return &entity.User{
		UserIdx:            u.UserIdx,
		UserId:             u.UserId,
		Nickname:           u.Nickname,
		Email:              u.Email,
		PasswordHash:       u.PasswordHash,
		UserLang:           u.UserLang,
		ProfileImageURL:    u.ProfileImageURL,
		BackgroundImageURL: u.BackgroundImageURL,
		IsDarkMode:         u.IsDarkMode,
		IsActive:           u.IsActive,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
		DeletedAt:          u.DeletedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}

	return &model.User{
		UserIdx:            u.UserIdx,
		UserId:             u.UserId,
		Nickname:           u.Nickname,
		Email:              u.Email,
		PasswordHash:       u.PasswordHash,
		UserLang:           u.UserLang,
		ProfileImageURL:    u.ProfileImageURL,
		BackgroundImageURL: u.BackgroundImageURL,
		IsDarkMode:         u.IsDarkMode,
		IsActive:           u.IsActive,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
		DeletedAt:          u.DeletedAt,
	}
}

func (m *UserMapper) TokenToEntity(t *model.PasswordResetToken) *entity.PasswordResetToken {
	if t == nil {
		return nil
	}

	return &entity.PasswordResetToken{
		Id:        t.Id,
		UserIdx:   t.UserIdx,
		TokenHash: t.TokenHash,
		ExpiresAt: t.ExpiresAt,
		UsedAt:    t.UsedAt,
		CreatedAt: t.CreatedAt,
	}
}

func (m *UserMapper) TokenToModel(t *entity.PasswordResetToken) *model.PasswordResetToken {
	if t == nil {
		return nil
	}

	return &model.PasswordResetToken{
		Id:        t.Id,
		UserIdx:   t.UserIdx,
		TokenHash: t.TokenHash,
		ExpiresAt: t.ExpiresAt,
		UsedAt:    t.UsedAt,
		CreatedAt: t.CreatedAt,
	}
}
