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

type IUserService interface {
	GetProfile(ctx context.Context, userIdx int64) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userIdx int64, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{
		uowFactory: uowFactory,
	}
}

func userToProfile(user *entity.User) *dto.UserProfileResponse {
	return &dto.UserProfileResponse{
		UserIdx:            user.UserIdx,
		UserId:             user.UserId,
		Nickname:           user.Nickname,
		Email:              user.Email,
		UserLang:           user.UserLang,
		ProfileImageURL:    user.ProfileImageURL,
		BackgroundImageURL: user.BackgroundImageURL,
		IsDarkMode:         user.IsDarkMode,
		CreatedAt:          user.CreatedAt,
	}
}

func (s *userService) GetProfile(ctx context.Context, userIdx int64) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByUserIdx{UserIdx: userIdx})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	return userToProfile(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userIdx int64, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByUserIdx{UserIdx: userIdx})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	if req.Email != nil && *req.Email != user.Email {
		existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: *req.Email})
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.Conflict("email already registered")
		}
		user.Email = *req.Email
	}
	if req.Nickname != nil {
		user.Nickname = *req.Nickname
	}
	if req.UserLang != nil {
		user.UserLang = *req.UserLang
	}
	if req.ProfileImageURL != nil {
		user.ProfileImageURL = req.ProfileImageURL
	}
	if req.BackgroundImageURL != nil {
		user.BackgroundImageURL = req.BackgroundImageURL
	}
	if req.IsDarkMode != nil {
		user.IsDarkMode = *req.IsDarkMode
	}
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	return userToProfile(user), nil
}
