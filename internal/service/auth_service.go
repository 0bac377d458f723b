package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"study-assistant-be/internal/apperror"
	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/pkg/logger"
	"study-assistant-be/internal/pkg/mailer"
	"study-assistant-be/internal/repository/specification"
	"study-assistant-be/internal/repository/unitofwork"
	"study-assistant-be/pkg/events"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = time.Hour

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error
	FindUserId(ctx context.Context, req *dto.FindUserIdRequest) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	ChangePassword(ctx context.Context, userIdx int64, req *dto.ChangePasswordRequest) error
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher EventPublisher
	logger         logger.ILogger
	jwtSecret      string
	tokenTTL       time.Duration
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	eventPublisher EventPublisher,
	logger logger.ILogger,
	jwtSecret string,
	tokenTTL time.Duration,
) IAuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &authService{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		logger:         logger,
		jwtSecret:      jwtSecret,
		tokenTTL:       tokenTTL,
	}
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("email already registered")
	}
	existing, err = uow.UserRepository().FindOne(ctx, specification.ByUserId{UserId: req.UserId})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("user id already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	lang := req.UserLang
	if lang == "" {
		lang = constant.DefaultLang
	}

	now := time.Now()
	user := &entity.User{
		UserId:       req.UserId,
		Nickname:     req.Nickname,
		Email:        req.Email,
		PasswordHash: string(hash),
		UserLang:     lang,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.UserRegistered(user.UserIdx, user.Email)); err != nil {
			s.logger.Warn("auth", "failed to publish registration event", map[string]interface{}{
				"user_idx": user.UserIdx,
				"error":    err.Error(),
			})
		}
	}

	return &dto.RegisterResponse{
		UserIdx:   user.UserIdx,
		UserId:    user.UserId,
		Nickname:  user.Nickname,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx,
		specification.ByUserId{UserId: req.UserId},
		specification.ActiveUsers{},
	)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthorized("invalid credentials")
	}

	claims := jwt.MapClaims{
		"user_idx": user.UserIdx,
		"user_id":  user.UserId,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.tokenTTL.Seconds()),
	}, nil
}

func (s *authService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx,
		specification.ByEmail{Email: req.Email},
		specification.ActiveUsers{},
	)
	if err != nil {
		return err
	}
	if user == nil {
		// Do not reveal whether the email exists.
		return nil
	}

	rawToken := uuid.New().String()
	resetToken := &entity.PasswordResetToken{
		UserIdx:   user.UserIdx,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(resetTokenTTL),
		CreatedAt: time.Now(),
	}
	if err := uow.UserRepository().CreatePasswordResetToken(ctx, resetToken); err != nil {
		return err
	}

	go func() {
		if err := s.emailService.SendResetToken(user.Email, rawToken); err != nil {
			s.logger.Error("auth", "failed to send reset email", map[string]interface{}{
				"user_idx": user.UserIdx,
				"error":    err.Error(),
			})
		}
	}()

	return nil
}

// FindUserId mails the login id registered under an email address. The
// response is identical whether or not the email is known, and a failed send
// is only logged, so the endpoint never leaks account existence.
func (s *authService) FindUserId(ctx context.Context, req *dto.FindUserIdRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx,
		specification.ByEmail{Email: req.Email},
		specification.ActiveUsers{},
	)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	if err := s.emailService.SendUserId(user.Email, user.Nickname, user.UserId); err != nil {
		s.logger.Error("auth", "failed to send user id email", map[string]interface{}{
			"user_idx": user.UserIdx,
			"error":    err.Error(),
		})
	}

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	token, err := uow.UserRepository().FindPasswordResetToken(ctx,
		specification.ByTokenHash{Hash: hashToken(req.Token)},
	)
	if err != nil {
		return err
	}
	if token == nil || token.IsUsed() || token.IsExpired(time.Now()) {
		return apperror.Unauthorized("invalid or expired reset token")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByUserIdx{UserIdx: token.UserIdx})
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound("user not found")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return err
	}

	now := time.Now()
	token.UsedAt = &now
	if err := uow.UserRepository().UpdatePasswordResetToken(ctx, token); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *authService) ChangePassword(ctx context.Context, userIdx int64, req *dto.ChangePasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByUserIdx{UserIdx: userIdx})
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound("user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return apperror.Unauthorized("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uow.UserRepository().Update(ctx, user)
}
