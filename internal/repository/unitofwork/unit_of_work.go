package unitofwork

import (
	"context"

	"study-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ProjectRepository() contract.ProjectRepository
	MemoRepository() contract.MemoRepository

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	MessageFeedbackRepository() contract.MessageFeedbackRepository
}
