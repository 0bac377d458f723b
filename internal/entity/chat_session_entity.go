package entity

import "time"

type ChatSession struct {
	ChatSessionId int64
	UserIdx       int64
	ProjectId     *int64
	Title         *string
	UserLang      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasTitle reports whether the session carries a non-empty title.
func (s *ChatSession) HasTitle() bool {
	return s.Title != nil && *s.Title != ""
}
