package specification

import "gorm.io/gorm"

type BySessionID struct {
	ChatSessionId int64
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.ChatSessionId)
}

type ByMessageID struct {
	MessageId int64
}

func (s ByMessageID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("message_id = ?", s.MessageId)
}

type ByProjectID struct {
	ProjectId int64
}

func (s ByProjectID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("project_id = ?", s.ProjectId)
}

// TitleSearch matches non-null titles by case-insensitive substring.
type TitleSearch struct {
	Query string
}

func (s TitleSearch) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("title IS NOT NULL").Where("title ILIKE ?", pattern)
}

// MessageOrder is the total order for messages: created_at with message_id
// as a tie-break so timestamp collisions still order deterministically.
type MessageOrder struct{}

func (s MessageOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, message_id ASC")
}
