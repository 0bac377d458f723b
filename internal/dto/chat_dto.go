package dto

import "time"

type CreateSessionRequest struct {
	ProjectId *int64  `json:"project_id"`
	Title     *string `json:"title" validate:"omitempty,max=40"`
	UserLang  string  `json:"user_lang" validate:"omitempty,oneof=ko en uz"`
}

type ChatSessionResponse struct {
	ChatSessionId int64     `json:"chat_session_id"`
	ProjectId     *int64    `json:"project_id,omitempty"`
	Title         *string   `json:"title"`
	UserLang      string    `json:"user_lang"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ChatMessageResponse struct {
	MessageId     int64     `json:"message_id"`
	ChatSessionId int64     `json:"chat_session_id"`
	Role          string    `json:"role"`
	FeatureType   string    `json:"feature_type"`
	Content       string    `json:"content"`
	SourceLang    *string   `json:"source_lang,omitempty"`
	TargetLang    *string   `json:"target_lang,omitempty"`
	RequestId     *string   `json:"request_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type UpdateSessionTitleRequest struct {
	Title *string `json:"title" validate:"omitempty,max=40"`
}

type SessionSearchData struct {
	Query   string                 `json:"query"`
	Results []*ChatSessionResponse `json:"results"`
	Total   int64                  `json:"total"`
	Limit   int                    `json:"limit"`
	Offset  int                    `json:"offset"`
}

type ChatRequest struct {
	ChatSessionId *int64 `json:"chat_session_id" validate:"omitempty,gt=0"`
	Message       string `json:"message" validate:"required"`
}

type ChatData struct {
	Response      string `json:"response"`
	ChatSessionId int64  `json:"chat_session_id"`
}

// TitleGenerateMessage is the payload published after a logged exchange to
// trigger best-effort title generation.
type TitleGenerateMessage struct {
	ChatSessionId int64 `json:"chat_session_id"`
}
