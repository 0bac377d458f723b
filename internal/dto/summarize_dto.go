package dto

type SummarizeRequest struct {
	ChatSessionId *int64 `json:"chat_session_id" validate:"omitempty,gt=0"`
	Text          string `json:"text" validate:"required,max=10000"`
}

type SummarizeData struct {
	SummarizedText string `json:"summarized_text"`
	ChatSessionId  int64  `json:"chat_session_id"`
}
