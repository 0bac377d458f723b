package dto

type TranslateRequest struct {
	ChatSessionId *int64 `json:"chat_session_id" validate:"omitempty,gt=0"`
	Text          string `json:"text" validate:"required,max=1000"`
	SourceLang    string `json:"source_lang" validate:"omitempty"`
	TargetLang    string `json:"target_lang" validate:"required"`
}

type TranslateData struct {
	TranslatedText string `json:"translated_text"`
	ChatSessionId  int64  `json:"chat_session_id"`
}
