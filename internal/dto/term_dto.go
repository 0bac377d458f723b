package dto

type TermExplainRequest struct {
	ChatSessionId *int64 `json:"chat_session_id" validate:"omitempty,gt=0"`
	Term          string `json:"term" validate:"required,max=200"`
	TargetLang    string `json:"target_lang" validate:"required,oneof=ko en uz"`
	Context       string `json:"context" validate:"omitempty,max=2000"`
}

type TermExplainData struct {
	Term          string `json:"term"`
	Explanation   string `json:"explanation"`
	TargetLang    string `json:"target_lang"`
	Cached        bool   `json:"cached"`
	ChatSessionId int64  `json:"chat_session_id"`
}
