package dto

type SpeechData struct {
	Transcript    string `json:"transcript"`
	ChatSessionId int64  `json:"chat_session_id"`
}
