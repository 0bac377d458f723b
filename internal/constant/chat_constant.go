package constant

// Message roles.
const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
)

// Feature types tag each message pair with the operation that produced it.
const (
	FeatureTypeTranslate    = "translate"
	FeatureTypeSummarize    = "summarize"
	FeatureTypeTerm         = "term"
	FeatureTypeSpeech       = "speech"
	FeatureTypePdfSummarize = "pdf_summarize"
	FeatureTypePdfTranslate = "pdf_translate"
	FeatureTypeChat         = "chat"
)

// Supported UI languages.
const (
	LangKorean  = "ko"
	LangEnglish = "en"
	LangUzbek   = "uz"
)

const DefaultLang = LangEnglish

// Session listing pagination bounds.
const (
	SessionListDefaultLimit = 20
	SessionListMaxLimit     = 100
)

// Title generation limits.
const (
	TitleMaxChars           = 40
	TitlePromptMessageCount = 4
	TitlePromptContentLimit = 400
)

const TitleGenerationTopic = "CHAT_TITLE_GENERATE"

const TitleSystemPrompt = `You are a chat title generator.
Create very short, clear titles for chats.
Use the SAME LANGUAGE as the user's message.
Output ONLY the title text - no quotes, emojis, or extra formatting.`

func IsValidFeatureType(ft string) bool {
	switch ft {
	case FeatureTypeTranslate, FeatureTypeSummarize, FeatureTypeTerm,
		FeatureTypeSpeech, FeatureTypePdfSummarize, FeatureTypePdfTranslate,
		FeatureTypeChat:
		return true
	}
	return false
}

func IsValidRole(role string) bool {
	return role == ChatMessageRoleUser || role == ChatMessageRoleAssistant
}

func IsValidLang(lang string) bool {
	return lang == LangKorean || lang == LangEnglish || lang == LangUzbek
}
