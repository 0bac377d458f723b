package controller

import (
	"io"
	"strconv"

	"study-assistant-be/internal/apperror"
	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/pkg/serverutils"
	"study-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// IFeatureController exposes the LLM-backed study features. Every endpoint
// records the exchange through the chat log on success.
type IFeatureController interface {
	RegisterRoutes(r fiber.Router)
	Translate(ctx *fiber.Ctx) error
	Summarize(ctx *fiber.Ctx) error
	ExplainTerm(ctx *fiber.Ctx) error
	Speech(ctx *fiber.Ctx) error
	ChatMessage(ctx *fiber.Ctx) error
}

type featureController struct {
	translateService service.ITranslateService
	summarizeService service.ISummarizeService
	termService      service.ITermService
	speechService    service.ISpeechService
	chatService      service.IChatService
	rateLimiter      fiber.Handler
}

func NewFeatureController(
	translateService service.ITranslateService,
	summarizeService service.ISummarizeService,
	termService service.ITermService,
	speechService service.ISpeechService,
	chatService service.IChatService,
	rateLimiter fiber.Handler,
) IFeatureController {
	return &featureController{
		translateService: translateService,
		summarizeService: summarizeService,
		termService:      termService,
		speechService:    speechService,
		chatService:      chatService,
		rateLimiter:      rateLimiter,
	}
}

func (c *featureController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/")
	h.Use(serverutils.JwtMiddleware)
	if c.rateLimiter != nil {
		h.Use(c.rateLimiter)
	}
	h.Post("translate", c.Translate)
	h.Post("summarize", c.Summarize)
	h.Post("term/explain", c.ExplainTerm)
	h.Post("speech", c.Speech)
	h.Post("chat/message", c.ChatMessage)
}

func (c *featureController) Translate(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)

	var req dto.TranslateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.translateService.Translate(ctx.Context(), userIdx, req.ChatSessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success translate", res))
}

func (c *featureController) Summarize(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)

	var req dto.SummarizeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.summarizeService.Summarize(ctx.Context(), userIdx, req.ChatSessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success summarize", res))
}

func (c *featureController) ExplainTerm(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)

	var req dto.TermExplainRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.termService.Explain(ctx.Context(), userIdx, req.ChatSessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success explain term", res))
}

func (c *featureController) Speech(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return apperror.InvalidArgument("audio file is required")
	}
	if fileHeader.Size > service.SpeechMaxFileSize {
		return apperror.InvalidArgument("audio file exceeds the 5MB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	var sessionId *int64
	if raw := ctx.FormValue("chat_session_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return apperror.InvalidArgument("invalid chat_session_id parameter")
		}
		sessionId = &id
	}
	lang := ctx.FormValue("lang")

	res, err := c.speechService.Transcribe(ctx.Context(), userIdx, sessionId, fileHeader.Filename, audio, lang)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success transcribe audio", res))
}

func (c *featureController) ChatMessage(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendMessage(ctx.Context(), userIdx, req.ChatSessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success chat", res))
}
