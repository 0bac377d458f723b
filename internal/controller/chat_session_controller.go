package controller

import (
	"strconv"

	"study-assistant-be/internal/apperror"
	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/pkg/serverutils"
	"study-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatSessionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Recent(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Messages(ctx *fiber.Ctx) error
	UpdateTitle(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	DeleteMessage(ctx *fiber.Ctx) error
	UpsertFeedback(ctx *fiber.Ctx) error
	GetFeedback(ctx *fiber.Ctx) error
}

type chatSessionController struct {
	sessionService  service.IChatSessionService
	messageService  service.IChatMessageService
	feedbackService service.IFeedbackService
}

func NewChatSessionController(
	sessionService service.IChatSessionService,
	messageService service.IChatMessageService,
	feedbackService service.IFeedbackService,
) IChatSessionController {
	return &chatSessionController{
		sessionService:  sessionService,
		messageService:  messageService,
		feedbackService: feedbackService,
	}
}

func (c *chatSessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("sessions", c.Create)
	h.Get("sessions", c.List)
	h.Get("sessions/recent", c.Recent)
	h.Get("sessions/search", c.Search)
	h.Get("sessions/:id", c.Show)
	h.Get("sessions/:id/messages", c.Messages)
	h.Put("sessions/:id/title", c.UpdateTitle)
	h.Delete("sessions/:id", c.Delete)
	h.Delete("messages/:id", c.DeleteMessage)
	h.Post("feedback", c.UpsertFeedback)
	h.Get("sessions/:id/messages/:messageId/feedback", c.GetFeedback)
}

// pathID parses a positive int64 path parameter.
func pathID(ctx *fiber.Ctx, name string) (int64, error) {
	raw := ctx.Params(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.InvalidArgument("invalid " + name + " parameter")
	}
	return id, nil
}

func (c *chatSessionController) Create(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)

	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.Create(ctx.Context(), userIdx, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *chatSessionController) List(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)

	var projectId *int64
	if raw := ctx.Query("project_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return apperror.InvalidArgument("invalid project_id parameter")
		}
		projectId = &id
	}

	res, err := c.sessionService.ListByOwner(ctx.Context(), userIdx, projectId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *chatSessionController) Recent(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)
	limit := ctx.QueryInt("limit", 0)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.sessionService.ListRecent(ctx.Context(), userIdx, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list recent sessions", res))
}

func (c *chatSessionController) Search(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)
	query := ctx.Query("q")
	limit := ctx.QueryInt("limit", 0)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.sessionService.SearchByTitle(ctx.Context(), userIdx, query, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search sessions", res))
}

func (c *chatSessionController) Show(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)
	sessionId, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.sessionService.GetByID(ctx.Context(), userIdx, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *chatSessionController) Messages(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)
	sessionId, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	limit := ctx.QueryInt("limit", 0)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.messageService.List(ctx.Context(), userIdx, sessionId, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list messages", res))
}

func (c *chatSessionController) UpdateTitle(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)
	sessionId, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateSessionTitleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.UpdateTitle(ctx.Context(), userIdx, sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update title", res))
}

func (c *chatSessionController) Delete(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)
	sessionId, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.sessionService.Delete(ctx.Context(), userIdx, sessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete session", struct{}{}))
}

func (c *chatSessionController) DeleteMessage(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)
	messageId, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.messageService.DeleteOne(ctx.Context(), userIdx, messageId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete message", struct{}{}))
}

func (c *chatSessionController) UpsertFeedback(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)

	var req dto.FeedbackUpsertRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.feedbackService.Upsert(ctx.Context(), userIdx, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save feedback", res))
}

func (c *chatSessionController) GetFeedback(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)
	sessionId, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	messageId, err := pathID(ctx, "messageId")
	if err != nil {
		return err
	}

	res, err := c.feedbackService.Get(ctx.Context(), userIdx, sessionId, messageId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get feedback", res))
}
