package controller

import (
	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/pkg/serverutils"
	"study-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMemoController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type memoController struct {
	memoService service.IMemoService
}

func NewMemoController(memoService service.IMemoService) IMemoController {
	return &memoController{
		memoService: memoService,
	}
}

func (c *memoController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/memo/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *memoController) Create(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)

	var req dto.CreateMemoRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.memoService.Create(ctx.Context(), userIdx, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create memo", res))
}

func (c *memoController) List(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)

	res, err := c.memoService.List(ctx.Context(), userIdx)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list memos", res))
}

func (c *memoController) Update(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)
	memoId, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateMemoRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.memoService.Update(ctx.Context(), userIdx, memoId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update memo", res))
}

func (c *memoController) Delete(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)
	memoId, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.memoService.Delete(ctx.Context(), userIdx, memoId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete memo", struct{}{}))
}
