package controller

import (
	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/pkg/serverutils"
	"study-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProjectController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	AttachSession(ctx *fiber.Ctx) error
	DetachSession(ctx *fiber.Ctx) error
}

type projectController struct {
	projectService service.IProjectService
}

func NewProjectController(projectService service.IProjectService) IProjectController {
	return &projectController{
		projectService: projectService,
	}
}

func (c *projectController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/project/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Put(":id/sessions/:sessionId", c.AttachSession)
	h.Delete("sessions/:sessionId", c.DetachSession)
}

func (c *projectController) Create(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)

	var req dto.CreateProjectRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.projectService.Create(ctx.Context(), userIdx, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create project", res))
}

func (c *projectController) List(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)

	res, err := c.projectService.List(ctx.Context(), userIdx)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list projects", res))
}

func (c *projectController) Show(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)
	projectId, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.projectService.Show(ctx.Context(), userIdx, projectId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show project", res))
}

func (c *projectController) Update(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)
	projectId, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateProjectRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.projectService.Update(ctx.Context(), userIdx, projectId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update project", res))
}

func (c *projectController) Delete(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)
	projectId, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.projectService.Delete(ctx.Context(), userIdx, projectId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete project", struct{}{}))
}

func (c *projectController) AttachSession(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)
	projectId, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	sessionId, err := pathID(ctx, "sessionId")
	if err != nil {
		return err
	}

	if err := c.projectService.AttachSession(ctx.Context(), userIdx, projectId, sessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success attach session", struct{}{}))
}

func (c *projectController) DetachSession(ctx *fiber.Ctx) error {
	userIdx := serverutils.UserIdx(ctx)
	sessionId, err := pathID(ctx, "sessionId")
	if err != nil {
		return err
	}

	if err := c.projectService.DetachSession(ctx.Context(), userIdx, sessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success detach session", struct{}{}))
}
