package apiv1

import (
	"hr-pipeline-backend/controllers"
	jobhandler "hr-pipeline-backend/lib/job"
	"hr-pipeline-backend/middleware"
	apimodels "hr-pipeline-backend/models/api"
	jobapimodels "hr-pipeline-backend/models/api/job"

	"github.com/gofiber/fiber/v2"
)

type hiringFlowApiController struct {
	controllers.BaseAPIController
}

func InitHiringFlowApiRouters(app *fiber.App) {
	controller := hiringFlowApiController{}
	app.Route("hiring-flow", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Get("list", controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
		})
	})
}

// @Summary Создание
// @Tags Шаблоны воронки
// @Description Создание шаблона воронки. В ответе этапы, которые не найдены в каталоге
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.HiringFlowData	true	"request body"
// @Success 200 {object} apimodels.Response{data=jobapimodels.SaveFlowResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router  /api/v1/space/hiring-flow [post]
func (c *hiringFlowApiController) create(ctx *fiber.Ctx) error {
	var payload jobapimodels.HiringFlowData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := jobhandler.Instance.CreateFlow(middleware.GetUserSpace(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания шаблона воронки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Список
// @Tags Шаблоны воронки
// @Description Список шаблонов воронки
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]jobapimodels.HiringFlowView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/hiring-flow/list [get]
func (c *hiringFlowApiController) list(ctx *fiber.Ctx) error {
	list, err := jobhandler.Instance.ListFlows(middleware.GetUserSpace(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка шаблонов воронки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Получение по ИД
// @Tags Шаблоны воронки
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=jobapimodels.HiringFlowView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/hiring-flow/{id} [get]
func (c *hiringFlowApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := jobhandler.Instance.GetFlowByID(middleware.GetUserSpace(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения шаблона воронки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Обновление
// @Tags Шаблоны воронки
// @Description Обновление шаблона воронки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.HiringFlowData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=jobapimodels.SaveFlowResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/hiring-flow/{id} [put]
func (c *hiringFlowApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload jobapimodels.HiringFlowData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, hMsg, err := jobhandler.Instance.UpdateFlow(middleware.GetUserSpace(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения шаблона воронки")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Удаление
// @Tags Шаблоны воронки
// @Description Удаление шаблона воронки, вакансии переходят на каталог этапов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/hiring-flow/{id} [delete]
func (c *hiringFlowApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = jobhandler.Instance.DeleteFlow(middleware.GetUserSpace(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления шаблона воронки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
