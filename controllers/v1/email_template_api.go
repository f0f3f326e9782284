package apiv1

import (
	"hr-pipeline-backend/controllers"
	emailtemplate "hr-pipeline-backend/lib/email-template"
	"hr-pipeline-backend/middleware"
	apimodels "hr-pipeline-backend/models/api"
	emailtemplateapimodels "hr-pipeline-backend/models/api/email-template"

	"github.com/gofiber/fiber/v2"
)

type emailTemplateApiController struct {
	controllers.BaseAPIController
}

func InitEmailTemplateApiRouters(app *fiber.App) {
	controller := emailTemplateApiController{}
	app.Route("email-template", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Get("list", controller.list)
		router.Get("variables", controller.variables)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Put("", controller.update)
			idRoute.Get("", controller.get)
			idRoute.Delete("", controller.delete)
		})
	})
}

// @Summary Создание
// @Tags Шаблоны писем
// @Description Создание шаблона письма кандидату
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 emailtemplateapimodels.EmailTemplateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router  /api/v1/space/email-template [post]
func (c *emailTemplateApiController) create(ctx *fiber.Ctx) error {
	var payload emailtemplateapimodels.EmailTemplateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, hMsg, err := emailtemplate.Instance.Create(middleware.GetUserSpace(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления шаблона письма")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список
// @Tags Шаблоны писем
// @Description Список шаблонов писем
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]emailtemplateapimodels.EmailTemplateView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/email-template/list [get]
func (c *emailTemplateApiController) list(ctx *fiber.Ctx) error {
	list, err := emailtemplate.Instance.List(middleware.GetUserSpace(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка шаблонов писем")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Переменные шаблона
// @Tags Шаблоны писем
// @Description Переменные, доступные в теме и тексте письма
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]emailtemplateapimodels.TemplateVariable}
// @Failure 403
// @router /api/v1/space/email-template/variables [get]
func (c *emailTemplateApiController) variables(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(emailtemplate.GetVariables()))
}

// @Summary Обновление
// @Tags Шаблоны писем
// @Description Обновление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 emailtemplateapimodels.EmailTemplateData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/email-template/{id} [put]
func (c *emailTemplateApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload emailtemplateapimodels.EmailTemplateData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := emailtemplate.Instance.Update(middleware.GetUserSpace(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения шаблона письма")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Получение по ИД
// @Tags Шаблоны писем
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=emailtemplateapimodels.EmailTemplateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/email-template/{id} [get]
func (c *emailTemplateApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := emailtemplate.Instance.GetByID(middleware.GetUserSpace(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения шаблона письма")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удаление
// @Tags Шаблоны писем
// @Description Удаление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/email-template/{id} [delete]
func (c *emailTemplateApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = emailtemplate.Instance.Delete(middleware.GetUserSpace(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления шаблона письма")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
