package apiv1

import (
	"hr-pipeline-backend/controllers"
	notificationsettings "hr-pipeline-backend/lib/notification-settings"
	"hr-pipeline-backend/middleware"
	apimodels "hr-pipeline-backend/models/api"
	notificationapimodels "hr-pipeline-backend/models/api/notification"

	"github.com/gofiber/fiber/v2"
)

type notificationSettingsApiController struct {
	controllers.BaseAPIController
}

func InitNotificationSettingsApiRouters(app *fiber.App) {
	controller := notificationSettingsApiController{}
	app.Route("notification-settings", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Put("", controller.upsert)
		router.Delete(":id", controller.delete)
	})
}

// @Summary Список
// @Tags Уведомления кандидатов
// @Description Настройки писем при переводе на этап, для пространства или вакансии
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 notificationapimodels.NotificationSettingsFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]notificationapimodels.NotificationSettingView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/notification-settings/list [post]
func (c *notificationSettingsApiController) list(ctx *fiber.Ctx) error {
	var payload notificationapimodels.NotificationSettingsFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := notificationsettings.Instance.List(middleware.GetUserSpace(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения настроек уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Сохранение
// @Tags Уведомления кандидатов
// @Description Создание или изменение настройки для этапа
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 notificationapimodels.NotificationSettingData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/notification-settings [put]
func (c *notificationSettingsApiController) upsert(ctx *fiber.Ctx) error {
	var payload notificationapimodels.NotificationSettingData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, hMsg, err := notificationsettings.Instance.Upsert(middleware.GetUserSpace(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения настройки уведомлений")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Удаление
// @Tags Уведомления кандидатов
// @Description Удаление настройки, для вакансии начинает действовать настройка пространства
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/notification-settings/{id} [delete]
func (c *notificationSettingsApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = notificationsettings.Instance.Delete(middleware.GetUserSpace(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления настройки уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
