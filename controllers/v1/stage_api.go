package apiv1

import (
	"hr-pipeline-backend/controllers"
	jobhandler "hr-pipeline-backend/lib/job"
	"hr-pipeline-backend/lib/stages"
	apimodels "hr-pipeline-backend/models/api"
	stageapimodels "hr-pipeline-backend/models/api/stage"

	"github.com/gofiber/fiber/v2"
)

type stageApiController struct {
	controllers.BaseAPIController
}

func InitStageApiRouters(app *fiber.App) {
	controller := stageApiController{}
	app.Route("stage", func(router fiber.Router) {
		router.Get("list", controller.list)
		router.Post("resolve", controller.resolve)
	})
}

// @Summary Каталог этапов
// @Tags Этапы
// @Description Каталог этапов воронки в порядке по умолчанию
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]stageapimodels.StageView}
// @Failure 403
// @router /api/v1/space/stage/list [get]
func (c *stageApiController) list(ctx *fiber.Ctx) error {
	catalog := stages.Catalog()
	result := make([]stageapimodels.StageView, 0, len(catalog))
	for _, stage := range catalog {
		result = append(result, stage.ToModelView())
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Сопоставление этапов
// @Tags Этапы
// @Description Как названия этапов воронки будут сопоставлены с каталогом
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		stageapimodels.ResolveRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]stageapimodels.ResolvedLabel}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/space/stage/resolve [post]
func (c *stageApiController) resolve(ctx *fiber.Ctx) error {
	var payload stageapimodels.ResolveRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(jobhandler.PreviewFlow(payload.Stages)))
}
