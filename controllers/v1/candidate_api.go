package apiv1

import (
	"hr-pipeline-backend/controllers"
	candidatehandler "hr-pipeline-backend/lib/candidate"
	candidatehistoryhandler "hr-pipeline-backend/lib/candidate-history"
	"hr-pipeline-backend/middleware"
	apimodels "hr-pipeline-backend/models/api"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type candidateApiController struct {
	controllers.BaseAPIController
}

func InitCandidateApiRouters(app *fiber.App) {
	controller := candidateApiController{}
	app.Route("candidate", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Post("list", controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Get("transitions", controller.transitions) // доступные этапы для перевода
			idRoute.Put("transition", controller.transition)   // перевод на этап
			idRoute.Post("history", controller.history)
			idRoute.Post("reply", controller.reply) // кандидат ответил на письмо (интеграция с почтой)
		})
	})
}

// @Summary Добавление кандидата
// @Tags Кандидаты
// @Description Кандидат добавляется на этап Applied
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		candidateapimodels.CandidateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/candidate [post]
func (c *candidateApiController) create(ctx *fiber.Ctx) error {
	var payload candidateapimodels.CandidateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := candidatehandler.Instance.Create(middleware.GetUserSpace(ctx), actor(ctx), payload)
	if err != nil {
		return c.sendCandidateError(ctx, err, "Ошибка добавления кандидата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список кандидатов вакансии
// @Tags Кандидаты
// @Description Список кандидатов вакансии с фильтром по этапу
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		candidateapimodels.CandidateFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]candidateapimodels.CandidateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/candidate/list [post]
func (c *candidateApiController) list(ctx *fiber.Ctx) error {
	var payload candidateapimodels.CandidateFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := candidatehandler.Instance.List(middleware.GetUserSpace(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка кандидатов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Получение по ИД
// @Tags Кандидаты
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.CandidateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/candidate/{id} [get]
func (c *candidateApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := candidatehandler.Instance.GetByID(middleware.GetUserSpace(ctx), id)
	if err != nil {
		return c.sendCandidateError(ctx, err, "Ошибка получения кандидата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Доступные этапы
// @Tags Кандидаты
// @Description Этапы, на которые можно перевести кандидата с учетом воронки вакансии
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.AvailableTransitionsView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/candidate/{id}/transitions [get]
func (c *candidateApiController) transitions(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := candidatehandler.Instance.AvailableTransitions(middleware.GetUserSpace(ctx), id)
	if err != nil {
		return c.sendCandidateError(ctx, err, "Ошибка получения доступных этапов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Перевод на этап
// @Tags Кандидаты
// @Description Перевод кандидата на этап. Если письмо не отправлено, этап все равно меняется, а в message возвращается предупреждение
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body				body		candidateapimodels.TransitionRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.TransitionResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/candidate/{id}/transition [put]
func (c *candidateApiController) transition(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload candidateapimodels.TransitionRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := candidatehandler.Instance.Transition(ctx.UserContext(), middleware.GetUserSpace(ctx), actor(ctx), id, payload)
	if err != nil {
		return c.sendCandidateError(ctx, err, "Ошибка перевода кандидата на этап")
	}
	if result.Warning != "" {
		return ctx.Status(fiber.StatusOK).JSON(apimodels.NewWarning(result, result.Warning))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary История кандидата
// @Tags Кандидаты
// @Description История действий по кандидату
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body				body		candidateapimodels.HistoryFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]candidateapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/candidate/{id}/history [post]
func (c *candidateApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload candidateapimodels.HistoryFilter
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := candidatehandler.Instance.History(middleware.GetUserSpace(ctx), id, payload)
	if err != nil {
		return c.sendCandidateError(ctx, err, "Ошибка получения истории кандидата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Ответ кандидата
// @Tags Кандидаты
// @Description Отметка, что кандидат ответил на письмо. Запланированные напоминания не отправляются
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body				body		candidateapimodels.ReplyData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/candidate/{id}/reply [post]
func (c *candidateApiController) reply(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload candidateapimodels.ReplyData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = candidatehandler.Instance.RecordReply(middleware.GetUserSpace(ctx), id, payload)
	if err != nil {
		return c.sendCandidateError(ctx, err, "Ошибка сохранения ответа кандидата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

func (c *candidateApiController) sendCandidateError(ctx *fiber.Ctx, err error, msg string) error {
	switch {
	case errors.Is(err, candidatehandler.ErrCandidateNotFound), errors.Is(err, candidatehandler.ErrJobNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, candidatehandler.ErrStageConflict):
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(err.Error()))
	case candidatehandler.IsUserError(err):
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return c.SendError(ctx, c.GetLogger(ctx), err, msg)
}

func actor(ctx *fiber.Ctx) candidatehistoryhandler.Actor {
	return candidatehistoryhandler.Actor{
		ID:   middleware.GetUserID(ctx),
		Name: middleware.GetUserName(ctx),
	}
}
