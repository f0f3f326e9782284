package candidatehandler

import (
	"context"
	candidatehistoryhandler "hr-pipeline-backend/lib/candidate-history"
	candidatestore "hr-pipeline-backend/lib/candidate/store"
	emailtemplate "hr-pipeline-backend/lib/email-template"
	emailtemplatestore "hr-pipeline-backend/lib/email-template/store"
	"hr-pipeline-backend/lib/events"
	jobhandler "hr-pipeline-backend/lib/job"
	"hr-pipeline-backend/lib/observability"
	"hr-pipeline-backend/lib/stages"
	"hr-pipeline-backend/lib/utils/lock"
	"hr-pipeline-backend/models"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
	dbmodels "hr-pipeline-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const sendWarning = "этап изменен, но письмо кандидату не отправлено"

func (i impl) Transition(ctx context.Context, spaceID string, user candidatehistoryhandler.Actor, id string, req candidateapimodels.TransitionRequest) (result candidateapimodels.TransitionResult, err error) {
	started := i.now()
	logger := log.WithFields(log.Fields{
		"space_id":     spaceID,
		"candidate_id": id,
		"target_stage": req.TargetStage,
	})
	rec, err := i.get(spaceID, id)
	if err != nil {
		return result, err
	}
	from := rec.CurrentStage
	defer func() {
		observability.RecordTransition(string(from), string(req.TargetStage), transitionResult(err), started)
	}()

	flow, err := i.getFlow(spaceID, rec.JobID)
	if err != nil {
		return result, err
	}
	if !stages.IsTransitionAllowed(from, req.TargetStage, flow.Stages, flow.AllowBackwardMovement) {
		logger.WithField("current_stage", from).Info("перевод на этап недоступен")
		return result, ErrInvalidTransition
	}
	overrideID, err := i.checkTemplates(spaceID, req)
	if err != nil {
		return result, err
	}

	success, err := lock.WithDelay(ctx, "candidate-stage-"+id, i.LockWait, func() error {
		return i.Transaction(func(store candidatestore.Provider, templateStore emailtemplatestore.Provider) error {
			if req.InlineTemplate != nil && !req.SkipAutoEmail {
				templateID, err := templateStore.Create(emailtemplate.BuildRecord(spaceID, *req.InlineTemplate))
				if err != nil {
					return errors.Wrap(err, "ошибка создания шаблона письма")
				}
				overrideID = &templateID
			}
			updated, err := store.SetStage(spaceID, id, from, req.TargetStage, i.now())
			if err != nil {
				return errors.Wrap(err, "ошибка изменения этапа кандидата")
			}
			if !updated {
				return ErrStageConflict
			}
			return nil
		})
	})
	if err != nil {
		if !errors.Is(err, ErrStageConflict) {
			logger.WithError(err).Error("ошибка перевода кандидата на этап")
		}
		return result, err
	}
	if !success {
		logger.Warn("не удалось дождаться завершения параллельного перевода кандидата")
		return result, ErrStageConflict
	}

	i.Histories.Save(spaceID, id, rec.JobID, user, dbmodels.HistoryTypeStageChange, candidatehistoryhandler.GetStageChange(from, req.TargetStage))
	i.publish(ctx, spaceID, rec.JobID, id, from, req.TargetStage, user, logger)

	result.Stage = req.TargetStage
	if req.SkipAutoEmail {
		return result, nil
	}
	i.notify(ctx, spaceID, id, flow, req.TargetStage, overrideID, &result, logger)
	return result, nil
}

// checkTemplates проверяет шаблон из запроса до изменения данных, возвращает выбранный оператором шаблон
func (i impl) checkTemplates(spaceID string, req candidateapimodels.TransitionRequest) (*string, error) {
	if req.SkipAutoEmail {
		return nil, nil
	}
	if req.InlineTemplate != nil {
		if err := emailtemplate.Validate(*req.InlineTemplate); err != nil {
			return nil, errors.Wrap(ErrInvalidTemplate, err.Error())
		}
		return nil, nil
	}
	if req.TemplateOverrideID == nil || *req.TemplateOverrideID == "" {
		return nil, nil
	}
	tpl, err := i.TemplateStore.GetByID(spaceID, *req.TemplateOverrideID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения шаблона письма")
	}
	if tpl == nil {
		return nil, ErrTemplateNotFound
	}
	return req.TemplateOverrideID, nil
}

// notify - письмо кандидату после перевода, ошибки не отменяют перевод и попадают в Warning
func (i impl) notify(ctx context.Context, spaceID, id string, flow *jobhandler.Flow, stage models.CandidateStage, overrideID *string,
	result *candidateapimodels.TransitionResult, logger *log.Entry) {
	settings, err := i.Settings.Load(spaceID, flow.JobID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения настроек уведомлений")
		result.Warning = sendWarning
		return
	}
	decision, err := i.Policy.Evaluate(settings, spaceID, stage, flow.JobID, overrideID)
	if err != nil {
		logger.WithError(err).Error("ошибка выбора шаблона письма")
		result.Warning = sendWarning
		return
	}
	if !decision.ShouldSend {
		logger.WithField("reason", decision.SkipReason).Debug("письмо кандидату не отправляется")
		return
	}
	result.TemplateID = decision.TemplateID
	dispatchID, err := i.Dispatcher.Send(ctx, spaceID, *decision.TemplateID, id, decision.DelayMinutes)
	if err != nil {
		logger.WithError(err).Warn("ошибка отправки письма кандидату")
		result.Warning = sendWarning + ": " + err.Error()
		return
	}
	result.EmailAccepted = true
	if decision.Reminder == nil || !decision.Reminder.Enabled {
		return
	}
	// напоминание отсчитывается от срока отправки основного письма
	err = i.Dispatcher.ScheduleReminder(ctx, dispatchID, decision.Reminder.AfterHours)
	if err != nil {
		result.Warning = "этап изменен, но напоминание кандидату не запланировано"
		return
	}
	result.ReminderScheduled = true
}

func (i impl) publish(ctx context.Context, spaceID, jobID, id string, from, to models.CandidateStage, user candidatehistoryhandler.Actor, logger *log.Entry) {
	event := events.StageChanged{
		Type:        models.EventCandidateStageChanged,
		SpaceID:     spaceID,
		CandidateID: id,
		JobID:       jobID,
		From:        string(from),
		To:          string(to),
		UserID:      user.ID,
	}
	if err := i.Publisher.Publish(ctx, models.EventCandidateStageChanged, event); err != nil {
		logger.WithError(err).Warn("ошибка публикации события о смене этапа")
	}
}

func transitionResult(err error) string {
	switch {
	case err == nil:
		return observability.ResultSuccess
	case errors.Is(err, ErrStageConflict):
		return observability.ResultConflict
	case IsUserError(err):
		return observability.ResultInvalid
	}
	return observability.ResultError
}
