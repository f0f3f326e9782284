// Package emaildispatcher отправляет письма кандидатам сразу или по расписанию,
// напоминания отправляются, только если кандидат не ответил и остался на том же этапе.
package emaildispatcher

import (
	"context"
	"hr-pipeline-backend/db"
	candidatehistoryhandler "hr-pipeline-backend/lib/candidate-history"
	candidatestore "hr-pipeline-backend/lib/candidate/store"
	emaildispatchstore "hr-pipeline-backend/lib/email-dispatcher/store"
	emailtemplate "hr-pipeline-backend/lib/email-template"
	emailtemplatestore "hr-pipeline-backend/lib/email-template/store"
	"hr-pipeline-backend/lib/observability"
	"hr-pipeline-backend/lib/smtp"
	"hr-pipeline-backend/lib/stages"
	"hr-pipeline-backend/lib/utils/helpers"
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// Send - письмо по шаблону, delayMinutes == 0 - отправка сразу. Возвращает id письма для напоминания
	Send(ctx context.Context, spaceID, templateID, candidateID string, delayMinutes int) (dispatchID string, err error)
	// ScheduleReminder - напоминание через afterHours после срока отправки письма dispatchID
	ScheduleReminder(ctx context.Context, dispatchID string, afterHours int) error
	// ProcessDue отправляет письма, срок которых наступил
	ProcessDue(ctx context.Context, batchSize int)
}

// ReplyChecker - признак ответа кандидата, поставляется интеграцией с почтой
type ReplyChecker interface {
	HasReply(spaceID, candidateID string, since time.Time) (bool, error)
}

type HistoryWriter interface {
	Save(spaceID, candidateID, jobID string, user candidatehistoryhandler.Actor, action dbmodels.ActionType, changes dbmodels.CandidateChanges)
}

var Instance Provider

type Deps struct {
	Store          emaildispatchstore.Provider
	CandidateStore candidatestore.Provider
	TemplateStore  emailtemplatestore.Provider
	Sender         smtp.Provider
	Replies        ReplyChecker
	History        HistoryWriter
	SenderEmail    string
}

func NewHandler(senderEmail string) {
	Instance = NewInstance(Deps{
		Store:          emaildispatchstore.NewInstance(db.DB),
		CandidateStore: candidatestore.NewInstance(db.DB),
		TemplateStore:  emailtemplatestore.NewInstance(db.DB),
		Sender:         smtp.Instance,
		Replies:        candidatehistoryhandler.Instance,
		History:        candidatehistoryhandler.Instance,
		SenderEmail:    senderEmail,
	})
}

func NewInstance(deps Deps) Provider {
	return &impl{
		Deps: deps,
		now:  time.Now,
	}
}

type impl struct {
	Deps
	now func() time.Time
}

func (i impl) Send(ctx context.Context, spaceID, templateID, candidateID string, delayMinutes int) (dispatchID string, err error) {
	logger := log.WithFields(log.Fields{
		"space_id":     spaceID,
		"template_id":  templateID,
		"candidate_id": candidateID,
	})
	candidate, err := i.CandidateStore.GetByID(spaceID, candidateID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения кандидата")
		return "", err
	}
	if candidate == nil {
		return "", errors.New("кандидат не найден")
	}
	rec := dbmodels.EmailDispatch{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		CandidateID: candidateID,
		TemplateID:  templateID,
		Kind:        models.DispatchKindTransition,
		Stage:       candidate.CurrentStage,
		Status:      models.DispatchStatusPending,
		ScheduledAt: i.now().Add(time.Duration(delayMinutes) * time.Minute),
	}
	if delayMinutes > 0 {
		dispatchID, err = i.Store.Create(rec)
		if err != nil {
			logger.WithError(err).Error("ошибка планирования письма кандидату")
			return "", err
		}
		observability.RecordEmail(string(rec.Kind), string(models.DispatchStatusPending))
		logger.WithField("scheduled_at", rec.ScheduledAt).Info("письмо кандидату запланировано")
		return dispatchID, nil
	}
	err = i.deliver(*candidate, templateID, rec.Kind)
	i.finish(&rec, err, logger)
	dispatchID, createErr := i.Store.Create(rec)
	if createErr != nil {
		logger.WithError(createErr).Error("ошибка сохранения письма кандидату")
	}
	if err != nil {
		return "", err
	}
	if createErr != nil {
		return "", errors.Wrap(createErr, "письмо отправлено, но не сохранено")
	}
	return dispatchID, nil
}

func (i impl) ScheduleReminder(ctx context.Context, dispatchID string, afterHours int) error {
	logger := log.WithField("dispatch_id", dispatchID)
	parent, err := i.Store.GetByID(dispatchID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения письма кандидату")
		return err
	}
	if parent == nil {
		return errors.New("письмо для напоминания не найдено")
	}
	rec := dbmodels.EmailDispatch{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: parent.SpaceID,
		},
		CandidateID: parent.CandidateID,
		TemplateID:  parent.TemplateID,
		Kind:        models.DispatchKindReminder,
		ParentID:    &parent.ID,
		Stage:       parent.Stage,
		Status:      models.DispatchStatusPending,
		ScheduledAt: parent.ScheduledAt.Add(time.Duration(afterHours) * time.Hour),
	}
	_, err = i.Store.Create(rec)
	if err != nil {
		logger.WithField("candidate_id", parent.CandidateID).
			WithError(err).
			Error("ошибка планирования напоминания кандидату")
		return err
	}
	observability.RecordEmail(string(rec.Kind), string(models.DispatchStatusPending))
	return nil
}

func (i impl) ProcessDue(ctx context.Context, batchSize int) {
	list, err := i.Store.ListDue(i.now(), batchSize)
	if err != nil {
		log.WithError(err).Error("ошибка получения писем для отправки")
		return
	}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			return
		}
		i.processOne(rec)
	}
}

func (i impl) processOne(rec dbmodels.EmailDispatch) {
	logger := log.WithFields(log.Fields{
		"space_id":     rec.SpaceID,
		"dispatch_id":  rec.ID,
		"candidate_id": rec.CandidateID,
		"kind":         rec.Kind,
	})
	candidate, err := i.CandidateStore.GetByID(rec.SpaceID, rec.CandidateID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения кандидата")
		return
	}
	if candidate == nil {
		i.cancel(rec, "кандидат удален", logger)
		return
	}
	if candidate.CurrentStage != rec.Stage {
		i.cancel(rec, "кандидат переведен на другой этап", logger)
		return
	}
	if rec.Kind == models.DispatchKindReminder {
		since, ready := i.reminderStart(rec, logger)
		if !ready {
			return
		}
		replied, err := i.Replies.HasReply(rec.SpaceID, rec.CandidateID, since)
		if err != nil {
			logger.WithError(err).Error("ошибка проверки ответа кандидата")
			return
		}
		if replied {
			i.cancel(rec, "кандидат ответил", logger)
			return
		}
	}
	claimed, err := i.Store.Claim(rec.ID)
	if err != nil {
		logger.WithError(err).Error("ошибка захвата письма в отправку")
		return
	}
	if !claimed {
		return
	}
	err = i.deliver(*candidate, rec.TemplateID, rec.Kind)
	i.finish(&rec, err, logger)
	if updErr := i.Store.SetStatus(rec.ID, rec.Status, rec.SentAt, rec.Error); updErr != nil {
		// письмо остается в статусе sending и повторно не отправляется
		logger.WithError(updErr).Error("ошибка изменения статуса письма")
	}
}

// reminderStart - момент, с которого ждем ответа кандидата. false - напоминание сейчас не отправляется
func (i impl) reminderStart(rec dbmodels.EmailDispatch, logger *log.Entry) (time.Time, bool) {
	if rec.ParentID == nil {
		return rec.CreatedAt, true
	}
	parent, err := i.Store.GetByID(*rec.ParentID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения основного письма")
		return time.Time{}, false
	}
	if parent == nil {
		i.cancel(rec, "основное письмо не найдено", logger)
		return time.Time{}, false
	}
	switch parent.Status {
	case models.DispatchStatusSent:
		if parent.SentAt != nil {
			return *parent.SentAt, true
		}
		return parent.ScheduledAt, true
	case models.DispatchStatusPending, models.DispatchStatusSending:
		logger.Debug("основное письмо еще не отправлено, напоминание отложено")
		return time.Time{}, false
	}
	i.cancel(rec, "основное письмо не отправлено", logger)
	return time.Time{}, false
}

func (i impl) deliver(candidate dbmodels.Candidate, templateID string, kind models.DispatchKind) error {
	if candidate.Email == "" {
		return errors.New("у кандидата не указана почта")
	}
	if !i.Sender.IsConfigured() {
		return smtp.ErrNotConfigured
	}
	tpl, err := i.TemplateStore.GetByID(candidate.SpaceID, templateID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения шаблона письма")
	}
	if tpl == nil {
		return errors.New("шаблон письма не найден")
	}
	subject, body, err := emailtemplate.Render(*tpl, templateData(candidate))
	if err != nil {
		return err
	}
	err = i.Sender.SendEMail(i.SenderEmail, candidate.Email, subject, body)
	if err != nil {
		return errors.Wrap(err, "ошибка отправки письма кандидату")
	}
	i.History.Save(candidate.SpaceID, candidate.ID, candidate.JobID, candidatehistoryhandler.Actor{}, dbmodels.HistoryTypeEmail,
		candidatehistoryhandler.GetEmailChanges(kind, tpl.Name, candidate.Email))
	return nil
}

func (i impl) finish(rec *dbmodels.EmailDispatch, err error, logger *log.Entry) {
	if err != nil {
		logger.WithError(err).Error("письмо кандидату не отправлено")
		rec.Status = models.DispatchStatusFailed
		rec.Error = err.Error()
	} else {
		sentAt := i.now()
		rec.Status = models.DispatchStatusSent
		rec.SentAt = &sentAt
	}
	observability.RecordEmail(string(rec.Kind), string(rec.Status))
}

func (i impl) cancel(rec dbmodels.EmailDispatch, reason string, logger *log.Entry) {
	logger.WithField("reason", reason).Info("отправка письма отменена")
	observability.RecordEmail(string(rec.Kind), string(models.DispatchStatusCancelled))
	if err := i.Store.SetStatus(rec.ID, models.DispatchStatusCancelled, nil, reason); err != nil {
		logger.WithError(err).Error("ошибка отмены письма")
	}
}

func templateData(candidate dbmodels.Candidate) models.TemplateData {
	data := models.TemplateData{
		CandidateFirstName: candidate.FirstName,
		CandidateLastName:  candidate.LastName,
		CandidateFullName:  candidate.GetFullName(),
		StageLabel:         stages.Label(candidate.CurrentStage),
	}
	if candidate.Job != nil {
		data.JobName = candidate.Job.Name
	}
	return data
}
