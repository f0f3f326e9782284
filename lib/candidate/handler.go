package candidatehandler

import (
	"bytes"
	"context"
	"hr-pipeline-backend/config"
	"hr-pipeline-backend/db"
	candidatehistoryhandler "hr-pipeline-backend/lib/candidate-history"
	candidatestore "hr-pipeline-backend/lib/candidate/store"
	emaildispatcher "hr-pipeline-backend/lib/email-dispatcher"
	emailtemplatestore "hr-pipeline-backend/lib/email-template/store"
	"hr-pipeline-backend/lib/events"
	xlsexport "hr-pipeline-backend/lib/export/xls"
	jobhandler "hr-pipeline-backend/lib/job"
	notificationpolicy "hr-pipeline-backend/lib/notification-policy"
	notificationsettings "hr-pipeline-backend/lib/notification-settings"
	"hr-pipeline-backend/lib/stages"
	"hr-pipeline-backend/models"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
	jobapimodels "hr-pipeline-backend/models/api/job"
	stageapimodels "hr-pipeline-backend/models/api/stage"
	dbmodels "hr-pipeline-backend/models/db"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(spaceID string, user candidatehistoryhandler.Actor, data candidateapimodels.CandidateData) (id string, err error)
	GetByID(spaceID, id string) (*candidateapimodels.CandidateView, error)
	List(spaceID string, filter candidateapimodels.CandidateFilter) (list []candidateapimodels.CandidateView, rowCount int64, err error)
	AvailableTransitions(spaceID, id string) (*candidateapimodels.AvailableTransitionsView, error)
	// Transition - перевод кандидата на этап. Ошибка отправки письма не отменяет перевод и возвращается в Warning
	Transition(ctx context.Context, spaceID string, user candidatehistoryhandler.Actor, id string, req candidateapimodels.TransitionRequest) (candidateapimodels.TransitionResult, error)
	StageSummary(spaceID, jobID string) ([]jobapimodels.StageSummaryItem, error)
	// RecordReply - отметка об ответе кандидата на письмо, отменяет неотправленные напоминания
	RecordReply(spaceID, id string, data candidateapimodels.ReplyData) error
	History(spaceID, id string, filter candidateapimodels.HistoryFilter) (list []candidateapimodels.HistoryView, rowCount int64, err error)
	ExportPipeline(spaceID, jobID string) (*bytes.Buffer, error)
}

// FlowProvider - действующая воронка вакансии
type FlowProvider interface {
	GetFlow(spaceID, jobID string) (*jobhandler.Flow, error)
}

// SettingsLoader - настройки уведомлений пространства и вакансии
type SettingsLoader interface {
	Load(spaceID, jobID string) (notificationpolicy.Settings, error)
}

// TxFunc выполняет fn в одной транзакции БД
type TxFunc func(fn func(store candidatestore.Provider, templateStore emailtemplatestore.Provider) error) error

type Deps struct {
	Store         candidatestore.Provider
	TemplateStore emailtemplatestore.Provider
	Flows         FlowProvider
	Settings      SettingsLoader
	Policy        notificationpolicy.Provider
	Dispatcher    emaildispatcher.Provider
	Histories     candidatehistoryhandler.Provider
	Publisher     events.Publisher
	Export        xlsexport.Provider
	Transaction   TxFunc
	LockWait      time.Duration
}

var Instance Provider

func NewHandler() {
	templateStore := emailtemplatestore.NewInstance(db.DB)
	Instance = NewInstance(Deps{
		Store:         candidatestore.NewInstance(db.DB),
		TemplateStore: templateStore,
		Flows:         jobhandler.Instance,
		Settings:      notificationsettings.Instance,
		Policy:        notificationpolicy.NewInstance(templateStore),
		Dispatcher:    emaildispatcher.Instance,
		Histories:     candidatehistoryhandler.Instance,
		Publisher:     events.Instance,
		Export:        xlsexport.Instance,
		Transaction:   dbTransaction,
		LockWait:      time.Duration(config.Conf.Notification.TransitionLockWaitSec) * time.Second,
	})
}

func NewInstance(deps Deps) Provider {
	return &impl{
		Deps: deps,
		now:  time.Now,
	}
}

func dbTransaction(fn func(store candidatestore.Provider, templateStore emailtemplatestore.Provider) error) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		return fn(candidatestore.NewInstance(tx), emailtemplatestore.NewInstance(tx))
	})
}

type impl struct {
	Deps
	now func() time.Time
}

func (i impl) Create(spaceID string, user candidatehistoryhandler.Actor, data candidateapimodels.CandidateData) (id string, err error) {
	logger := log.WithFields(log.Fields{
		"space_id": spaceID,
		"job_id":   data.JobID,
	})
	flow, err := i.Flows.GetFlow(spaceID, data.JobID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения вакансии")
		return "", err
	}
	if flow == nil {
		return "", ErrJobNotFound
	}
	rec := dbmodels.Candidate{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		JobID:          data.JobID,
		FirstName:      data.FirstName,
		LastName:       data.LastName,
		Email:          data.Email,
		CurrentStage:   models.StageApplied,
		StageChangedAt: i.now(),
	}
	id, err = i.Store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка добавления кандидата")
		return "", err
	}
	i.Histories.Save(spaceID, id, data.JobID, user, dbmodels.HistoryTypeAdded, candidatehistoryhandler.GetCreateChanges(rec))
	return id, nil
}

func (i impl) GetByID(spaceID, id string) (*candidateapimodels.CandidateView, error) {
	rec, err := i.get(spaceID, id)
	if err != nil {
		return nil, err
	}
	view := toView(*rec)
	return &view, nil
}

func (i impl) List(spaceID string, filter candidateapimodels.CandidateFilter) (list []candidateapimodels.CandidateView, rowCount int64, err error) {
	logger := log.WithFields(log.Fields{
		"space_id": spaceID,
		"job_id":   filter.JobID,
	})
	rowCount, err = i.Store.ListCount(spaceID, filter)
	if err != nil {
		logger.WithError(err).Error("ошибка получения количества кандидатов")
		return nil, 0, err
	}
	recList, err := i.Store.List(spaceID, filter)
	if err != nil {
		logger.WithError(err).Error("ошибка получения списка кандидатов")
		return nil, 0, err
	}
	list = make([]candidateapimodels.CandidateView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, toView(rec))
	}
	return list, rowCount, nil
}

func (i impl) AvailableTransitions(spaceID, id string) (*candidateapimodels.AvailableTransitionsView, error) {
	rec, err := i.get(spaceID, id)
	if err != nil {
		return nil, err
	}
	flow, err := i.getFlow(spaceID, rec.JobID)
	if err != nil {
		return nil, err
	}
	view := candidateapimodels.AvailableTransitionsView{
		Transitions: []stageapimodels.StageView{},
	}
	if current, ok := stages.Get(rec.CurrentStage); ok {
		view.CurrentStage = current.ToModelView()
	}
	for _, stage := range stages.AvailableTransitions(rec.CurrentStage, flow.Stages, flow.AllowBackwardMovement) {
		view.Transitions = append(view.Transitions, stage.ToModelView())
	}
	return &view, nil
}

func (i impl) StageSummary(spaceID, jobID string) ([]jobapimodels.StageSummaryItem, error) {
	flow, err := i.getFlow(spaceID, jobID)
	if err != nil {
		return nil, err
	}
	counts, err := i.Store.CountByStage(spaceID, jobID)
	if err != nil {
		log.WithField("space_id", spaceID).
			WithField("job_id", jobID).
			WithError(err).
			Error("ошибка подсчета кандидатов по этапам")
		return nil, err
	}
	return buildSummary(flow.Stages, counts), nil
}

func (i impl) RecordReply(spaceID, id string, data candidateapimodels.ReplyData) error {
	rec, err := i.get(spaceID, id)
	if err != nil {
		return err
	}
	i.Histories.Save(spaceID, rec.ID, rec.JobID, candidatehistoryhandler.Actor{}, dbmodels.HistoryTypeReply, candidatehistoryhandler.GetReplyChanges(data.Note))
	return nil
}

func (i impl) History(spaceID, id string, filter candidateapimodels.HistoryFilter) (list []candidateapimodels.HistoryView, rowCount int64, err error) {
	if _, err = i.get(spaceID, id); err != nil {
		return nil, 0, err
	}
	return i.Histories.List(spaceID, id, filter)
}

func (i impl) ExportPipeline(spaceID, jobID string) (*bytes.Buffer, error) {
	logger := log.WithFields(log.Fields{
		"space_id": spaceID,
		"job_id":   jobID,
	})
	flow, err := i.getFlow(spaceID, jobID)
	if err != nil {
		return nil, err
	}
	list, err := i.Store.ListByJob(spaceID, jobID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения кандидатов вакансии")
		return nil, err
	}
	counts, err := i.Store.CountByStage(spaceID, jobID)
	if err != nil {
		logger.WithError(err).Error("ошибка подсчета кандидатов по этапам")
		return nil, err
	}
	buf, err := i.Export.ExportPipeline(flow.JobName, list, buildSummary(flow.Stages, counts))
	if err != nil {
		logger.WithError(err).Error("ошибка выгрузки кандидатов вакансии")
		return nil, err
	}
	return buf, nil
}

func (i impl) get(spaceID, id string) (*dbmodels.Candidate, error) {
	rec, err := i.Store.GetByID(spaceID, id)
	if err != nil {
		log.WithField("space_id", spaceID).
			WithField("candidate_id", id).
			WithError(err).
			Error("ошибка получения кандидата")
		return nil, err
	}
	if rec == nil {
		return nil, ErrCandidateNotFound
	}
	return rec, nil
}

func (i impl) getFlow(spaceID, jobID string) (*jobhandler.Flow, error) {
	flow, err := i.Flows.GetFlow(spaceID, jobID)
	if err != nil {
		log.WithField("space_id", spaceID).
			WithField("job_id", jobID).
			WithError(err).
			Error("ошибка получения воронки вакансии")
		return nil, err
	}
	if flow == nil {
		return nil, ErrJobNotFound
	}
	return flow, nil
}

// buildSummary - количество кандидатов по этапам воронки, этапы без кандидатов тоже выводятся
func buildSummary(flowStages []string, counts []dbmodels.StageCount) []jobapimodels.StageSummaryItem {
	countMap := make(map[models.CandidateStage]int64, len(counts))
	for _, item := range counts {
		countMap[item.CurrentStage] += item.Count
	}
	result := []jobapimodels.StageSummaryItem{}
	seen := map[models.CandidateStage]bool{}
	add := func(stage stages.StageDefinition) {
		if seen[stage.Value] {
			return
		}
		seen[stage.Value] = true
		result = append(result, jobapimodels.StageSummaryItem{
			Stage: stage.Value,
			Label: stage.Label,
			Count: countMap[stage.Value],
		})
	}
	resolved, _ := stages.ResolveFlow(flowStages)
	if len(resolved) == 0 {
		resolved = stages.Catalog()
	}
	for _, stage := range resolved {
		add(stage)
	}
	// кандидаты на этапах вне воронки и финальные этапы
	for _, stage := range stages.Catalog() {
		if countMap[stage.Value] != 0 || stage.IsTerminal {
			add(stage)
		}
	}
	return result
}

func toView(rec dbmodels.Candidate) candidateapimodels.CandidateView {
	view := rec.ToModelView()
	view.StageLabel = stages.Label(rec.CurrentStage)
	return view
}
