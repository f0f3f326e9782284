package jobhandler

import (
	"hr-pipeline-backend/db"
	hiringflowstore "hr-pipeline-backend/lib/job/hiring-flow-store"
	jobstore "hr-pipeline-backend/lib/job/store"
	"hr-pipeline-backend/lib/stages"
	jobapimodels "hr-pipeline-backend/models/api/job"
	stageapimodels "hr-pipeline-backend/models/api/stage"
	dbmodels "hr-pipeline-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(spaceID string, data jobapimodels.JobData) (result jobapimodels.SaveFlowResult, hMsg string, err error)
	Update(spaceID, id string, data jobapimodels.JobData) (result jobapimodels.SaveFlowResult, hMsg string, err error)
	GetByID(spaceID, id string) (*jobapimodels.JobView, error)
	List(spaceID string) (list []jobapimodels.JobView, err error)
	Delete(spaceID, id string) error
	SetHiringFlow(spaceID, id string, data jobapimodels.HiringFlowStagesData) (result jobapimodels.SaveFlowResult, hMsg string, err error)
	AttachHiringFlow(spaceID, id string, data jobapimodels.HiringFlowAttach) (hMsg string, err error)
	// GetFlow - действующая воронка вакансии, nil - вакансия не найдена
	GetFlow(spaceID, jobID string) (*Flow, error)

	CreateFlow(spaceID string, data jobapimodels.HiringFlowData) (result jobapimodels.SaveFlowResult, err error)
	UpdateFlow(spaceID, id string, data jobapimodels.HiringFlowData) (result jobapimodels.SaveFlowResult, hMsg string, err error)
	GetFlowByID(spaceID, id string) (*jobapimodels.HiringFlowView, error)
	ListFlows(spaceID string) (list []jobapimodels.HiringFlowView, err error)
	DeleteFlow(spaceID, id string) error
}

type Flow struct {
	JobID                 string
	JobName               string
	Stages                []string
	AllowBackwardMovement bool
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(jobstore.NewInstance(db.DB), hiringflowstore.NewInstance(db.DB))
}

func NewInstance(store jobstore.Provider, flowStore hiringflowstore.Provider) Provider {
	return &impl{
		store:     store,
		flowStore: flowStore,
	}
}

type impl struct {
	store     jobstore.Provider
	flowStore hiringflowstore.Provider
}

func (i impl) Create(spaceID string, data jobapimodels.JobData) (result jobapimodels.SaveFlowResult, hMsg string, err error) {
	logger := log.WithField("space_id", spaceID)
	hMsg, err = i.checkFlowLink(spaceID, data.HiringFlowID)
	if err != nil || hMsg != "" {
		return result, hMsg, err
	}
	rec := dbmodels.Job{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		Name:                  data.Name,
		HiringFlowID:          data.HiringFlowID,
		HiringFlowStages:      cleanStages(data.HiringFlowStages),
		AllowBackwardMovement: data.AllowBackwardMovement,
	}
	result.ID, err = i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка создания вакансии")
		return result, "", err
	}
	_, result.Unresolved = stages.ResolveFlow(rec.HiringFlowStages)
	return result, "", nil
}

func (i impl) Update(spaceID, id string, data jobapimodels.JobData) (result jobapimodels.SaveFlowResult, hMsg string, err error) {
	logger := log.WithFields(log.Fields{
		"space_id": spaceID,
		"job_id":   id,
	})
	hMsg, err = i.checkFlowLink(spaceID, data.HiringFlowID)
	if err != nil || hMsg != "" {
		return result, hMsg, err
	}
	flowStages := cleanStages(data.HiringFlowStages)
	updMap := map[string]interface{}{
		"name":                    data.Name,
		"hiring_flow_id":          data.HiringFlowID,
		"hiring_flow_stages":      flowStages,
		"allow_backward_movement": data.AllowBackwardMovement,
	}
	err = i.store.Update(spaceID, id, updMap)
	if err != nil {
		logger.WithError(err).Error("ошибка изменения вакансии")
		return result, "", err
	}
	result.ID = id
	_, result.Unresolved = stages.ResolveFlow(flowStages)
	return result, "", nil
}

func (i impl) GetByID(spaceID, id string) (*jobapimodels.JobView, error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		log.WithField("space_id", spaceID).WithError(err).Error("ошибка получения вакансии")
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("вакансия не найдена")
	}
	view := rec.ToModelView()
	return &view, nil
}

func (i impl) List(spaceID string) (list []jobapimodels.JobView, err error) {
	recList, err := i.store.List(spaceID)
	if err != nil {
		log.WithField("space_id", spaceID).WithError(err).Error("ошибка получения списка вакансий")
		return nil, err
	}
	list = make([]jobapimodels.JobView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, rec.ToModelView())
	}
	return list, nil
}

func (i impl) Delete(spaceID, id string) error {
	err := i.store.Delete(spaceID, id)
	if err != nil {
		log.WithField("space_id", spaceID).WithError(err).Error("ошибка удаления вакансии")
		return err
	}
	return nil
}

func (i impl) SetHiringFlow(spaceID, id string, data jobapimodels.HiringFlowStagesData) (result jobapimodels.SaveFlowResult, hMsg string, err error) {
	logger := log.WithFields(log.Fields{
		"space_id": spaceID,
		"job_id":   id,
	})
	if err = data.Validate(); err != nil {
		return result, err.Error(), nil
	}
	flowStages := cleanStages(data.Stages)
	err = i.store.Update(spaceID, id, map[string]interface{}{"hiring_flow_stages": flowStages})
	if err != nil {
		logger.WithError(err).Error("ошибка сохранения воронки вакансии")
		return result, "", err
	}
	result.ID = id
	_, result.Unresolved = stages.ResolveFlow(flowStages)
	if len(result.Unresolved) != 0 {
		logger.WithField("unresolved", result.Unresolved).Info("в воронке вакансии есть этапы вне каталога")
	}
	return result, "", nil
}

func (i impl) AttachHiringFlow(spaceID, id string, data jobapimodels.HiringFlowAttach) (hMsg string, err error) {
	logger := log.WithFields(log.Fields{
		"space_id": spaceID,
		"job_id":   id,
	})
	hMsg, err = i.checkFlowLink(spaceID, data.HiringFlowID)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	var flowID *string
	if data.HiringFlowID != nil && *data.HiringFlowID != "" {
		flowID = data.HiringFlowID
	}
	err = i.store.Update(spaceID, id, map[string]interface{}{"hiring_flow_id": flowID})
	if err != nil {
		logger.WithError(err).Error("ошибка подключения шаблона воронки к вакансии")
		return "", err
	}
	return "", nil
}

func (i impl) GetFlow(spaceID, jobID string) (*Flow, error) {
	rec, err := i.store.GetByID(spaceID, jobID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения вакансии")
	}
	if rec == nil {
		return nil, nil
	}
	return &Flow{
		JobID:                 rec.ID,
		JobName:               rec.Name,
		Stages:                rec.FlowStages(),
		AllowBackwardMovement: rec.AllowBackwardMovement,
	}, nil
}

func (i impl) CreateFlow(spaceID string, data jobapimodels.HiringFlowData) (result jobapimodels.SaveFlowResult, err error) {
	rec := dbmodels.HiringFlow{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		Name:   data.Name,
		Stages: cleanStages(data.Stages),
	}
	result.ID, err = i.flowStore.Create(rec)
	if err != nil {
		log.WithField("space_id", spaceID).WithError(err).Error("ошибка создания шаблона воронки")
		return result, err
	}
	_, result.Unresolved = stages.ResolveFlow(rec.Stages)
	return result, nil
}

func (i impl) UpdateFlow(spaceID, id string, data jobapimodels.HiringFlowData) (result jobapimodels.SaveFlowResult, hMsg string, err error) {
	logger := log.WithFields(log.Fields{
		"space_id":       spaceID,
		"hiring_flow_id": id,
	})
	rec, err := i.flowStore.GetByID(spaceID, id)
	if err != nil {
		logger.WithError(err).Error("ошибка получения шаблона воронки")
		return result, "", err
	}
	if rec == nil {
		return result, "шаблон воронки не найден", nil
	}
	flowStages := cleanStages(data.Stages)
	updMap := map[string]interface{}{
		"name":   data.Name,
		"stages": dbmodels.StringArray(flowStages),
	}
	err = i.flowStore.Update(spaceID, id, updMap)
	if err != nil {
		logger.WithError(err).Error("ошибка изменения шаблона воронки")
		return result, "", err
	}
	result.ID = id
	_, result.Unresolved = stages.ResolveFlow(flowStages)
	return result, "", nil
}

func (i impl) GetFlowByID(spaceID, id string) (*jobapimodels.HiringFlowView, error) {
	rec, err := i.flowStore.GetByID(spaceID, id)
	if err != nil {
		log.WithField("space_id", spaceID).WithError(err).Error("ошибка получения шаблона воронки")
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("шаблон воронки не найден")
	}
	view := rec.ToModelView()
	return &view, nil
}

func (i impl) ListFlows(spaceID string) (list []jobapimodels.HiringFlowView, err error) {
	recList, err := i.flowStore.List(spaceID)
	if err != nil {
		log.WithField("space_id", spaceID).WithError(err).Error("ошибка получения списка шаблонов воронки")
		return nil, err
	}
	list = make([]jobapimodels.HiringFlowView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, rec.ToModelView())
	}
	return list, nil
}

func (i impl) DeleteFlow(spaceID, id string) error {
	logger := log.WithFields(log.Fields{
		"space_id":       spaceID,
		"hiring_flow_id": id,
	})
	err := i.store.DetachHiringFlow(spaceID, id)
	if err != nil {
		logger.WithError(err).Error("ошибка отключения шаблона воронки от вакансий")
		return err
	}
	err = i.flowStore.Delete(spaceID, id)
	if err != nil {
		logger.WithError(err).Error("ошибка удаления шаблона воронки")
		return err
	}
	return nil
}

// PreviewFlow - как этапы воронки будут сопоставлены с каталогом
func PreviewFlow(labels []string) []stageapimodels.ResolvedLabel {
	result := make([]stageapimodels.ResolvedLabel, 0, len(labels))
	for _, label := range labels {
		item := stageapimodels.ResolvedLabel{Label: label}
		if def, ok := stages.Resolve(label); ok {
			view := def.ToModelView()
			item.Stage = &view
		}
		result = append(result, item)
	}
	return result
}

func (i impl) checkFlowLink(spaceID string, flowID *string) (hMsg string, err error) {
	if flowID == nil || *flowID == "" {
		return "", nil
	}
	rec, err := i.flowStore.GetByID(spaceID, *flowID)
	if err != nil {
		log.WithField("space_id", spaceID).WithError(err).Error("ошибка получения шаблона воронки")
		return "", err
	}
	if rec == nil {
		return "шаблон воронки не найден", nil
	}
	return "", nil
}

func cleanStages(list []string) dbmodels.StringArray {
	result := dbmodels.StringArray{}
	for _, stage := range list {
		stage = strings.TrimSpace(stage)
		if stage == "" {
			continue
		}
		result = append(result, stage)
	}
	return result
}
