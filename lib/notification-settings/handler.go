package notificationsettings

import (
	"hr-pipeline-backend/db"
	emailtemplatestore "hr-pipeline-backend/lib/email-template/store"
	notificationpolicy "hr-pipeline-backend/lib/notification-policy"
	notificationsettingsstore "hr-pipeline-backend/lib/notification-settings/store"
	"hr-pipeline-backend/lib/stages"
	"hr-pipeline-backend/models"
	notificationapimodels "hr-pipeline-backend/models/api/notification"
	dbmodels "hr-pipeline-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	List(spaceID string, filter notificationapimodels.NotificationSettingsFilter) (list []notificationapimodels.NotificationSettingView, err error)
	Upsert(spaceID string, data notificationapimodels.NotificationSettingData) (id, hMsg string, err error)
	Delete(spaceID, id string) error
	// Load - настройки для политики уведомлений: настройки пространства и переопределения вакансии
	Load(spaceID, jobID string) (notificationpolicy.Settings, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(
		notificationsettingsstore.NewInstance(db.DB),
		emailtemplatestore.NewInstance(db.DB),
	)
}

func NewInstance(store notificationsettingsstore.Provider, templateStore emailtemplatestore.Provider) Provider {
	return &impl{
		store:         store,
		templateStore: templateStore,
	}
}

type impl struct {
	store         notificationsettingsstore.Provider
	templateStore emailtemplatestore.Provider
}

func (i impl) List(spaceID string, filter notificationapimodels.NotificationSettingsFilter) (list []notificationapimodels.NotificationSettingView, err error) {
	recList, err := i.store.List(spaceID, filter.JobID)
	if err != nil {
		log.WithField("space_id", spaceID).WithError(err).Error("ошибка получения настроек уведомлений")
		return nil, err
	}
	list = make([]notificationapimodels.NotificationSettingView, 0, len(recList))
	for _, rec := range recList {
		view := rec.ToModelView()
		view.StageLabel = stages.Label(rec.Stage)
		list = append(list, view)
	}
	return list, nil
}

func (i impl) Upsert(spaceID string, data notificationapimodels.NotificationSettingData) (id, hMsg string, err error) {
	logger := log.WithFields(log.Fields{
		"space_id": spaceID,
		"stage":    data.Stage,
	})
	if err = data.Validate(); err != nil {
		return "", err.Error(), nil
	}
	if !stages.IsKnown(data.Stage) {
		return "", "указан неизвестный этап", nil
	}
	if data.TemplateID != nil && *data.TemplateID != "" {
		tpl, err := i.templateStore.GetByID(spaceID, *data.TemplateID)
		if err != nil {
			logger.WithError(err).Error("ошибка получения шаблона письма")
			return "", "", err
		}
		if tpl == nil {
			return "", "шаблон письма не найден", nil
		}
	}
	rec, err := i.store.Get(spaceID, data.JobID, data.Stage)
	if err != nil {
		logger.WithError(err).Error("ошибка получения настройки уведомления")
		return "", "", err
	}
	if rec != nil {
		updMap := map[string]interface{}{
			"enabled":              data.Enabled,
			"delay_minutes":        data.DelayMinutes,
			"template_id":          data.TemplateID,
			"reminder_enabled":     data.ReminderEnabled,
			"reminder_delay_hours": data.ReminderDelayHours,
		}
		err = i.store.Update(spaceID, rec.ID, updMap)
		if err != nil {
			logger.WithError(err).Error("ошибка изменения настройки уведомления")
			return "", "", err
		}
		return rec.ID, "", nil
	}
	newRec := dbmodels.StageNotificationSetting{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		JobID:              data.JobID,
		Stage:              data.Stage,
		Enabled:            data.Enabled,
		DelayMinutes:       data.DelayMinutes,
		TemplateID:         data.TemplateID,
		ReminderEnabled:    data.ReminderEnabled,
		ReminderDelayHours: data.ReminderDelayHours,
	}
	id, err = i.store.Create(newRec)
	if err != nil {
		logger.WithError(err).Error("ошибка добавления настройки уведомления")
		return "", "", err
	}
	return id, "", nil
}

func (i impl) Delete(spaceID, id string) error {
	err := i.store.Delete(spaceID, id)
	if err != nil {
		log.WithField("space_id", spaceID).WithError(err).Error("ошибка удаления настройки уведомления")
		return err
	}
	return nil
}

func (i impl) Load(spaceID, jobID string) (notificationpolicy.Settings, error) {
	settings := notificationpolicy.Settings{
		Global: map[models.CandidateStage]notificationpolicy.Config{},
		Job:    map[models.CandidateStage]notificationpolicy.Config{},
	}
	globalList, err := i.store.List(spaceID, nil)
	if err != nil {
		return settings, errors.Wrap(err, "ошибка получения настроек уведомлений пространства")
	}
	fill(settings.Global, globalList)
	if jobID == "" {
		return settings, nil
	}
	jobList, err := i.store.List(spaceID, &jobID)
	if err != nil {
		return settings, errors.Wrap(err, "ошибка получения настроек уведомлений вакансии")
	}
	fill(settings.Job, jobList)
	return settings, nil
}

func fill(target map[models.CandidateStage]notificationpolicy.Config, list []dbmodels.StageNotificationSetting) {
	for _, rec := range list {
		target[rec.Stage] = notificationpolicy.Config{
			Enabled:            rec.Enabled,
			DelayMinutes:       rec.DelayMinutes,
			TemplateID:         rec.TemplateID,
			ReminderEnabled:    rec.ReminderEnabled,
			ReminderDelayHours: rec.ReminderDelayHours,
		}
	}
}
