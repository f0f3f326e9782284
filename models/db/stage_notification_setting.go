package dbmodels

import (
	"hr-pipeline-backend/models"
	notificationapimodels "hr-pipeline-backend/models/api/notification"
)

// StageNotificationSetting - настройка письма кандидату при переводе на этап.
// JobID == nil - настройка пространства, иначе переопределение для вакансии
type StageNotificationSetting struct {
	BaseSpaceModel
	JobID              *string               `gorm:"type:varchar(36);index:idx_stage_setting"`
	Stage              models.CandidateStage `gorm:"type:varchar(50);index:idx_stage_setting"`
	Enabled            bool
	DelayMinutes       int
	TemplateID         *string `gorm:"type:varchar(36)"`
	ReminderEnabled    bool
	ReminderDelayHours int
}

func (r StageNotificationSetting) ToModelView() notificationapimodels.NotificationSettingView {
	return notificationapimodels.NotificationSettingView{
		ID: r.ID,
		NotificationSettingData: notificationapimodels.NotificationSettingData{
			Stage:              r.Stage,
			JobID:              r.JobID,
			Enabled:            r.Enabled,
			DelayMinutes:       r.DelayMinutes,
			TemplateID:         r.TemplateID,
			ReminderEnabled:    r.ReminderEnabled,
			ReminderDelayHours: r.ReminderDelayHours,
		},
	}
}
