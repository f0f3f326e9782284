package notificationapimodels

import (
	"fmt"
	"hr-pipeline-backend/models"

	"github.com/pkg/errors"
)

type NotificationSettingData struct {
	Stage              models.CandidateStage `json:"stage"`                 // Этап, при переводе на который отправляется письмо
	JobID              *string               `json:"job_id,omitempty"`      // Вакансия, пусто - настройка для всего пространства
	Enabled            bool                  `json:"enabled"`               // Отправка включена
	DelayMinutes       int                   `json:"delay_minutes"`         // Задержка отправки, минут (0..1440)
	TemplateID         *string               `json:"template_id,omitempty"` // Шаблон письма
	ReminderEnabled    bool                  `json:"reminder_enabled"`      // Напоминание, если кандидат не ответил
	ReminderDelayHours int                   `json:"reminder_delay_hours"`  // Через сколько часов напомнить (1..168)
}

func (r NotificationSettingData) Validate() error {
	if r.Stage == "" {
		return errors.New("не указан этап")
	}
	if r.DelayMinutes < 0 || r.DelayMinutes > models.NotificationDelayMinutesMax {
		return errors.New(fmt.Sprintf("задержка отправки должна быть от 0 до %v минут", models.NotificationDelayMinutesMax))
	}
	if r.ReminderEnabled &&
		(r.ReminderDelayHours < models.ReminderDelayHoursMin || r.ReminderDelayHours > models.ReminderDelayHoursMax) {
		return errors.New(fmt.Sprintf("напоминание можно настроить через %v..%v часов", models.ReminderDelayHoursMin, models.ReminderDelayHoursMax))
	}
	return nil
}

type NotificationSettingView struct {
	ID string `json:"id"`
	NotificationSettingData
	StageLabel string `json:"stage_label"` // Название этапа
}

type NotificationSettingsFilter struct {
	JobID *string `json:"job_id,omitempty"` // пусто - настройки пространства
}
