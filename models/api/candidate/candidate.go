package candidateapimodels

import (
	"hr-pipeline-backend/models"
	apimodels "hr-pipeline-backend/models/api"
	emailtemplateapimodels "hr-pipeline-backend/models/api/email-template"
	stageapimodels "hr-pipeline-backend/models/api/stage"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type CandidateData struct {
	JobID     string `json:"job_id"`     // Вакансия
	FirstName string `json:"first_name"` // Имя
	LastName  string `json:"last_name"`  // Фамилия
	Email     string `json:"email"`      // Почта
}

func (r CandidateData) Validate() error {
	if strings.TrimSpace(r.JobID) == "" {
		return errors.New("не указана вакансия")
	}
	if strings.TrimSpace(r.FirstName) == "" && strings.TrimSpace(r.LastName) == "" {
		return errors.New("не указано имя кандидата")
	}
	return nil
}

type CandidateView struct {
	ID string `json:"id"`
	CandidateData
	CurrentStage   models.CandidateStage `json:"current_stage"`    // Текущий этап
	StageLabel     string                `json:"stage_label"`      // Название текущего этапа
	StageChangedAt time.Time             `json:"stage_changed_at"` // Дата перевода на текущий этап
}

type CandidateFilter struct {
	apimodels.Pagination
	JobID string                `json:"job_id"` // Вакансия
	Stage models.CandidateStage `json:"stage"`  // Этап
}

func (r CandidateFilter) Validate() error {
	if strings.TrimSpace(r.JobID) == "" {
		return errors.New("не указана вакансия")
	}
	return nil
}

type TransitionRequest struct {
	TargetStage        models.CandidateStage                     `json:"target_stage"`                   // Этап, на который переводим
	SkipAutoEmail      bool                                      `json:"skip_auto_email"`                // Не отправлять письмо кандидату
	TemplateOverrideID *string                                   `json:"template_override_id,omitempty"` // Шаблон, выбранный при подтверждении
	InlineTemplate     *emailtemplateapimodels.EmailTemplateData `json:"inline_template,omitempty"`      // Новый шаблон, создается перед переводом
}

func (r TransitionRequest) Validate() error {
	if r.TargetStage == "" {
		return errors.New("не указан этап для перевода")
	}
	if r.TemplateOverrideID != nil && r.InlineTemplate != nil {
		return errors.New("нужно указать либо шаблон, либо новый шаблон письма")
	}
	if r.InlineTemplate != nil && !r.SkipAutoEmail {
		if err := r.InlineTemplate.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type TransitionResult struct {
	Stage             models.CandidateStage `json:"stage"`                 // Новый этап кандидата
	TemplateID        *string               `json:"template_id,omitempty"` // Шаблон отправленного письма
	EmailAccepted     bool                  `json:"email_accepted"`        // Письмо принято к отправке
	ReminderScheduled bool                  `json:"reminder_scheduled"`    // Запланировано напоминание
	Warning           string                `json:"warning,omitempty"`     // Ошибка отправки письма, этап при этом изменен
}

type AvailableTransitionsView struct {
	CurrentStage stageapimodels.StageView   `json:"current_stage"` // Текущий этап
	Transitions  []stageapimodels.StageView `json:"transitions"`   // Доступные этапы для перевода
}

type ReplyData struct {
	Note string `json:"note"` // Текст ответа или комментарий интеграции
}

type HistoryFilter struct {
	apimodels.Pagination
}

type HistoryView struct {
	ID          string      `json:"id"`
	ActionType  string      `json:"action_type"` // Тип действия
	UserName    string      `json:"user_name"`   // Автор
	Description string      `json:"description"` // Описание
	Data        interface{} `json:"data"`        // Изменения
	CreatedAt   time.Time   `json:"created_at"`
}
