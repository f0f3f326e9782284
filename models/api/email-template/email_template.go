package emailtemplateapimodels

import (
	"hr-pipeline-backend/models"
	"strings"

	"github.com/pkg/errors"
)

type EmailTemplateData struct {
	Name     string                 `json:"name"`             // Название шаблона
	Subject  string                 `json:"subject"`          // Тема письма
	HtmlBody string                 `json:"html_body"`        // Текст письма (html)
	Stage    *models.CandidateStage `json:"stage,omitempty"`  // Этап, для которого шаблон используется по умолчанию
	JobID    *string                `json:"job_id,omitempty"` // Вакансия, пусто - шаблон для всего пространства
}

func (r EmailTemplateData) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("не указано название шаблона")
	}
	if strings.TrimSpace(r.Subject) == "" {
		return errors.New("не указана тема письма")
	}
	if strings.TrimSpace(r.HtmlBody) == "" {
		return errors.New("не указан текст письма")
	}
	return nil
}

type EmailTemplateView struct {
	ID string `json:"id"`
	EmailTemplateData
}

type TemplateVariable struct {
	Name        string `json:"name"`        // Переменная для вставки в шаблон
	Description string `json:"description"` // Описание
}
