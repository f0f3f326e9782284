package emailtemplate

import (
	"bytes"
	"hr-pipeline-backend/models"
	emailtemplateapimodels "hr-pipeline-backend/models/api/email-template"
	dbmodels "hr-pipeline-backend/models/db"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/pkg/errors"
)

var variables = []emailtemplateapimodels.TemplateVariable{
	{Name: "{{.CandidateFirstName}}", Description: "Имя кандидата"},
	{Name: "{{.CandidateLastName}}", Description: "Фамилия кандидата"},
	{Name: "{{.CandidateFullName}}", Description: "Имя и фамилия кандидата"},
	{Name: "{{.JobName}}", Description: "Название вакансии"},
	{Name: "{{.StageLabel}}", Description: "Этап, на который переведен кандидат"},
}

func GetVariables() []emailtemplateapimodels.TemplateVariable {
	return variables
}

// Render заполняет тему (text/template) и текст письма (html/template, значения экранируются)
func Render(tpl dbmodels.EmailTemplate, data models.TemplateData) (subject, body string, err error) {
	subjectTpl, err := texttemplate.New("subject").Option("missingkey=error").Parse(tpl.Subject)
	if err != nil {
		return "", "", errors.Wrap(err, "ошибка разбора темы письма")
	}
	bodyTpl, err := htmltemplate.New("body").Option("missingkey=error").Parse(tpl.HtmlBody)
	if err != nil {
		return "", "", errors.Wrap(err, "ошибка разбора текста письма")
	}
	subjectBuf := new(bytes.Buffer)
	if err = subjectTpl.Execute(subjectBuf, data); err != nil {
		return "", "", errors.Wrap(err, "ошибка заполнения темы письма")
	}
	bodyBuf := new(bytes.Buffer)
	if err = bodyTpl.Execute(bodyBuf, data); err != nil {
		return "", "", errors.Wrap(err, "ошибка заполнения текста письма")
	}
	return subjectBuf.String(), bodyBuf.String(), nil
}

// CheckSyntax проверяет, что тема и текст письма разбираются как шаблоны
func CheckSyntax(data emailtemplateapimodels.EmailTemplateData) error {
	if _, err := texttemplate.New("subject").Parse(data.Subject); err != nil {
		return errors.New("ошибка в шаблоне темы письма")
	}
	if _, err := htmltemplate.New("body").Parse(data.HtmlBody); err != nil {
		return errors.New("ошибка в шаблоне текста письма")
	}
	return nil
}
