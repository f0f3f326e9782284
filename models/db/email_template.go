package dbmodels

import (
	"hr-pipeline-backend/models"
	emailtemplateapimodels "hr-pipeline-backend/models/api/email-template"
)

type EmailTemplate struct {
	BaseSpaceModel
	Name     string                 `gorm:"type:varchar(255)"`
	Subject  string                 `gorm:"type:varchar(255)"`
	HtmlBody string                 `gorm:"type:text"`
	Stage    *models.CandidateStage `gorm:"type:varchar(50);index:idx_template_stage"`
	JobID    *string                `gorm:"type:varchar(36);index:idx_template_stage"`
}

func (r EmailTemplate) ToModelView() emailtemplateapimodels.EmailTemplateView {
	return emailtemplateapimodels.EmailTemplateView{
		ID: r.ID,
		EmailTemplateData: emailtemplateapimodels.EmailTemplateData{
			Name:     r.Name,
			Subject:  r.Subject,
			HtmlBody: r.HtmlBody,
			Stage:    r.Stage,
			JobID:    r.JobID,
		},
	}
}
