package dbmodels

import (
	"hr-pipeline-backend/models"
	"time"
)

// EmailDispatch - письмо кандидату, отправленное или ожидающее отправки
type EmailDispatch struct {
	BaseSpaceModel
	CandidateID string                `gorm:"type:varchar(36);index"`
	TemplateID  string                `gorm:"type:varchar(36)"`
	Kind        models.DispatchKind   `gorm:"type:varchar(50)"`
	ParentID    *string               `gorm:"type:varchar(36)"` // письмо, на которое ссылается напоминание
	Stage       models.CandidateStage `gorm:"type:varchar(50)"` // этап, на котором письмо актуально
	Status      models.DispatchStatus `gorm:"type:varchar(50);index:idx_dispatch_due"`
	ScheduledAt time.Time             `gorm:"index:idx_dispatch_due"`
	SentAt      *time.Time
	Error       string
}
