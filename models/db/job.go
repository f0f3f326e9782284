package dbmodels

import (
	jobapimodels "hr-pipeline-backend/models/api/job"
)

type Job struct {
	BaseSpaceModel
	Name                  string      `gorm:"type:varchar(255)"`
	HiringFlowID          *string     `gorm:"type:varchar(36)"`
	HiringFlow            *HiringFlow `gorm:"foreignKey:HiringFlowID"`
	HiringFlowStages      StringArray `gorm:"type:jsonb"` // собственная воронка, приоритетнее шаблона
	AllowBackwardMovement bool
}

// FlowStages - действующая воронка вакансии
func (r Job) FlowStages() []string {
	if len(r.HiringFlowStages) != 0 {
		return r.HiringFlowStages
	}
	if r.HiringFlow != nil {
		return r.HiringFlow.Stages
	}
	return nil
}

func (r Job) ToModelView() jobapimodels.JobView {
	return jobapimodels.JobView{
		ID: r.ID,
		JobData: jobapimodels.JobData{
			Name:                  r.Name,
			HiringFlowID:          r.HiringFlowID,
			HiringFlowStages:      r.HiringFlowStages,
			AllowBackwardMovement: r.AllowBackwardMovement,
		},
		CreatedAt: r.CreatedAt,
	}
}
