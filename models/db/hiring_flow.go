package dbmodels

import jobapimodels "hr-pipeline-backend/models/api/job"

// HiringFlow - именованная воронка, которую можно подключить к нескольким вакансиям
type HiringFlow struct {
	BaseSpaceModel
	Name   string      `gorm:"type:varchar(255)"`
	Stages StringArray `gorm:"type:jsonb"`
}

func (r HiringFlow) ToModelView() jobapimodels.HiringFlowView {
	return jobapimodels.HiringFlowView{
		ID: r.ID,
		HiringFlowData: jobapimodels.HiringFlowData{
			Name:   r.Name,
			Stages: r.Stages,
		},
	}
}
