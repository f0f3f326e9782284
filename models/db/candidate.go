package dbmodels

import (
	"fmt"
	"hr-pipeline-backend/models"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
	"strings"
	"time"
)

type Candidate struct {
	BaseSpaceModel
	JobID          string                `gorm:"type:varchar(36);index"`
	Job            *Job                  `gorm:"foreignKey:JobID"`
	FirstName      string                `gorm:"type:varchar(255)"`
	LastName       string                `gorm:"type:varchar(255)"`
	Email          string                `gorm:"type:varchar(255)"`
	CurrentStage   models.CandidateStage `gorm:"type:varchar(50);index"`
	StageChangedAt time.Time
}

func (r Candidate) GetFullName() string {
	return strings.TrimSpace(fmt.Sprintf("%v %v", r.FirstName, r.LastName))
}

func (r Candidate) ToModelView() candidateapimodels.CandidateView {
	return candidateapimodels.CandidateView{
		ID: r.ID,
		CandidateData: candidateapimodels.CandidateData{
			JobID:     r.JobID,
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Email:     r.Email,
		},
		CurrentStage:   r.CurrentStage,
		StageChangedAt: r.StageChangedAt,
	}
}

type StageCount struct {
	CurrentStage models.CandidateStage
	Count        int64
}
