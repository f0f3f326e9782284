package candidatestore

import (
	"hr-pipeline-backend/models"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
	dbmodels "hr-pipeline-backend/models/db"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Candidate) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.Candidate, err error)
	ListCount(spaceID string, filter candidateapimodels.CandidateFilter) (count int64, err error)
	List(spaceID string, filter candidateapimodels.CandidateFilter) (list []dbmodels.Candidate, err error)
	// SetStage переводит кандидата на этап to, только если он все еще на этапе from.
	// false - этап уже изменен другим запросом
	SetStage(spaceID, id string, from, to models.CandidateStage, changedAt time.Time) (updated bool, err error)
	CountByStage(spaceID, jobID string) (list []dbmodels.StageCount, err error)
	ListByJob(spaceID, jobID string) (list []dbmodels.Candidate, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Candidate) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.Candidate, error) {
	rec := dbmodels.Candidate{}
	err := i.db.
		Model(&dbmodels.Candidate{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Preload("Job").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListCount(spaceID string, filter candidateapimodels.CandidateFilter) (count int64, err error) {
	err = i.filter(spaceID, filter).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) List(spaceID string, filter candidateapimodels.CandidateFilter) (list []dbmodels.Candidate, err error) {
	list = []dbmodels.Candidate{}
	_, limit := filter.GetPage()
	err = i.filter(spaceID, filter).
		Order("stage_changed_at desc").
		Limit(limit).
		Offset(filter.GetOffset()).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) SetStage(spaceID, id string, from, to models.CandidateStage, changedAt time.Time) (updated bool, err error) {
	tx := i.db.
		Model(&dbmodels.Candidate{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Where("current_stage = ?", from).
		Updates(map[string]interface{}{
			"current_stage":    to,
			"stage_changed_at": changedAt,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (i impl) CountByStage(spaceID, jobID string) (list []dbmodels.StageCount, err error) {
	err = i.db.
		Model(&dbmodels.Candidate{}).
		Select("current_stage, count(*) as count").
		Where("space_id = ?", spaceID).
		Where("job_id = ?", jobID).
		Group("current_stage").
		Scan(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByJob(spaceID, jobID string) (list []dbmodels.Candidate, err error) {
	err = i.db.
		Model(&dbmodels.Candidate{}).
		Where("space_id = ?", spaceID).
		Where("job_id = ?", jobID).
		Order("last_name, first_name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) filter(spaceID string, filter candidateapimodels.CandidateFilter) *gorm.DB {
	tx := i.db.
		Model(&dbmodels.Candidate{}).
		Where("space_id = ?", spaceID).
		Where("job_id = ?", filter.JobID)
	if filter.Stage != "" {
		tx = tx.Where("current_stage = ?", filter.Stage)
	}
	return tx
}
