package emailtemplatestore

import (
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.EmailTemplate) (id string, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	GetByID(spaceID, id string) (rec *dbmodels.EmailTemplate, err error)
	List(spaceID string) (list []dbmodels.EmailTemplate, err error)
	Delete(spaceID, id string) error
	ListByStageAndJob(spaceID string, stage models.CandidateStage, jobID string) (list []dbmodels.EmailTemplate, err error)
}

func NewInstance(db *gorm.DB) Provider {
	return &impl{
		db: db,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.EmailTemplate) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(spaceID, id string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.EmailTemplate{}).
		Where("space_id = ?", spaceID).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) GetByID(spaceID, id string) (rec *dbmodels.EmailTemplate, err error) {
	err = i.db.
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) List(spaceID string) (list []dbmodels.EmailTemplate, err error) {
	err = i.db.
		Model(&dbmodels.EmailTemplate{}).
		Where("space_id = ?", spaceID).
		Order("name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(spaceID, id string) error {
	return i.db.
		Where("space_id = ?", spaceID).
		Where("id = ?", id).
		Delete(&dbmodels.EmailTemplate{}).
		Error
}

// ListByStageAndJob - шаблоны этапа для вакансии и для всего пространства, сначала шаблоны вакансии
func (i impl) ListByStageAndJob(spaceID string, stage models.CandidateStage, jobID string) (list []dbmodels.EmailTemplate, err error) {
	tx := i.db.
		Model(&dbmodels.EmailTemplate{}).
		Where("space_id = ?", spaceID).
		Where("stage = ?", stage)
	if jobID != "" {
		tx = tx.Where("job_id = ? or job_id is null", jobID)
	} else {
		tx = tx.Where("job_id is null")
	}
	err = tx.
		Order("job_id is null, created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
