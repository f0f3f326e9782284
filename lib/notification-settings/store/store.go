package notificationsettingsstore

import (
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.StageNotificationSetting) (id string, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	Get(spaceID string, jobID *string, stage models.CandidateStage) (rec *dbmodels.StageNotificationSetting, err error)
	// List - настройки пространства (jobID == nil) или переопределения вакансии
	List(spaceID string, jobID *string) (list []dbmodels.StageNotificationSetting, err error)
	Delete(spaceID, id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.StageNotificationSetting) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(spaceID, id string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.StageNotificationSetting{}).
		Where("space_id = ?", spaceID).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) Get(spaceID string, jobID *string, stage models.CandidateStage) (rec *dbmodels.StageNotificationSetting, err error) {
	tx := i.jobScope(spaceID, jobID).
		Where("stage = ?", stage)
	err = tx.First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) List(spaceID string, jobID *string) (list []dbmodels.StageNotificationSetting, err error) {
	err = i.jobScope(spaceID, jobID).
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
		Delete(&dbmodels.StageNotificationSetting{}).
		Error
}

func (i impl) jobScope(spaceID string, jobID *string) *gorm.DB {
	tx := i.db.
		Model(&dbmodels.StageNotificationSetting{}).
		Where("space_id = ?", spaceID)
	if jobID == nil || *jobID == "" {
		return tx.Where("job_id is null")
	}
	return tx.Where("job_id = ?", *jobID)
}
