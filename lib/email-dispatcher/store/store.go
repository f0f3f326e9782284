package emaildispatchstore

import (
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.EmailDispatch) (id string, err error)
	GetByID(id string) (*dbmodels.EmailDispatch, error)
	// ListDue - ожидающие отправки письма со сроком не позже now, по порядку срока
	ListDue(now time.Time, limit int) (list []dbmodels.EmailDispatch, err error)
	// Claim переводит ожидающее письмо в отправку, false - письмо уже взято другим обработчиком
	Claim(id string) (bool, error)
	SetStatus(id string, status models.DispatchStatus, sentAt *time.Time, errText string) error
	// DeleteFinishedBefore удаляет обработанные письма старше before
	DeleteFinishedBefore(before time.Time) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.EmailDispatch) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.EmailDispatch, error) {
	var rec dbmodels.EmailDispatch
	err := i.db.
		Where("id = ?", id).
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

func (i impl) ListDue(now time.Time, limit int) (list []dbmodels.EmailDispatch, err error) {
	err = i.db.
		Model(&dbmodels.EmailDispatch{}).
		Where("status = ?", models.DispatchStatusPending).
		Where("scheduled_at <= ?", now).
		Order("scheduled_at").
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Claim(id string) (bool, error) {
	tx := i.db.
		Model(&dbmodels.EmailDispatch{}).
		Where("id = ?", id).
		Where("status = ?", models.DispatchStatusPending).
		Update("status", models.DispatchStatusSending)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (i impl) SetStatus(id string, status models.DispatchStatus, sentAt *time.Time, errText string) error {
	return i.db.
		Model(&dbmodels.EmailDispatch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  status,
			"sent_at": sentAt,
			"error":   errText,
		}).
		Error
}

func (i impl) DeleteFinishedBefore(before time.Time) (count int64, err error) {
	tx := i.db.
		Where("status <> ?", models.DispatchStatusPending).
		Where("updated_at < ?", before).
		Delete(&dbmodels.EmailDispatch{})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
