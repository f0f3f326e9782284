package candidatehistorystore

import (
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
	dbmodels "hr-pipeline-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.CandidateHistory) (id string, err error)
	ListCount(spaceID, candidateID string) (count int64, err error)
	List(spaceID, candidateID string, filter candidateapimodels.HistoryFilter) (list []dbmodels.CandidateHistory, err error)
	ExistsSince(spaceID, candidateID string, action dbmodels.ActionType, since time.Time) (bool, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.CandidateHistory) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListCount(spaceID, candidateID string) (count int64, err error) {
	var rowCount int64
	err = i.db.
		Model(dbmodels.CandidateHistory{}).
		Where("space_id = ?", spaceID).
		Where("candidate_id = ?", candidateID).
		Count(&rowCount).
		Error
	if err != nil {
		log.WithError(err).Error("ошибка получения общего количества действий по кандидату")
		return 0, errors.New("ошибка получения общего количества действий по кандидату")
	}
	return rowCount, nil
}

func (i impl) List(spaceID, candidateID string, filter candidateapimodels.HistoryFilter) (list []dbmodels.CandidateHistory, err error) {
	list = []dbmodels.CandidateHistory{}
	_, limit := filter.GetPage()
	err = i.db.
		Model(dbmodels.CandidateHistory{}).
		Where("space_id = ?", spaceID).
		Where("candidate_id = ?", candidateID).
		Order("created_at").
		Limit(limit).
		Offset(filter.GetOffset()).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ExistsSince(spaceID, candidateID string, action dbmodels.ActionType, since time.Time) (bool, error) {
	var rowCount int64
	err := i.db.
		Model(dbmodels.CandidateHistory{}).
		Where("space_id = ?", spaceID).
		Where("candidate_id = ?", candidateID).
		Where("action_type = ?", action).
		Where("created_at >= ?", since).
		Count(&rowCount).
		Error
	if err != nil {
		return false, err
	}
	return rowCount > 0, nil
}
