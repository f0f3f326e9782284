package candidatehistoryhandler

import (
	"hr-pipeline-backend/db"
	candidatehistorystore "hr-pipeline-backend/lib/candidate-history/store"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
	dbmodels "hr-pipeline-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const systemUserName = "Система"

type Provider interface {
	List(spaceID, candidateID string, filter candidateapimodels.HistoryFilter) ([]candidateapimodels.HistoryView, int64, error)
	Save(spaceID, candidateID, jobID string, user Actor, action dbmodels.ActionType, changes dbmodels.CandidateChanges)
	// HasReply - кандидат ответил на письмо после since
	HasReply(spaceID, candidateID string, since time.Time) (bool, error)
}

// Actor - автор изменения, пустой ID - система
type Actor struct {
	ID   string
	Name string
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(candidatehistorystore.NewInstance(db.DB))
}

func NewInstance(store candidatehistorystore.Provider) Provider {
	return impl{
		store: store,
	}
}

type impl struct {
	store candidatehistorystore.Provider
}

func (i impl) List(spaceID, candidateID string, filter candidateapimodels.HistoryFilter) ([]candidateapimodels.HistoryView, int64, error) {
	rowCount, err := i.store.ListCount(spaceID, candidateID)
	if err != nil {
		return nil, 0, err
	}
	if int64(filter.GetOffset()) > rowCount {
		return []candidateapimodels.HistoryView{}, rowCount, nil
	}
	list, err := i.store.List(spaceID, candidateID, filter)
	if err != nil {
		log.WithError(err).Error("ошибка получения списка действий")
		return nil, 0, errors.New("ошибка получения списка действий")
	}
	result := make([]candidateapimodels.HistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, candidateapimodels.HistoryView{
			ID:          rec.ID,
			ActionType:  string(rec.ActionType),
			UserName:    rec.UserName,
			Description: rec.Changes.Description,
			Data:        rec.Changes.Data,
			CreatedAt:   rec.CreatedAt,
		})
	}
	return result, rowCount, nil
}

func (i impl) Save(spaceID, candidateID, jobID string, user Actor, action dbmodels.ActionType, changes dbmodels.CandidateChanges) {
	logger := log.WithField("space_id", spaceID).
		WithField("candidate_id", candidateID).
		WithField("job_id", jobID).
		WithField("action", action).
		WithField("description", changes.Description)
	rec := dbmodels.CandidateHistory{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		CandidateID: candidateID,
		JobID:       jobID,
		ActionType:  action,
		Changes:     changes,
		UserName:    systemUserName,
	}
	if user.ID != "" {
		rec.UserID = &user.ID
		rec.UserName = user.Name
	}
	_, err := i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка сохранения истории действий по кандидату")
	}
}

func (i impl) HasReply(spaceID, candidateID string, since time.Time) (bool, error) {
	return i.store.ExistsSince(spaceID, candidateID, dbmodels.HistoryTypeReply, since)
}
