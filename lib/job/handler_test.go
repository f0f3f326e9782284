package jobhandler

import (
	"hr-pipeline-backend/models"
	jobapimodels "hr-pipeline-backend/models/api/job"
	dbmodels "hr-pipeline-backend/models/db"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeJobStore struct {
	jobs    map[string]dbmodels.Job
	updated map[string]interface{}
}

func (f *fakeJobStore) Create(rec dbmodels.Job) (string, error) {
	rec.ID = "job-new"
	f.jobs[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeJobStore) GetByID(spaceID, id string) (*dbmodels.Job, error) {
	rec, ok := f.jobs[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeJobStore) Update(spaceID, id string, updMap map[string]interface{}) error {
	f.updated = updMap
	return nil
}

func (f *fakeJobStore) Delete(spaceID, id string) error {
	return nil
}

func (f *fakeJobStore) List(spaceID string) ([]dbmodels.Job, error) {
	return nil, nil
}

func (f *fakeJobStore) DetachHiringFlow(spaceID, hiringFlowID string) error {
	return nil
}

type fakeFlowStore struct {
	flows map[string]dbmodels.HiringFlow
}

func (f *fakeFlowStore) Create(rec dbmodels.HiringFlow) (string, error) {
	return "flow-new", nil
}

func (f *fakeFlowStore) Update(spaceID, id string, updMap map[string]interface{}) error {
	return nil
}

func (f *fakeFlowStore) GetByID(spaceID, id string) (*dbmodels.HiringFlow, error) {
	rec, ok := f.flows[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeFlowStore) List(spaceID string) ([]dbmodels.HiringFlow, error) {
	return nil, nil
}

func (f *fakeFlowStore) Delete(spaceID, id string) error {
	return nil
}

func TestJobFlow(t *testing.T) {
	flowID := "flow1"
	flow := dbmodels.HiringFlow{Stages: dbmodels.StringArray{"Apply", "Coding test"}}
	flow.ID = flowID

	ownJob := dbmodels.Job{Name: "own", HiringFlowStages: dbmodels.StringArray{"Apply", "Panel"}, HiringFlowID: &flowID, HiringFlow: &flow}
	ownJob.ID = "own"
	linkedJob := dbmodels.Job{Name: "linked", HiringFlowID: &flowID, HiringFlow: &flow, AllowBackwardMovement: true}
	linkedJob.ID = "linked"
	plainJob := dbmodels.Job{Name: "plain"}
	plainJob.ID = "plain"

	newHandler := func() (Provider, *fakeJobStore) {
		jobStore := &fakeJobStore{jobs: map[string]dbmodels.Job{
			"own":    ownJob,
			"linked": linkedJob,
			"plain":  plainJob,
		}}
		flowStore := &fakeFlowStore{flows: map[string]dbmodels.HiringFlow{flowID: flow}}
		return NewInstance(jobStore, flowStore), jobStore
	}

	t.Run(`own flow wins check`, func(t *testing.T) {
		handler, _ := newHandler()
		result, err := handler.GetFlow("space", "own")
		require.Nil(t, err)
		require.Equal(t, []string{"Apply", "Panel"}, result.Stages)
		require.False(t, result.AllowBackwardMovement)
	})

	t.Run(`linked flow check`, func(t *testing.T) {
		handler, _ := newHandler()
		result, err := handler.GetFlow("space", "linked")
		require.Nil(t, err)
		require.Equal(t, []string{"Apply", "Coding test"}, result.Stages)
		require.True(t, result.AllowBackwardMovement)
	})

	t.Run(`no flow check`, func(t *testing.T) {
		handler, _ := newHandler()
		result, err := handler.GetFlow("space", "plain")
		require.Nil(t, err)
		require.Empty(t, result.Stages)

		result, err = handler.GetFlow("space", "missing")
		require.Nil(t, err)
		require.Nil(t, result)
	})

	t.Run(`set hiring flow reports unresolved check`, func(t *testing.T) {
		handler, jobStore := newHandler()
		result, hMsg, err := handler.SetHiringFlow("space", "plain", jobapimodels.HiringFlowStagesData{
			Stages: []string{" Apply ", "", "Lunch", "Panel"},
		})
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, []string{"Lunch"}, result.Unresolved)
		require.Equal(t, dbmodels.StringArray{"Apply", "Lunch", "Panel"}, jobStore.updated["hiring_flow_stages"])
	})

	t.Run(`set empty hiring flow check`, func(t *testing.T) {
		handler, _ := newHandler()
		_, hMsg, err := handler.SetHiringFlow("space", "plain", jobapimodels.HiringFlowStagesData{Stages: []string{" "}})
		require.Nil(t, err)
		require.NotEmpty(t, hMsg)
	})

	t.Run(`attach unknown flow check`, func(t *testing.T) {
		handler, _ := newHandler()
		missing := "missing"
		hMsg, err := handler.AttachHiringFlow("space", "plain", jobapimodels.HiringFlowAttach{HiringFlowID: &missing})
		require.Nil(t, err)
		require.Equal(t, "шаблон воронки не найден", hMsg)
	})

	t.Run(`preview flow check`, func(t *testing.T) {
		result := PreviewFlow([]string{"People Chat", "Lunch"})
		require.Len(t, result, 2)
		require.Equal(t, models.StageHRScreen, result[0].Stage.Value)
		require.Nil(t, result[1].Stage)
	})
}
