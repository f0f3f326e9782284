package candidatehandler

import (
	"context"
	candidatehistoryhandler "hr-pipeline-backend/lib/candidate-history"
	candidatestore "hr-pipeline-backend/lib/candidate/store"
	emailtemplatestore "hr-pipeline-backend/lib/email-template/store"
	xlsexport "hr-pipeline-backend/lib/export/xls"
	jobhandler "hr-pipeline-backend/lib/job"
	notificationpolicy "hr-pipeline-backend/lib/notification-policy"
	"hr-pipeline-backend/models"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
	emailtemplateapimodels "hr-pipeline-backend/models/api/email-template"
	dbmodels "hr-pipeline-backend/models/db"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeCandidateStore struct {
	candidates map[string]dbmodels.Candidate
	setStage   int
	conflict   bool
	counts     []dbmodels.StageCount
}

func (f *fakeCandidateStore) Create(rec dbmodels.Candidate) (string, error) {
	rec.ID = "c-new"
	f.candidates[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeCandidateStore) GetByID(spaceID, id string) (*dbmodels.Candidate, error) {
	rec, ok := f.candidates[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeCandidateStore) ListCount(spaceID string, filter candidateapimodels.CandidateFilter) (int64, error) {
	return int64(len(f.candidates)), nil
}

func (f *fakeCandidateStore) List(spaceID string, filter candidateapimodels.CandidateFilter) ([]dbmodels.Candidate, error) {
	list := []dbmodels.Candidate{}
	for _, rec := range f.candidates {
		list = append(list, rec)
	}
	return list, nil
}

func (f *fakeCandidateStore) SetStage(spaceID, id string, from, to models.CandidateStage, changedAt time.Time) (bool, error) {
	f.setStage++
	rec, ok := f.candidates[id]
	if !ok || f.conflict || rec.CurrentStage != from {
		return false, nil
	}
	rec.CurrentStage = to
	rec.StageChangedAt = changedAt
	f.candidates[id] = rec
	return true, nil
}

func (f *fakeCandidateStore) CountByStage(spaceID, jobID string) ([]dbmodels.StageCount, error) {
	return f.counts, nil
}

func (f *fakeCandidateStore) ListByJob(spaceID, jobID string) ([]dbmodels.Candidate, error) {
	return f.List(spaceID, candidateapimodels.CandidateFilter{})
}

type fakeTemplateStore struct {
	templates map[string]dbmodels.EmailTemplate
	created   []dbmodels.EmailTemplate
}

func (f *fakeTemplateStore) Create(rec dbmodels.EmailTemplate) (string, error) {
	rec.ID = "tpl-new"
	f.created = append(f.created, rec)
	f.templates[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeTemplateStore) Update(spaceID, id string, updMap map[string]interface{}) error {
	return nil
}

func (f *fakeTemplateStore) GetByID(spaceID, id string) (*dbmodels.EmailTemplate, error) {
	rec, ok := f.templates[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeTemplateStore) List(spaceID string) ([]dbmodels.EmailTemplate, error) {
	return nil, nil
}

func (f *fakeTemplateStore) Delete(spaceID, id string) error {
	return nil
}

func (f *fakeTemplateStore) ListByStageAndJob(spaceID string, stage models.CandidateStage, jobID string) ([]dbmodels.EmailTemplate, error) {
	list := []dbmodels.EmailTemplate{}
	for _, rec := range f.templates {
		if rec.Stage != nil && *rec.Stage == stage {
			list = append(list, rec)
		}
	}
	return list, nil
}

type fakeFlows struct {
	flow *jobhandler.Flow
}

func (f fakeFlows) GetFlow(spaceID, jobID string) (*jobhandler.Flow, error) {
	return f.flow, nil
}

type fakeSettings struct {
	settings notificationpolicy.Settings
}

func (f fakeSettings) Load(spaceID, jobID string) (notificationpolicy.Settings, error) {
	return f.settings, nil
}

type sendCall struct {
	templateID   string
	candidateID  string
	delayMinutes int
}

type reminderCall struct {
	dispatchID string
	afterHours int
}

type fakeDispatcher struct {
	sends     []sendCall
	reminders []reminderCall
	sendErr   error
}

func (f *fakeDispatcher) Send(ctx context.Context, spaceID, templateID, candidateID string, delayMinutes int) (string, error) {
	f.sends = append(f.sends, sendCall{templateID: templateID, candidateID: candidateID, delayMinutes: delayMinutes})
	if f.sendErr != nil {
		return "", f.sendErr
	}
	return "d1", nil
}

func (f *fakeDispatcher) ScheduleReminder(ctx context.Context, dispatchID string, afterHours int) error {
	f.reminders = append(f.reminders, reminderCall{dispatchID: dispatchID, afterHours: afterHours})
	return nil
}

func (f *fakeDispatcher) ProcessDue(ctx context.Context, batchSize int) {}

type fakeHistory struct {
	actions []dbmodels.ActionType
}

func (f *fakeHistory) List(spaceID, candidateID string, filter candidateapimodels.HistoryFilter) ([]candidateapimodels.HistoryView, int64, error) {
	return []candidateapimodels.HistoryView{}, int64(len(f.actions)), nil
}

func (f *fakeHistory) Save(spaceID, candidateID, jobID string, user candidatehistoryhandler.Actor, action dbmodels.ActionType, changes dbmodels.CandidateChanges) {
	f.actions = append(f.actions, action)
}

func (f *fakeHistory) HasReply(spaceID, candidateID string, since time.Time) (bool, error) {
	return false, nil
}

type fakePublisher struct {
	channels []string
}

func (f *fakePublisher) Publish(ctx context.Context, channel string, payload interface{}) error {
	f.channels = append(f.channels, channel)
	return nil
}

type testEnv struct {
	store      *fakeCandidateStore
	templates  *fakeTemplateStore
	dispatcher *fakeDispatcher
	history    *fakeHistory
	publisher  *fakePublisher
	flow       *jobhandler.Flow
	settings   notificationpolicy.Settings
}

func newTestEnv(stage models.CandidateStage) *testEnv {
	candidate := dbmodels.Candidate{
		JobID:        "job",
		FirstName:    "Anna",
		LastName:     "Smith",
		Email:        "anna@example.com",
		CurrentStage: stage,
	}
	candidate.ID = "c1"
	candidate.SpaceID = "space"
	return &testEnv{
		store: &fakeCandidateStore{
			candidates: map[string]dbmodels.Candidate{"c1": candidate},
		},
		templates:  &fakeTemplateStore{templates: map[string]dbmodels.EmailTemplate{}},
		dispatcher: &fakeDispatcher{},
		history:    &fakeHistory{},
		publisher:  &fakePublisher{},
		flow:       &jobhandler.Flow{JobID: "job", JobName: "Go developer"},
	}
}

func (e *testEnv) handler() impl {
	return impl{
		Deps: Deps{
			Store:         e.store,
			TemplateStore: e.templates,
			Flows:         fakeFlows{flow: e.flow},
			Settings:      fakeSettings{settings: e.settings},
			Policy:        notificationpolicy.NewInstance(e.templates),
			Dispatcher:    e.dispatcher,
			Histories:     e.history,
			Publisher:     e.publisher,
			Export:        exportInstance(),
			Transaction: func(fn func(store candidatestore.Provider, templateStore emailtemplatestore.Provider) error) error {
				return fn(e.store, e.templates)
			},
			LockWait: time.Second,
		},
		now: func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) },
	}
}

func exportInstance() xlsexport.Provider {
	xlsexport.NewHandler()
	return xlsexport.Instance
}

func offerSettings(cfg notificationpolicy.Config) notificationpolicy.Settings {
	return notificationpolicy.Settings{
		Global: map[models.CandidateStage]notificationpolicy.Config{models.StageOffer: cfg},
	}
}

func strPtr(s string) *string {
	return &s
}

func (e *testEnv) stage() models.CandidateStage {
	return e.store.candidates["c1"].CurrentStage
}

func TestTransition(t *testing.T) {
	ctx := context.Background()
	user := candidatehistoryhandler.Actor{ID: "u1", Name: "Recruiter"}

	t.Run(`backward transition without permission is rejected check`, func(t *testing.T) {
		env := newTestEnv(models.StageTechnical)
		_, err := env.handler().Transition(ctx, "space", user, "c1", candidateapimodels.TransitionRequest{
			TargetStage: models.StageTeamChat,
		})
		require.True(t, errors.Is(err, ErrInvalidTransition))
		require.Equal(t, 0, env.store.setStage)
		require.Equal(t, models.StageTechnical, env.stage())
		require.Empty(t, env.history.actions)
		require.Empty(t, env.dispatcher.sends)
	})

	t.Run(`backward transition with permission check`, func(t *testing.T) {
		env := newTestEnv(models.StageTechnical)
		env.flow.AllowBackwardMovement = true
		result, err := env.handler().Transition(ctx, "space", user, "c1", candidateapimodels.TransitionRequest{
			TargetStage: models.StageTeamChat,
		})
		require.Nil(t, err)
		require.Equal(t, models.StageTeamChat, result.Stage)
		require.Equal(t, models.StageTeamChat, env.stage())
	})

	t.Run(`terminal stage has no transitions check`, func(t *testing.T) {
		env := newTestEnv(models.StageHired)
		_, err := env.handler().Transition(ctx, "space", user, "c1", candidateapimodels.TransitionRequest{
			TargetStage: models.StageOffer,
		})
		require.True(t, errors.Is(err, ErrInvalidTransition))
	})

	t.Run(`configured offer email is sent once check`, func(t *testing.T) {
		env := newTestEnv(models.StageCEOChat)
		env.settings = offerSettings(notificationpolicy.Config{Enabled: true, DelayMinutes: 0, TemplateID: strPtr("t1")})
		result, err := env.handler().Transition(ctx, "space", user, "c1", candidateapimodels.TransitionRequest{
			TargetStage: models.StageOffer,
		})
		require.Nil(t, err)
		require.Equal(t, []sendCall{{templateID: "t1", candidateID: "c1", delayMinutes: 0}}, env.dispatcher.sends)
		require.True(t, result.EmailAccepted)
		require.Equal(t, "t1", *result.TemplateID)
		require.Empty(t, result.Warning)
		require.Equal(t, models.StageOffer, env.stage())
		require.Equal(t, []dbmodels.ActionType{dbmodels.HistoryTypeStageChange}, env.history.actions)
		require.Equal(t, []string{models.EventCandidateStageChanged}, env.publisher.channels)
	})

	t.Run(`skip auto email never calls dispatcher check`, func(t *testing.T) {
		env := newTestEnv(models.StageCEOChat)
		env.settings = offerSettings(notificationpolicy.Config{Enabled: true, TemplateID: strPtr("t1"), ReminderEnabled: true, ReminderDelayHours: 24})
		result, err := env.handler().Transition(ctx, "space", user, "c1", candidateapimodels.TransitionRequest{
			TargetStage:   models.StageOffer,
			SkipAutoEmail: true,
			InlineTemplate: &emailtemplateapimodels.EmailTemplateData{
				Name:     "offer",
				Subject:  "Offer",
				HtmlBody: "<p>Hi</p>",
			},
		})
		require.Nil(t, err)
		require.Equal(t, models.StageOffer, result.Stage)
		require.Empty(t, env.dispatcher.sends)
		require.Empty(t, env.dispatcher.reminders)
		require.Empty(t, env.templates.created)
	})

	t.Run(`send failure keeps stage and returns warning check`, func(t *testing.T) {
		env := newTestEnv(models.StageCEOChat)
		env.settings = offerSettings(notificationpolicy.Config{Enabled: true, TemplateID: strPtr("t1")})
		env.dispatcher.sendErr = errors.New("smtp down")
		result, err := env.handler().Transition(ctx, "space", user, "c1", candidateapimodels.TransitionRequest{
			TargetStage: models.StageOffer,
		})
		require.Nil(t, err)
		require.NotEmpty(t, result.Warning)
		require.False(t, result.EmailAccepted)
		require.Equal(t, models.StageOffer, env.stage())
	})

	t.Run(`delay and reminder from settings check`, func(t *testing.T) {
		env := newTestEnv(models.StageCEOChat)
		env.settings = offerSettings(notificationpolicy.Config{
			Enabled:            true,
			DelayMinutes:       5000,
			TemplateID:         strPtr("t1"),
			ReminderEnabled:    true,
			ReminderDelayHours: 48,
		})
		result, err := env.handler().Transition(ctx, "space", user, "c1", candidateapimodels.TransitionRequest{
			TargetStage: models.StageOffer,
		})
		require.Nil(t, err)
		require.Equal(t, models.NotificationDelayMinutesMax, env.dispatcher.sends[0].delayMinutes)
		require.Equal(t, []reminderCall{{dispatchID: "d1", afterHours: 48}}, env.dispatcher.reminders)
		require.True(t, result.ReminderScheduled)
	})

	t.Run(`notification not configured check`, func(t *testing.T) {
		env := newTestEnv(models.StageCEOChat)
		result, err := env.handler().Transition(ctx, "space", user, "c1", candidateapimodels.TransitionRequest{
			TargetStage: models.StageOffer,
		})
		require.Nil(t, err)
		require.Empty(t, env.dispatcher.sends)
		require.Empty(t, result.Warning)
		require.Equal(t, models.StageOffer, env.stage())
	})

	t.Run(`inline template is created and used check`, func(t *testing.T) {
		env := newTestEnv(models.StageCEOChat)
		env.settings = offerSettings(notificationpolicy.Config{Enabled: true, TemplateID: strPtr("t1")})
		_, err := env.handler().Transition(ctx, "space", user, "c1", candidateapimodels.TransitionRequest{
			TargetStage: models.StageOffer,
			InlineTemplate: &emailtemplateapimodels.EmailTemplateData{
				Name:     "offer",
				Subject:  "Offer for {{.CandidateFirstName}}",
				HtmlBody: "<p>{{.JobName}}</p>",
			},
		})
		require.Nil(t, err)
		require.Len(t, env.templates.created, 1)
		require.Equal(t, "space", env.templates.created[0].SpaceID)
		require.Equal(t, []sendCall{{templateID: "tpl-new", candidateID: "c1"}}, env.dispatcher.sends)
	})

	t.Run(`invalid inline template aborts before persistence check`, func(t *testing.T) {
		env := newTestEnv(models.StageCEOChat)
		_, err := env.handler().Transition(ctx, "space", user, "c1", candidateapimodels.TransitionRequest{
			TargetStage: models.StageOffer,
			InlineTemplate: &emailtemplateapimodels.EmailTemplateData{
				Name:    "offer",
				Subject: "Offer",
			},
		})
		require.True(t, errors.Is(err, ErrInvalidTemplate))
		require.Empty(t, env.templates.created)
		require.Equal(t, 0, env.store.setStage)
		require.Equal(t, models.StageCEOChat, env.stage())
	})

	t.Run(`override template is used check`, func(t *testing.T) {
		env := newTestEnv(models.StageCEOChat)
		env.templates.templates["t2"] = dbmodels.EmailTemplate{Name: "custom"}
		env.settings = offerSettings(notificationpolicy.Config{Enabled: true, TemplateID: strPtr("t1")})
		_, err := env.handler().Transition(ctx, "space", user, "c1", candidateapimodels.TransitionRequest{
			TargetStage:        models.StageOffer,
			TemplateOverrideID: strPtr("t2"),
		})
		require.Nil(t, err)
		require.Equal(t, "t2", env.dispatcher.sends[0].templateID)
	})

	t.Run(`missing override template check`, func(t *testing.T) {
		env := newTestEnv(models.StageCEOChat)
		_, err := env.handler().Transition(ctx, "space", user, "c1", candidateapimodels.TransitionRequest{
			TargetStage:        models.StageOffer,
			TemplateOverrideID: strPtr("missing"),
		})
		require.True(t, errors.Is(err, ErrTemplateNotFound))
		require.Equal(t, 0, env.store.setStage)
	})

	t.Run(`concurrent stage change is a conflict check`, func(t *testing.T) {
		env := newTestEnv(models.StageCEOChat)
		env.store.conflict = true
		env.settings = offerSettings(notificationpolicy.Config{Enabled: true, TemplateID: strPtr("t1")})
		_, err := env.handler().Transition(ctx, "space", user, "c1", candidateapimodels.TransitionRequest{
			TargetStage: models.StageOffer,
		})
		require.True(t, errors.Is(err, ErrStageConflict))
		require.Empty(t, env.dispatcher.sends)
		require.Empty(t, env.history.actions)
	})

	t.Run(`unknown candidate check`, func(t *testing.T) {
		env := newTestEnv(models.StageApplied)
		_, err := env.handler().Transition(ctx, "space", user, "nope", candidateapimodels.TransitionRequest{
			TargetStage: models.StageOffer,
		})
		require.True(t, errors.Is(err, ErrCandidateNotFound))
	})
}

func TestAvailableTransitions(t *testing.T) {
	t.Run(`custom flow with aliases check`, func(t *testing.T) {
		env := newTestEnv(models.StageApplied)
		env.flow.Stages = []string{"Apply", "People Chat", "Panel"}
		view, err := env.handler().AvailableTransitions("space", "c1")
		require.Nil(t, err)
		require.Equal(t, models.StageApplied, view.CurrentStage.Value)
		values := []models.CandidateStage{}
		for _, item := range view.Transitions {
			values = append(values, item.Value)
		}
		require.Equal(t, []models.CandidateStage{
			models.StageHRScreen,
			models.StagePanel,
			models.StageHired,
			models.StageRejected,
			models.StageWithdrawn,
			models.StageArchived,
		}, values)
	})

	t.Run(`hired candidate check`, func(t *testing.T) {
		env := newTestEnv(models.StageHired)
		view, err := env.handler().AvailableTransitions("space", "c1")
		require.Nil(t, err)
		require.Empty(t, view.Transitions)
	})

	t.Run(`missing job check`, func(t *testing.T) {
		env := newTestEnv(models.StageApplied)
		env.flow = nil
		_, err := env.handler().AvailableTransitions("space", "c1")
		require.True(t, errors.Is(err, ErrJobNotFound))
	})
}

func TestCreate(t *testing.T) {
	t.Run(`new candidate starts at applied check`, func(t *testing.T) {
		env := newTestEnv(models.StageApplied)
		id, err := env.handler().Create("space", candidatehistoryhandler.Actor{}, candidateapimodels.CandidateData{
			JobID:     "job",
			FirstName: "Ivan",
			Email:     "ivan@example.com",
		})
		require.Nil(t, err)
		require.Equal(t, models.StageApplied, env.store.candidates[id].CurrentStage)
		require.Equal(t, "space", env.store.candidates[id].SpaceID)
		require.Equal(t, []dbmodels.ActionType{dbmodels.HistoryTypeAdded}, env.history.actions)
	})

	t.Run(`unknown job check`, func(t *testing.T) {
		env := newTestEnv(models.StageApplied)
		env.flow = nil
		_, err := env.handler().Create("space", candidatehistoryhandler.Actor{}, candidateapimodels.CandidateData{JobID: "job", FirstName: "Ivan"})
		require.True(t, errors.Is(err, ErrJobNotFound))
	})
}

func TestRecordReply(t *testing.T) {
	t.Run(`reply is saved to history check`, func(t *testing.T) {
		env := newTestEnv(models.StageOffer)
		err := env.handler().RecordReply("space", "c1", candidateapimodels.ReplyData{})
		require.Nil(t, err)
		require.Equal(t, []dbmodels.ActionType{dbmodels.HistoryTypeReply}, env.history.actions)
	})
}

func TestStageSummary(t *testing.T) {
	t.Run(`counts by flow stages check`, func(t *testing.T) {
		env := newTestEnv(models.StageApplied)
		env.flow.Stages = []string{"Apply", "Panel"}
		env.store.counts = []dbmodels.StageCount{
			{CurrentStage: models.StageApplied, Count: 2},
			{CurrentStage: models.StageOffer, Count: 1},
		}
		summary, err := env.handler().StageSummary("space", "job")
		require.Nil(t, err)
		stagesList := []models.CandidateStage{}
		counts := map[models.CandidateStage]int64{}
		for _, item := range summary {
			stagesList = append(stagesList, item.Stage)
			counts[item.Stage] = item.Count
		}
		require.Equal(t, []models.CandidateStage{
			models.StageApplied,
			models.StagePanel,
			models.StageOffer,
			models.StageHired,
			models.StageRejected,
			models.StageWithdrawn,
			models.StageArchived,
		}, stagesList)
		require.Equal(t, int64(2), counts[models.StageApplied])
		require.Equal(t, int64(0), counts[models.StagePanel])
		require.Equal(t, int64(1), counts[models.StageOffer])
	})

	t.Run(`export builds xlsx check`, func(t *testing.T) {
		env := newTestEnv(models.StageApplied)
		buf, err := env.handler().ExportPipeline("space", "job")
		require.Nil(t, err)
		require.NotZero(t, buf.Len())
	})
}
