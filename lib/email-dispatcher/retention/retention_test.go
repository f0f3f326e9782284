package emailretention

import (
	"context"
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	before []time.Time
	err    error
}

func (f *fakeStore) Create(rec dbmodels.EmailDispatch) (string, error) {
	return "", nil
}

func (f *fakeStore) GetByID(id string) (*dbmodels.EmailDispatch, error) {
	return nil, nil
}

func (f *fakeStore) ListDue(now time.Time, limit int) ([]dbmodels.EmailDispatch, error) {
	return nil, nil
}

func (f *fakeStore) Claim(id string) (bool, error) {
	return false, nil
}

func (f *fakeStore) SetStatus(id string, status models.DispatchStatus, sentAt *time.Time, errText string) error {
	return nil
}

func (f *fakeStore) DeleteFinishedBefore(before time.Time) (int64, error) {
	f.before = append(f.before, before)
	return 3, f.err
}

func TestCleanup(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run(`cutoff is retention days before now check`, func(t *testing.T) {
		store := &fakeStore{}
		New(store, "@daily", 90).Cleanup(now)
		require.Equal(t, []time.Time{time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)}, store.before)
	})

	t.Run(`store error is not fatal check`, func(t *testing.T) {
		store := &fakeStore{err: errors.New("db down")}
		require.NotPanics(t, func() {
			New(store, "@daily", 1).Cleanup(now)
		})
		require.Equal(t, []time.Time{now.AddDate(0, 0, -1)}, store.before)
	})
}

func TestStart(t *testing.T) {
	t.Run(`invalid schedule check`, func(t *testing.T) {
		err := New(&fakeStore{}, "every now and then", 90).Start(context.TODO())
		require.NotNil(t, err)
	})

	t.Run(`valid schedule check`, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		require.Nil(t, New(&fakeStore{}, "@daily", 90).Start(ctx))
	})
}
