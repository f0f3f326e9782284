package events

import (
	"context"
	"hr-pipeline-backend/models"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	t.Run(`stage changed payload check`, func(t *testing.T) {
		body, err := encode(StageChanged{
			Type:        models.EventCandidateStageChanged,
			SpaceID:     "space",
			CandidateID: "c1",
			JobID:       "job",
			From:        string(models.StageCEOChat),
			To:          string(models.StageOffer),
			UserID:      "u1",
		})
		require.Nil(t, err)
		require.JSONEq(t, `{
			"type": "EVENT_CANDIDATE_STAGE_CHANGED",
			"spaceId": "space",
			"candidateId": "c1",
			"jobId": "job",
			"from": "`+string(models.StageCEOChat)+`",
			"to": "OFFER",
			"userId": "u1"
		}`, string(body))
	})

	t.Run(`unsupported payload check`, func(t *testing.T) {
		_, err := encode(make(chan int))
		require.NotNil(t, err)
	})
}

func TestConnectWithoutRedis(t *testing.T) {
	t.Run(`empty url keeps noop publisher check`, func(t *testing.T) {
		require.Nil(t, Connect(context.TODO(), ""))
		require.Nil(t, Instance.Publish(context.TODO(), models.EventCandidateStageChanged, StageChanged{}))
	})

	t.Run(`invalid url check`, func(t *testing.T) {
		require.NotNil(t, Connect(context.TODO(), "not-a-redis-url"))
	})
}
