package stages

import (
	"hr-pipeline-backend/models"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAvailableTransitions(t *testing.T) {
	terminal := []models.CandidateStage{
		models.StageHired,
		models.StageRejected,
		models.StageWithdrawn,
		models.StageArchived,
	}

	t.Run(`terminal stage has no transitions check`, func(t *testing.T) {
		for _, value := range terminal {
			require.Empty(t, AvailableTransitions(value, nil, false))
			require.Empty(t, AvailableTransitions(value, nil, true))
			require.Empty(t, AvailableTransitions(value, []string{"Apply", "Panel"}, true))
		}
	})

	t.Run(`default flow forward check`, func(t *testing.T) {
		result := values(AvailableTransitions(models.StagePanel, nil, false))
		require.Equal(t, []models.CandidateStage{
			models.StageTrial,
			models.StageCEOChat,
			models.StageOffer,
			models.StageHired,
			models.StageRejected,
			models.StageWithdrawn,
			models.StageArchived,
		}, result)
	})

	t.Run(`default flow backward check`, func(t *testing.T) {
		result := values(AvailableTransitions(models.StagePanel, nil, true))
		require.Len(t, result, 13)
		require.NotContains(t, result, models.StagePanel)
		require.Equal(t, models.StageApplied, result[0])
	})

	t.Run(`custom flow forward check`, func(t *testing.T) {
		flow := []string{"Apply", "People Chat", "Panel"}
		result := values(AvailableTransitions(models.StageApplied, flow, false))
		require.Equal(t, append([]models.CandidateStage{
			models.StageHRScreen,
			models.StagePanel,
		}, terminal...), result)
	})

	t.Run(`custom flow backward check`, func(t *testing.T) {
		flow := []string{"Apply", "People Chat", "Panel"}
		result := values(AvailableTransitions(models.StagePanel, flow, true))
		require.Equal(t, append([]models.CandidateStage{
			models.StageApplied,
			models.StageHRScreen,
		}, terminal...), result)
	})

	t.Run(`custom flow keeps first duplicate check`, func(t *testing.T) {
		flow := []string{"Apply", "Panel", "HR Screen", "panel interview"}
		result := values(AvailableTransitions(models.StageApplied, flow, false))
		require.Equal(t, append([]models.CandidateStage{
			models.StagePanel,
			models.StageHRScreen,
		}, terminal...), result)
	})

	t.Run(`custom flow drops terminal and unknown entries check`, func(t *testing.T) {
		flow := []string{"Rejected", "Apply", "Lunch", "Hired", "Offer"}
		result := values(AvailableTransitions(models.StageApplied, flow, false))
		require.Equal(t, append([]models.CandidateStage{models.StageOffer}, terminal...), result)
	})

	t.Run(`flow without known stages falls back to catalog check`, func(t *testing.T) {
		flow := []string{"Lunch", "Hired"}
		require.Equal(t,
			values(AvailableTransitions(models.StageOffer, nil, false)),
			values(AvailableTransitions(models.StageOffer, flow, false)))
	})

	t.Run(`current stage absent from flow check`, func(t *testing.T) {
		flow := []string{"Apply", "People Chat", "Panel"}
		result := values(AvailableTransitions(models.StageTechnical, flow, false))
		require.Equal(t, append([]models.CandidateStage{models.StagePanel}, terminal...), result)

		result = values(AvailableTransitions(models.StageTechnical, flow, true))
		require.Equal(t, append([]models.CandidateStage{
			models.StageApplied,
			models.StageHRScreen,
			models.StagePanel,
		}, terminal...), result)
	})

	t.Run(`terminal stages always offered check`, func(t *testing.T) {
		flows := [][]string{nil, {"Apply", "Offer"}, {"Trial"}}
		for _, flow := range flows {
			for _, def := range Catalog() {
				if def.IsTerminal {
					continue
				}
				result := values(AvailableTransitions(def.Value, flow, false))
				require.Equal(t, terminal, result[len(result)-len(terminal):])
			}
		}
	})

	t.Run(`current stage never offered check`, func(t *testing.T) {
		for _, def := range Catalog() {
			require.NotContains(t, values(AvailableTransitions(def.Value, nil, true)), def.Value)
		}
	})

	t.Run(`forward skip check`, func(t *testing.T) {
		require.True(t, IsTransitionAllowed(models.StageApplied, models.StageOffer, nil, false))
		require.False(t, IsTransitionAllowed(models.StageOffer, models.StageApplied, nil, false))
		require.True(t, IsTransitionAllowed(models.StageOffer, models.StageApplied, nil, true))
		require.False(t, IsTransitionAllowed(models.StageOffer, models.StageOffer, nil, true))
		require.False(t, IsTransitionAllowed(models.StageApplied, "UNKNOWN", nil, true))
	})
}
