package stageapimodels

import (
	"hr-pipeline-backend/models"

	"github.com/pkg/errors"
)

type StageView struct {
	Value      models.CandidateStage `json:"value"`       // Код этапа
	Label      string                `json:"label"`       // Название этапа
	IsTerminal bool                  `json:"is_terminal"` // Финальный этап, переходы с него невозможны
}

type ResolveRequest struct {
	Stages []string `json:"stages"` // Названия этапов в произвольной форме
}

func (r ResolveRequest) Validate() error {
	if len(r.Stages) == 0 {
		return errors.New("не указан список этапов")
	}
	return nil
}

type ResolvedLabel struct {
	Label string     `json:"label"`           // Исходное название
	Stage *StageView `json:"stage,omitempty"` // Этап каталога, пусто если название не распознано
}
