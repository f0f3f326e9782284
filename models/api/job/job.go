package jobapimodels

import (
	"hr-pipeline-backend/models"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type JobData struct {
	Name                  string   `json:"name"`                         // Название вакансии
	HiringFlowID          *string  `json:"hiring_flow_id,omitempty"`     // Шаблон воронки
	HiringFlowStages      []string `json:"hiring_flow_stages,omitempty"` // Собственная воронка вакансии
	AllowBackwardMovement bool     `json:"allow_backward_movement"`      // Разрешен перевод на предыдущие этапы
}

func (r JobData) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("не указано название вакансии")
	}
	if len(r.HiringFlowStages) != 0 && !hasStage(r.HiringFlowStages) {
		return errors.New("воронка должна содержать хотя бы один этап")
	}
	return nil
}

type JobView struct {
	ID string `json:"id"`
	JobData
	CreatedAt time.Time `json:"created_at"`
}

type HiringFlowStagesData struct {
	Stages []string `json:"stages"` // Этапы воронки по порядку
}

func (r HiringFlowStagesData) Validate() error {
	if !hasStage(r.Stages) {
		return errors.New("воронка должна содержать хотя бы один этап")
	}
	return nil
}

type HiringFlowAttach struct {
	HiringFlowID *string `json:"hiring_flow_id"` // пусто - отвязать шаблон воронки
}

type HiringFlowData struct {
	Name   string   `json:"name"`   // Название шаблона воронки
	Stages []string `json:"stages"` // Этапы по порядку
}

func (r HiringFlowData) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("не указано название воронки")
	}
	if !hasStage(r.Stages) {
		return errors.New("воронка должна содержать хотя бы один этап")
	}
	return nil
}

type HiringFlowView struct {
	ID string `json:"id"`
	HiringFlowData
}

type SaveFlowResult struct {
	ID         string   `json:"id,omitempty"`
	Unresolved []string `json:"unresolved"` // Этапы, не найденные в каталоге (отображаются как есть)
}

type StageSummaryItem struct {
	Stage models.CandidateStage `json:"stage"` // Код этапа
	Label string                `json:"label"` // Название этапа
	Count int64                 `json:"count"` // Кандидатов на этапе
}

func hasStage(stages []string) bool {
	for _, stage := range stages {
		if strings.TrimSpace(stage) != "" {
			return true
		}
	}
	return false
}
