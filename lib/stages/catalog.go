// Package stages - каталог этапов воронки кандидата, сопоставление произвольных
// названий этапов с каталогом и расчет доступных переходов.
package stages

import (
	"hr-pipeline-backend/models"
	stageapimodels "hr-pipeline-backend/models/api/stage"
	"strings"
	"unicode"
)

type StageDefinition struct {
	Value      models.CandidateStage
	Label      string
	IsTerminal bool
}

func (d StageDefinition) ToModelView() stageapimodels.StageView {
	return stageapimodels.StageView{
		Value:      d.Value,
		Label:      d.Label,
		IsTerminal: d.IsTerminal,
	}
}

// порядок каталога - порядок воронки по умолчанию
var catalog = []StageDefinition{
	{Value: models.StageApplied, Label: "Applied"},
	{Value: models.StageShortlisted, Label: "Shortlisted"},
	{Value: models.StageHRScreen, Label: "HR Screen"},
	{Value: models.StageTeamChat, Label: "Team Chat"},
	{Value: models.StageAdvisorChat, Label: "Advisor Chat"},
	{Value: models.StageTechnical, Label: "Technical"},
	{Value: models.StagePanel, Label: "Panel"},
	{Value: models.StageTrial, Label: "Trial"},
	{Value: models.StageCEOChat, Label: "CEO Chat"},
	{Value: models.StageOffer, Label: "Offer"},
	{Value: models.StageHired, Label: "Hired", IsTerminal: true},
	{Value: models.StageRejected, Label: "Rejected", IsTerminal: true},
	{Value: models.StageWithdrawn, Label: "Withdrawn", IsTerminal: true},
	{Value: models.StageArchived, Label: "Archived", IsTerminal: true},
}

var terminalOrder = []models.CandidateStage{
	models.StageHired,
	models.StageRejected,
	models.StageWithdrawn,
	models.StageArchived,
}

var (
	positions       = map[models.CandidateStage]int{}
	normalizedIndex = map[string]models.CandidateStage{}
)

func init() {
	for idx, def := range catalog {
		positions[def.Value] = idx
	}
	// при совпадении нормализованных ключей выигрывает первый этап каталога
	for _, def := range catalog {
		for _, key := range []string{Normalize(string(def.Value)), Normalize(def.Label)} {
			if _, ok := normalizedIndex[key]; !ok {
				normalizedIndex[key] = def.Value
			}
		}
	}
}

func Catalog() []StageDefinition {
	result := make([]StageDefinition, len(catalog))
	copy(result, catalog)
	return result
}

func Get(value models.CandidateStage) (StageDefinition, bool) {
	pos, ok := positions[value]
	if !ok {
		return StageDefinition{}, false
	}
	return catalog[pos], true
}

func IsKnown(value models.CandidateStage) bool {
	_, ok := positions[value]
	return ok
}

func IsTerminal(value models.CandidateStage) bool {
	def, ok := Get(value)
	return ok && def.IsTerminal
}

// TerminalStages - финальные этапы в фиксированном порядке: Hired, Rejected, Withdrawn, Archived
func TerminalStages() []StageDefinition {
	result := make([]StageDefinition, 0, len(terminalOrder))
	for _, value := range terminalOrder {
		def, _ := Get(value)
		result = append(result, def)
	}
	return result
}

// Position - позиция этапа в каталоге, -1 для неизвестного значения
func Position(value models.CandidateStage) int {
	pos, ok := positions[value]
	if !ok {
		return -1
	}
	return pos
}

func Label(value models.CandidateStage) string {
	def, ok := Get(value)
	if !ok {
		return string(value)
	}
	return def.Label
}

// Normalize приводит название к верхнему регистру и удаляет все символы кроме букв и цифр
func Normalize(label string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToUpper(r)
		}
		return -1
	}, label)
}

// Resolve сопоставляет произвольное название этапа с каталогом:
// сначала по таблице синонимов, затем по точному совпадению с кодом или названием этапа.
// false - название не распознано, этап отображается как есть без автоматики.
func Resolve(label string) (StageDefinition, bool) {
	key := Normalize(label)
	if key == "" {
		return StageDefinition{}, false
	}
	if value, ok := aliases[key]; ok {
		return Get(value)
	}
	if value, ok := normalizedIndex[key]; ok {
		return Get(value)
	}
	return StageDefinition{}, false
}

// ResolveFlow сопоставляет все этапы воронки, порядок сохраняется
func ResolveFlow(labels []string) (resolved []StageDefinition, unresolved []string) {
	resolved = make([]StageDefinition, 0, len(labels))
	unresolved = []string{}
	for _, label := range labels {
		def, ok := Resolve(label)
		if !ok {
			unresolved = append(unresolved, label)
			continue
		}
		resolved = append(resolved, def)
	}
	return resolved, unresolved
}
