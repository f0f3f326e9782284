package stages

import "hr-pipeline-backend/models"

// AvailableTransitions - этапы, на которые можно перевести кандидата с этапа current.
//
// С финального этапа переходов нет. Если задана воронка вакансии, используются только
// распознанные этапы воронки (первое вхождение), финальные этапы всегда добавляются в конец
// в фиксированном порядке. Если в воронке не распознан ни один этап, используется каталог.
// Без allowBackward доступны только этапы после текущего, пропуск этапов разрешен.
func AvailableTransitions(current models.CandidateStage, hiringFlowStages []string, allowBackward bool) []StageDefinition {
	if IsTerminal(current) {
		return []StageDefinition{}
	}
	composite := catalog
	if len(hiringFlowStages) != 0 {
		if flow := buildFlow(hiringFlowStages); len(flow) != 0 {
			composite = flow
		}
	}
	return pickTargets(composite, current, allowBackward)
}

func IsTransitionAllowed(current, target models.CandidateStage, hiringFlowStages []string, allowBackward bool) bool {
	for _, def := range AvailableTransitions(current, hiringFlowStages, allowBackward) {
		if def.Value == target {
			return true
		}
	}
	return false
}

// buildFlow возвращает nil, если в воронке нет ни одного распознанного не финального этапа
func buildFlow(hiringFlowStages []string) []StageDefinition {
	resolved, _ := ResolveFlow(hiringFlowStages)
	seen := map[models.CandidateStage]bool{}
	flow := make([]StageDefinition, 0, len(resolved)+len(terminalOrder))
	for _, def := range resolved {
		if def.IsTerminal || seen[def.Value] {
			continue
		}
		seen[def.Value] = true
		flow = append(flow, def)
	}
	if len(flow) == 0 {
		return nil
	}
	return append(flow, TerminalStages()...)
}

func pickTargets(composite []StageDefinition, current models.CandidateStage, allowBackward bool) []StageDefinition {
	currentIdx := -1
	for idx, def := range composite {
		if def.Value == current {
			currentIdx = idx
			break
		}
	}
	currentPos := Position(current)
	result := make([]StageDefinition, 0, len(composite))
	for idx, def := range composite {
		if def.Value == current {
			continue
		}
		if allowBackward {
			result = append(result, def)
			continue
		}
		if currentIdx >= 0 {
			if idx > currentIdx {
				result = append(result, def)
			}
			continue
		}
		// текущего этапа нет в воронке - сравниваем по порядку каталога
		if Position(def.Value) > currentPos {
			result = append(result, def)
		}
	}
	return result
}
