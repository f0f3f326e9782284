package candidatehistoryhandler

import (
	"fmt"
	"hr-pipeline-backend/lib/stages"
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
)

func GetStageChange(from, to models.CandidateStage) dbmodels.CandidateChanges {
	return dbmodels.CandidateChanges{
		Description: fmt.Sprintf("Перевод на этап %v", stages.Label(to)),
		Data: []dbmodels.CandidateChange{
			{
				Field:    "current_stage",
				OldValue: from,
				NewValue: to,
			},
		},
	}
}

func GetCreateChanges(rec dbmodels.Candidate) dbmodels.CandidateChanges {
	return dbmodels.CandidateChanges{
		Description: fmt.Sprintf("Кандидат %v добавлен на этап %v", rec.GetFullName(), stages.Label(rec.CurrentStage)),
		Data: []dbmodels.CandidateChange{
			{
				Field:    "current_stage",
				OldValue: nil,
				NewValue: rec.CurrentStage,
			},
		},
	}
}

func GetEmailChanges(kind models.DispatchKind, templateName, email string) dbmodels.CandidateChanges {
	description := fmt.Sprintf("Отправлено письмо \"%v\" на %v", templateName, email)
	if kind == models.DispatchKindReminder {
		description = fmt.Sprintf("Отправлено напоминание \"%v\" на %v", templateName, email)
	}
	return dbmodels.CandidateChanges{
		Description: description,
	}
}

func GetReplyChanges(note string) dbmodels.CandidateChanges {
	if note == "" {
		note = "Кандидат ответил на письмо"
	}
	return dbmodels.CandidateChanges{
		Description: note,
	}
}
