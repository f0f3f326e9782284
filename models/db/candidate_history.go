package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

type CandidateHistory struct {
	BaseSpaceModel
	CandidateID string `gorm:"type:varchar(36);index"`
	JobID       string `gorm:"type:varchar(36)"`
	UserID      *string
	UserName    string
	ActionType  ActionType       `gorm:"type:varchar(255);index"`
	Changes     CandidateChanges `gorm:"type:jsonb"`
}

func (j CandidateChanges) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *CandidateChanges) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, &j)
	case string:
		return json.Unmarshal([]byte(v), &j)
	}
	return errors.Errorf("неподдерживаемый тип для CandidateChanges: %T", value)
}

type CandidateChanges struct {
	Description string            `json:"description"` // Комментрий
	Data        []CandidateChange `json:"data"`        // Список изменений
}

type CandidateChange struct {
	Field    string      `json:"field"`     // Измененное поле
	OldValue interface{} `json:"old_value"` // Старое значение
	NewValue interface{} `json:"new_value"` // Новое значение
}

type ActionType string

const (
	HistoryTypeComment     ActionType = "comment"      // Добавлен комментраий к кандидату
	HistoryTypeAdded       ActionType = "added"        // Кандидат добавлен
	HistoryTypeStageChange ActionType = "stage_change" // Кандидат переведеден на другой этап
	HistoryTypeEmail       ActionType = "email"        // Кандидату отправлено письмо
	HistoryTypeReply       ActionType = "reply"        // Кандидат ответил на письмо
)
