package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

// StringArray - список строк, хранится в jsonb
type StringArray []string

func (j StringArray) Value() (driver.Value, error) {
	if j == nil {
		return "[]", nil
	}
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *StringArray) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*j = StringArray{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.Errorf("неподдерживаемый тип для StringArray: %T", value)
	}
	return json.Unmarshal(data, j)
}
