package db

import (
	dbmodels "hr-pipeline-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.HiringFlow{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры HiringFlow")
	}
	if err := DB.AutoMigrate(&dbmodels.Job{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Job")
	}
	if err := DB.AutoMigrate(&dbmodels.Candidate{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Candidate")
	}
	if err := DB.AutoMigrate(&dbmodels.CandidateHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры CandidateHistory")
	}
	if err := DB.AutoMigrate(&dbmodels.EmailTemplate{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры EmailTemplate")
	}
	if err := DB.AutoMigrate(&dbmodels.StageNotificationSetting{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры StageNotificationSetting")
	}
	if err := DB.AutoMigrate(&dbmodels.EmailDispatch{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры EmailDispatch")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
