package initializers

import (
	"context"
	"hr-pipeline-backend/config"
	"hr-pipeline-backend/lib/events"

	log "github.com/sirupsen/logrus"
)

// InitEvents - публикация событий о смене этапа через redis, недоступный redis не останавливает сервис
func InitEvents(ctx context.Context) {
	err := events.Connect(ctx, config.Conf.Redis.URL)
	if err != nil {
		log.WithError(err).Error("Ошибка подключения к redis, события о смене этапа не публикуются")
	}
}
