// Package emailretention периодически удаляет обработанные письма старше заданного срока
package emailretention

import (
	"context"
	emaildispatchstore "hr-pipeline-backend/lib/email-dispatcher/store"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type Scheduler struct {
	cron          *cron.Cron
	store         emaildispatchstore.Provider
	spec          string
	retentionDays int
}

func New(store emaildispatchstore.Provider, spec string, retentionDays int) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		store:         store,
		spec:          spec,
		retentionDays: retentionDays,
	}
}

// Start регистрирует задачу, планировщик останавливается по завершении ctx
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.Cleanup(time.Now())
	})
	if err != nil {
		return errors.Wrapf(err, "некорректное расписание очистки писем: %v", s.spec)
	}
	s.cron.Start()
	log.WithField("spec", s.spec).Info("Очистка отправленных писем запущена")
	go func() {
		<-ctx.Done()
		<-s.cron.Stop().Done()
		log.Info("Очистка отправленных писем остановлена")
	}()
	return nil
}

func (s *Scheduler) Cleanup(now time.Time) {
	before := now.AddDate(0, 0, -s.retentionDays)
	count, err := s.store.DeleteFinishedBefore(before)
	if err != nil {
		log.WithError(err).Error("ошибка удаления старых писем")
		return
	}
	log.WithField("count", count).Info("старые письма удалены")
}
