package initializers

import (
	"context"
	"hr-pipeline-backend/config"
	"hr-pipeline-backend/db"
	"hr-pipeline-backend/fiberlog"
	candidatehandler "hr-pipeline-backend/lib/candidate"
	candidatehistoryhandler "hr-pipeline-backend/lib/candidate-history"
	emaildispatcher "hr-pipeline-backend/lib/email-dispatcher"
	emailretention "hr-pipeline-backend/lib/email-dispatcher/retention"
	emaildispatchstore "hr-pipeline-backend/lib/email-dispatcher/store"
	emaildispatchworker "hr-pipeline-backend/lib/email-dispatcher/worker"
	emailtemplate "hr-pipeline-backend/lib/email-template"
	xlsexport "hr-pipeline-backend/lib/export/xls"
	jobhandler "hr-pipeline-backend/lib/job"
	notificationsettings "hr-pipeline-backend/lib/notification-settings"
	"time"

	log "github.com/sirupsen/logrus"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitSmtp()
	InitEvents(ctx)
	candidatehistoryhandler.NewHandler()
	emailtemplate.NewHandler()
	notificationsettings.NewHandler()
	jobhandler.NewHandler()
	xlsexport.NewHandler()
	emaildispatcher.NewHandler(config.Conf.Smtp.SenderEmail)
	candidatehandler.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Отправка отложенных писем и напоминаний кандидатам
	emaildispatchworker.StartWorker(ctx,
		time.Duration(config.Conf.Notification.DispatchIntervalSec)*time.Second,
		config.Conf.Notification.DispatchBatchSize)

	// Очистка отправленных и отмененных писем
	retention := emailretention.New(emaildispatchstore.NewInstance(db.DB),
		config.Conf.Notification.RetentionSpec, config.Conf.Notification.RetentionDays)
	if err := retention.Start(ctx); err != nil {
		log.WithError(err).Error("Ошибка запуска очистки писем")
	}
}
