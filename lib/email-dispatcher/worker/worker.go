package emaildispatchworker

import (
	"context"
	emaildispatcher "hr-pipeline-backend/lib/email-dispatcher"
	baseworker "hr-pipeline-backend/lib/utils/base-worker"
	"time"
)

// Отправка отложенных писем и напоминаний кандидатам
func StartWorker(ctx context.Context, interval time.Duration, batchSize int) {
	i := &impl{
		BaseImpl:   *baseworker.NewInstance("EmailDispatchWorker", 10*time.Second, interval),
		dispatcher: emaildispatcher.Instance,
		batchSize:  batchSize,
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	dispatcher emaildispatcher.Provider
	batchSize  int
}

func (i impl) handle(ctx context.Context) {
	i.dispatcher.ProcessDue(ctx, i.batchSize)
}
