package models

type DispatchKind string

const (
	DispatchKindTransition DispatchKind = "transition" // письмо при переводе на этап
	DispatchKindReminder   DispatchKind = "reminder"   // напоминание, если кандидат не ответил
)

type DispatchStatus string

const (
	DispatchStatusPending   DispatchStatus = "pending"
	DispatchStatusSending   DispatchStatus = "sending" // взято в отправку обработчиком
	DispatchStatusSent      DispatchStatus = "sent"
	DispatchStatusFailed    DispatchStatus = "failed"
	DispatchStatusCancelled DispatchStatus = "cancelled"
)

const EventCandidateStageChanged = "EVENT_CANDIDATE_STAGE_CHANGED"
