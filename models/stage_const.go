package models

// CandidateStage - этап воронки кандидата, всегда значение из каталога этапов
type CandidateStage string

const (
	StageApplied     CandidateStage = "APPLIED"
	StageShortlisted CandidateStage = "SHORTLISTED"
	StageHRScreen    CandidateStage = "HR_SCREEN"
	StageTeamChat    CandidateStage = "TEAM_CHAT"
	StageAdvisorChat CandidateStage = "ADVISOR_CHAT"
	StageTechnical   CandidateStage = "TECHNICAL"
	StagePanel       CandidateStage = "PANEL"
	StageTrial       CandidateStage = "TRIAL"
	StageCEOChat     CandidateStage = "CEO_CHAT"
	StageOffer       CandidateStage = "OFFER"
	StageHired       CandidateStage = "HIRED"
	StageRejected    CandidateStage = "REJECTED"
	StageWithdrawn   CandidateStage = "WITHDRAWN"
	StageArchived    CandidateStage = "ARCHIVED"
)

const (
	NotificationDelayMinutesMax = 1440
	ReminderDelayHoursMin       = 1
	ReminderDelayHoursMax       = 168
)
