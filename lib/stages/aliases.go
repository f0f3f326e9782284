package stages

import "hr-pipeline-backend/models"

// aliases - синонимы этапов из старых версий воронок, ключи уже нормализованы (см. Normalize).
// Несколько написаний одного этапа допустимы, новые синонимы добавляются только сюда.
var aliases = map[string]models.CandidateStage{
	"APPLY":        models.StageApplied,
	"APPLICATION":  models.StageApplied,
	"APPLICATIONS": models.StageApplied,
	"NEW":          models.StageApplied,
	"NEWAPPLICANT": models.StageApplied,
	"INBOX":        models.StageApplied,
	"SOURCED":      models.StageApplied,

	"SHORTLIST":             models.StageShortlisted,
	"SHORTLISTS":            models.StageShortlisted,
	"SHORTLISTING":          models.StageShortlisted,
	"SHORTLISTEDCANDIDATES": models.StageShortlisted,
	"SHORTLISTEDCANDIDATE":  models.StageShortlisted,
	"SHORTLISTEDPOOL":       models.StageShortlisted,
	"SHORTLISTPOOL":         models.StageShortlisted,
	"SHORTLISTEDSTAGE":      models.StageShortlisted,
	"SHORTLISTSTAGE":        models.StageShortlisted,

	"PEOPLECHAT":      models.StageHRScreen,
	"PEOPLESCREEN":    models.StageHRScreen,
	"HRCHAT":          models.StageHRScreen,
	"HRCALL":          models.StageHRScreen,
	"HRINTERVIEW":     models.StageHRScreen,
	"HRSCREENING":     models.StageHRScreen,
	"SCREENING":       models.StageHRScreen,
	"PHONESCREEN":     models.StageHRScreen,
	"RECRUITERSCREEN": models.StageHRScreen,

	"TEAMINTERVIEW": models.StageTeamChat,
	"TEAMCALL":      models.StageTeamChat,
	"TEAMMEETING":   models.StageTeamChat,
	"CULTURECHAT":   models.StageTeamChat,
	"CULTUREFIT":    models.StageTeamChat,

	"ADVISORINTERVIEW": models.StageAdvisorChat,
	"ADVISORCALL":      models.StageAdvisorChat,
	"ADVISERCHAT":      models.StageAdvisorChat,
	"MENTORCHAT":       models.StageAdvisorChat,

	"CODINGTEST":         models.StageTechnical,
	"CODINGCHALLENGE":    models.StageTechnical,
	"TECHNICALINTERVIEW": models.StageTechnical,
	"TECHINTERVIEW":      models.StageTechnical,
	"TECHNICALTEST":      models.StageTechnical,
	"TECHTEST":           models.StageTechnical,
	"TAKEHOME":           models.StageTechnical,
	"TAKEHOMETEST":       models.StageTechnical,
	"ASSIGNMENT":         models.StageTechnical,
	"CASESTUDY":          models.StageTechnical,

	"PANELINTERVIEW":  models.StagePanel,
	"FINALINTERVIEW":  models.StagePanel,
	"ONSITE":          models.StagePanel,
	"ONSITEINTERVIEW": models.StagePanel,

	"TRIALDAY":    models.StageTrial,
	"TRIALPERIOD": models.StageTrial,
	"TRIALTASK":   models.StageTrial,
	"WORKTRIAL":   models.StageTrial,
	"PAIDTRIAL":   models.StageTrial,

	"CEOINTERVIEW":     models.StageCEOChat,
	"CEOCALL":          models.StageCEOChat,
	"FOUNDERCHAT":      models.StageCEOChat,
	"FOUNDERINTERVIEW": models.StageCEOChat,

	"OFFERSENT":     models.StageOffer,
	"OFFEREXTENDED": models.StageOffer,
	"OFFERSTAGE":    models.StageOffer,
	"CONTRACT":      models.StageOffer,

	"HIRE":       models.StageHired,
	"ACCEPTED":   models.StageHired,
	"ONBOARDING": models.StageHired,

	"REJECT":      models.StageRejected,
	"DECLINED":    models.StageRejected,
	"NOTSELECTED": models.StageRejected,

	"WITHDRAW":          models.StageWithdrawn,
	"WITHDREW":          models.StageWithdrawn,
	"CANDIDATEWITHDREW": models.StageWithdrawn,

	"ARCHIVE": models.StageArchived,
}
