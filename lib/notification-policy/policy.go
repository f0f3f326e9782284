// Package notificationpolicy решает, отправлять ли кандидату письмо при переводе на этап,
// с какой задержкой, по какому шаблону и нужно ли напоминание.
package notificationpolicy

import (
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Enabled            bool
	DelayMinutes       int
	TemplateID         *string
	ReminderEnabled    bool
	ReminderDelayHours int
}

// Settings - настройки уведомлений, передаются в Evaluate явно при каждом переводе.
// Job - переопределения для вакансии, имеют приоритет над Global
type Settings struct {
	Global map[models.CandidateStage]Config
	Job    map[models.CandidateStage]Config
}

func (s Settings) Lookup(stage models.CandidateStage) (Config, bool) {
	if cfg, ok := s.Job[stage]; ok {
		return cfg, true
	}
	cfg, ok := s.Global[stage]
	return cfg, ok
}

type Reminder struct {
	Enabled    bool
	AfterHours int
}

type Decision struct {
	ShouldSend   bool
	DelayMinutes int
	TemplateID   *string
	Reminder     *Reminder
	SkipReason   string
}

// TemplateLookup - поиск шаблона по умолчанию для этапа
type TemplateLookup interface {
	ListByStageAndJob(spaceID string, stage models.CandidateStage, jobID string) (list []dbmodels.EmailTemplate, err error)
}

const (
	SkipReasonNotConfigured = "уведомление для этапа не настроено"
	SkipReasonDisabled      = "уведомление для этапа выключено"
	SkipReasonNoTemplate    = "не найден шаблон письма для этапа"
)

type Provider interface {
	Evaluate(settings Settings, spaceID string, targetStage models.CandidateStage, jobID string, overrideTemplateID *string) (Decision, error)
}

func NewInstance(templates TemplateLookup) Provider {
	return &impl{
		templates: templates,
	}
}

type impl struct {
	templates TemplateLookup
}

func (i impl) Evaluate(settings Settings, spaceID string, targetStage models.CandidateStage, jobID string, overrideTemplateID *string) (Decision, error) {
	logger := log.WithFields(log.Fields{
		"space_id": spaceID,
		"job_id":   jobID,
		"stage":    targetStage,
	})
	cfg, ok := settings.Lookup(targetStage)
	if !ok {
		return Decision{SkipReason: SkipReasonNotConfigured}, nil
	}
	if !cfg.Enabled {
		return Decision{SkipReason: SkipReasonDisabled}, nil
	}
	templateID, err := i.resolveTemplate(spaceID, targetStage, jobID, overrideTemplateID, cfg.TemplateID)
	if err != nil {
		logger.WithError(err).Error("ошибка поиска шаблона письма для этапа")
		return Decision{}, err
	}
	if templateID == nil {
		logger.Warn(SkipReasonNoTemplate)
		return Decision{SkipReason: SkipReasonNoTemplate}, nil
	}
	decision := Decision{
		ShouldSend:   true,
		DelayMinutes: ClampDelay(cfg.DelayMinutes),
		TemplateID:   templateID,
	}
	if cfg.ReminderEnabled {
		decision.Reminder = &Reminder{
			Enabled:    true,
			AfterHours: ClampReminderHours(cfg.ReminderDelayHours),
		}
	}
	return decision, nil
}

// порядок: шаблон, выбранный оператором -> шаблон из настройки -> шаблон этапа вакансии -> шаблон этапа пространства
func (i impl) resolveTemplate(spaceID string, stage models.CandidateStage, jobID string, override, configured *string) (*string, error) {
	if override != nil && *override != "" {
		return override, nil
	}
	if configured != nil && *configured != "" {
		return configured, nil
	}
	list, err := i.templates.ListByStageAndJob(spaceID, stage, jobID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения шаблонов этапа")
	}
	var spaceWide *string
	for idx := range list {
		rec := list[idx]
		if rec.JobID != nil && *rec.JobID == jobID {
			return &rec.ID, nil
		}
		if rec.JobID == nil && spaceWide == nil {
			spaceWide = &rec.ID
		}
	}
	return spaceWide, nil
}

func ClampDelay(minutes int) int {
	if minutes < 0 {
		return 0
	}
	if minutes > models.NotificationDelayMinutesMax {
		return models.NotificationDelayMinutesMax
	}
	return minutes
}

func ClampReminderHours(hours int) int {
	if hours < models.ReminderDelayHoursMin {
		return models.ReminderDelayHoursMin
	}
	if hours > models.ReminderDelayHoursMax {
		return models.ReminderDelayHoursMax
	}
	return hours
}
