package emailtemplate

import (
	"hr-pipeline-backend/db"
	emailtemplatestore "hr-pipeline-backend/lib/email-template/store"
	"hr-pipeline-backend/lib/stages"
	emailtemplateapimodels "hr-pipeline-backend/models/api/email-template"
	dbmodels "hr-pipeline-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(spaceID string, data emailtemplateapimodels.EmailTemplateData) (id, hMsg string, err error)
	Update(spaceID, id string, data emailtemplateapimodels.EmailTemplateData) (hMsg string, err error)
	GetByID(spaceID, id string) (*emailtemplateapimodels.EmailTemplateView, error)
	List(spaceID string) (list []emailtemplateapimodels.EmailTemplateView, err error)
	Delete(spaceID, id string) error
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		store: emailtemplatestore.NewInstance(db.DB),
	}
}

type impl struct {
	store emailtemplatestore.Provider
}

func (i impl) Create(spaceID string, data emailtemplateapimodels.EmailTemplateData) (id, hMsg string, err error) {
	logger := log.WithField("space_id", spaceID)
	if hMsg = checkTemplate(data); hMsg != "" {
		return "", hMsg, nil
	}
	rec := BuildRecord(spaceID, data)
	id, err = i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка создания шаблона письма")
		return "", "", err
	}
	return id, "", nil
}

func (i impl) Update(spaceID, id string, data emailtemplateapimodels.EmailTemplateData) (hMsg string, err error) {
	logger := log.WithFields(log.Fields{
		"space_id":    spaceID,
		"template_id": id,
	})
	if hMsg = checkTemplate(data); hMsg != "" {
		return hMsg, nil
	}
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		logger.WithError(err).Error("ошибка получения шаблона письма")
		return "", err
	}
	if rec == nil {
		return "шаблон письма не найден", nil
	}
	updMap := map[string]interface{}{
		"name":      data.Name,
		"subject":   data.Subject,
		"html_body": data.HtmlBody,
		"stage":     data.Stage,
		"job_id":    data.JobID,
	}
	err = i.store.Update(spaceID, id, updMap)
	if err != nil {
		logger.WithError(err).Error("ошибка изменения шаблона письма")
		return "", err
	}
	return "", nil
}

func (i impl) GetByID(spaceID, id string) (*emailtemplateapimodels.EmailTemplateView, error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		log.WithField("space_id", spaceID).WithError(err).Error("ошибка получения шаблона письма")
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("шаблон письма не найден")
	}
	view := rec.ToModelView()
	return &view, nil
}

func (i impl) List(spaceID string) (list []emailtemplateapimodels.EmailTemplateView, err error) {
	recList, err := i.store.List(spaceID)
	if err != nil {
		log.WithField("space_id", spaceID).WithError(err).Error("ошибка получения списка шаблонов писем")
		return nil, err
	}
	list = make([]emailtemplateapimodels.EmailTemplateView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, rec.ToModelView())
	}
	return list, nil
}

func (i impl) Delete(spaceID, id string) error {
	err := i.store.Delete(spaceID, id)
	if err != nil {
		log.WithField("space_id", spaceID).WithError(err).Error("ошибка удаления шаблона письма")
		return err
	}
	return nil
}

// Validate - полная проверка шаблона перед сохранением, в том числе при создании из окна перевода кандидата
func Validate(data emailtemplateapimodels.EmailTemplateData) error {
	if hMsg := checkTemplate(data); hMsg != "" {
		return errors.New(hMsg)
	}
	return nil
}

func BuildRecord(spaceID string, data emailtemplateapimodels.EmailTemplateData) dbmodels.EmailTemplate {
	return dbmodels.EmailTemplate{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		Name:     data.Name,
		Subject:  data.Subject,
		HtmlBody: data.HtmlBody,
		Stage:    data.Stage,
		JobID:    data.JobID,
	}
}

func checkTemplate(data emailtemplateapimodels.EmailTemplateData) string {
	if err := data.Validate(); err != nil {
		return err.Error()
	}
	if data.Stage != nil && !stages.IsKnown(*data.Stage) {
		return "указан неизвестный этап"
	}
	if err := CheckSyntax(data); err != nil {
		return err.Error()
	}
	return ""
}
