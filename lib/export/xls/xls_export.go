package xlsexport

import (
	"bytes"
	"hr-pipeline-backend/lib/stages"
	jobapimodels "hr-pipeline-backend/models/api/job"
	dbmodels "hr-pipeline-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	// ExportPipeline - кандидаты вакансии и количество кандидатов по этапам
	ExportPipeline(jobName string, list []dbmodels.Candidate, summary []jobapimodels.StageSummaryItem) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const (
	candidatesSheet = "Кандидаты"
	summarySheet    = "Воронка"
)

var (
	candidateHeaders = []string{"ФИО", "Почта", "Этап", "Дата перевода на этап"}
	summaryHeaders   = []string{"Этап", "Кандидатов"}
)

func (i impl) ExportPipeline(jobName string, list []dbmodels.Candidate, summary []jobapimodels.StageSummaryItem) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	if err := f.SetSheetName("Sheet1", candidatesSheet); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования листа кандидатов в xlsx")
	}
	row, err := writeTitle(f, candidatesSheet, 0, jobName)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	row, err = writeHeader(f, candidatesSheet, row, candidateHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		if _, err = writeCandidateData(f, candidatesSheet, list, row); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}

	if _, err = f.NewSheet(summarySheet); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования листа воронки в xlsx")
	}
	row, err = writeHeader(f, summarySheet, 0, summaryHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(summary) != 0 {
		if _, err = writeSummaryData(f, summarySheet, summary, row); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	return f.WriteToBuffer()
}

func writeCandidateData(f *excelize.File, sheet string, list []dbmodels.Candidate, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(candidateHeaders), row+len(list)); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		values := []interface{}{
			item.GetFullName(),
			item.Email,
			stages.Label(item.CurrentStage),
			"",
		}
		if !item.StageChangedAt.IsZero() {
			values[3] = item.StageChangedAt.Format("02.01.2006 15:04")
		}
		if err := writeRow(f, sheet, row, values); err != nil {
			return row, err
		}
	}
	return row, nil
}

func writeSummaryData(f *excelize.File, sheet string, summary []jobapimodels.StageSummaryItem, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(summaryHeaders), row+len(summary)); err != nil {
		return row, err
	}
	for _, item := range summary {
		row++
		if err := writeRow(f, sheet, row, []interface{}{item.Label, item.Count}); err != nil {
			return row, err
		}
	}
	return row, nil
}
