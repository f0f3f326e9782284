package models

// TemplateData - переменные, доступные в шаблоне письма кандидату
type TemplateData struct {
	CandidateFirstName string
	CandidateLastName  string
	CandidateFullName  string
	JobName            string
	StageLabel         string
}
