package candidatehandler

import "github.com/pkg/errors"

var (
	ErrCandidateNotFound = errors.New("кандидат не найден")
	ErrJobNotFound       = errors.New("вакансия кандидата не найдена")
	ErrInvalidTransition = errors.New("перевод на указанный этап недоступен")
	ErrStageConflict     = errors.New("этап кандидата уже изменен, обновите карточку")
	ErrTemplateNotFound  = errors.New("шаблон письма не найден")
	ErrInvalidTemplate   = errors.New("некорректный шаблон письма")
)

// IsUserError - ошибка, текст которой можно показать пользователю
func IsUserError(err error) bool {
	return errors.Is(err, ErrCandidateNotFound) ||
		errors.Is(err, ErrJobNotFound) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrStageConflict) ||
		errors.Is(err, ErrTemplateNotFound) ||
		errors.Is(err, ErrInvalidTemplate)
}
