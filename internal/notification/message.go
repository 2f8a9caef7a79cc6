package notification

import (
	"encoding/json"
	"fmt"

	"homework-notifier/internal/models"
)

// verdicts maps a review status to the sentence shown to the student.
var verdicts = map[models.HomeworkStatus]string{
	models.StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	models.StatusReviewing: "Работа взята на проверку ревьюером.",
	models.StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Verdict returns the sentence for a known status.
func Verdict(status models.HomeworkStatus) (string, bool) {
	v, ok := verdicts[status]
	return v, ok
}

// ParseStatus decodes one homework record and renders its status change message.
func ParseStatus(raw json.RawMessage) (models.Homework, string, error) {
	hw, err := models.DecodeHomework(raw)
	if err != nil {
		return models.Homework{}, "", fmt.Errorf("parse homework: %w", err)
	}
	verdict, ok := Verdict(hw.Status)
	if !ok {
		return models.Homework{}, "", &models.UnknownVerdictError{Status: string(hw.Status)}
	}
	return hw, fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", hw.Name, verdict), nil
}

// FailureMessage is the operator-facing text for a failed iteration.
func FailureMessage(err error) string {
	return fmt.Sprintf("Сбой в работе программы: %v", err)
}
