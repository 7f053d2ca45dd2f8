package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Advice is the per-score guidance attached to a criterion question. The
// reconciler keeps exactly one row per score inside the questionnaire's range.
type Advice struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	Score      int    `json:"score" gorm:"index"`
	Advice     string `json:"advice"`
}

// FieldValue exposes the advice text for form updates. Score placement is the
// reconciler's job, so it is not updatable here.
func (a *Advice) FieldValue(name string) (string, error) {
	if name == "advice" {
		return a.Advice, nil
	}
	return "", fmt.Errorf("advice: %w: %s", ErrUnknownField, name)
}

func (a *Advice) SetFieldValue(name, value string) error {
	if name != "advice" {
		return fmt.Errorf("advice: %w: %s", ErrUnknownField, name)
	}
	a.Advice = value
	return nil
}
