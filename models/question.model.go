package models

import (
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
)

// Question content types. Only CRITERION questions are scored and carry
// per-score advice.
const (
	QuestionTypeCriterion = "CRITERION"
	QuestionTypeTextArea  = "TEXT_AREA"
	QuestionTypeTextField = "TEXT_FIELD"
	QuestionTypeCheckbox  = "CHECKBOX"
)

// ErrUnknownField is returned when a form update addresses a field that is not
// part of a record's updatable set.
var ErrUnknownField = errors.New("no such field")

// Question belongs to a questionnaire. Advice rows die with their question.
type Question struct {
	gorm.Model
	QuestionnaireID uint     `json:"questionnaire_id" gorm:"index;not null"`
	Txt             string   `json:"txt"`
	QuestionType    string   `json:"question_type" gorm:"default:CRITERION"`
	Weight          int      `json:"weight" gorm:"default:1"`
	SeqOrder        int      `json:"seq_order" gorm:"default:0"`
	Advices         []Advice `json:"advices,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	IsDeleted       bool     `json:"-" gorm:"default:false"`
}

// QuestionID and IsScored satisfy the advice reconciler's question view.
func (q *Question) QuestionID() uint { return q.ID }

func (q *Question) IsScored() bool { return q.QuestionType == QuestionTypeCriterion }

// FieldValue returns the current value of an updatable field as its form
// representation.
func (q *Question) FieldValue(name string) (string, error) {
	switch name {
	case "txt":
		return q.Txt, nil
	case "question_type":
		return q.QuestionType, nil
	case "weight":
		return strconv.Itoa(q.Weight), nil
	case "seq_order":
		return strconv.Itoa(q.SeqOrder), nil
	}
	return "", fmt.Errorf("question: %w: %s", ErrUnknownField, name)
}

// SetFieldValue assigns an updatable field from its form representation.
func (q *Question) SetFieldValue(name, value string) error {
	switch name {
	case "txt":
		q.Txt = value
	case "question_type":
		q.QuestionType = value
	case "weight":
		w, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("question: weight: %v", err)
		}
		q.Weight = w
	case "seq_order":
		s, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("question: seq_order: %v", err)
		}
		q.SeqOrder = s
	default:
		return fmt.Errorf("question: %w: %s", ErrUnknownField, name)
	}
	return nil
}
