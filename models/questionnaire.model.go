package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Questionnaire type keys resolved by the factory table.
const (
	ReviewQuestionnaireType         = "ReviewQuestionnaire"
	MetareviewQuestionnaireType     = "MetareviewQuestionnaire"
	AuthorFeedbackQuestionnaireType = "AuthorFeedbackQuestionnaire"
	TeammateReviewQuestionnaireType = "TeammateReviewQuestionnaire"
	SurveyQuestionnaireType         = "SurveyQuestionnaire"
	QuizQuestionnaireType           = "QuizQuestionnaire"
)

// Questionnaire owns a set of questions and supplies the inclusive score range
// its criterion questions are graded on.
type Questionnaire struct {
	gorm.Model
	Name         string         `json:"name"`
	Type         string         `json:"type" gorm:"index;not null"`
	MinScore     int            `json:"min_score" gorm:"default:0"`
	MaxScore     int            `json:"max_score" gorm:"default:5"`
	Private      bool           `json:"private" gorm:"default:false"`
	InstructorID uint           `json:"instructor_id" gorm:"index"`
	AccessToken  string         `json:"access_token" gorm:"size:36;uniqueIndex"`
	Settings     datatypes.JSON `json:"settings"`
	Questions    []Question     `json:"questions,omitempty" gorm:"foreignKey:QuestionnaireID;constraint:OnDelete:CASCADE"`
	IsDeleted    bool           `json:"-" gorm:"default:false"`
}
