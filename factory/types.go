package factory

import (
	"quill/models"

	"gorm.io/datatypes"
)

// DefaultTypes returns the standard questionnaire table. Callers get a fresh
// map each call, so wiring a custom table never leaks into the defaults.
func DefaultTypes() map[string]Constructor {
	return map[string]Constructor{
		models.ReviewQuestionnaireType: func() *models.Questionnaire {
			return newQuestionnaire(models.ReviewQuestionnaireType, 0, 5, `{"display":"Review","advice_enabled":true}`)
		},
		models.MetareviewQuestionnaireType: func() *models.Questionnaire {
			return newQuestionnaire(models.MetareviewQuestionnaireType, 0, 5, `{"display":"Metareview","advice_enabled":true}`)
		},
		models.AuthorFeedbackQuestionnaireType: func() *models.Questionnaire {
			return newQuestionnaire(models.AuthorFeedbackQuestionnaireType, 0, 5, `{"display":"Author Feedback","advice_enabled":true}`)
		},
		models.TeammateReviewQuestionnaireType: func() *models.Questionnaire {
			return newQuestionnaire(models.TeammateReviewQuestionnaireType, 0, 5, `{"display":"Teammate Review","advice_enabled":true}`)
		},
		models.SurveyQuestionnaireType: func() *models.Questionnaire {
			return newQuestionnaire(models.SurveyQuestionnaireType, 0, 10, `{"display":"Survey","advice_enabled":false}`)
		},
		models.QuizQuestionnaireType: func() *models.Questionnaire {
			return newQuestionnaire(models.QuizQuestionnaireType, 0, 1, `{"display":"Quiz","advice_enabled":false}`)
		},
	}
}

func newQuestionnaire(typeTag string, min, max int, settings string) *models.Questionnaire {
	return &models.Questionnaire{
		Type:     typeTag,
		MinScore: min,
		MaxScore: max,
		Settings: datatypes.JSON([]byte(settings)),
	}
}
