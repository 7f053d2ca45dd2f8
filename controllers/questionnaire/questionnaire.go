package controllers

import (
	"errors"

	"quill/advice"
	"quill/database"
	"quill/factory"
	"quill/formupdate"
	"quill/middleware"
	"quill/models"
	"quill/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// questionnaireFactory resolves type keys against the standard table. The
// table is injected once here and never mutated afterwards.
var questionnaireFactory = factory.New(factory.DefaultTypes())

// CreateQuestionnaire builds a questionnaire of the requested type via the
// factory. Unresolved type keys surface as the flash message in the envelope.
func CreateQuestionnaire(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedQuestionnaire").(*struct {
		Name         string `json:"name"`
		Type         string `json:"type"`
		MinScore     *int   `json:"min_score"`
		MaxScore     *int   `json:"max_score"`
		Private      *bool  `json:"private"`
		InstructorID *uint  `json:"instructor_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	flash := new(middleware.Flash)
	questionnaire := questionnaireFactory.Create(reqData.Type, flash)
	if questionnaire == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, flash.Message(), nil)
	}

	questionnaire.Name = reqData.Name
	if reqData.MinScore != nil {
		questionnaire.MinScore = *reqData.MinScore
	}
	if reqData.MaxScore != nil {
		questionnaire.MaxScore = *reqData.MaxScore
	}
	if reqData.Private != nil {
		questionnaire.Private = *reqData.Private
	}
	if reqData.InstructorID != nil {
		questionnaire.InstructorID = *reqData.InstructorID
	}
	questionnaire.AccessToken = uuid.NewString()

	if err := database.Database.Db.Create(questionnaire).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create questionnaire!", nil)
	}

	go utils.NotifyQuestionnaireChanged(questionnaire, "questionnaire.created")

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Questionnaire created!", questionnaire)
}

// ListQuestionnaires returns live questionnaires with pagination.
func ListQuestionnaires(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int `json:"page" query:"page"`
		Limit *int `json:"limit" query:"limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
	}

	page := 1
	limit := 10
	if reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Questionnaire{}).Where("is_deleted = ?", false)

	var total int64
	db.Count(&total)

	var questionnaires []models.Questionnaire
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&questionnaires).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questionnaires!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questionnaires fetched successfully!", fiber.Map{
		"questionnaires": questionnaires,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetQuestionnaire fetches one questionnaire with its questions and advice.
func GetQuestionnaire(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid questionnaire id!", nil)
	}

	var questionnaire models.Questionnaire
	if err := database.Database.Db.
		Preload("Questions", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("is_deleted = ?", false).Order("questions.seq_order asc")
		}).
		Preload("Questions.Advices", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("advices.score desc")
		}).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&questionnaire).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Questionnaire not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questionnaire fetched successfully!", questionnaire)
}

// UpdateQuestionnaire applies name/privacy/range changes. A score range change
// re-reconciles the advice of every scored question.
func UpdateQuestionnaire(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid questionnaire id!", nil)
	}

	reqData, ok := c.Locals("validatedQuestionnaireUpdate").(*struct {
		Name     *string `json:"name"`
		Private  *bool   `json:"private"`
		MinScore *int    `json:"min_score"`
		MaxScore *int    `json:"max_score"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var questionnaire models.Questionnaire
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&questionnaire).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Questionnaire not found!", nil)
	}

	rangeChanged := false
	if reqData.Name != nil {
		questionnaire.Name = *reqData.Name
	}
	if reqData.Private != nil {
		questionnaire.Private = *reqData.Private
	}
	if reqData.MinScore != nil && *reqData.MinScore != questionnaire.MinScore {
		questionnaire.MinScore = *reqData.MinScore
		rangeChanged = true
	}
	if reqData.MaxScore != nil && *reqData.MaxScore != questionnaire.MaxScore {
		questionnaire.MaxScore = *reqData.MaxScore
		rangeChanged = true
	}

	if err := database.Database.Db.Save(&questionnaire).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update questionnaire!", nil)
	}

	if rangeChanged {
		if err := advice.ReconcileAll(database.Database.Db, &questionnaire); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reconcile advice!", nil)
		}
	}

	go utils.NotifyQuestionnaireChanged(&questionnaire, "questionnaire.updated")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questionnaire updated!", questionnaire)
}

// DeleteQuestionnaire soft-deletes a questionnaire and its questions.
func DeleteQuestionnaire(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid questionnaire id!", nil)
	}

	var questionnaire models.Questionnaire
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&questionnaire).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Questionnaire not found!", nil)
	}

	questionnaire.IsDeleted = true
	if err := database.Database.Db.Save(&questionnaire).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete questionnaire!", nil)
	}
	database.Database.Db.Model(&models.Question{}).
		Where("questionnaire_id = ?", questionnaire.ID).
		Update("is_deleted", true)

	go utils.NotifyQuestionnaireChanged(&questionnaire, "questionnaire.deleted")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questionnaire deleted!", nil)
}

// AddQuestion creates a question under a questionnaire. Criterion questions
// get their advice rows seeded immediately.
func AddQuestion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid questionnaire id!", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*struct {
		Txt          string `json:"txt"`
		QuestionType string `json:"question_type"`
		Weight       *int   `json:"weight"`
		SeqOrder     *int   `json:"seq_order"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var questionnaire models.Questionnaire
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&questionnaire).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Questionnaire not found!", nil)
	}

	question := models.Question{
		QuestionnaireID: questionnaire.ID,
		Txt:             reqData.Txt,
		QuestionType:    models.QuestionTypeCriterion,
	}
	if reqData.QuestionType != "" {
		question.QuestionType = reqData.QuestionType
	}
	if reqData.Weight != nil {
		question.Weight = *reqData.Weight
	}
	if reqData.SeqOrder != nil {
		question.SeqOrder = *reqData.SeqOrder
	}

	if err := database.Database.Db.Create(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	if question.IsScored() {
		rec := advice.NewReconciler(advice.NewGormStore(database.Database.Db))
		rng := advice.ScoreRange{Min: questionnaire.MinScore, Max: questionnaire.MaxScore}
		if err := rec.Reconcile(&question, rng); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to seed advice!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created!", question)
}

// UpdateQuestions applies a batch of partial field updates, one save per
// touched question.
func UpdateQuestions(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid questionnaire id!", nil)
	}

	reqData, ok := c.Locals("validatedQuestionUpdates").(*struct {
		Question map[string]map[string]string `json:"question"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var questionnaire models.Questionnaire
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&questionnaire).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Questionnaire not found!", nil)
	}

	if err := formupdate.Apply(formupdate.NewQuestionStore(database.Database.Db), reqData.Question); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
		case errors.Is(err, models.ErrUnknownField):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown question field!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update questions!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions updated!", nil)
}
