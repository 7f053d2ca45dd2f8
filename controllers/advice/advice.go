package controllers

import (
	"errors"

	"quill/advice"
	"quill/database"
	"quill/formupdate"
	"quill/middleware"
	"quill/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EditAdvice reconciles the advice of every scored question first, then
// returns the questions with their advice slots, highest score first. Running
// the reconciler on the way in is what makes a freshly widened range show its
// new empty slots in the edit view.
func EditAdvice(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid questionnaire id!", nil)
	}

	var questionnaire models.Questionnaire
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&questionnaire).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Questionnaire not found!", nil)
	}

	if err := advice.ReconcileAll(database.Database.Db, &questionnaire); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reconcile advice!", nil)
	}

	var questions []models.Question
	if err := database.Database.Db.
		Where("questionnaire_id = ? AND is_deleted = ?", questionnaire.ID, false).
		Order("seq_order asc").
		Preload("Advices", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("advices.score desc")
		}).
		Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Advice fetched successfully!", fiber.Map{
		"questionnaire": questionnaire,
		"questions":     questions,
	})
}

// SaveAdvice applies batched advice text updates.
func SaveAdvice(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid questionnaire id!", nil)
	}

	reqData, ok := c.Locals("validatedAdviceUpdates").(*struct {
		Advice map[string]map[string]string `json:"advice"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var questionnaire models.Questionnaire
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&questionnaire).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Questionnaire not found!", nil)
	}

	if err := formupdate.Apply(formupdate.NewAdviceStore(database.Database.Db), reqData.Advice); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Advice not found!", nil)
		case errors.Is(err, models.ErrUnknownField):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown advice field!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save advice!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Advice was successfully saved!", nil)
}
