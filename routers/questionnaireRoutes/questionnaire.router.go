package questionnaireRoutes

import (
	adviceControllers "quill/controllers/advice"
	questionnaireControllers "quill/controllers/questionnaire"
	questionnaireValidator "quill/validators/questionnaire"

	"github.com/gofiber/fiber/v2"
)

func SetupQuestionnaireRoutes(app *fiber.App) {
	route := app.Group("/api/v1/questionnaire")

	route.Post("/", questionnaireValidator.CreateQuestionnaire(), questionnaireControllers.CreateQuestionnaire)
	route.Get("/list", questionnaireValidator.QuestionnaireList(), questionnaireControllers.ListQuestionnaires)
	route.Get("/:id", questionnaireControllers.GetQuestionnaire)
	route.Put("/:id", questionnaireValidator.UpdateQuestionnaire(), questionnaireControllers.UpdateQuestionnaire)
	route.Delete("/:id", questionnaireControllers.DeleteQuestionnaire)

	route.Post("/:id/questions", questionnaireValidator.AddQuestion(), questionnaireControllers.AddQuestion)
	route.Put("/:id/questions", questionnaireValidator.UpdateQuestions(), questionnaireControllers.UpdateQuestions)

	route.Get("/:id/advice", adviceControllers.EditAdvice)
	route.Put("/:id/advice", questionnaireValidator.SaveAdvice(), adviceControllers.SaveAdvice)
}
