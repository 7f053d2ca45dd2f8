package questionnaireValidator

import (
	"strings"

	"quill/middleware"

	"github.com/gofiber/fiber/v2"
)

func CreateQuestionnaire() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name         string `json:"name"`
			Type         string `json:"type"`
			MinScore     *int   `json:"min_score"`
			MaxScore     *int   `json:"max_score"`
			Private      *bool  `json:"private"`
			InstructorID *uint  `json:"instructor_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Name. The type key is deliberately left alone: the factory
		// is the authority on what resolves and what does not.
		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		} else if len(strings.TrimSpace(reqData.Name)) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestionnaire", reqData)
		return c.Next()
	}
}

func UpdateQuestionnaire() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     *string `json:"name"`
			Private  *bool   `json:"private"`
			MinScore *int    `json:"min_score"`
			MaxScore *int    `json:"max_score"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Name != nil && strings.TrimSpace(*reqData.Name) == "" {
			errors["name"] = "Name cannot be empty!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestionnaireUpdate", reqData)
		return c.Next()
	}
}

func QuestionnaireList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page" query:"page"`
			Limit *int `json:"limit" query:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

func AddQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Txt          string `json:"txt"`
			QuestionType string `json:"question_type"`
			Weight       *int   `json:"weight"`
			SeqOrder     *int   `json:"seq_order"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Txt) == "" {
			errors["txt"] = "Question text is required!"
		}
		if reqData.Weight != nil && *reqData.Weight < 0 {
			errors["weight"] = "Weight cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

func UpdateQuestions() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Question map[string]map[string]string `json:"question"`
		})

		// An absent or empty question map is a valid no-op request.
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedQuestionUpdates", reqData)
		return c.Next()
	}
}

func SaveAdvice() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Advice map[string]map[string]string `json:"advice"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedAdviceUpdates", reqData)
		return c.Next()
	}
}
