package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/config"
	"quill/database"
	"quill/models"
	questionnaireRoutes "quill/routers/questionnaireRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:            "0",
		DBDriver:        "sqlite",
		AdviceSweepSpec: "0 * * * *",
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Questionnaire{}, &models.Question{}, &models.Advice{}))

	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	questionnaireRoutes.SetupQuestionnaireRoutes(app)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func createQuestionnaire(t *testing.T, app *fiber.App, body map[string]interface{}) models.Questionnaire {
	t.Helper()

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/questionnaire", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)

	var q models.Questionnaire
	require.NoError(t, json.Unmarshal(env.Data, &q))
	return q
}

func adviceScores(t *testing.T, db *gorm.DB, questionID uint) []int {
	t.Helper()
	var scores []int
	require.NoError(t, db.Model(&models.Advice{}).
		Where("question_id = ?", questionID).
		Order("score asc").
		Pluck("score", &scores).Error)
	return scores
}

func TestCreateQuestionnaire(t *testing.T) {
	app, _ := setupApp(t)

	q := createQuestionnaire(t, app, map[string]interface{}{
		"name": "Program 2 review",
		"type": models.ReviewQuestionnaireType,
	})

	assert.Equal(t, models.ReviewQuestionnaireType, q.Type)
	assert.Equal(t, 0, q.MinScore)
	assert.Equal(t, 5, q.MaxScore)
	assert.NotEmpty(t, q.AccessToken)
}

func TestCreateQuestionnaireUnknownType(t *testing.T) {
	app, _ := setupApp(t)

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/questionnaire", map[string]interface{}{
		"name": "Mystery",
		"type": "BookmarkRatingQuestionnaire",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Status)
	assert.Equal(t, "Error: Undefined Questionnaire", env.Message)
}

func TestCreateQuestionnaireValidatesName(t *testing.T) {
	app, _ := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/questionnaire", map[string]interface{}{
		"name": "",
		"type": models.ReviewQuestionnaireType,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAddCriterionQuestionSeedsAdvice(t *testing.T) {
	app, db := setupApp(t)

	q := createQuestionnaire(t, app, map[string]interface{}{
		"name":      "Design review",
		"type":      models.ReviewQuestionnaireType,
		"min_score": 1,
		"max_score": 5,
	})

	resp, env := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/questionnaire/%d/questions", q.ID), map[string]interface{}{
		"txt": "Is the architecture clearly documented?",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)

	var question models.Question
	require.NoError(t, json.Unmarshal(env.Data, &question))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, adviceScores(t, db, question.ID))
}

func TestAddTextQuestionSeedsNoAdvice(t *testing.T) {
	app, db := setupApp(t)

	q := createQuestionnaire(t, app, map[string]interface{}{
		"name": "Design review",
		"type": models.ReviewQuestionnaireType,
	})

	resp, env := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/questionnaire/%d/questions", q.ID), map[string]interface{}{
		"txt":           "General comments",
		"question_type": models.QuestionTypeTextArea,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)

	var question models.Question
	require.NoError(t, json.Unmarshal(env.Data, &question))
	assert.Empty(t, adviceScores(t, db, question.ID))
}

func TestUpdateRangeReconcilesAdvice(t *testing.T) {
	app, db := setupApp(t)

	q := createQuestionnaire(t, app, map[string]interface{}{
		"name":      "Design review",
		"type":      models.ReviewQuestionnaireType,
		"min_score": 1,
		"max_score": 5,
	})
	_, env := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/questionnaire/%d/questions", q.ID), map[string]interface{}{
		"txt": "Criterion",
	})
	var question models.Question
	require.NoError(t, json.Unmarshal(env.Data, &question))
	require.Equal(t, []int{1, 2, 3, 4, 5}, adviceScores(t, db, question.ID))

	resp, env := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/questionnaire/%d", q.ID), map[string]interface{}{
		"min_score": 2,
		"max_score": 3,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)

	assert.Equal(t, []int{2, 3}, adviceScores(t, db, question.ID))
}

func TestUpdateWithoutRangeChangeLeavesAdviceAlone(t *testing.T) {
	app, db := setupApp(t)

	q := createQuestionnaire(t, app, map[string]interface{}{
		"name":      "Design review",
		"type":      models.ReviewQuestionnaireType,
		"min_score": 1,
		"max_score": 3,
	})
	_, env := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/questionnaire/%d/questions", q.ID), map[string]interface{}{
		"txt": "Criterion",
	})
	var question models.Question
	require.NoError(t, json.Unmarshal(env.Data, &question))

	// Punch a hole the rename must not repair.
	require.NoError(t, db.Where("question_id = ? AND score = ?", question.ID, 2).Delete(&models.Advice{}).Error)

	resp, _ := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/questionnaire/%d", q.ID), map[string]interface{}{
		"name": "Renamed review",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, []int{1, 3}, adviceScores(t, db, question.ID))
}

func TestBatchQuestionUpdate(t *testing.T) {
	app, db := setupApp(t)

	q := createQuestionnaire(t, app, map[string]interface{}{
		"name": "Design review",
		"type": models.ReviewQuestionnaireType,
	})
	_, env := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/questionnaire/%d/questions", q.ID), map[string]interface{}{
		"txt": "old text",
	})
	var question models.Question
	require.NoError(t, json.Unmarshal(env.Data, &question))

	resp, env := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/questionnaire/%d/questions", q.ID), map[string]interface{}{
		"question": map[string]map[string]string{
			fmt.Sprintf("%d", question.ID): {"txt": "new text", "weight": "4"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)

	var reloaded models.Question
	require.NoError(t, db.First(&reloaded, question.ID).Error)
	assert.Equal(t, "new text", reloaded.Txt)
	assert.Equal(t, 4, reloaded.Weight)
}

func TestBatchQuestionUpdateUnknownField(t *testing.T) {
	app, _ := setupApp(t)

	q := createQuestionnaire(t, app, map[string]interface{}{
		"name": "Design review",
		"type": models.ReviewQuestionnaireType,
	})
	_, env := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/questionnaire/%d/questions", q.ID), map[string]interface{}{
		"txt": "text",
	})
	var question models.Question
	require.NoError(t, json.Unmarshal(env.Data, &question))

	resp, env := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/questionnaire/%d/questions", q.ID), map[string]interface{}{
		"question": map[string]map[string]string{
			fmt.Sprintf("%d", question.ID): {"bogus": "x"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Unknown question field!", env.Message)
}

func TestEditAdviceReconcilesOnTheWayIn(t *testing.T) {
	app, db := setupApp(t)

	q := createQuestionnaire(t, app, map[string]interface{}{
		"name":      "Design review",
		"type":      models.ReviewQuestionnaireType,
		"min_score": 1,
		"max_score": 3,
	})
	_, env := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/questionnaire/%d/questions", q.ID), map[string]interface{}{
		"txt": "Criterion",
	})
	var question models.Question
	require.NoError(t, json.Unmarshal(env.Data, &question))

	// Drop one slot; the edit view must restore it.
	require.NoError(t, db.Where("question_id = ? AND score = ?", question.ID, 2).Delete(&models.Advice{}).Error)

	resp, _ := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/questionnaire/%d/advice", q.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, []int{1, 2, 3}, adviceScores(t, db, question.ID))
}

func TestSaveAdvice(t *testing.T) {
	app, db := setupApp(t)

	q := createQuestionnaire(t, app, map[string]interface{}{
		"name":      "Design review",
		"type":      models.ReviewQuestionnaireType,
		"min_score": 1,
		"max_score": 2,
	})
	_, env := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/questionnaire/%d/questions", q.ID), map[string]interface{}{
		"txt": "Criterion",
	})
	var question models.Question
	require.NoError(t, json.Unmarshal(env.Data, &question))

	var adv models.Advice
	require.NoError(t, db.Where("question_id = ? AND score = ?", question.ID, 1).First(&adv).Error)

	resp, env := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/questionnaire/%d/advice", q.ID), map[string]interface{}{
		"advice": map[string]map[string]string{
			fmt.Sprintf("%d", adv.ID): {"advice": "Cite the relevant sections."},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Advice was successfully saved!", env.Message)

	var reloaded models.Advice
	require.NoError(t, db.First(&reloaded, adv.ID).Error)
	assert.Equal(t, "Cite the relevant sections.", reloaded.Advice)
}

func TestDeleteQuestionnaire(t *testing.T) {
	app, _ := setupApp(t)

	q := createQuestionnaire(t, app, map[string]interface{}{
		"name": "Design review",
		"type": models.ReviewQuestionnaireType,
	})

	resp, _ := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/questionnaire/%d", q.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/questionnaire/%d", q.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetQuestionnaireNotFound(t *testing.T) {
	app, _ := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/questionnaire/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListQuestionnaires(t *testing.T) {
	app, _ := setupApp(t)

	createQuestionnaire(t, app, map[string]interface{}{"name": "First review", "type": models.ReviewQuestionnaireType})
	createQuestionnaire(t, app, map[string]interface{}{"name": "Second survey", "type": models.SurveyQuestionnaireType})

	resp, env := doJSON(t, app, http.MethodGet, "/api/v1/questionnaire/list?page=1&limit=10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		Questionnaires []models.Questionnaire `json:"questionnaires"`
		Pagination     struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 2, data.Pagination.Total)
	assert.Len(t, data.Questionnaires, 2)
}
