package formupdate

import (
	"testing"

	"quill/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Questionnaire{}, &models.Question{}, &models.Advice{}))
	return db
}

func TestQuestionStoreAppliesPartialUpdate(t *testing.T) {
	db := newTestDB(t)

	question := &models.Question{QuestionnaireID: 1, Txt: "old", Weight: 1}
	require.NoError(t, db.Create(question).Error)

	store := NewQuestionStore(db)
	err := Apply(store, map[string]map[string]string{
		"1": {"txt": "new", "weight": "3"},
	})
	require.NoError(t, err)

	var reloaded models.Question
	require.NoError(t, db.First(&reloaded, question.ID).Error)
	assert.Equal(t, "new", reloaded.Txt)
	assert.Equal(t, 3, reloaded.Weight)
}

func TestQuestionStoreMissingRecord(t *testing.T) {
	db := newTestDB(t)

	err := Apply(NewQuestionStore(db), map[string]map[string]string{"42": {"txt": "x"}})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestQuestionStoreSkipsSoftDeleted(t *testing.T) {
	db := newTestDB(t)

	question := &models.Question{QuestionnaireID: 1, Txt: "old", IsDeleted: true}
	require.NoError(t, db.Create(question).Error)

	err := Apply(NewQuestionStore(db), map[string]map[string]string{"1": {"txt": "x"}})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestQuestionStoreRejectsNonNumericID(t *testing.T) {
	db := newTestDB(t)

	_, err := NewQuestionStore(db).FindRecord("abc")
	assert.Error(t, err)
}

func TestQuestionStoreUnknownFieldPropagates(t *testing.T) {
	db := newTestDB(t)

	question := &models.Question{QuestionnaireID: 1, Txt: "old"}
	require.NoError(t, db.Create(question).Error)

	err := Apply(NewQuestionStore(db), map[string]map[string]string{"1": {"bogus": "x"}})
	assert.ErrorIs(t, err, models.ErrUnknownField)
}

func TestAdviceStoreUpdatesText(t *testing.T) {
	db := newTestDB(t)

	adv := &models.Advice{QuestionID: 1, Score: 3, Advice: "meh"}
	require.NoError(t, db.Create(adv).Error)

	err := Apply(NewAdviceStore(db), map[string]map[string]string{
		"1": {"advice": "Explain the tradeoffs in more depth."},
	})
	require.NoError(t, err)

	var reloaded models.Advice
	require.NoError(t, db.First(&reloaded, adv.ID).Error)
	assert.Equal(t, "Explain the tradeoffs in more depth.", reloaded.Advice)
	assert.Equal(t, 3, reloaded.Score, "score is not an updatable field")
}

func TestAdviceStoreScoreIsNotUpdatable(t *testing.T) {
	db := newTestDB(t)

	adv := &models.Advice{QuestionID: 1, Score: 3}
	require.NoError(t, db.Create(adv).Error)

	err := Apply(NewAdviceStore(db), map[string]map[string]string{"1": {"score": "5"}})
	assert.ErrorIs(t, err, models.ErrUnknownField)
}
