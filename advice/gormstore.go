package advice

import (
	"quill/models"

	"gorm.io/gorm"
)

// GormStore backs the reconciler with the shared GORM handle.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindByScore(questionID uint, score int) ([]models.Advice, error) {
	var advices []models.Advice
	if err := s.db.Where("question_id = ? AND score = ?", questionID, score).Find(&advices).Error; err != nil {
		return nil, err
	}
	return advices, nil
}

func (s *GormStore) DeleteOutsideRange(questionID uint, r ScoreRange) error {
	return s.db.Where("question_id = ? AND (score > ? OR score < ?)", questionID, r.Max, r.Min).
		Delete(&models.Advice{}).Error
}

func (s *GormStore) DeleteByScore(questionID uint, score int) error {
	return s.db.Where("question_id = ? AND score = ?", questionID, score).
		Delete(&models.Advice{}).Error
}

// Append attaches the new advice to the question's owned collection so the
// association save cascades.
func (s *GormStore) Append(questionID uint, adv models.Advice) error {
	var question models.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		return err
	}
	return s.db.Model(&question).Association("Advices").Append(&adv)
}
