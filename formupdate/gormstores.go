package formupdate

import (
	"fmt"
	"strconv"

	"quill/models"

	"gorm.io/gorm"
)

// QuestionStore edits questions by their string form ids.
type QuestionStore struct {
	db *gorm.DB
}

func NewQuestionStore(db *gorm.DB) *QuestionStore {
	return &QuestionStore{db: db}
}

func (s *QuestionStore) FindRecord(id string) (Record, error) {
	qid, err := strconv.Atoi(id)
	if err != nil {
		return nil, fmt.Errorf("formupdate: bad question id %q: %v", id, err)
	}
	var question models.Question
	if err := s.db.Where("id = ? AND is_deleted = ?", qid, false).First(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *QuestionStore) SaveRecord(r Record) error {
	return s.db.Save(r).Error
}

// AdviceStore edits advice texts the same way.
type AdviceStore struct {
	db *gorm.DB
}

func NewAdviceStore(db *gorm.DB) *AdviceStore {
	return &AdviceStore{db: db}
}

func (s *AdviceStore) FindRecord(id string) (Record, error) {
	aid, err := strconv.Atoi(id)
	if err != nil {
		return nil, fmt.Errorf("formupdate: bad advice id %q: %v", id, err)
	}
	var adv models.Advice
	if err := s.db.First(&adv, aid).Error; err != nil {
		return nil, err
	}
	return &adv, nil
}

func (s *AdviceStore) SaveRecord(r Record) error {
	return s.db.Save(r).Error
}
