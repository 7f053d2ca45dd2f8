package advice

import (
	"quill/models"

	"gorm.io/gorm"
)

// ReconcileAll runs the reconciler over every live question of qn using its
// current score range.
func ReconcileAll(db *gorm.DB, qn *models.Questionnaire) error {
	rec := NewReconciler(NewGormStore(db))
	rng := ScoreRange{Min: qn.MinScore, Max: qn.MaxScore}

	var questions []models.Question
	if err := db.Where("questionnaire_id = ? AND is_deleted = ?", qn.ID, false).Find(&questions).Error; err != nil {
		return err
	}
	for i := range questions {
		if err := rec.Reconcile(&questions[i], rng); err != nil {
			return err
		}
	}
	return nil
}
