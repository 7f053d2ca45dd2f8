package advice

import "quill/models"

// ScoreRange is the inclusive score window a questionnaire grades on.
type ScoreRange struct {
	Min int
	Max int
}

// Empty reports whether no score is valid (min past max).
func (r ScoreRange) Empty() bool { return r.Min > r.Max }

// Question is the minimal view the reconciler needs. Only scored (criterion)
// questions carry per-score advice; everything else is left untouched.
type Question interface {
	QuestionID() uint
	IsScored() bool
}

// Store is the persistence collaborator the reconciler issues its reads and
// writes through. Append hands ownership of the new row to the store; when and
// how it commits is the store's concern.
type Store interface {
	FindByScore(questionID uint, score int) ([]models.Advice, error)
	DeleteOutsideRange(questionID uint, r ScoreRange) error
	DeleteByScore(questionID uint, score int) error
	Append(questionID uint, adv models.Advice) error
}

// Reconciler keeps a question's advice set aligned with its score range:
// exactly one advice row per in-range score, none outside.
type Reconciler struct {
	store Store
}

func NewReconciler(store Store) *Reconciler {
	return &Reconciler{store: store}
}

// Reconcile aligns the advice rows of q with r. Unscored questions return
// immediately with no store calls. For scored questions it first deletes all
// out-of-range rows in one shot (an empty range deletes everything), then
// walks the range in ascending order: a score with no row gets a fresh empty
// advice, a score with duplicate rows has ALL of them deleted. The duplicate
// case intentionally leaves the score empty until the next pass re-creates the
// row; the periodic sweep converges it. Store errors propagate unmodified.
func (rc *Reconciler) Reconcile(q Question, r ScoreRange) error {
	if !q.IsScored() {
		return nil
	}
	if err := rc.store.DeleteOutsideRange(q.QuestionID(), r); err != nil {
		return err
	}
	for score := r.Min; score <= r.Max; score++ {
		existing, err := rc.store.FindByScore(q.QuestionID(), score)
		if err != nil {
			return err
		}
		switch {
		case len(existing) == 0:
			adv := models.Advice{QuestionID: q.QuestionID(), Score: score}
			if err := rc.store.Append(q.QuestionID(), adv); err != nil {
				return err
			}
		case len(existing) > 1:
			if err := rc.store.DeleteByScore(q.QuestionID(), score); err != nil {
				return err
			}
		}
	}
	return nil
}
