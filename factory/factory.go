// Package factory resolves questionnaire type keys against an injected
// constructor table. Unresolved keys are reported on a request-scoped
// notification slot instead of an error return, matching the flash-message
// flow of the surrounding controllers.
package factory

import "quill/models"

// UndefinedQuestionnaireMsg is the message set whenever a type key cannot be
// resolved.
const UndefinedQuestionnaireMsg = "Error: Undefined Questionnaire"

// Notifier is the write-once message slot the factory reports misses on.
type Notifier interface {
	SetError(msg string)
}

// Constructor builds a blank questionnaire of one concrete type with its
// type-specific defaults applied.
type Constructor func() *models.Questionnaire

// Factory holds the type table. The table is fixed at construction; the
// factory never mutates it.
type Factory struct {
	table map[string]Constructor
}

func New(table map[string]Constructor) *Factory {
	return &Factory{table: table}
}

// Create looks typeKey up exactly (case-sensitive, no trimming). On a hit it
// returns the constructed questionnaire. On a miss — empty key, unknown key, a
// key mapped to a nil constructor, or an empty table — it sets the undefined
// message on n and returns nil.
func (f *Factory) Create(typeKey string, n Notifier) *models.Questionnaire {
	ctor, ok := f.table[typeKey]
	if !ok || ctor == nil {
		n.SetError(UndefinedQuestionnaireMsg)
		return nil
	}
	return ctor()
}
