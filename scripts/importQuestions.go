package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"

	"quill/advice"
	"quill/config"
	"quill/database"
	"quill/factory"
	"quill/models"

	"github.com/google/uuid"
)

// logNotifier routes factory misses to the import log.
type logNotifier struct {
	row int
}

func (n *logNotifier) SetError(msg string) {
	log.Printf("Row %d: %s", n.row, msg)
}

// Imports questionnaires and questions from a CSV with columns:
// questionnaire_name, questionnaire_type, txt, question_type, weight, seq_order
func main() {
	config.LoadConfig()
	database.ConnectDb()

	path := "questions.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}
	field := func(row []string, name string) string {
		idx, ok := headerIndex[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	db := database.Database.Db
	qFactory := factory.New(factory.DefaultTypes())

	// Questionnaires created during this run, keyed by name.
	created := make(map[string]*models.Questionnaire)
	inserted := 0
	skipped := 0

	for i, row := range records[1:] {
		name := field(row, "questionnaire_name")
		typeKey := field(row, "questionnaire_type")
		txt := field(row, "txt")
		if name == "" || txt == "" {
			skipped++
			continue
		}

		questionnaire, ok := created[name]
		if !ok {
			var existing models.Questionnaire
			if err := db.Where("name = ? AND is_deleted = ?", name, false).First(&existing).Error; err == nil {
				questionnaire = &existing
			} else {
				questionnaire = qFactory.Create(typeKey, &logNotifier{row: i + 2})
				if questionnaire == nil {
					skipped++
					continue
				}
				questionnaire.Name = name
				questionnaire.AccessToken = uuid.NewString()
				if err := db.Create(questionnaire).Error; err != nil {
					log.Printf("Row %d: failed to create questionnaire %q: %v", i+2, name, err)
					skipped++
					continue
				}
			}
			created[name] = questionnaire
		}

		question := models.Question{
			QuestionnaireID: questionnaire.ID,
			Txt:             txt,
			QuestionType:    models.QuestionTypeCriterion,
		}
		if qt := field(row, "question_type"); qt != "" {
			question.QuestionType = qt
		}
		if w, err := strconv.Atoi(field(row, "weight")); err == nil {
			question.Weight = w
		}
		if s, err := strconv.Atoi(field(row, "seq_order")); err == nil {
			question.SeqOrder = s
		}

		if err := db.Create(&question).Error; err != nil {
			log.Printf("Row %d: failed to create question: %v", i+2, err)
			skipped++
			continue
		}
		inserted++
	}

	// Seed advice for everything we touched.
	for _, questionnaire := range created {
		if err := advice.ReconcileAll(db, questionnaire); err != nil {
			log.Printf("Failed to reconcile %q: %v", questionnaire.Name, err)
		}
	}

	log.Printf("Import finished: %d questions inserted, %d rows skipped, %d questionnaires touched", inserted, skipped, len(created))
}
