package utils

import (
	"fmt"
	"log"
	"time"

	"quill/advice"
	"quill/config"
	"quill/database"
	"quill/models"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// logSweep logs sweep events with timestamp
func logSweep(message string) {
	log.Printf("[ADVICE-SWEEP %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartAdviceSweep schedules the periodic reconciliation pass. A duplicate
// collapse leaves its score slot empty until the next pass; the sweep is that
// pass, so edited questionnaires converge without anyone reopening them.
func StartAdviceSweep() {
	c := cron.New()
	if _, err := c.AddFunc(config.AppConfig.AdviceSweepSpec, RunAdviceSweep); err != nil {
		logSweep("Invalid sweep spec: " + err.Error())
		return
	}
	c.Start()
	logSweep("Scheduled with spec " + config.AppConfig.AdviceSweepSpec)
}

// RunAdviceSweep reconciles every questionnaire touched since the beginning of
// the day.
func RunAdviceSweep() {
	db := database.Database.Db
	since := now.BeginningOfDay()

	var questionnaires []models.Questionnaire
	if err := db.Where("updated_at >= ? AND is_deleted = ?", since, false).Find(&questionnaires).Error; err != nil {
		logSweep("Error fetching questionnaires: " + err.Error())
		return
	}

	swept := 0
	for i := range questionnaires {
		if err := advice.ReconcileAll(db, &questionnaires[i]); err != nil {
			logSweep(fmt.Sprintf("Questionnaire %d: %v", questionnaires[i].ID, err))
			continue
		}
		swept++
	}
	logSweep(fmt.Sprintf("Reconciled %d of %d questionnaires", swept, len(questionnaires)))
}
