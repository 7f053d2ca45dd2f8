package utils

import (
	"log"
	"time"

	"quill/config"
	"quill/models"

	"github.com/go-resty/resty/v2"
)

// NotifyQuestionnaireChanged posts a change summary to the configured webhook
// endpoint. A missing WEBHOOK_URL disables delivery entirely.
func NotifyQuestionnaireChanged(q *models.Questionnaire, event string) {
	if config.AppConfig == nil || config.AppConfig.WebhookURL == "" {
		return
	}

	client := resty.New().
		SetTimeout(time.Duration(config.AppConfig.WebhookTimeout) * time.Second)

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"event":            event,
			"questionnaire_id": q.ID,
			"type":             q.Type,
			"min_score":        q.MinScore,
			"max_score":        q.MaxScore,
		}).
		Post(config.AppConfig.WebhookURL)
	if err != nil {
		log.Printf("Webhook delivery failed: %v", err)
		return
	}
	if resp.StatusCode() >= 300 {
		log.Printf("Webhook returned status %d", resp.StatusCode())
	}
}
