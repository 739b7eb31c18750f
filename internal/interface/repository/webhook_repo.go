package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"launchsync-service/internal/domain/entity"
	"launchsync-service/internal/domain/repository"
	"launchsync-service/pkg/apperrors"
	"launchsync-service/pkg/logger"
)

// WebhookNotifier delivers new-launch notifications to the user-configured
// webhook URL. The URL is read fresh for every delivery because the user
// can change it between runs. Delivery is fire-and-forget: no retries, and
// a failure never rolls back the store upsert that preceded it.
type WebhookNotifier struct {
	configRepo repository.WebhookConfigRepository
	httpClient *http.Client
	logger     logger.Logger
}

// NewWebhookNotifier creates a new webhook notifier
func NewWebhookNotifier(configRepo repository.WebhookConfigRepository, timeout time.Duration, log logger.Logger) repository.LaunchNotifier {
	return &WebhookNotifier{
		configRepo: configRepo,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}
}

type webhookPayload struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	LaunchDate    *time.Time `json:"launch_date"`
	Success       *bool      `json:"success"`
	RocketName    string     `json:"rocket_name"`
	LaunchpadName string     `json:"launchpad_name"`
	LaunchpadSite string     `json:"launchpad_site"`
	Message       string     `json:"message"`
}

// Notify POSTs one JSON message for the launch. When no webhook URL is
// configured it silently does nothing and reports sent=false.
func (n *WebhookNotifier) Notify(ctx context.Context, launch *entity.Launch) (bool, error) {
	url, err := n.configRepo.GetURL(ctx)
	if err != nil {
		return false, err
	}
	if url == "" {
		n.logger.Debug("No webhook URL configured, skipping notification", "launchId", launch.ID)
		return false, nil
	}

	payload := webhookPayload{
		ID:            launch.ID,
		Name:          launch.Name,
		LaunchDate:    launch.LaunchDate,
		Success:       launch.Success,
		RocketName:    launch.RocketName,
		LaunchpadName: launch.LaunchpadName,
		LaunchpadSite: launch.LaunchpadSite,
		Message:       fmt.Sprintf("New launch: %s", launch.Name),
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return false, &apperrors.DeliveryError{URL: url, Err: fmt.Errorf("marshal payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return false, &apperrors.DeliveryError{URL: url, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return false, &apperrors.DeliveryError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, &apperrors.DeliveryError{URL: url, StatusCode: resp.StatusCode}
	}

	n.logger.Info("Webhook notification delivered",
		"launchId", launch.ID,
		"name", launch.Name)
	return true, nil
}
