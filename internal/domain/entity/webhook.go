package entity

// WebhookConfig is the single user-managed webhook document. It lives in
// its own collection under a fixed id so the dashboard can edit it while
// the service is running; the notifier reads it fresh on every delivery.
type WebhookConfig struct {
	ID  int    `bson:"_id" json:"id"`
	URL string `bson:"url" json:"url"`
}
