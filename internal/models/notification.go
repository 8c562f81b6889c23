package models

import "time"

type NotificationType string

const (
	NotifyFeedback   NotificationType = "feedback"
	NotifyEvaluation NotificationType = "evaluation"
	NotifySubmission NotificationType = "submission"
	NotifyReminder   NotificationType = "reminder"
)

// Notification is stored and listed only; delivery (push, email) is out of
// scope for this service.
type Notification struct {
	ID        int64            `db:"id" json:"id"`
	UserID    int64            `db:"user_id" json:"userId"`
	Type      NotificationType `db:"type" json:"type"`
	Title     string           `db:"title" json:"title"`
	Message   string           `db:"message" json:"message"`
	Read      bool             `db:"read" json:"read"`
	ActionURL string           `db:"action_url" json:"actionUrl,omitempty"`
	CreatedAt time.Time        `db:"created_at" json:"createdAt"`
}
