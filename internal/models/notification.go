package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type NotificationType string

const (
	NotificationTypeProductEmail NotificationType = "product_email"
	NotificationTypeGroupEmail   NotificationType = "group_email"
)

type NotificationStatus string

const (
	StatusPending NotificationStatus = "pending"
	StatusSent    NotificationStatus = "sent"
	StatusFailed  NotificationStatus = "failed"
)

// Notification records one outbound email draft.
type Notification struct {
	ID         uuid.UUID          `json:"id" db:"id"`
	Type       NotificationType   `json:"type" db:"type"`
	Recipient  string             `json:"recipient" db:"recipient"`
	Subject    string             `json:"subject" db:"subject"`
	Content    string             `json:"content" db:"content"`
	ProductIDs pq.Int64Array      `json:"product_ids" db:"product_ids"`
	Status     NotificationStatus `json:"status" db:"status"`
	Error      string             `json:"error,omitempty" db:"error"`
	CreatedAt  time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" db:"updated_at"`
	SentAt     *time.Time         `json:"sent_at,omitempty" db:"sent_at"`
}

type GroupEmailRequest struct {
	ProductIDs []int64 `json:"product_ids" validate:"required,min=1,dive,gt=0"`
}

type NotificationResponse struct {
	ID        uuid.UUID          `json:"id"`
	Type      NotificationType   `json:"type"`
	Subject   string             `json:"subject"`
	Status    NotificationStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	SentAt    *time.Time         `json:"sent_at,omitempty"`
}
