// internal/model/sending.go
package model

import "time"

// Sending status lifecycle. Transitions are monotonic:
// created -> started -> completed, never backward.
const (
    StatusCreated   = "created"
    StatusStarted   = "started"
    StatusCompleted = "completed"
)

type Sending struct {
    ID           int       `db:"id" json:"id"`
    StartAt      time.Time `db:"start_at" json:"start_at"`
    EndAt        time.Time `db:"end_at" json:"end_at"`
    Status       string    `db:"status" json:"status"`
    MessageID    int       `db:"message_id" json:"message_id"`
    RecipientIDs []int     `json:"recipient_ids,omitempty"`
    OwnerID      int       `db:"owner_id" json:"owner_id"`
    CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
