// internal/model/mail_attempt.go
package model

import "time"

// MailAttempt outcomes.
const (
    AttemptSuccess = "success"
    AttemptFailed  = "failed"
)

// MailAttempt is one recorded outcome of sending to one recipient during
// one dispatch invocation. Rows are append-only: never updated, deleted
// only by cascade when the owning sending is deleted.
type MailAttempt struct {
    ID             int       `db:"id" json:"id"`
    AttemptedAt    time.Time `db:"attempted_at" json:"attempted_at"`
    Status         string    `db:"status" json:"status"` // success, failed
    ServerResponse string    `db:"server_response" json:"server_response"`
    SendingID      int       `db:"sending_id" json:"sending_id"`
}
