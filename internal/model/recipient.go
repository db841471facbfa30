// internal/model/recipient.go
package model

import "time"

type Recipient struct {
    ID        int       `db:"id" json:"id"`
    Email     string    `db:"email" json:"email" validate:"required,email"`
    FullName  string    `db:"full_name" json:"full_name" validate:"required,fullname"`
    Comment   string    `db:"comment" json:"comment,omitempty"`
    OwnerID   int       `db:"owner_id" json:"owner_id"`
    CreatedAt time.Time `db:"created_at" json:"created_at"`
    UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
