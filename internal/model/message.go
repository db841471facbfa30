// internal/model/message.go
package model

type Message struct {
    ID      int    `db:"id" json:"id"`
    Title   string `db:"title" json:"title" validate:"required"`
    Body    string `db:"body" json:"body" validate:"required"`
    OwnerID int    `db:"owner_id" json:"owner_id"`
}
