// internal/errors/errors.go
package appErrors

import "fmt"

type ErrSendingNotFound struct {
    SendingID int
}

func (e *ErrSendingNotFound) Error() string {
    return fmt.Sprintf("sending with ID %d not found", e.SendingID)
}

func NewSendingNotFound(id int) error {
    return &ErrSendingNotFound{SendingID: id}
}

type ErrRecipientNotFound struct {
    RecipientID int
}

func (e *ErrRecipientNotFound) Error() string {
    return fmt.Sprintf("recipient with ID %d not found", e.RecipientID)
}

func NewRecipientNotFound(id int) error {
    return &ErrRecipientNotFound{RecipientID: id}
}

type ErrMessageNotFound struct {
    MessageID int
}

func (e *ErrMessageNotFound) Error() string {
    return fmt.Sprintf("message with ID %d not found", e.MessageID)
}

func NewMessageNotFound(id int) error {
    return &ErrMessageNotFound{MessageID: id}
}

// ErrNotOwner is returned when a user acts on an entity they do not own.
type ErrNotOwner struct {
    UserID int
}

func (e *ErrNotOwner) Error() string {
    return fmt.Sprintf("user %d is not the owner of this entity", e.UserID)
}

func NewNotOwner(userID int) error {
    return &ErrNotOwner{UserID: userID}
}

// ErrDuplicateEmail is returned when a recipient email already exists.
// Emails are unique across the whole system, not just per owner.
type ErrDuplicateEmail struct {
    Email string
}

func (e *ErrDuplicateEmail) Error() string {
    return fmt.Sprintf("recipient with email %q already exists", e.Email)
}

func NewDuplicateEmail(email string) error {
    return &ErrDuplicateEmail{Email: email}
}
