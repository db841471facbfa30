package repository

import (
    "database/sql"
    "time"

    "github.com/mailpost/mailing-backend/internal/model"
)

// AttemptRepositoryInterface defines methods used by services
type AttemptRepositoryInterface interface {
    Create(a *model.MailAttempt) error
    ListBySending(sendingID int) ([]*model.MailAttempt, error)
    ListByOwner(ownerID int) ([]*model.MailAttempt, error)
}

type AttemptRepository struct {
    DB *sql.DB
}

// Create appends one attempt row. Attempts are never updated afterwards.
func (r *AttemptRepository) Create(a *model.MailAttempt) error {
    if a.AttemptedAt.IsZero() {
        a.AttemptedAt = time.Now()
    }
    query := `
        INSERT INTO mail_attempts (attempted_at, status, server_response, sending_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
    return r.DB.QueryRow(query, a.AttemptedAt, a.Status, a.ServerResponse, a.SendingID).Scan(&a.ID)
}

// ListBySending returns attempts newest first.
func (r *AttemptRepository) ListBySending(sendingID int) ([]*model.MailAttempt, error) {
    query := `
        SELECT id, attempted_at, status, server_response, sending_id
        FROM mail_attempts
        WHERE sending_id=$1
        ORDER BY attempted_at DESC
    `
    return r.scanList(r.DB.Query(query, sendingID))
}

// ListByOwner returns attempts across all of an owner's sendings, newest first.
func (r *AttemptRepository) ListByOwner(ownerID int) ([]*model.MailAttempt, error) {
    query := `
        SELECT a.id, a.attempted_at, a.status, a.server_response, a.sending_id
        FROM mail_attempts a
        JOIN sendings s ON s.id = a.sending_id
        WHERE s.owner_id=$1
        ORDER BY a.attempted_at DESC
    `
    return r.scanList(r.DB.Query(query, ownerID))
}

func (r *AttemptRepository) scanList(rows *sql.Rows, err error) ([]*model.MailAttempt, error) {
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    attempts := []*model.MailAttempt{}
    for rows.Next() {
        a := &model.MailAttempt{}
        if err := rows.Scan(&a.ID, &a.AttemptedAt, &a.Status, &a.ServerResponse, &a.SendingID); err != nil {
            return nil, err
        }
        attempts = append(attempts, a)
    }
    return attempts, rows.Err()
}

var _ AttemptRepositoryInterface = (*AttemptRepository)(nil)
