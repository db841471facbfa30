package repository

import (
    "database/sql"
    "time"

    appErrors "github.com/mailpost/mailing-backend/internal/errors"
    "github.com/mailpost/mailing-backend/internal/model"
)

// SendingRepositoryInterface defines methods used by services
type SendingRepositoryInterface interface {
    Create(s *model.Sending) error
    GetByID(id int) (*model.Sending, error)
    ListByOwner(ownerID int) ([]*model.Sending, error)
    ListAll() ([]*model.Sending, error)
    Update(s *model.Sending) error
    UpdateStatus(sendingID int, status string) error
    Delete(id int) error

    // Delivery loop and sweep queries
    ListRecipients(sendingID int) ([]*model.Recipient, error)
    CompleteExpired(now time.Time) (int64, error)
    ListDue(now time.Time) ([]*model.Sending, error)
    ListExpiredStarted(now time.Time) ([]*model.Sending, error)

    // Home stats
    CountByOwner(ownerID int) (int, error)
    CountActiveByOwner(ownerID int) (int, error)
}

type SendingRepository struct {
    DB *sql.DB
}

func (r *SendingRepository) Create(s *model.Sending) error {
    s.CreatedAt = time.Now()
    if s.Status == "" {
        s.Status = model.StatusCreated
    }

    tx, err := r.DB.Begin()
    if err != nil {
        return err
    }
    defer tx.Rollback()

    query := `
        INSERT INTO sendings (start_at, end_at, status, message_id, owner_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
    if err := tx.QueryRow(query, s.StartAt, s.EndAt, s.Status, s.MessageID, s.OwnerID, s.CreatedAt).Scan(&s.ID); err != nil {
        return err
    }

    for _, recipientID := range s.RecipientIDs {
        if _, err := tx.Exec(
            `INSERT INTO sending_recipients (sending_id, recipient_id) VALUES ($1, $2)`,
            s.ID, recipientID,
        ); err != nil {
            return err
        }
    }

    return tx.Commit()
}

func (r *SendingRepository) GetByID(id int) (*model.Sending, error) {
    query := `
        SELECT id, start_at, end_at, status, message_id, owner_id, created_at
        FROM sendings WHERE id=$1
    `
    var s model.Sending
    err := r.DB.QueryRow(query, id).Scan(&s.ID, &s.StartAt, &s.EndAt, &s.Status, &s.MessageID, &s.OwnerID, &s.CreatedAt)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewSendingNotFound(id)
        }
        return nil, err
    }
    return &s, nil
}

func (r *SendingRepository) ListByOwner(ownerID int) ([]*model.Sending, error) {
    query := `
        SELECT id, start_at, end_at, status, message_id, owner_id, created_at
        FROM sendings WHERE owner_id=$1 ORDER BY id DESC
    `
    return r.scanList(r.DB.Query(query, ownerID))
}

// ListAll is the unscoped variant for admin views.
func (r *SendingRepository) ListAll() ([]*model.Sending, error) {
    query := `
        SELECT id, start_at, end_at, status, message_id, owner_id, created_at
        FROM sendings ORDER BY id DESC
    `
    return r.scanList(r.DB.Query(query))
}

func (r *SendingRepository) scanList(rows *sql.Rows, err error) ([]*model.Sending, error) {
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    sendings := []*model.Sending{}
    for rows.Next() {
        s := &model.Sending{}
        if err := rows.Scan(&s.ID, &s.StartAt, &s.EndAt, &s.Status, &s.MessageID, &s.OwnerID, &s.CreatedAt); err != nil {
            return nil, err
        }
        sendings = append(sendings, s)
    }
    return sendings, rows.Err()
}

func (r *SendingRepository) Update(s *model.Sending) error {
    tx, err := r.DB.Begin()
    if err != nil {
        return err
    }
    defer tx.Rollback()

    query := `
        UPDATE sendings SET start_at=$1, end_at=$2, message_id=$3 WHERE id=$4
    `
    if _, err := tx.Exec(query, s.StartAt, s.EndAt, s.MessageID, s.ID); err != nil {
        return err
    }

    if s.RecipientIDs != nil {
        if _, err := tx.Exec(`DELETE FROM sending_recipients WHERE sending_id=$1`, s.ID); err != nil {
            return err
        }
        for _, recipientID := range s.RecipientIDs {
            if _, err := tx.Exec(
                `INSERT INTO sending_recipients (sending_id, recipient_id) VALUES ($1, $2)`,
                s.ID, recipientID,
            ); err != nil {
                return err
            }
        }
    }

    return tx.Commit()
}

func (r *SendingRepository) UpdateStatus(sendingID int, status string) error {
    _, err := r.DB.Exec(`UPDATE sendings SET status=$1 WHERE id=$2`, status, sendingID)
    return err
}

// Delete removes a sending. Attempt rows and recipient links go with it
// via ON DELETE CASCADE.
func (r *SendingRepository) Delete(id int) error {
    _, err := r.DB.Exec(`DELETE FROM sendings WHERE id=$1`, id)
    return err
}

func (r *SendingRepository) ListRecipients(sendingID int) ([]*model.Recipient, error) {
    query := `
        SELECT r.id, r.email, r.full_name, r.comment, r.owner_id, r.created_at, r.updated_at
        FROM recipients r
        JOIN sending_recipients sr ON sr.recipient_id = r.id
        WHERE sr.sending_id = $1
        ORDER BY r.id
    `
    rows, err := r.DB.Query(query, sendingID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    recipients := []*model.Recipient{}
    for rows.Next() {
        rec := &model.Recipient{}
        if err := rows.Scan(&rec.ID, &rec.Email, &rec.FullName, &rec.Comment, &rec.OwnerID, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
            return nil, err
        }
        recipients = append(recipients, rec)
    }
    return recipients, rows.Err()
}

// CompleteExpired bulk-closes started sendings whose window has elapsed.
// A single UPDATE keeps the transition atomic.
func (r *SendingRepository) CompleteExpired(now time.Time) (int64, error) {
    res, err := r.DB.Exec(
        `UPDATE sendings SET status=$1 WHERE status=$2 AND end_at < $3`,
        model.StatusCompleted, model.StatusStarted, now,
    )
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}

// ListDue returns created sendings whose window contains now.
func (r *SendingRepository) ListDue(now time.Time) ([]*model.Sending, error) {
    query := `
        SELECT id, start_at, end_at, status, message_id, owner_id, created_at
        FROM sendings
        WHERE status=$1 AND start_at <= $2 AND end_at > $2
        ORDER BY id
    `
    return r.scanList(r.DB.Query(query, model.StatusCreated, now))
}

// ListExpiredStarted catches sendings the bulk update and the sweep loop
// may have observed under different snapshots.
func (r *SendingRepository) ListExpiredStarted(now time.Time) ([]*model.Sending, error) {
    query := `
        SELECT id, start_at, end_at, status, message_id, owner_id, created_at
        FROM sendings
        WHERE status=$1 AND end_at < $2
        ORDER BY id
    `
    return r.scanList(r.DB.Query(query, model.StatusStarted, now))
}

func (r *SendingRepository) CountByOwner(ownerID int) (int, error) {
    var count int
    err := r.DB.QueryRow(`SELECT COUNT(*) FROM sendings WHERE owner_id=$1`, ownerID).Scan(&count)
    return count, err
}

func (r *SendingRepository) CountActiveByOwner(ownerID int) (int, error) {
    var count int
    err := r.DB.QueryRow(
        `SELECT COUNT(*) FROM sendings WHERE owner_id=$1 AND status=$2`,
        ownerID, model.StatusStarted,
    ).Scan(&count)
    return count, err
}

var _ SendingRepositoryInterface = (*SendingRepository)(nil)
