package repository

import (
    "database/sql"
    "time"

    "github.com/lib/pq"

    appErrors "github.com/mailpost/mailing-backend/internal/errors"
    "github.com/mailpost/mailing-backend/internal/model"
)

// RecipientRepositoryInterface defines methods used by services
type RecipientRepositoryInterface interface {
    Create(r *model.Recipient) error
    GetByID(id int) (*model.Recipient, error)
    ListByOwner(ownerID int) ([]*model.Recipient, error)
    ListAll() ([]*model.Recipient, error)
    Update(r *model.Recipient) error
    Delete(id int) error
    CountDistinctEmails(ownerID int) (int, error)
}

type RecipientRepository struct {
    DB *sql.DB
}

func (r *RecipientRepository) Create(rec *model.Recipient) error {
    rec.CreatedAt = time.Now()
    rec.UpdatedAt = rec.CreatedAt
    query := `
        INSERT INTO recipients (email, full_name, comment, owner_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
    err := r.DB.QueryRow(query, rec.Email, rec.FullName, rec.Comment, rec.OwnerID, rec.CreatedAt, rec.UpdatedAt).Scan(&rec.ID)
    if err != nil {
        // 23505 = unique_violation on the email constraint
        if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
            return appErrors.NewDuplicateEmail(rec.Email)
        }
        return err
    }
    return nil
}

func (r *RecipientRepository) GetByID(id int) (*model.Recipient, error) {
    query := `
        SELECT id, email, full_name, comment, owner_id, created_at, updated_at
        FROM recipients WHERE id=$1
    `
    var rec model.Recipient
    err := r.DB.QueryRow(query, id).Scan(&rec.ID, &rec.Email, &rec.FullName, &rec.Comment, &rec.OwnerID, &rec.CreatedAt, &rec.UpdatedAt)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewRecipientNotFound(id)
        }
        return nil, err
    }
    return &rec, nil
}

func (r *RecipientRepository) ListByOwner(ownerID int) ([]*model.Recipient, error) {
    query := `
        SELECT id, email, full_name, comment, owner_id, created_at, updated_at
        FROM recipients WHERE owner_id=$1 ORDER BY id
    `
    return r.scanList(r.DB.Query(query, ownerID))
}

// ListAll is the unscoped variant for admin views.
func (r *RecipientRepository) ListAll() ([]*model.Recipient, error) {
    query := `
        SELECT id, email, full_name, comment, owner_id, created_at, updated_at
        FROM recipients ORDER BY id
    `
    return r.scanList(r.DB.Query(query))
}

func (r *RecipientRepository) scanList(rows *sql.Rows, err error) ([]*model.Recipient, error) {
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

func (r *RecipientRepository) Update(rec *model.Recipient) error {
    query := `
        UPDATE recipients
        SET email=$1, full_name=$2, comment=$3, updated_at=NOW()
        WHERE id=$4
    `
    _, err := r.DB.Exec(query, rec.Email, rec.FullName, rec.Comment, rec.ID)
    if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
        return appErrors.NewDuplicateEmail(rec.Email)
    }
    return err
}

func (r *RecipientRepository) Delete(id int) error {
    _, err := r.DB.Exec(`DELETE FROM recipients WHERE id=$1`, id)
    return err
}

// CountDistinctEmails backs the home stats screen.
func (r *RecipientRepository) CountDistinctEmails(ownerID int) (int, error) {
    var count int
    err := r.DB.QueryRow(`SELECT COUNT(DISTINCT email) FROM recipients WHERE owner_id=$1`, ownerID).Scan(&count)
    return count, err
}

var _ RecipientRepositoryInterface = (*RecipientRepository)(nil)
