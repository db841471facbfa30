package repository

import (
    "database/sql"

    appErrors "github.com/mailpost/mailing-backend/internal/errors"
    "github.com/mailpost/mailing-backend/internal/model"
)

// MessageRepositoryInterface defines methods used by services
type MessageRepositoryInterface interface {
    Create(m *model.Message) error
    GetByID(id int) (*model.Message, error)
    ListByOwner(ownerID int) ([]*model.Message, error)
    ListAll() ([]*model.Message, error)
    Update(m *model.Message) error
    Delete(id int) error
}

type MessageRepository struct {
    DB *sql.DB
}

func (r *MessageRepository) Create(m *model.Message) error {
    query := `
        INSERT INTO messages (title, body, owner_id)
        VALUES ($1, $2, $3)
        RETURNING id
    `
    return r.DB.QueryRow(query, m.Title, m.Body, m.OwnerID).Scan(&m.ID)
}

func (r *MessageRepository) GetByID(id int) (*model.Message, error) {
    query := `SELECT id, title, body, owner_id FROM messages WHERE id=$1`
    var m model.Message
    err := r.DB.QueryRow(query, id).Scan(&m.ID, &m.Title, &m.Body, &m.OwnerID)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewMessageNotFound(id)
        }
        return nil, err
    }
    return &m, nil
}

func (r *MessageRepository) ListByOwner(ownerID int) ([]*model.Message, error) {
    return r.scanList(r.DB.Query(`SELECT id, title, body, owner_id FROM messages WHERE owner_id=$1 ORDER BY id`, ownerID))
}

// ListAll is the unscoped variant for admin views.
func (r *MessageRepository) ListAll() ([]*model.Message, error) {
    return r.scanList(r.DB.Query(`SELECT id, title, body, owner_id FROM messages ORDER BY id`))
}

func (r *MessageRepository) scanList(rows *sql.Rows, err error) ([]*model.Message, error) {
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    messages := []*model.Message{}
    for rows.Next() {
        m := &model.Message{}
        if err := rows.Scan(&m.ID, &m.Title, &m.Body, &m.OwnerID); err != nil {
            return nil, err
        }
        messages = append(messages, m)
    }
    return messages, rows.Err()
}

func (r *MessageRepository) Update(m *model.Message) error {
    _, err := r.DB.Exec(`UPDATE messages SET title=$1, body=$2 WHERE id=$3`, m.Title, m.Body, m.ID)
    return err
}

func (r *MessageRepository) Delete(id int) error {
    _, err := r.DB.Exec(`DELETE FROM messages WHERE id=$1`, id)
    return err
}

var _ MessageRepositoryInterface = (*MessageRepository)(nil)
