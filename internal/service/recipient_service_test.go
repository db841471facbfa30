package service_test

import (
	"errors"
	"testing"

	appErrors "github.com/mailpost/mailing-backend/internal/errors"
	"github.com/mailpost/mailing-backend/internal/model"
	"github.com/mailpost/mailing-backend/internal/service"
)

// MockRecipientRepo enforces the system-wide unique email constraint the
// way the database does.
type MockRecipientRepo struct {
	recipients map[int]*model.Recipient
	nextID     int
}

func NewMockRecipientRepo() *MockRecipientRepo {
	return &MockRecipientRepo{recipients: map[int]*model.Recipient{}, nextID: 1}
}

func (m *MockRecipientRepo) Create(r *model.Recipient) error {
	for _, existing := range m.recipients {
		if existing.Email == r.Email {
			return appErrors.NewDuplicateEmail(r.Email)
		}
	}
	r.ID = m.nextID
	m.nextID++
	m.recipients[r.ID] = r
	return nil
}

func (m *MockRecipientRepo) GetByID(id int) (*model.Recipient, error) {
	r, ok := m.recipients[id]
	if !ok {
		return nil, appErrors.NewRecipientNotFound(id)
	}
	return r, nil
}

func (m *MockRecipientRepo) ListByOwner(ownerID int) ([]*model.Recipient, error) {
	out := []*model.Recipient{}
	for _, r := range m.recipients {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MockRecipientRepo) ListAll() ([]*model.Recipient, error) {
	out := []*model.Recipient{}
	for _, r := range m.recipients {
		out = append(out, r)
	}
	return out, nil
}

func (m *MockRecipientRepo) Update(r *model.Recipient) error { return nil }
func (m *MockRecipientRepo) Delete(id int) error {
	delete(m.recipients, id)
	return nil
}

func (m *MockRecipientRepo) CountDistinctEmails(ownerID int) (int, error) {
	emails := map[string]bool{}
	for _, r := range m.recipients {
		if r.OwnerID == ownerID {
			emails[r.Email] = true
		}
	}
	return len(emails), nil
}

func TestRecipientDuplicateEmailRejected(t *testing.T) {
	repo := NewMockRecipientRepo()
	svc := &service.RecipientService{RecipientRepo: repo}

	if _, err := svc.Create(1, "alice@example.com", "Alice Smith", ""); err != nil {
		t.Fatal(err)
	}

	// Same address, different owner: emails are unique system-wide.
	var dup *appErrors.ErrDuplicateEmail
	_, err := svc.Create(2, "alice@example.com", "Other Alice", "")
	if !errors.As(err, &dup) {
		t.Fatalf("expected duplicate email error, got %v", err)
	}
}

func TestRecipientInvalidInputNeverReachesStore(t *testing.T) {
	repo := NewMockRecipientRepo()
	svc := &service.RecipientService{RecipientRepo: repo}

	if _, err := svc.Create(1, "broken", "Alice Smith", ""); err == nil {
		t.Error("expected invalid email rejection")
	}
	if _, err := svc.Create(1, "a@example.com", "Alice 2nd", ""); err == nil {
		t.Error("expected invalid name rejection")
	}
	if len(repo.recipients) != 0 {
		t.Errorf("rejected writes reached the store: %d rows", len(repo.recipients))
	}
}

func TestRecipientOwnerScoping(t *testing.T) {
	repo := NewMockRecipientRepo()
	svc := &service.RecipientService{RecipientRepo: repo}

	created, err := svc.Create(1, "alice@example.com", "Alice Smith", "")
	if err != nil {
		t.Fatal(err)
	}

	var notOwner *appErrors.ErrNotOwner
	if _, err := svc.Get(created.ID, 2); !errors.As(err, &notOwner) {
		t.Errorf("expected not-owner error, got %v", err)
	}
	if err := svc.Delete(created.ID, 2); !errors.As(err, &notOwner) {
		t.Errorf("expected not-owner error on delete, got %v", err)
	}
	if _, ok := repo.recipients[created.ID]; !ok {
		t.Error("non-owner delete removed the row")
	}
}
