package service_test

import (
	"fmt"
	"sync"
	"time"

	appErrors "github.com/mailpost/mailing-backend/internal/errors"
	"github.com/mailpost/mailing-backend/internal/model"
)

// In-memory mock repositories shared by the service tests.

type MockSendingRepo struct {
	mu         sync.Mutex
	sendings   map[int]*model.Sending
	recipients map[int][]*model.Recipient // sendingID -> recipient set
	nextID     int

	failStatusUpdate bool // make UpdateStatus fail
	skipBulkComplete bool // simulate the sweep snapshot race
}

func NewMockSendingRepo() *MockSendingRepo {
	return &MockSendingRepo{
		sendings:   map[int]*model.Sending{},
		recipients: map[int][]*model.Recipient{},
		nextID:     1,
	}
}

func (m *MockSendingRepo) Add(s *model.Sending, recipients []*model.Recipient) *model.Sending {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.nextID
	m.nextID++
	if s.Status == "" {
		s.Status = model.StatusCreated
	}
	m.sendings[s.ID] = s
	m.recipients[s.ID] = recipients
	return s
}

func (m *MockSendingRepo) Create(s *model.Sending) error {
	m.Add(s, nil)
	return nil
}

func (m *MockSendingRepo) GetByID(id int) (*model.Sending, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sendings[id]
	if !ok {
		return nil, appErrors.NewSendingNotFound(id)
	}
	copy := *s
	return &copy, nil
}

func (m *MockSendingRepo) ListByOwner(ownerID int) ([]*model.Sending, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.Sending{}
	for _, s := range m.sendings {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MockSendingRepo) ListAll() ([]*model.Sending, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.Sending{}
	for _, s := range m.sendings {
		out = append(out, s)
	}
	return out, nil
}

func (m *MockSendingRepo) Update(s *model.Sending) error { return nil }

func (m *MockSendingRepo) UpdateStatus(sendingID int, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failStatusUpdate {
		return fmt.Errorf("simulated status persistence failure")
	}
	s, ok := m.sendings[sendingID]
	if !ok {
		return appErrors.NewSendingNotFound(sendingID)
	}
	s.Status = status
	return nil
}

func (m *MockSendingRepo) Delete(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sendings, id)
	delete(m.recipients, id)
	return nil
}

func (m *MockSendingRepo) ListRecipients(sendingID int) ([]*model.Recipient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recipients[sendingID], nil
}

func (m *MockSendingRepo) CompleteExpired(now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.skipBulkComplete {
		return 0, nil
	}
	var n int64
	for _, s := range m.sendings {
		if s.Status == model.StatusStarted && s.EndAt.Before(now) {
			s.Status = model.StatusCompleted
			n++
		}
	}
	return n, nil
}

func (m *MockSendingRepo) ListDue(now time.Time) ([]*model.Sending, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.Sending{}
	for _, s := range m.sendings {
		if s.Status == model.StatusCreated && !s.StartAt.After(now) && s.EndAt.After(now) {
			copy := *s
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (m *MockSendingRepo) ListExpiredStarted(now time.Time) ([]*model.Sending, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.Sending{}
	for _, s := range m.sendings {
		if s.Status == model.StatusStarted && s.EndAt.Before(now) {
			copy := *s
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (m *MockSendingRepo) CountByOwner(ownerID int) (int, error) {
	list, _ := m.ListByOwner(ownerID)
	return len(list), nil
}

func (m *MockSendingRepo) CountActiveByOwner(ownerID int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, s := range m.sendings {
		if s.OwnerID == ownerID && s.Status == model.StatusStarted {
			count++
		}
	}
	return count, nil
}

func (m *MockSendingRepo) Status(id int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sendings[id].Status
}

type MockMessageRepo struct {
	messages map[int]*model.Message
}

func NewMockMessageRepo(messages ...*model.Message) *MockMessageRepo {
	m := &MockMessageRepo{messages: map[int]*model.Message{}}
	for _, msg := range messages {
		m.messages[msg.ID] = msg
	}
	return m
}

func (m *MockMessageRepo) Create(msg *model.Message) error {
	msg.ID = len(m.messages) + 1
	m.messages[msg.ID] = msg
	return nil
}

func (m *MockMessageRepo) GetByID(id int) (*model.Message, error) {
	msg, ok := m.messages[id]
	if !ok {
		return nil, appErrors.NewMessageNotFound(id)
	}
	return msg, nil
}

func (m *MockMessageRepo) ListByOwner(ownerID int) ([]*model.Message, error) { return nil, nil }
func (m *MockMessageRepo) ListAll() ([]*model.Message, error)               { return nil, nil }
func (m *MockMessageRepo) Update(msg *model.Message) error                  { return nil }
func (m *MockMessageRepo) Delete(id int) error                              { return nil }

type MockAttemptRepo struct {
	mu       sync.Mutex
	attempts []*model.MailAttempt
}

func (m *MockAttemptRepo) Create(a *model.MailAttempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = len(m.attempts) + 1
	m.attempts = append(m.attempts, a)
	return nil
}

func (m *MockAttemptRepo) ListBySending(sendingID int) ([]*model.MailAttempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.MailAttempt{}
	for _, a := range m.attempts {
		if a.SendingID == sendingID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockAttemptRepo) ListByOwner(ownerID int) ([]*model.MailAttempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts, nil
}

func (m *MockAttemptRepo) Count(sendingID int) int {
	list, _ := m.ListBySending(sendingID)
	return len(list)
}

// MockSender records sends and fails for configured addresses.
type MockSender struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]error
}

func (m *MockSender) Send(subject, body, from, to string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failFor[to]; ok {
		return err
	}
	m.sent = append(m.sent, to)
	return nil
}
