// internal/service/sending_service.go
package service

import (
    "fmt"
    "time"

    appErrors "github.com/mailpost/mailing-backend/internal/errors"
    "github.com/mailpost/mailing-backend/internal/model"
    "github.com/mailpost/mailing-backend/internal/repository"
    "github.com/mailpost/mailing-backend/internal/validate"
)

type SendingService struct {
    SendingRepo   repository.SendingRepositoryInterface
    MessageRepo   repository.MessageRepositoryInterface
    RecipientRepo repository.RecipientRepositoryInterface
    AttemptRepo   repository.AttemptRepositoryInterface
    Now           func() time.Time
}

func NewSendingService(
    sendings repository.SendingRepositoryInterface,
    messages repository.MessageRepositoryInterface,
    recipients repository.RecipientRepositoryInterface,
    attempts repository.AttemptRepositoryInterface,
) *SendingService {
    return &SendingService{
        SendingRepo:   sendings,
        MessageRepo:   messages,
        RecipientRepo: recipients,
        AttemptRepo:   attempts,
        Now:           time.Now,
    }
}

// HomeStats backs the dashboard screen.
type HomeStats struct {
    TotalSendings   int `json:"total_sendings"`
    ActiveSendings  int `json:"active_sendings"`
    UniqueRecipients int `json:"unique_recipients"`
}

func (s *SendingService) Create(ownerID int, startAt, endAt time.Time, messageID int, recipientIDs []int) (*model.Sending, error) {
    if err := validate.SendingWindow(startAt, endAt, s.Now()); err != nil {
        return nil, err
    }
    if err := s.checkReferences(ownerID, messageID, recipientIDs); err != nil {
        return nil, err
    }

    sending := &model.Sending{
        StartAt:      startAt,
        EndAt:        endAt,
        Status:       model.StatusCreated,
        MessageID:    messageID,
        RecipientIDs: recipientIDs,
        OwnerID:      ownerID,
    }
    if err := s.SendingRepo.Create(sending); err != nil {
        return nil, err
    }
    return sending, nil
}

// checkReferences verifies the message and every recipient belong to the
// owner before linking them into a sending.
func (s *SendingService) checkReferences(ownerID, messageID int, recipientIDs []int) error {
    message, err := s.MessageRepo.GetByID(messageID)
    if err != nil {
        return err
    }
    if message.OwnerID != ownerID {
        return appErrors.NewNotOwner(ownerID)
    }
    for _, id := range recipientIDs {
        recipient, err := s.RecipientRepo.GetByID(id)
        if err != nil {
            return err
        }
        if recipient.OwnerID != ownerID {
            return appErrors.NewNotOwner(ownerID)
        }
    }
    return nil
}

func (s *SendingService) Get(id, ownerID int) (*model.Sending, error) {
    sending, err := s.SendingRepo.GetByID(id)
    if err != nil {
        return nil, err
    }
    if sending.OwnerID != ownerID {
        return nil, appErrors.NewNotOwner(ownerID)
    }
    return sending, nil
}

func (s *SendingService) List(ownerID int, admin bool) ([]*model.Sending, error) {
    if admin {
        return s.SendingRepo.ListAll()
    }
    return s.SendingRepo.ListByOwner(ownerID)
}

// Update edits the schedulable fields of a sending. The status field is
// owned by the dispatcher and is not editable here. Window validation is
// not re-applied against the past on edit so that an owner can stretch the
// end time of a running sending.
func (s *SendingService) Update(id, ownerID int, startAt, endAt time.Time, messageID int, recipientIDs []int) (*model.Sending, error) {
    sending, err := s.Get(id, ownerID)
    if err != nil {
        return nil, err
    }
    if !startAt.Before(endAt) {
        return nil, fmt.Errorf("end date must be after the start date")
    }
    if endAt.Sub(startAt) > validate.MaxSendingWindow {
        return nil, fmt.Errorf("a sending cannot run for more than a year")
    }
    if err := s.checkReferences(ownerID, messageID, recipientIDs); err != nil {
        return nil, err
    }

    sending.StartAt = startAt
    sending.EndAt = endAt
    sending.MessageID = messageID
    sending.RecipientIDs = recipientIDs

    if err := s.SendingRepo.Update(sending); err != nil {
        return nil, err
    }
    return sending, nil
}

func (s *SendingService) Delete(id, ownerID int) error {
    if _, err := s.Get(id, ownerID); err != nil {
        return err
    }
    // Cascades to attempt rows and recipient links.
    return s.SendingRepo.Delete(id)
}

// Attempts returns the delivery log for one sending, newest first.
func (s *SendingService) Attempts(sendingID, ownerID int) ([]*model.MailAttempt, error) {
    if _, err := s.Get(sendingID, ownerID); err != nil {
        return nil, err
    }
    return s.AttemptRepo.ListBySending(sendingID)
}

// AttemptsByOwner returns the delivery log across all of the owner's sendings.
func (s *SendingService) AttemptsByOwner(ownerID int) ([]*model.MailAttempt, error) {
    return s.AttemptRepo.ListByOwner(ownerID)
}

func (s *SendingService) Stats(ownerID int) (*HomeStats, error) {
    total, err := s.SendingRepo.CountByOwner(ownerID)
    if err != nil {
        return nil, err
    }
    active, err := s.SendingRepo.CountActiveByOwner(ownerID)
    if err != nil {
        return nil, err
    }
    unique, err := s.RecipientRepo.CountDistinctEmails(ownerID)
    if err != nil {
        return nil, err
    }
    return &HomeStats{
        TotalSendings:    total,
        ActiveSendings:   active,
        UniqueRecipients: unique,
    }, nil
}
