// internal/service/recipient_service.go
package service

import (
    appErrors "github.com/mailpost/mailing-backend/internal/errors"
    "github.com/mailpost/mailing-backend/internal/model"
    "github.com/mailpost/mailing-backend/internal/repository"
    "github.com/mailpost/mailing-backend/internal/validate"
)

type RecipientService struct {
    RecipientRepo repository.RecipientRepositoryInterface
}

func (s *RecipientService) Create(ownerID int, email, fullName, comment string) (*model.Recipient, error) {
    recipient := &model.Recipient{
        Email:    email,
        FullName: fullName,
        Comment:  comment,
        OwnerID:  ownerID,
    }
    if err := validate.Recipient(recipient); err != nil {
        return nil, err
    }
    if err := s.RecipientRepo.Create(recipient); err != nil {
        return nil, err
    }
    return recipient, nil
}

func (s *RecipientService) Get(id, ownerID int) (*model.Recipient, error) {
    recipient, err := s.RecipientRepo.GetByID(id)
    if err != nil {
        return nil, err
    }
    if recipient.OwnerID != ownerID {
        return nil, appErrors.NewNotOwner(ownerID)
    }
    return recipient, nil
}

func (s *RecipientService) List(ownerID int, admin bool) ([]*model.Recipient, error) {
    if admin {
        return s.RecipientRepo.ListAll()
    }
    return s.RecipientRepo.ListByOwner(ownerID)
}

func (s *RecipientService) Update(id, ownerID int, email, fullName, comment string) (*model.Recipient, error) {
    recipient, err := s.Get(id, ownerID)
    if err != nil {
        return nil, err
    }

    recipient.Email = email
    recipient.FullName = fullName
    recipient.Comment = comment

    if err := validate.Recipient(recipient); err != nil {
        return nil, err
    }
    if err := s.RecipientRepo.Update(recipient); err != nil {
        return nil, err
    }
    return recipient, nil
}

func (s *RecipientService) Delete(id, ownerID int) error {
    if _, err := s.Get(id, ownerID); err != nil {
        return err
    }
    return s.RecipientRepo.Delete(id)
}
