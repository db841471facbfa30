// internal/service/message_service.go
package service

import (
    appErrors "github.com/mailpost/mailing-backend/internal/errors"
    "github.com/mailpost/mailing-backend/internal/model"
    "github.com/mailpost/mailing-backend/internal/repository"
    "github.com/mailpost/mailing-backend/internal/validate"
)

type MessageService struct {
    MessageRepo repository.MessageRepositoryInterface
}

func (s *MessageService) Create(ownerID int, title, body string) (*model.Message, error) {
    message := &model.Message{
        Title:   title,
        Body:    body,
        OwnerID: ownerID,
    }
    if err := validate.Message(message); err != nil {
        return nil, err
    }
    if err := s.MessageRepo.Create(message); err != nil {
        return nil, err
    }
    return message, nil
}

func (s *MessageService) Get(id, ownerID int) (*model.Message, error) {
    message, err := s.MessageRepo.GetByID(id)
    if err != nil {
        return nil, err
    }
    if message.OwnerID != ownerID {
        return nil, appErrors.NewNotOwner(ownerID)
    }
    return message, nil
}

func (s *MessageService) List(ownerID int, admin bool) ([]*model.Message, error) {
    if admin {
        return s.MessageRepo.ListAll()
    }
    return s.MessageRepo.ListByOwner(ownerID)
}

func (s *MessageService) Update(id, ownerID int, title, body string) (*model.Message, error) {
    message, err := s.Get(id, ownerID)
    if err != nil {
        return nil, err
    }

    message.Title = title
    message.Body = body

    if err := validate.Message(message); err != nil {
        return nil, err
    }
    if err := s.MessageRepo.Update(message); err != nil {
        return nil, err
    }
    return message, nil
}

func (s *MessageService) Delete(id, ownerID int) error {
    if _, err := s.Get(id, ownerID); err != nil {
        return err
    }
    return s.MessageRepo.Delete(id)
}
