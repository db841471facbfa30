// internal/service/dispatch_service.go
package service

import (
    "log"
    "time"

    appErrors "github.com/mailpost/mailing-backend/internal/errors"
    "github.com/mailpost/mailing-backend/internal/mailer"
    "github.com/mailpost/mailing-backend/internal/model"
    "github.com/mailpost/mailing-backend/internal/queue"
    "github.com/mailpost/mailing-backend/internal/repository"
)

// DispatchService owns the sending lifecycle: the periodic sweep, the
// per-sending state transitions and the delivery loop.
//
// Delivery is at-least-once: nothing tracks which recipients of a started
// sending were already attempted, so dispatching a started sending again
// re-sends to every recipient and appends new attempt rows.
type DispatchService struct {
    SendingRepo repository.SendingRepositoryInterface
    MessageRepo repository.MessageRepositoryInterface
    AttemptRepo repository.AttemptRepositoryInterface
    Sender      mailer.Sender
    Events      queue.Publisher // optional, best-effort fan-out
    From        string
    Now         func() time.Time
}

func NewDispatchService(
    sendings repository.SendingRepositoryInterface,
    messages repository.MessageRepositoryInterface,
    attempts repository.AttemptRepositoryInterface,
    sender mailer.Sender,
    from string,
) *DispatchService {
    return &DispatchService{
        SendingRepo: sendings,
        MessageRepo: messages,
        AttemptRepo: attempts,
        Sender:      sender,
        From:        from,
        Now:         time.Now,
    }
}

// DispatchResult summarizes one dispatch invocation.
type DispatchResult struct {
    SendingID int    `json:"sending_id"`
    Status    string `json:"status"`
    Attempted int    `json:"attempted"`
    Succeeded int    `json:"succeeded"`
    Failed    int    `json:"failed"`
}

// Sweep advances every due sending. Invoked system-wide on a fixed cadence.
func (s *DispatchService) Sweep(now time.Time) error {
    // 1. Close started sendings whose window elapsed. No delivery loop
    // runs for these: sending happened when they were started.
    completed, err := s.SendingRepo.CompleteExpired(now)
    if err != nil {
        return err
    }
    if completed > 0 {
        log.Printf("✅ Sweep completed %d sendings past their end time", completed)
    }

    // 2. Start and deliver sendings whose window contains now.
    due, err := s.SendingRepo.ListDue(now)
    if err != nil {
        return err
    }
    for _, sending := range due {
        log.Printf("🚀 Sweep dispatching sending ID=%d", sending.ID)
        if _, err := s.Dispatch(sending); err != nil {
            log.Printf("⚠️ Failed to dispatch sending %d: %v", sending.ID, err)
        }
    }

    // 3. Catch started sendings the bulk update missed (it and the loop
    // above may observe different snapshots). Dispatch only closes these.
    stale, err := s.SendingRepo.ListExpiredStarted(now)
    if err != nil {
        return err
    }
    for _, sending := range stale {
        log.Printf("🔚 Sweep closing overdue sending ID=%d", sending.ID)
        if _, err := s.Dispatch(sending); err != nil {
            log.Printf("⚠️ Failed to close sending %d: %v", sending.ID, err)
        }
    }

    return nil
}

// DispatchByID is the manual trigger: the owner dispatches one sending on
// demand.
func (s *DispatchService) DispatchByID(sendingID, ownerID int) (*DispatchResult, error) {
    sending, err := s.SendingRepo.GetByID(sendingID)
    if err != nil {
        return nil, err
    }
    if sending.OwnerID != ownerID {
        return nil, appErrors.NewNotOwner(ownerID)
    }
    return s.Dispatch(sending)
}

// Dispatch transitions one sending and runs its delivery loop. Safe to
// invoke repeatedly: completed sendings are a no-op and elapsed windows
// are closed without sending.
//
// Individual delivery failures are captured as failed attempt rows and
// never abort the loop; only a failure persisting the sending's own status
// change propagates.
func (s *DispatchService) Dispatch(sending *model.Sending) (*DispatchResult, error) {
    result := &DispatchResult{SendingID: sending.ID, Status: sending.Status}

    if sending.Status == model.StatusCompleted {
        return result, nil
    }

    // Missed the window entirely: close without sending late.
    if s.Now().After(sending.EndAt) {
        if err := s.SendingRepo.UpdateStatus(sending.ID, model.StatusCompleted); err != nil {
            return nil, err
        }
        sending.Status = model.StatusCompleted
        result.Status = model.StatusCompleted
        return result, nil
    }

    // Commit point: durable before any send, so a crash mid-loop leaves
    // the sending started rather than created.
    if sending.Status == model.StatusCreated {
        if err := s.SendingRepo.UpdateStatus(sending.ID, model.StatusStarted); err != nil {
            return nil, err
        }
        sending.Status = model.StatusStarted
        result.Status = model.StatusStarted
    }

    message, err := s.MessageRepo.GetByID(sending.MessageID)
    if err != nil {
        return nil, err
    }

    recipients, err := s.SendingRepo.ListRecipients(sending.ID)
    if err != nil {
        return nil, err
    }

    for _, recipient := range recipients {
        attempt := &model.MailAttempt{
            AttemptedAt: s.Now(),
            SendingID:   sending.ID,
        }

        if err := s.Sender.Send(message.Title, message.Body, s.From, recipient.Email); err != nil {
            attempt.Status = model.AttemptFailed
            attempt.ServerResponse = err.Error()
            result.Failed++
        } else {
            attempt.Status = model.AttemptSuccess
            attempt.ServerResponse = "accepted for delivery"
            result.Succeeded++
        }
        result.Attempted++

        if err := s.AttemptRepo.Create(attempt); err != nil {
            log.Printf("⚠️ Failed to record attempt for sending %d, recipient %s: %v",
                sending.ID, recipient.Email, err)
            continue
        }

        if s.Events != nil {
            if err := s.Events.PublishAttempt(attempt, recipient.Email); err != nil {
                log.Printf("⚠️ Failed to publish attempt event for sending %d: %v", sending.ID, err)
            }
        }
    }

    // The window may have elapsed while the loop ran.
    if !s.Now().Before(sending.EndAt) {
        if err := s.SendingRepo.UpdateStatus(sending.ID, model.StatusCompleted); err != nil {
            return nil, err
        }
        sending.Status = model.StatusCompleted
        result.Status = model.StatusCompleted
    }

    return result, nil
}
