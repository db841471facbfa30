// internal/handler/sending_handler.go
package handler

import (
    "encoding/json"
    "net/http"
    "time"

    "github.com/mailpost/mailing-backend/internal/service"
)

// SendingHandler holds the dependencies for sending HTTP handlers,
// including the manual dispatch trigger.
type SendingHandler struct {
    Service    *service.SendingService
    Dispatcher *service.DispatchService
}

type sendingPayload struct {
    StartAt      time.Time `json:"start_at"`
    EndAt        time.Time `json:"end_at"`
    MessageID    int       `json:"message_id"`
    RecipientIDs []int     `json:"recipient_ids"`
}

func (h *SendingHandler) CreateSendingHandler(w http.ResponseWriter, r *http.Request) {
    owner, ok := ownerID(r)
    if !ok {
        http.Error(w, "missing or invalid X-User-ID header", http.StatusUnauthorized)
        return
    }

    var payload sendingPayload
    if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
        http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
        return
    }

    sending, err := h.Service.Create(owner, payload.StartAt, payload.EndAt, payload.MessageID, payload.RecipientIDs)
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusCreated, sending)
}

func (h *SendingHandler) ListSendingsHandler(w http.ResponseWriter, r *http.Request) {
    owner, ok := ownerID(r)
    if !ok {
        http.Error(w, "missing or invalid X-User-ID header", http.StatusUnauthorized)
        return
    }

    sendings, err := h.Service.List(owner, isAdmin(r))
    if err != nil {
        http.Error(w, "failed to fetch sendings: "+err.Error(), http.StatusInternalServerError)
        return
    }
    writeJSON(w, http.StatusOK, sendings)
}

func (h *SendingHandler) GetSendingHandler(w http.ResponseWriter, r *http.Request) {
    owner, ok := ownerID(r)
    if !ok {
        http.Error(w, "missing or invalid X-User-ID header", http.StatusUnauthorized)
        return
    }

    id, err := pathID(r, "id")
    if err != nil {
        http.Error(w, "invalid sending id", http.StatusBadRequest)
        return
    }

    sending, err := h.Service.Get(id, owner)
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, sending)
}

func (h *SendingHandler) UpdateSendingHandler(w http.ResponseWriter, r *http.Request) {
    owner, ok := ownerID(r)
    if !ok {
        http.Error(w, "missing or invalid X-User-ID header", http.StatusUnauthorized)
        return
    }

    id, err := pathID(r, "id")
    if err != nil {
        http.Error(w, "invalid sending id", http.StatusBadRequest)
        return
    }

    var payload sendingPayload
    if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
        http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
        return
    }

    sending, err := h.Service.Update(id, owner, payload.StartAt, payload.EndAt, payload.MessageID, payload.RecipientIDs)
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, sending)
}

func (h *SendingHandler) DeleteSendingHandler(w http.ResponseWriter, r *http.Request) {
    owner, ok := ownerID(r)
    if !ok {
        http.Error(w, "missing or invalid X-User-ID header", http.StatusUnauthorized)
        return
    }

    id, err := pathID(r, "id")
    if err != nil {
        http.Error(w, "invalid sending id", http.StatusBadRequest)
        return
    }

    if err := h.Service.Delete(id, owner); err != nil {
        writeError(w, err)
        return
    }
    w.WriteHeader(http.StatusNoContent)
}

// DispatchSendingHandler is the manual trigger: the owner dispatches one
// sending on demand and gets the invocation summary back.
func (h *SendingHandler) DispatchSendingHandler(w http.ResponseWriter, r *http.Request) {
    owner, ok := ownerID(r)
    if !ok {
        http.Error(w, "missing or invalid X-User-ID header", http.StatusUnauthorized)
        return
    }

    id, err := pathID(r, "id")
    if err != nil {
        http.Error(w, "invalid sending id", http.StatusBadRequest)
        return
    }

    result, err := h.Dispatcher.DispatchByID(id, owner)
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, result)
}

// ListAttemptsHandler returns the delivery log for one sending.
func (h *SendingHandler) ListAttemptsHandler(w http.ResponseWriter, r *http.Request) {
    owner, ok := ownerID(r)
    if !ok {
        http.Error(w, "missing or invalid X-User-ID header", http.StatusUnauthorized)
        return
    }

    id, err := pathID(r, "id")
    if err != nil {
        http.Error(w, "invalid sending id", http.StatusBadRequest)
        return
    }

    attempts, err := h.Service.Attempts(id, owner)
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, attempts)
}

// ListOwnerAttemptsHandler returns the delivery log across all of the
// owner's sendings.
func (h *SendingHandler) ListOwnerAttemptsHandler(w http.ResponseWriter, r *http.Request) {
    owner, ok := ownerID(r)
    if !ok {
        http.Error(w, "missing or invalid X-User-ID header", http.StatusUnauthorized)
        return
    }

    attempts, err := h.Service.AttemptsByOwner(owner)
    if err != nil {
        http.Error(w, "failed to fetch attempts: "+err.Error(), http.StatusInternalServerError)
        return
    }
    writeJSON(w, http.StatusOK, attempts)
}

// HomeHandler returns the dashboard counters.
func (h *SendingHandler) HomeHandler(w http.ResponseWriter, r *http.Request) {
    owner, ok := ownerID(r)
    if !ok {
        http.Error(w, "missing or invalid X-User-ID header", http.StatusUnauthorized)
        return
    }

    stats, err := h.Service.Stats(owner)
    if err != nil {
        http.Error(w, "failed to fetch stats: "+err.Error(), http.StatusInternalServerError)
        return
    }
    writeJSON(w, http.StatusOK, stats)
}
