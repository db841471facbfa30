// internal/handler/recipient_handler.go
package handler

import (
    "encoding/json"
    "net/http"

    "github.com/mailpost/mailing-backend/internal/service"
)

// RecipientHandler holds the dependencies for recipient HTTP handlers
type RecipientHandler struct {
    Service *service.RecipientService
}

type recipientPayload struct {
    Email    string `json:"email"`
    FullName string `json:"full_name"`
    Comment  string `json:"comment"`
}

func (h *RecipientHandler) CreateRecipientHandler(w http.ResponseWriter, r *http.Request) {
    owner, ok := ownerID(r)
    if !ok {
        http.Error(w, "missing or invalid X-User-ID header", http.StatusUnauthorized)
        return
    }

    var payload recipientPayload
    if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
        http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
        return
    }

    recipient, err := h.Service.Create(owner, payload.Email, payload.FullName, payload.Comment)
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusCreated, recipient)
}

func (h *RecipientHandler) ListRecipientsHandler(w http.ResponseWriter, r *http.Request) {
    owner, ok := ownerID(r)
    if !ok {
        http.Error(w, "missing or invalid X-User-ID header", http.StatusUnauthorized)
        return
    }

    recipients, err := h.Service.List(owner, isAdmin(r))
    if err != nil {
        http.Error(w, "failed to fetch recipients: "+err.Error(), http.StatusInternalServerError)
        return
    }
    writeJSON(w, http.StatusOK, recipients)
}

func (h *RecipientHandler) GetRecipientHandler(w http.ResponseWriter, r *http.Request) {
    owner, ok := ownerID(r)
    if !ok {
        http.Error(w, "missing or invalid X-User-ID header", http.StatusUnauthorized)
        return
    }

    id, err := pathID(r, "id")
    if err != nil {
        http.Error(w, "invalid recipient id", http.StatusBadRequest)
        return
    }

    recipient, err := h.Service.Get(id, owner)
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, recipient)
}

func (h *RecipientHandler) UpdateRecipientHandler(w http.ResponseWriter, r *http.Request) {
    owner, ok := ownerID(r)
    if !ok {
        http.Error(w, "missing or invalid X-User-ID header", http.StatusUnauthorized)
        return
    }

    id, err := pathID(r, "id")
    if err != nil {
        http.Error(w, "invalid recipient id", http.StatusBadRequest)
        return
    }

    var payload recipientPayload
    if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
        http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
        return
    }

    recipient, err := h.Service.Update(id, owner, payload.Email, payload.FullName, payload.Comment)
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, recipient)
}

func (h *RecipientHandler) DeleteRecipientHandler(w http.ResponseWriter, r *http.Request) {
    owner, ok := ownerID(r)
    if !ok {
        http.Error(w, "missing or invalid X-User-ID header", http.StatusUnauthorized)
        return
    }

    id, err := pathID(r, "id")
    if err != nil {
        http.Error(w, "invalid recipient id", http.StatusBadRequest)
        return
    }

    if err := h.Service.Delete(id, owner); err != nil {
        writeError(w, err)
        return
    }
    w.WriteHeader(http.StatusNoContent)
}
