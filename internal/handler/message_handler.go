// internal/handler/message_handler.go
package handler

import (
    "encoding/json"
    "net/http"

    "github.com/mailpost/mailing-backend/internal/service"
)

// MessageHandler holds the dependencies for message HTTP handlers
type MessageHandler struct {
    Service *service.MessageService
}

type messagePayload struct {
    Title string `json:"title"`
    Body  string `json:"body"`
}

func (h *MessageHandler) CreateMessageHandler(w http.ResponseWriter, r *http.Request) {
    owner, ok := ownerID(r)
    if !ok {
        http.Error(w, "missing or invalid X-User-ID header", http.StatusUnauthorized)
        return
    }

    var payload messagePayload
    if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
        http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
        return
    }

    message, err := h.Service.Create(owner, payload.Title, payload.Body)
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusCreated, message)
}

func (h *MessageHandler) ListMessagesHandler(w http.ResponseWriter, r *http.Request) {
    owner, ok := ownerID(r)
    if !ok {
        http.Error(w, "missing or invalid X-User-ID header", http.StatusUnauthorized)
        return
    }

    messages, err := h.Service.List(owner, isAdmin(r))
    if err != nil {
        http.Error(w, "failed to fetch messages: "+err.Error(), http.StatusInternalServerError)
        return
    }
    writeJSON(w, http.StatusOK, messages)
}

func (h *MessageHandler) GetMessageHandler(w http.ResponseWriter, r *http.Request) {
    owner, ok := ownerID(r)
    if !ok {
        http.Error(w, "missing or invalid X-User-ID header", http.StatusUnauthorized)
        return
    }

    id, err := pathID(r, "id")
    if err != nil {
        http.Error(w, "invalid message id", http.StatusBadRequest)
        return
    }

    message, err := h.Service.Get(id, owner)
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, message)
}

func (h *MessageHandler) UpdateMessageHandler(w http.ResponseWriter, r *http.Request) {
    owner, ok := ownerID(r)
    if !ok {
        http.Error(w, "missing or invalid X-User-ID header", http.StatusUnauthorized)
        return
    }

    id, err := pathID(r, "id")
    if err != nil {
        http.Error(w, "invalid message id", http.StatusBadRequest)
        return
    }

    var payload messagePayload
    if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
        http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
        return
    }

    message, err := h.Service.Update(id, owner, payload.Title, payload.Body)
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, message)
}

func (h *MessageHandler) DeleteMessageHandler(w http.ResponseWriter, r *http.Request) {
    owner, ok := ownerID(r)
    if !ok {
        http.Error(w, "missing or invalid X-User-ID header", http.StatusUnauthorized)
        return
    }

    id, err := pathID(r, "id")
    if err != nil {
        http.Error(w, "invalid message id", http.StatusBadRequest)
        return
    }

    if err := h.Service.Delete(id, owner); err != nil {
        writeError(w, err)
        return
    }
    w.WriteHeader(http.StatusNoContent)
}
