// internal/handler/helpers.go
package handler

import (
    "encoding/json"
    "errors"
    "net/http"
    "strconv"

    "github.com/go-chi/chi/v5"

    appErrors "github.com/mailpost/mailing-backend/internal/errors"
)

// ownerID reads the authenticated user id from the X-User-ID header. The
// auth layer in front of this service is responsible for setting it.
func ownerID(r *http.Request) (int, bool) {
    id, err := strconv.Atoi(r.Header.Get("X-User-ID"))
    if err != nil || id <= 0 {
        return 0, false
    }
    return id, true
}

// isAdmin reports whether the request may use the unscoped list views.
func isAdmin(r *http.Request) bool {
    return r.Header.Get("X-User-Role") == "admin"
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(payload)
}

// writeError maps service errors onto HTTP statuses: not-found to 404,
// ownership to 403, duplicate email to 409, everything else (validation)
// to 400.
func writeError(w http.ResponseWriter, err error) {
    var (
        sendingNotFound   *appErrors.ErrSendingNotFound
        recipientNotFound *appErrors.ErrRecipientNotFound
        messageNotFound   *appErrors.ErrMessageNotFound
        notOwner          *appErrors.ErrNotOwner
        duplicateEmail    *appErrors.ErrDuplicateEmail
    )

    switch {
    case errors.As(err, &sendingNotFound),
        errors.As(err, &recipientNotFound),
        errors.As(err, &messageNotFound):
        http.Error(w, err.Error(), http.StatusNotFound)
    case errors.As(err, &notOwner):
        http.Error(w, err.Error(), http.StatusForbidden)
    case errors.As(err, &duplicateEmail):
        http.Error(w, err.Error(), http.StatusConflict)
    default:
        http.Error(w, err.Error(), http.StatusBadRequest)
    }
}

func pathID(r *http.Request, param string) (int, error) {
    return strconv.Atoi(chi.URLParam(r, param))
}
