// internal/validate/validate.go
package validate

import (
    "fmt"
    "strings"
    "time"
    "unicode"

    "github.com/go-playground/validator/v10"

    "github.com/mailpost/mailing-backend/internal/model"
)

// CensoredWords is the deny-list checked case-insensitively against
// free-text fields. Any hit rejects the write.
var CensoredWords = []string{
    "casino",
    "cryptocurrency",
    "crypto",
    "exchange",
    "cheap",
    "free",
    "scam",
    "police",
    "radar",
}

// MaxSendingWindow caps how long a sending may run.
const MaxSendingWindow = 365 * 24 * time.Hour

var v = newValidator()

func newValidator() *validator.Validate {
    val := validator.New()
    // full name: letters and spaces only, non-empty after trimming
    _ = val.RegisterValidation("fullname", func(fl validator.FieldLevel) bool {
        name := strings.TrimSpace(fl.Field().String())
        if name == "" {
            return false
        }
        for _, r := range name {
            if !unicode.IsLetter(r) && r != ' ' {
                return false
            }
        }
        return true
    })
    return val
}

// CheckCensored scans text for deny-listed words, case-insensitively.
// The returned error names the offending word.
func CheckCensored(text string) error {
    lower := strings.ToLower(text)
    for _, word := range CensoredWords {
        if strings.Contains(lower, word) {
            return fmt.Errorf("forbidden word used: %q", word)
        }
    }
    return nil
}

// Recipient validates a recipient at the write boundary.
func Recipient(r *model.Recipient) error {
    if err := v.Struct(r); err != nil {
        for _, fe := range err.(validator.ValidationErrors) {
            switch fe.Field() {
            case "Email":
                return fmt.Errorf("enter a valid email address")
            case "FullName":
                return fmt.Errorf("full name must consist of letters and spaces only and must not be empty")
            }
        }
        return err
    }
    return CheckCensored(r.Comment)
}

// Message validates a message at the write boundary.
func Message(m *model.Message) error {
    if err := v.Struct(m); err != nil {
        return fmt.Errorf("title and body are required")
    }
    if err := CheckCensored(m.Title); err != nil {
        return err
    }
    return CheckCensored(m.Body)
}

// SendingWindow validates a sending's schedule at creation time.
func SendingWindow(start, end, now time.Time) error {
    if !start.Before(end) {
        return fmt.Errorf("end date must be after the start date")
    }
    if start.Before(now) {
        return fmt.Errorf("start date must not be in the past")
    }
    if end.Sub(start) > MaxSendingWindow {
        return fmt.Errorf("a sending cannot run for more than a year")
    }
    return nil
}
