// internal/mailer/mailer.go
package mailer

import (
    "fmt"
    "net/smtp"
    "os"
)

// Sender is the mail channel contract the dispatcher depends on. It either
// completes successfully or returns a descriptive error; it is expected to
// fail fast rather than hang.
type Sender interface {
    Send(subject, body, from, to string) error
}

// SMTPSender delivers over a plain SMTP relay.
type SMTPSender struct {
    Host     string
    Port     string
    Username string
    Password string
}

// NewSMTPSenderFromEnv builds a sender from SMTP_* environment variables.
func NewSMTPSenderFromEnv() *SMTPSender {
    return &SMTPSender{
        Host:     os.Getenv("SMTP_HOST"),
        Port:     os.Getenv("SMTP_PORT"),
        Username: os.Getenv("SMTP_USER"),
        Password: os.Getenv("SMTP_PASSWORD"),
    }
}

func (s *SMTPSender) Send(subject, body, from, to string) error {
    msg := []byte(fmt.Sprintf(
        "From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
        from, to, subject, body,
    ))

    addr := s.Host + ":" + s.Port
    var auth smtp.Auth
    if s.Username != "" {
        auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
    }

    if err := smtp.SendMail(addr, auth, from, []string{to}, msg); err != nil {
        return fmt.Errorf("smtp send to %s failed: %w", to, err)
    }
    return nil
}

var _ Sender = (*SMTPSender)(nil)
