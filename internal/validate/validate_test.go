package validate_test

import (
	"strings"
	"testing"
	"time"

	"github.com/mailpost/mailing-backend/internal/model"
	"github.com/mailpost/mailing-backend/internal/validate"
)

func TestRecipientEmail(t *testing.T) {
	cases := []struct {
		email string
		ok    bool
	}{
		{"alice@example.com", true},
		{"alice.smith+tag@mail.example.org", true},
		{"not-an-email", false},
		{"", false},
		{"@example.com", false},
	}

	for _, c := range cases {
		err := validate.Recipient(&model.Recipient{Email: c.email, FullName: "Alice Smith"})
		if c.ok && err != nil {
			t.Errorf("email %q: unexpected error %v", c.email, err)
		}
		if !c.ok && err == nil {
			t.Errorf("email %q: expected rejection", c.email)
		}
	}
}

func TestRecipientFullName(t *testing.T) {
	cases := []struct {
		name string
		ok   bool
	}{
		{"Alice Smith", true},
		{"Иванов Иван Иванович", true}, // any letters, not just ASCII
		{"  Alice Smith  ", true},      // trimmed before checking
		{"Alice2", false},
		{"Alice_Smith", false},
		{"   ", false},
		{"", false},
	}

	for _, c := range cases {
		err := validate.Recipient(&model.Recipient{Email: "a@example.com", FullName: c.name})
		if c.ok && err != nil {
			t.Errorf("name %q: unexpected error %v", c.name, err)
		}
		if !c.ok && err == nil {
			t.Errorf("name %q: expected rejection", c.name)
		}
	}
}

func TestCensoredWordsAreCaseInsensitive(t *testing.T) {
	err := validate.Message(&model.Message{Title: "Great offer", Body: "Visit our CaSiNo tonight"})
	if err == nil {
		t.Fatal("expected rejection for a deny-listed word")
	}
	// The error names the offending word.
	if !strings.Contains(err.Error(), `"casino"`) {
		t.Errorf("error does not name the word: %v", err)
	}
}

func TestCensoredWordsInRecipientComment(t *testing.T) {
	err := validate.Recipient(&model.Recipient{
		Email:    "a@example.com",
		FullName: "Alice Smith",
		Comment:  "met at the Crypto conference",
	})
	if err == nil {
		t.Fatal("expected rejection for a deny-listed word in the comment")
	}
}

func TestMessageWithCleanTextPasses(t *testing.T) {
	err := validate.Message(&model.Message{Title: "October news", Body: "Plain friendly update."})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSendingWindow(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name       string
		start, end time.Time
		ok         bool
	}{
		{"normal window", now.Add(time.Hour), now.Add(2 * time.Hour), true},
		{"end before start", now.Add(2 * time.Hour), now.Add(time.Hour), false},
		{"end equals start", now.Add(time.Hour), now.Add(time.Hour), false},
		{"start in the past", now.Add(-10 * time.Minute), now.Add(time.Hour), false},
		{"longer than a year", now.Add(time.Hour), now.Add(time.Hour + 366*24*time.Hour), false},
		{"exactly a year", now.Add(time.Hour), now.Add(time.Hour + 365*24*time.Hour), true},
	}

	for _, c := range cases {
		err := validate.SendingWindow(c.start, c.end, now)
		if c.ok && err != nil {
			t.Errorf("%s: unexpected error %v", c.name, err)
		}
		if !c.ok && err == nil {
			t.Errorf("%s: expected rejection", c.name)
		}
	}
}
