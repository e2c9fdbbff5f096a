package email

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// DevSender writes each message to dir as an .html body plus a .json
// envelope, for local development.
type DevSender struct {
	dir string
	now func() time.Time
}

func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir, now: time.Now}
}

type devEnvelope struct {
	Message
	SentAt time.Time `json:"sent_at"`
}

func (d *DevSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}

	now := d.now()
	name := filepath.Join(d.dir, now.Format("20060102_150405.000000")+"_"+fileSafe(msg.Tag, msg.Subject))

	if err := os.WriteFile(name+".html", []byte(msg.HTMLBody), 0o644); err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	envelope, err := json.MarshalIndent(devEnvelope{Message: msg, SentAt: now.UTC()}, "", "  ")
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if err := os.WriteFile(name+".json", envelope, 0o644); err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	return nil
}

// fileSafe turns the tag, or the subject when there is no tag, into a
// short lower-case file name fragment.
func fileSafe(tag, subject string) string {
	s := tag
	if s == "" {
		s = subject
	}
	s = strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'):
			return unicode.ToLower(r)
		}
		return -1
	}, s)
	if len(s) > 64 {
		s = s[:64]
	}
	if s == "" {
		return "email"
	}
	return s
}
