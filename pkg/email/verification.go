package email

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// VerificationTag labels verification messages in Postmark and file names.
const VerificationTag = "account-verification"

// VerificationBody renders the HTML body carrying a verification code.
func VerificationBody(username, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!doctype html><html><body>`+
			`<p>Hi `+templ.EscapeString(username)+`,</p>`+
			`<p>Use this code to verify your account:</p>`+
			`<p style="font-family:monospace;font-size:18px"><strong>`+templ.EscapeString(code)+`</strong></p>`+
			`<p>If you did not create an account you can ignore this message.</p>`+
			`</body></html>`)
		return err
	})
}

// Render renders c to a string.
func Render(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// SendVerification mails the verification code to the account address.
func SendVerification(ctx context.Context, s Sender, to, username, code string) error {
	body, err := Render(ctx, VerificationBody(username, code))
	if err != nil {
		return err
	}
	return s.Send(ctx, Message{
		To:       to,
		Subject:  "Verify your account",
		HTMLBody: body,
		Tag:      VerificationTag,
	})
}
