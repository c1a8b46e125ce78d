package mail

import (
	"context"
	"fmt"
	"strconv"

	gomail "github.com/wneessen/go-mail"

	"github.com/inkwell/inkwell-go/internal/model"
)

// Mailer delivers password-reset emails over SMTP.
type Mailer struct {
	client  *gomail.Client
	from    string
	baseURL string
}

// NewMailer creates a Mailer for the given SMTP endpoint. The
// connection is upgraded with STARTTLS and authenticated with the
// given credentials.
func NewMailer(host, port, user, password, from, baseURL string) (*Mailer, error) {
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP port %q: %w", port, err)
	}

	client, err := gomail.NewClient(host,
		gomail.WithPort(portNum),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(user),
		gomail.WithPassword(password),
	)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &Mailer{client: client, from: from, baseURL: baseURL}, nil
}

// SendResetEmail mails the reset link for token to the user's address.
// Delivery errors are returned to the caller; there is no retry.
func (m *Mailer) SendResetEmail(ctx context.Context, user *model.User, token string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(user.Email); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject("Password Reset Request")

	resetURL := fmt.Sprintf("%s/reset_password/%s", m.baseURL, token)
	body := fmt.Sprintf(`Hello %s,

You requested a password reset. Click the link below to reset your password:
%s

This link will expire in 1 hour.

If you didn't request this, please ignore this email.
`, user.Username, resetURL)

	msg.SetBodyString(gomail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}

	return nil
}
