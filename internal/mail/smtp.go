package mail

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	gomail "github.com/wneessen/go-mail"
)

// smtpMailer is the production [Mailer] delivering over SMTP with implicit
// TLS. One client is shared across sends; go-mail dials per delivery.
type smtpMailer struct {
	client *gomail.Client
	from   string
	logger *logger.Logger
}

// NewSMTPMailer builds a [Mailer] from the mail configuration. The
// connection is not tested here; the first send surfaces any dial problem.
func NewSMTPMailer(cfg config.Mail, log *logger.Logger) (Mailer, error) {
	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSSL(),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating smtp client: %w", err)
	}

	return &smtpMailer{
		client: client,
		from:   cfg.From,
		logger: log,
	}, nil
}

// SendVerificationCode implements [Mailer]. The code goes in the body only;
// it is never logged.
func (m *smtpMailer) SendVerificationCode(ctx context.Context, to, code string) error {
	body := fmt.Sprintf(`<html><body>
<h2>Login Verification</h2>
<p>Your verification code is:</p>
<h1 style="letter-spacing: 4px;">%s</h1>
<p>The code expires in 10 minutes. If you did not try to log in, you can ignore this message.</p>
</body></html>`, code)

	return m.send(ctx, to, "Your login verification code", body)
}

// SendShareNotice implements [Mailer].
func (m *smtpMailer) SendShareNotice(ctx context.Context, to, fileName, sharedBy, link string) error {
	body := fmt.Sprintf(`<html><body>
<h2>A file was shared with you</h2>
<p><b>%s</b> shared <b>%s</b> with you.</p>
<p><a href="%s">Open the file</a></p>
<p>The link is time-limited and stops working after it expires.</p>
</body></html>`, sharedBy, fileName, link)

	return m.send(ctx, to, fmt.Sprintf("%s shared a file with you", sharedBy), body)
}

func (m *smtpMailer) send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("error setting mail sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("error setting mail recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		m.logger.Err(err).Str("func", "*smtpMailer.send").Msg("error sending mail")
		return fmt.Errorf("error sending mail: %w", err)
	}

	return nil
}
