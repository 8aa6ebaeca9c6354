package mail

import "context"

// NopMailer discards every message. Used in tests and in deployments that
// run without an SMTP relay.
type NopMailer struct{}

// NewNopMailer returns a [Mailer] that silently accepts everything.
func NewNopMailer() Mailer {
	return NopMailer{}
}

// SendVerificationCode implements [Mailer].
func (NopMailer) SendVerificationCode(context.Context, string, string) error { return nil }

// SendShareNotice implements [Mailer].
func (NopMailer) SendShareNotice(context.Context, string, string, string, string) error {
	return nil
}
