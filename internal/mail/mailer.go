package mail

import "context"

// Mailer delivers the two notifications the vault sends: MFA one-time
// codes and share-link notices. Implementations must treat delivery as
// best-effort side channels; callers decide what a failure means for the
// surrounding flow.
type Mailer interface {
	// SendVerificationCode delivers a numeric one-time login code.
	SendVerificationCode(ctx context.Context, to, code string) error

	// SendShareNotice tells the grantee that sharedBy shared fileName with
	// them, including the access link.
	SendShareNotice(ctx context.Context, to, fileName, sharedBy, link string) error
}
