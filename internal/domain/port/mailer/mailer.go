package mailer

import "context"

// Mailer carries verification codes to an out-of-band contact address. The
// gateway never reads mail; this is a write-only transport.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
