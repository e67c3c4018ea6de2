package mailer

// Mailer sends a transactional email and returns a provider message id
// when one is available. Implementations must be safe for concurrent
// use; send failures are the caller's to log, never to propagate into
// the booking flow.
type Mailer interface {
	Send(toEmail, toName, subject, text, html string) (string, error)
}
