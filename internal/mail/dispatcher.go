package mail

import "context"

// Dispatcher sends transactional mail. Callers treat delivery as
// best-effort: a failed send is logged, never rolled back.
type Dispatcher interface {
	Send(ctx context.Context, to, subject, body string) error
}
