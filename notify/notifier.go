// Package notify delivers account emails (verification codes, password
// reset codes). Delivery is best-effort from the flows' point of view: a
// failed send is logged, it never rolls back the account mutation.
package notify

import "context"

// Message is a plain email payload
type Message struct {
	To      string
	Subject string
	Body    string
}

// Notifier is the external notification capability injected into the
// account flows.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
