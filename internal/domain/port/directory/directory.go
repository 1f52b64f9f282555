package directory

import "context"

// Entry distinguishes "identity unknown" (Exists=false, a data-consistency
// error) from "identity known but no push token registered" (Exists=true,
// empty Token, a normal silent skip).
type Entry struct {
	Exists bool
	Token  string
}

// Directory maps a recipient identity to its latest delivery address.
type Directory interface {
	Resolve(ctx context.Context, recipientID string) (Entry, error)
}
