package push

import "context"

// Message is the channel-ready alert produced by the payload builder: a
// human-visible part the platform can render on its own when the receiving
// app is terminated, plus a structured part a foreground app navigates by.
type Message struct {
	Title string
	Body  string
	Data  map[string]string
}

// Sender delivers one message to one device token and returns the
// provider-assigned message id.
type Sender interface {
	Send(ctx context.Context, msg Message, token string) (string, error)
}
