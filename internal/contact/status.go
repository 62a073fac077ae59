package contact

// Status tracks where the latest submission attempt stands.
type Status int

const (
	StatusIdle Status = iota
	StatusSending
	StatusSent
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSending:
		return "sending"
	case StatusSent:
		return "sent"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Message is the text shown to the visitor for s. Idle shows nothing.
func (s Status) Message() string {
	switch s {
	case StatusSending:
		return "Sending..."
	case StatusSent:
		return "Message sent successfully!"
	case StatusFailed:
		return "Failed to send message. Please try again."
	default:
		return ""
	}
}

// Terminal reports whether s ends a submission attempt.
func (s Status) Terminal() bool {
	return s == StatusSent || s == StatusFailed
}
