package model

// Request is a single incoming command or text message, stripped of the
// transport types.
type Request struct {
	RequestID string
	ChatID    int64
	UserID    int64
	MessageID int
	Command   string
	// Payload is the text after the command, line breaks kept. For plain
	// text messages it is the whole text.
	Payload  string
	Args     []string
	Language string
}

func (r Request) Target() Target {
	return Target{ChatID: r.ChatID}
}

// Target identifies where a response is delivered.
type Target struct {
	ChatID int64
}
