package model

import "fmt"

const systemErrorFormat = "⚡ *System Error:* Connection interrupted.\nError: %v"

// Completion is the outcome of a single prompt round trip. Exactly one of
// Text and Err is meaningful.
type Completion struct {
	Text string
	Err  error
}

func CompletionText(text string) Completion {
	return Completion{Text: text}
}

func CompletionFailure(err error) Completion {
	return Completion{Err: err}
}

func (c Completion) Failed() bool {
	return c.Err != nil
}

// DisplayText returns the text to show the user, turning a failure into the
// system error notice.
func (c Completion) DisplayText() string {
	if c.Err != nil {
		return fmt.Sprintf(systemErrorFormat, c.Err)
	}
	return c.Text
}
