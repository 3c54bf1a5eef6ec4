package usecase

import (
	"errors"
	"net/http"
)

var errNoStrategies = errors.New("no delivery strategies")

// deliveryStrategy is one way of getting a response to the user. When
// attempt fails, recoverable decides whether the next strategy gets a turn.
type deliveryStrategy struct {
	name        string
	attempt     func() error
	recoverable func(err error) bool
}

// attemptInOrder runs strategies one after another and stops at the first
// success or at the first failure its strategy cannot recover from. Each
// strategy runs at most once. onFailure is called for every failed attempt.
// It returns the name of the strategy that delivered.
func attemptInOrder(
	strategies []deliveryStrategy,
	onFailure func(name string, err error, recovered bool),
) (string, error) {
	if len(strategies) == 0 {
		return "", errNoStrategies
	}
	var lastErr error
	for i, s := range strategies {
		err := s.attempt()
		if err == nil {
			return s.name, nil
		}
		lastErr = err
		recovered := i < len(strategies)-1 && s.recoverable != nil && s.recoverable(err)
		if onFailure != nil {
			onFailure(s.name, err, recovered)
		}
		if !recovered {
			return "", err
		}
	}
	return "", lastErr
}

func anyFailure(error) bool {
	return true
}

// isFormattingRejection reports whether Telegram refused the message
// because of its markup.
func isFormattingRejection(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.Code == http.StatusBadRequest
}
