package usecase

import (
	"errors"
	"fmt"
	"testing"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/stretchr/testify/require"
)

func TestAttemptInOrder(t *testing.T) {
	errRecoverable := errors.New("recoverable")
	errFatal := errors.New("fatal")
	onlyRecoverable := func(err error) bool { return errors.Is(err, errRecoverable) }

	tests := []struct {
		name      string
		results   []error
		wantName  string
		wantErr   error
		wantCalls int
		wantFails int
	}{
		{name: "first succeeds", results: []error{nil, nil}, wantName: "s0", wantCalls: 1},
		{name: "falls through", results: []error{errRecoverable, errRecoverable, nil}, wantName: "s2", wantCalls: 3, wantFails: 2},
		{name: "stops at fatal", results: []error{errRecoverable, errFatal, nil}, wantErr: errFatal, wantCalls: 2, wantFails: 2},
		{name: "all fail", results: []error{errRecoverable, errRecoverable}, wantErr: errRecoverable, wantCalls: 2, wantFails: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			strategies := make([]deliveryStrategy, 0, len(tt.results))
			for i, result := range tt.results {
				strategies = append(strategies, deliveryStrategy{
					name: fmt.Sprintf("s%d", i),
					attempt: func() error {
						calls++
						return result
					},
					recoverable: onlyRecoverable,
				})
			}
			fails := 0
			name, err := attemptInOrder(strategies, func(string, error, bool) { fails++ })

			require.Equal(t, tt.wantName, name)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.wantCalls, calls)
			require.Equal(t, tt.wantFails, fails)
		})
	}
}

func TestAttemptInOrder_Empty(t *testing.T) {
	_, err := attemptInOrder(nil, nil)
	require.Error(t, err)
}

func TestIsFormattingRejection(t *testing.T) {
	require.True(t, isFormattingRejection(errFormattingRejected))
	require.True(t, isFormattingRejection(fmt.Errorf("send: %w", errFormattingRejected)))
	require.False(t, isFormattingRejection(&api.Error{Code: 403, Message: "Forbidden: bot was blocked by the user"}))
	require.False(t, isFormattingRejection(errTransport))
	require.False(t, isFormattingRejection(nil))
}
