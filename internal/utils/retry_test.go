package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"homework-notifier/internal/logging"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	base, hook := test.NewNullLogger()
	calls := 0

	err := Retry(context.Background(), logging.Wrap(base), "init bot", 3, time.Millisecond, func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Len(t, hook.AllEntries(), 2)
}

func TestRetryGivesUp(t *testing.T) {
	base, _ := test.NewNullLogger()
	cause := errors.New("unauthorized")
	calls := 0

	err := Retry(context.Background(), logging.Wrap(base), "init bot", 2, time.Millisecond, func(context.Context) error {
		calls++
		return cause
	})

	assert.ErrorIs(t, err, cause)
	assert.ErrorContains(t, err, "init bot failed after 2 attempts")
	assert.Equal(t, 2, calls)
}

func TestRetryStopsOnCancel(t *testing.T) {
	base, _ := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	err := Retry(ctx, logging.Wrap(base), "init bot", 5, time.Hour, func(context.Context) error {
		calls++
		cancel()
		return errors.New("down")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
