package refresh_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/otpauth"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/refresh"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTicker_Run(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	fixed := time.Unix(1_700_000_000, 0)
	tk := refresh.New(
		refresh.WithInterval(5*time.Millisecond),
		refresh.WithClock(func() time.Time { return fixed }),
	)

	done := make(chan error, 1)
	go func() {
		done <- tk.Run(ctx, func(_ context.Context, now time.Time) {
			assert.Equal(t, fixed, now)
			if calls.Add(1) == 3 {
				cancel()
			}
		})
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("refresh loop did not stop")
	}
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestTicker_RunCallsImmediately(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := refresh.New(refresh.WithInterval(time.Hour)).Run(ctx, func(context.Context, time.Time) {
		calls++
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestTicker_RunNilCallback(t *testing.T) {
	t.Parallel()

	err := refresh.New().Run(context.Background(), nil)
	assert.ErrorIs(t, err, refresh.ErrNoCallback)
}

func TestBoard_Update(t *testing.T) {
	t.Parallel()

	creds := []otpauth.Credential{
		{Kind: otpauth.KindTOTP, Secret: "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ", Algorithm: otpauth.SHA1, Digits: 6, Period: 30},
		{Kind: otpauth.KindHOTP, Secret: "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ", Algorithm: otpauth.SHA1, Digits: 6, Counter: 0},
		{Kind: otpauth.KindTOTP, Secret: "!!", Algorithm: otpauth.SHA1, Digits: 6, Period: 30},
	}
	b := refresh.NewBoard(creds)

	assert.True(t, b.Update(time.Unix(59, 0)))
	entries := b.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "287082", entries[0].Code.Value)
	assert.Equal(t, 1, entries[0].Code.Remaining)
	assert.Equal(t, "755224", entries[1].Code.Value)
	assert.Error(t, entries[2].Err)

	assert.False(t, b.Update(time.Unix(59, 0)), "same window, nothing changes")

	assert.True(t, b.Update(time.Unix(60, 0)), "window rolled over")
	entries = b.Entries()
	assert.Equal(t, 30, entries[0].Code.Remaining)
	assert.NotEqual(t, "287082", entries[0].Code.Value)
	assert.Equal(t, "755224", entries[1].Code.Value)
}
