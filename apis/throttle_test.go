package apis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThrottleSpacesFromRelease(t *testing.T) {
	const interval = 50 * time.Millisecond

	th := newThrottle(interval)

	release, err := th.acquire(context.Background())
	require.NoError(t, err)

	// a slow request pushes the next slot out from its release, not its start
	time.Sleep(30 * time.Millisecond)
	released := time.Now()
	release()

	release, err = th.acquire(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(released), interval)
	release()
}

func TestThrottleCancelledWaitFreesSlot(t *testing.T) {
	th := newThrottle(time.Hour)

	release, err := th.acquire(context.Background())
	require.NoError(t, err)
	release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = th.acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// the slot is free again, only the interval blocks
	assert.Len(t, th.slot, 0)
}

func TestThrottleDisabled(t *testing.T) {
	th := newThrottle(0)

	for i := 0; i < 3; i++ {
		release, err := th.acquire(context.Background())
		require.NoError(t, err)
		release()
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := th.acquire(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
