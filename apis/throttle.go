package apis

import (
	"context"
	"time"
)

// throttle keeps the outbound requests of one client at least interval
// apart. A caller holds the slot from before its request is sent until the
// transport returns, and the next slot opens interval after that release.
type throttle struct {
	interval time.Duration
	slot     chan struct{}
	last     time.Time // guarded by slot
}

func newThrottle(interval time.Duration) *throttle {
	return &throttle{
		interval: interval,
		slot:     make(chan struct{}, 1),
	}
}

// acquire blocks until a request may start. On success the returned release
// must be called exactly once, after the request has left the transport. A
// non-positive interval disables throttling.
func (t *throttle) acquire(ctx context.Context) (release func(), err error) {
	if t.interval <= 0 {
		return func() {}, ctx.Err()
	}

	select {
	case t.slot <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if wait := t.interval - time.Since(t.last); wait > 0 {
		timer := time.NewTimer(wait)

		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			<-t.slot

			return nil, ctx.Err()
		}
	}

	return t.release, nil
}

func (t *throttle) release() {
	t.last = time.Now()
	<-t.slot
}
