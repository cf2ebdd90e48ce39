package client

import (
	"errors"
	"time"

	"github.com/akaash-nigam/ccnx/face"
)

// Run drives the event loop until timeout elapses (negative means run
// forever) or a fatal transport error occurs, returning nil once
// timeout has elapsed with no error. Each iteration: age outstanding
// interests, poll the single suspension point for read/write
// readiness, pushout on writability, and processInput on readability.
//
// Mirrors ccn_run, including its documented fix: the original checks
// "(fds[0].revents | POLLOUT) != 0", which is always true for any
// nonzero revents regardless of which bit is actually set, so both
// branches fire on every wakeup. This implementation checks the poll
// result's Readable/Writable fields, which face.Face.Poll already
// derives with a bitwise AND against the watched event mask.
func (h *Handle) Run(timeout time.Duration) error {
	if h.face == nil {
		return h.noteErr(ErrNotConnected, 0)
	}
	var start time.Time
	for h.face.IsConnected() {
		now := time.Now()
		// Only age/re-express interests when nothing is queued to
		// write: scanning while output is backed up would pile more
		// re-expressions behind a stuck socket (ccn_client.c:591).
		refresh := 5 * interestHalflife
		if !h.outputIsPending() {
			refresh = h.agingScan(now)
		}

		if start.IsZero() {
			start = now
		} else if timeout >= 0 {
			if now.Sub(start) > timeout {
				return nil
			}
		}

		h.face.WantWrite(h.outputIsPending())
		timeoutMs := int(refresh / time.Millisecond)
		if timeout >= 0 {
			remaining := int((timeout - now.Sub(start)) / time.Millisecond)
			if remaining < timeoutMs {
				timeoutMs = remaining
			}
		}
		if timeoutMs < 0 {
			timeoutMs = 0
		}

		events, err := h.face.Poll(timeoutMs)
		if err != nil {
			if errors.Is(err, face.ErrClosed) {
				return nil
			}
			return h.noteErr(err, 0)
		}
		if events.Writable {
			_ = h.pushout()
		}
		if events.Readable {
			if err := h.processInput(); err != nil && errors.Is(err, face.ErrClosed) {
				return nil
			}
		}
	}
	return nil
}
