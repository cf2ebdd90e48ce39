package client

import (
	"context"
	"time"
)

// pollSlice bounds how long a single Get iteration's Run call may block
// before Get rechecks ctx for cancellation.
const pollSlice = 200 * time.Millisecond

// ContentResult is the ContentObject bytes returned by a successful Get.
type ContentResult struct {
	Msg []byte
}

// Get is a synchronous convenience built entirely out of ExpressInterest
// plus the normal dispatch contract: it has no access to any Handle
// state ExpressInterest doesn't, and cannot violate the async core's
// invariants. It expresses an interest in nameComponents, blocks the
// caller's own event loop (via Run) until a ContentObject arrives or
// ctx is done, and returns the first matching ContentObject's bytes.
//
// UpcallInterestTimedOut is not treated as failure here: agingScan fires
// it on every (re)send, including the very first one a freshly expressed
// interest triggers, and unconditionally reissues afterward regardless
// of what the closure returns. A caller that wants a bounded wait
// supplies a ctx with a deadline; Get has no opinion of its own about
// how many retries are "enough".
func (h *Handle) Get(ctx context.Context, nameComponents [][]byte, template []byte) (*ContentResult, error) {
	resultCh := make(chan *ContentResult, 1)

	action := NewClosure(func(info *UpcallInfo) UpcallResult {
		if info.Kind == UpcallContent {
			select {
			case resultCh <- &ContentResult{Msg: append([]byte(nil), info.Msg...)}:
			default:
			}
		}
		return ResultOK
	})

	if err := h.ExpressInterest(nameComponents, action, template); err != nil {
		return nil, err
	}

	for {
		select {
		case res := <-resultCh:
			return res, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := h.Run(pollSlice); err != nil {
			return nil, err
		}
		select {
		case res := <-resultCh:
			return res, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
	}
}
