package client

import "sync/atomic"

// UpcallKind identifies why a Closure's action is being invoked.
type UpcallKind int

const (
	UpcallFinal UpcallKind = iota
	UpcallInterest
	UpcallConsumedInterest
	UpcallContent
	UpcallInterestTimedOut
)

func (k UpcallKind) String() string {
	switch k {
	case UpcallFinal:
		return "FINAL"
	case UpcallInterest:
		return "INTEREST"
	case UpcallConsumedInterest:
		return "CONSUMED_INTEREST"
	case UpcallContent:
		return "CONTENT"
	case UpcallInterestTimedOut:
		return "INTEREST_TIMED_OUT"
	default:
		return "UNKNOWN"
	}
}

// UpcallResult is returned by a Closure's action to tell the dispatcher
// what to do next (re-express the Interest, or let it lapse).
type UpcallResult int

const (
	ResultOK UpcallResult = iota
	ResultErr
	ResultReexpress
)

// UpcallInfo carries the message and pre-parsed component offsets being
// delivered to a single upcall.
type UpcallInfo struct {
	Handle       *Handle
	Kind         UpcallKind
	Msg          []byte
	MatchedComps int // index into the ComponentIndex this upcall matched at
}

// ActionFunc is a Closure's callback. It must not retain Msg beyond the
// call; the Handle may reuse or discard the backing buffer afterward.
type ActionFunc func(info *UpcallInfo) UpcallResult

// Closure is a reference-counted polymorphic callback: the same
// *Closure can legitimately be installed in more than one slot (e.g. as
// both a filter action and later an Interest's action), and its FINAL
// upcall fires exactly once, synchronously, inside the release that
// drops the count to zero.
//
// The count is atomic, matching an Inc/Dec refcount contract, even
// though cross-Handle thread safety is out of scope:
// nothing here forbids one Closure being shared across two Handles
// deliberately, and a non-atomic counter would tear under that
// undefined-but-not-forbidden use.
type Closure struct {
	Action ActionFunc
	refs   int32
}

// NewClosure wraps fn in a Closure with an initial refcount of zero;
// the first replaceHandler call that installs it brings the count to one.
func NewClosure(fn ActionFunc) *Closure {
	return &Closure{Action: fn}
}

func (c *Closure) inc() int32 { return atomic.AddInt32(&c.refs, 1) }
func (c *Closure) dec() int32 { return atomic.AddInt32(&c.refs, -1) }

// replaceHandler installs src into *dst, incrementing src's count and
// decrementing the previous occupant's count, firing FINAL on the old
// Closure if that drop reaches zero. Mirrors ccn_replace_handler
// exactly, including the no-op when src already occupies *dst.
func replaceHandler(h *Handle, dst **Closure, src *Closure) {
	old := *dst
	if src == old {
		return
	}
	if src != nil {
		src.inc()
	}
	*dst = src
	if old != nil && old.dec() == 0 {
		if old.Action != nil {
			old.Action(&UpcallInfo{Handle: h, Kind: UpcallFinal})
		}
	}
}
