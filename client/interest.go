package client

import (
	"time"

	"github.com/akaash-nigam/ccnx/wire"
)

// interestHalflife is the time constant the outstanding-interest count
// decays by half over, matching CCN_INTEREST_HALFLIFE_MICROSEC.
const interestHalflife = 4 * time.Second

// expressedInterest is keyed by the raw component-prefix bytes of the
// Interest's Name, one entry per distinct name a caller has expressed
// interest in.
type expressedInterest struct {
	lastTime    time.Time
	action      *Closure
	template    []byte // the trailer bytes: selectors/nonce/lifetime, opaque
	repeat      int    // reserved, matches the source's unused field exactly
	target      int
	outstanding int
}

func (e *expressedInterest) setTemplate(trailer []byte) {
	if trailer == nil {
		e.template = nil
		return
	}
	e.template = append([]byte(nil), trailer...)
}

// ExpressInterest registers (or refreshes) interest in the name given
// by nameComponents, installing action as the Closure notified of
// matching ContentObjects and timeouts, and template as the optional
// trailer (selectors, nonce, lifetime) to carry on reissue. Mirrors
// ccn_express_interest exactly: keyed by the raw component bytes,
// target reset to 8 (the cap on copies outstanding at once:
// refreshInterest sends nothing while outstanding has reached it).
func (h *Handle) ExpressInterest(nameComponents [][]byte, action *Closure, template []byte) error {
	key, err := h.nameKey(nameComponents)
	if err != nil {
		return h.noteErr(err, 0)
	}

	entry, ok := h.interests.Get(key)
	if !ok {
		entry = &expressedInterest{}
		h.interests.Set(key, entry)
	}
	replaceHandler(h, &entry.action, action)
	if template != nil {
		_, trailer, err := h.codec.ExtractTemplate(template)
		if err != nil {
			return h.noteErr(err, 0)
		}
		entry.setTemplate(trailer)
	} else {
		entry.setTemplate(nil)
	}
	entry.target = 8
	return nil
}

// nameKey validates nameComponents by building and checking a name
// buffer, then returns the raw key bytes used to index the interests
// and interestFilters tables (the component bytes themselves, without
// the Name's OPEN/CLOSE envelope), mirroring
// "namebuf->buf + 1, namebuf->length - 2" in ccn_express_interest.
func (h *Handle) nameKey(nameComponents [][]byte) ([]byte, error) {
	name := wire.EncodeName(nameComponents)
	if err := h.codec.CheckNameBuf(name); err != nil {
		return nil, err
	}
	return name[1 : len(name)-1], nil
}

// refreshInterest rebuilds and re-sends the Interest named by key,
// using entry's stored template trailer, provided entry's outstanding
// count has not reached its target. Mirrors ccn_refresh_interest.
func (h *Handle) refreshInterest(key []byte, entry *expressedInterest) {
	msg := h.buildInterestFromKey(key, entry.template)
	if entry.outstanding < entry.target {
		if err := h.Put(msg); err == nil {
			entry.outstanding++
		}
	}
}

func (h *Handle) buildInterestFromKey(key []byte, trailer []byte) []byte {
	return h.codec.BuildInterestFromEncodedName(key, trailer)
}

// agingScan walks every expressed interest, ages its outstanding count
// by the half-life decay, and, for any with a positive target and
// nothing outstanding, fires the INTEREST_TIMED_OUT upcall and then
// re-expresses it, exactly as ccn_run's scan does. It returns the delay
// until the next entry needs attention, used to bound the next poll
// timeout.
func (h *Handle) agingScan(now time.Time) time.Duration {
	refresh := 5 * interestHalflife

	var keys [][]byte
	h.interests.Range(func(key []byte, e *expressedInterest) bool {
		keys = append(keys, key)
		return true
	})

	for _, key := range keys {
		entry, ok := h.interests.Get(key)
		if !ok {
			continue
		}
		if now.Sub(entry.lastTime) > 30*time.Second {
			entry.outstanding = 0
			entry.lastTime = now
		}
		delta := now.Sub(entry.lastTime)
		for delta >= interestHalflife {
			entry.outstanding /= 2
			delta -= interestHalflife
		}
		if delta < 0 {
			delta = 0
		}
		if interestHalflife-delta < refresh {
			refresh = interestHalflife - delta
		}
		entry.lastTime = now.Add(-delta)

		if entry.target > 0 && entry.outstanding == 0 {
			if entry.action != nil && entry.action.Action != nil {
				entry.action.Action(&UpcallInfo{Handle: h, Kind: UpcallInterestTimedOut})
			}
			h.refreshInterest(key, entry)
		}
	}
	return refresh
}
