package client

import "github.com/akaash-nigam/ccnx/wire"

// dispatchMessage routes one complete top-level message to every
// interest filter (for an Interest) or every expressed interest (for a
// ContentObject) whose name is a prefix of the message's Name, walking
// from the longest prefix down to the empty prefix, exactly as
// ccn_dispatch_message does.
//
// Selector matching (Exclude, ChildSelector, PublisherID) is not
// implemented: any ContentObject sharing a prefix with an outstanding
// Interest is delivered, matching the source's own behavior and the
// documented gap this carries forward rather than closes.
func (h *Handle) dispatchMessage(msg []byte) {
	if idx, err := h.codec.ParseInterest(msg); err == nil {
		h.dispatchInterest(msg, idx)
		return
	}
	if idx, err := h.codec.ParseContentObject(msg); err == nil {
		h.dispatchContent(msg, idx)
		return
	}
	h.logger.Debug("dropping unparseable message", "len", len(msg))
}

func (h *Handle) dispatchInterest(msg []byte, idx *wire.ComponentIndex) {
	kind := UpcallInterest
	if h.interestFilters.Len() > 0 {
		keystart := idx.Offset[0]
		for i := idx.N(); i >= 0; i-- {
			key := msg[keystart:idx.Offset[i]]
			entry, ok := h.interestFilters.Get(key)
			if !ok {
				continue
			}
			if entry.action != nil && entry.action.Action != nil {
				res := entry.action.Action(&UpcallInfo{
					Handle: h, Kind: kind, Msg: msg, MatchedComps: i,
				})
				if res != ResultErr {
					kind = UpcallConsumedInterest
				}
			}
		}
	}
	if h.defaultInterestAction != nil && h.defaultInterestAction.Action != nil {
		h.defaultInterestAction.Action(&UpcallInfo{Handle: h, Kind: kind, Msg: msg, MatchedComps: 0})
	}
}

func (h *Handle) dispatchContent(msg []byte, idx *wire.ComponentIndex) {
	if h.interests.Len() > 0 {
		keystart := idx.Offset[0]
		for i := idx.N(); i >= 0; i-- {
			// Re-seek by key after every upcall: the callback may have
			// removed or replaced this entry (or any other), so the map
			// is never trusted to still hold the pointer we looked up a
			// moment ago.
			key := append([]byte(nil), msg[keystart:idx.Offset[i]]...)
			entry, ok := h.interests.Get(key)
			if !ok || entry.target <= 0 {
				continue
			}
			entry.outstanding--
			if entry.action == nil || entry.action.Action == nil {
				continue
			}
			res := entry.action.Action(&UpcallInfo{
				Handle: h, Kind: UpcallContent, Msg: msg, MatchedComps: i,
			})
			if res == ResultErr {
				continue
			}
			entry, ok = h.interests.Get(key)
			if !ok {
				continue
			}
			if res == ResultReexpress {
				h.refreshInterest(key, entry)
			} else {
				replaceHandler(h, &entry.action, nil)
				entry.setTemplate(nil)
				h.interests.Delete(key)
			}
		}
	}
	if h.defaultContentAction != nil && h.defaultContentAction.Action != nil {
		h.defaultContentAction.Action(&UpcallInfo{Handle: h, Kind: UpcallContent, Msg: msg, MatchedComps: 0})
	}
}
