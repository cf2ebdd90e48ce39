package client

// interestFilter is keyed the same way as expressedInterest: by the raw
// component-prefix bytes of the filtered Name.
type interestFilter struct {
	action *Closure
}

// SetInterestFilter installs action as the Closure notified of inbound
// Interests whose Name has nameComponents as a prefix. Passing a nil
// action removes the filter, mirroring ccn_set_interest_filter.
func (h *Handle) SetInterestFilter(nameComponents [][]byte, action *Closure) error {
	key, err := h.nameKey(nameComponents)
	if err != nil {
		return h.noteErr(err, 0)
	}

	entry, ok := h.interestFilters.Get(key)
	if !ok {
		if action == nil {
			return nil
		}
		entry = &interestFilter{}
		h.interestFilters.Set(key, entry)
	}
	replaceHandler(h, &entry.action, action)
	if action == nil {
		h.interestFilters.Delete(key)
	}
	return nil
}
