package wire

// Decoder is the skeleton decoder: a resumable state machine that walks
// OPEN/CLOSE/BLOB structure without any knowledge of which element types
// mean what, just to find top-level message boundaries in an arbitrarily
// fragmented byte stream (spec.md "Skeleton decoder" in the glossary,
// and §4.3's "may be fed arbitrarily fragmented reads"). It never
// allocates beyond the small varint scratch below.
//
// Mirrors ccn_client.c's ccn_skeleton_decode contract: feed it any
// number of bytes via Decode, and State reads back 0 exactly when Index
// sits on a top-level message boundary (after having consumed at least
// one element).
type Decoder struct {
	depth int // nesting depth; 0 means "between top-level messages"
	state decoderState

	// varint scratch for a BLOB length header split across Decode calls.
	lenBuf    [9]byte
	lenHave   int
	lenWant   int
	remaining uint64 // bytes of the current BLOB value still to skip

	// Index is the total number of bytes this Decoder has consumed
	// across all calls to Decode.
	Index int
	// State is 0 exactly at a top-level message boundary (depth == 0
	// and not mid-header); any other value means a message is still in
	// progress. Only the zero-ness is a contract; the numeric value is
	// this package's own bookkeeping.
	State int
}

type decoderState int

const (
	stateTag decoderState = iota // expecting OPEN, CLOSE, or a BLOB header byte
	stateBlobLen
	stateBlobData
)

// Reset returns the Decoder to its initial state, as if newly
// constructed. The inbound framer does this once its buffer has been
// fully consumed down to zero bytes.
func (d *Decoder) Reset() {
	*d = Decoder{}
}

// Decode feeds chunk to the decoder and returns the number of bytes it
// consumed before either running out of input or completing a
// top-level message (d.State == 0 with d.depth == 0 again). Decode may
// consume fewer bytes than len(chunk); a caller like the inbound framer
// that wants to keep feeding more of the same chunk after a message
// boundary should loop, calling Decode repeatedly on the remainder.
//
// Unlike the C source, which re-derives "are we at a boundary" from
// d->state after one call over the whole available buffer, this Decode
// stops as soon as it reaches a boundary so the framer can dispatch
// before looking at any more bytes — the net effect on d.Index and
// d.State is identical.
func (d *Decoder) Decode(chunk []byte) (consumed int) {
	for consumed < len(chunk) {
		switch d.state {
		case stateTag:
			b := chunk[consumed]
			consumed++
			d.Index++
			switch {
			case b == markClose:
				if d.depth == 0 {
					// Malformed (unbalanced close); treat as a no-op
					// boundary reset rather than panicking, mirroring
					// the source's general tolerance of garbage input
					// being merely "dropped" further up the stack.
					continue
				}
				d.depth--
				if d.depth == 0 {
					d.updateState()
					return consumed
				}
			case b == markBlob:
				d.state = stateBlobLen
				d.lenHave = 0
				d.lenWant = 0
			default:
				if _, ok := isOpen(b); ok {
					d.depth++
				}
				// Any other byte value is treated as an opaque
				// structural tag and ignored; only OPEN/CLOSE/BLOB
				// affect depth.
			}
		case stateBlobLen:
			consumed, _ = d.feedBlobLen(chunk, consumed)
			if d.state == stateBlobLen {
				// ran out of chunk mid-header
				d.updateState()
				return consumed
			}
		case stateBlobData:
			n := d.remaining
			avail := uint64(len(chunk) - consumed)
			if n > avail {
				n = avail
			}
			consumed += int(n)
			d.Index += int(n)
			d.remaining -= n
			if d.remaining == 0 {
				d.state = stateTag
				if d.depth == 0 {
					d.updateState()
					return consumed
				}
			} else {
				d.updateState()
				return consumed
			}
		}
	}
	d.updateState()
	return consumed
}

// feedBlobLen accumulates the bytes of a TLNum length header, which may
// itself be split across Decode calls.
func (d *Decoder) feedBlobLen(chunk []byte, pos int) (int, bool) {
	if d.lenWant == 0 {
		// first byte of the header tells us the total header length
		b := chunk[pos]
		d.lenBuf[0] = b
		d.lenHave = 1
		pos++
		d.Index++
		d.lenWant = tlNumHeaderLen(b)
		if d.lenHave == d.lenWant {
			return d.finishBlobLen(pos)
		}
	}
	for d.lenHave < d.lenWant && pos < len(chunk) {
		d.lenBuf[d.lenHave] = chunk[pos]
		d.lenHave++
		pos++
		d.Index++
	}
	if d.lenHave == d.lenWant {
		return d.finishBlobLen(pos)
	}
	return pos, false
}

func (d *Decoder) finishBlobLen(pos int) (int, bool) {
	n, _ := ParseTLNum(d.lenBuf[:d.lenWant])
	d.remaining = uint64(n)
	d.lenHave, d.lenWant = 0, 0
	if d.remaining == 0 {
		d.state = stateTag
		if d.depth == 0 {
			d.updateState()
		}
	} else {
		d.state = stateBlobData
	}
	return pos, true
}

func (d *Decoder) updateState() {
	if d.depth == 0 && d.state == stateTag {
		d.State = 0
	} else {
		d.State = 1
	}
}
