package wire

import (
	"errors"
	"time"
)

// ErrNotInterest and ErrNotContentObject are returned (not as hard
// parse failures) when a message structurally parses as the other
// top-level type, so a caller can try one parse then fall back to the
// other without panics (mirrors the dispatcher's try-Interest-then-try-
// ContentObject order).
var (
	ErrNotInterest      = errors.New("wire: not an Interest")
	ErrNotContentObject = errors.New("wire: not a ContentObject")
	ErrMalformed        = errors.New("wire: malformed message")
)

// ParseInterest parses one complete top-level message (already sliced
// out by the skeleton decoder) as an Interest and returns a
// ComponentIndex over its Name.
func ParseInterest(msg []byte) (*ComponentIndex, error) {
	return parseTopLevel(msg, TypeInterest, ErrNotInterest)
}

// ParseContentObject parses one complete top-level message as a
// ContentObject and returns a ComponentIndex over its Name.
func ParseContentObject(msg []byte) (*ComponentIndex, error) {
	return parseTopLevel(msg, TypeContentObject, ErrNotContentObject)
}

func parseTopLevel(msg []byte, want byte, mismatch error) (*ComponentIndex, error) {
	if len(msg) < 2 {
		return nil, ErrMalformed
	}
	typ, ok := isOpen(msg[0])
	if !ok {
		return nil, ErrMalformed
	}
	if typ != want {
		return nil, mismatch
	}
	if msg[len(msg)-1] != markClose {
		return nil, ErrMalformed
	}
	nameTyp, ok := isOpen(msg[1])
	if !ok || nameTyp != TypeName {
		return nil, ErrMalformed
	}
	nameEnd, err := findMatchingClose(msg, 1)
	if err != nil {
		return nil, err
	}
	return indexComponents(msg, 2, nameEnd)
}

// findMatchingClose returns the index of the CLOSE byte that balances
// the OPEN at msg[openPos].
func findMatchingClose(msg []byte, openPos int) (int, error) {
	depth := 0
	i := openPos
	for i < len(msg) {
		b := msg[i]
		switch {
		case b == markClose:
			depth--
			if depth == 0 {
				return i, nil
			}
			i++
		case b == markBlob:
			i++
			if i >= len(msg) {
				return 0, ErrMalformed
			}
			hdrLen := tlNumHeaderLen(msg[i])
			if i+hdrLen > len(msg) {
				return 0, ErrMalformed
			}
			n, _ := ParseTLNum(msg[i : i+hdrLen])
			i += hdrLen + int(n)
		default:
			if _, ok := isOpen(b); ok {
				depth++
			}
			i++
		}
	}
	return 0, ErrMalformed
}

// BuildInterest wraps components in OPEN(Name){...}CLOSE and appends
// trailer verbatim before the outer CLOSE, used when (re-)issuing an
// Interest from an ExpressedInterest's stored components and template
// trailer.
func BuildInterest(components [][]byte, trailer []byte) []byte {
	name := EncodeName(components)
	buf := make([]byte, 0, 1+len(name)+len(trailer)+1)
	buf = append(buf, openByte(TypeInterest))
	buf = append(buf, name...)
	buf = append(buf, trailer...)
	buf = append(buf, markClose)
	return buf
}

// BuildInterestFromEncodedName wraps an already-encoded Name component
// stream (as returned by ComponentIndex.Key or stored as an interest
// table key) in OPEN(Name){raw}CLOSE and appends trailer before the
// outer CLOSE, mirroring ccn_refresh_interest's direct charbuf append
// of pre-encoded component bytes rather than re-encoding from raw
// component values the way BuildInterest does.
func BuildInterestFromEncodedName(rawName []byte, trailer []byte) []byte {
	buf := make([]byte, 0, 2+len(rawName)+len(trailer)+2)
	buf = append(buf, openByte(TypeInterest))
	buf = append(buf, openByte(TypeName))
	buf = append(buf, rawName...)
	buf = append(buf, markClose)
	buf = append(buf, trailer...)
	buf = append(buf, markClose)
	return buf
}

// BuildContentObject wraps components as a Name, followed by a Content
// BLOB and, if sig is non-empty, a Signature BLOB, inside
// OPEN(ContentObject){...}CLOSE. Mirrors the ContentObject shape
// ccn_client.c's dispatcher expects on the Content/Signature side of the
// Name it already knows how to index (ccn_parse_ContentObject in the
// original library encodes the same three elements, signature first;
// this grammar's simplified skeleton only needs them back to back after
// Name for indexComponents/dispatch purposes, so the order here is
// Name, Content, Signature).
func BuildContentObject(components [][]byte, content []byte, sig []byte) []byte {
	name := EncodeName(components)
	size := 1 + len(name) + 1
	size += 1 + TLNum(len(content)).EncodingLength() + len(content)
	if len(sig) > 0 {
		size += 1 + TLNum(len(sig)).EncodingLength() + len(sig)
	}
	buf := make([]byte, 0, size)
	buf = append(buf, openByte(TypeContentObject))
	buf = append(buf, name...)
	buf = append(buf, markBlob)
	buf = append(buf, TLNum(len(content)).Bytes()...)
	buf = append(buf, content...)
	if len(sig) > 0 {
		buf = append(buf, markBlob)
		buf = append(buf, TLNum(len(sig)).Bytes()...)
		buf = append(buf, sig...)
	}
	buf = append(buf, markClose)
	return buf
}

// ExtractContent parses msg as a ContentObject and returns the raw bytes
// of its Content BLOB (the payload a consumer actually wants, as
// opposed to the whole wire-framed message ParseContentObject indexes).
func ExtractContent(msg []byte) ([]byte, error) {
	if len(msg) < 2 {
		return nil, ErrMalformed
	}
	typ, ok := isOpen(msg[0])
	if !ok || typ != TypeContentObject {
		return nil, ErrNotContentObject
	}
	nameTyp, ok := isOpen(msg[1])
	if !ok || nameTyp != TypeName {
		return nil, ErrMalformed
	}
	nameEnd, err := findMatchingClose(msg, 1)
	if err != nil {
		return nil, err
	}
	pos := nameEnd + 1
	if pos >= len(msg) || msg[pos] != markBlob {
		return nil, ErrMalformed
	}
	pos++
	if pos >= len(msg) {
		return nil, ErrMalformed
	}
	hdrLen := tlNumHeaderLen(msg[pos])
	if pos+hdrLen > len(msg) {
		return nil, ErrMalformed
	}
	n, _ := ParseTLNum(msg[pos : pos+hdrLen])
	pos += hdrLen
	if pos+int(n) > len(msg) {
		return nil, ErrMalformed
	}
	return msg[pos : pos+int(n)], nil
}

// EncodeLifetimeTrailer encodes d as a single BLOB holding its
// millisecond count, suitable as (or prefixed onto) the opaque trailer
// span client/interest.go carries unexamined across reissues. Callers
// that want a lifetime override build a full template with
// BuildInterest(components, EncodeLifetimeTrailer(d)) and pass it to
// Handle.ExpressInterest.
func EncodeLifetimeTrailer(d time.Duration) []byte {
	ms := TLNum(d / time.Millisecond).Bytes()
	buf := make([]byte, 0, 1+TLNum(len(ms)).EncodingLength()+len(ms))
	buf = append(buf, markBlob)
	buf = append(buf, TLNum(len(ms)).Bytes()...)
	buf = append(buf, ms...)
	return buf
}

// DecodeLifetimeTrailer reads back a trailer built by
// EncodeLifetimeTrailer. It returns an error if trailer isn't a single
// leading BLOB (e.g. it holds selector/nonce bytes this grammar never
// assigns a shape to, since selector semantics are out of scope).
func DecodeLifetimeTrailer(trailer []byte) (time.Duration, error) {
	if len(trailer) < 1 || trailer[0] != markBlob {
		return 0, ErrMalformed
	}
	pos := 1
	if pos >= len(trailer) {
		return 0, ErrMalformed
	}
	hdrLen := tlNumHeaderLen(trailer[pos])
	if pos+hdrLen > len(trailer) {
		return 0, ErrMalformed
	}
	n, _ := ParseTLNum(trailer[pos : pos+hdrLen])
	pos += hdrLen
	if n == 0 || pos+int(n) > len(trailer) {
		return 0, ErrMalformed
	}
	val := trailer[pos : pos+int(n)]
	if tlNumHeaderLen(val[0]) != len(val) {
		return 0, ErrMalformed
	}
	ms, _ := ParseTLNum(val)
	return time.Duration(ms) * time.Millisecond, nil
}

// ExtractTemplate takes a caller-supplied template Interest and returns
// the raw concatenated component bytes of its Name (for keying, via
// EncodeName-compatible raw component slices is not needed here — the
// caller already has components from its own namebuf) and the trailer:
// every byte after the Name's CLOSE up to (not including) the
// template's own outer CLOSE.
func ExtractTemplate(template []byte) (components []byte, trailer []byte, err error) {
	if len(template) < 2 {
		return nil, nil, ErrMalformed
	}
	typ, ok := isOpen(template[0])
	if !ok || typ != TypeInterest {
		return nil, nil, ErrNotInterest
	}
	if template[len(template)-1] != markClose {
		return nil, nil, ErrMalformed
	}
	nameTyp, ok := isOpen(template[1])
	if !ok || nameTyp != TypeName {
		return nil, nil, ErrMalformed
	}
	nameEnd, err := findMatchingClose(template, 1)
	if err != nil {
		return nil, nil, err
	}
	components = template[2:nameEnd]
	trailer = template[nameEnd+1 : len(template)-1]
	return components, trailer, nil
}
