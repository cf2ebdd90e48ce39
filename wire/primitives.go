// Package wire implements the ccnb-lite wire format: a self-delimiting
// open/close/blob byte grammar, an incremental skeleton decoder for
// framing messages out of a raw stream, and Name/Interest/ContentObject
// parsing and encoding on top of it.
package wire

import "encoding/binary"

// TLNum is a variable-length encoded natural number, used for BLOB
// lengths and, inside EncodeLifetimeTrailer's BLOB, for the lifetime
// value (element types are folded into the single OPEN byte instead of
// carried as a separate number).
type TLNum uint64

// EncodingLength returns the number of bytes EncodeInto will write for v.
func (v TLNum) EncodingLength() int {
	switch x := uint64(v); {
	case x <= 0xfc:
		return 1
	case x <= 0xffff:
		return 3
	case x <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// EncodeInto writes v into buf using the shortest of the four encodings
// (1, 3, 5, or 9 bytes), returning the number of bytes written. buf must
// have at least EncodingLength() bytes available.
func (v TLNum) EncodeInto(buf []byte) int {
	switch x := uint64(v); {
	case x <= 0xfc:
		buf[0] = byte(x)
		return 1
	case x <= 0xffff:
		buf[0] = 0xfd
		binary.BigEndian.PutUint16(buf[1:], uint16(x))
		return 3
	case x <= 0xffffffff:
		buf[0] = 0xfe
		binary.BigEndian.PutUint32(buf[1:], uint32(x))
		return 5
	default:
		buf[0] = 0xff
		binary.BigEndian.PutUint64(buf[1:], uint64(x))
		return 9
	}
}

// Bytes returns v encoded into a freshly allocated slice.
func (v TLNum) Bytes() []byte {
	buf := make([]byte, v.EncodingLength())
	v.EncodeInto(buf)
	return buf
}

// ParseTLNum parses a TLNum from the start of buf, the way ParseInterest
// and friends do once a complete message is already in hand. It panics
// on a short buffer; callers that only have a length prefix already
// validated by the skeleton decoder can rely on that.
func ParseTLNum(buf []byte) (val TLNum, consumed int) {
	switch x := buf[0]; {
	case x <= 0xfc:
		return TLNum(x), 1
	case x == 0xfd:
		return TLNum(binary.BigEndian.Uint16(buf[1:3])), 3
	case x == 0xfe:
		return TLNum(binary.BigEndian.Uint32(buf[1:5])), 5
	default:
		return TLNum(binary.BigEndian.Uint64(buf[1:9])), 9
	}
}

// tlNumHeaderLen returns how many bytes the TLNum starting with prefix b
// needs in total (including b itself): 3, 5 or 9 for the 0xfd/0xfe/0xff
// forms, and 1 for any other byte, which is the value itself.
func tlNumHeaderLen(b byte) int {
	switch b {
	case 0xfd:
		return 3
	case 0xfe:
		return 5
	case 0xff:
		return 9
	default:
		return 1
	}
}
