package wire

// Structural byte markers. OPEN and CLOSE bracket composite elements;
// BLOB introduces a length-prefixed leaf. Every element type used by
// this grammar fits in 6 bits, so the compact single-byte OPEN form
// (0xC0 | type) always applies — this is what makes the Name envelope
// exactly two bytes (one OPEN, one CLOSE) once stripped, per spec.
const (
	markOpenBase byte = 0xC0 // OPEN(type) == markOpenBase | type, type < 0x40
	markClose    byte = 0x00
	markBlob     byte = 0xFE
)

// Element type codes, folded into the low 6 bits of an OPEN byte.
const (
	TypeInterest      byte = 0x01
	TypeContentObject byte = 0x02
	TypeName          byte = 0x03
	TypeContent       byte = 0x04
	TypeSignature     byte = 0x05
)

func openByte(typ byte) byte { return markOpenBase | (typ & 0x3F) }

// isOpen reports whether b is a compact OPEN byte and, if so, the type
// it opens.
func isOpen(b byte) (typ byte, ok bool) {
	if b&0xC0 == 0xC0 && b != markBlob {
		return b & 0x3F, true
	}
	return 0, false
}
