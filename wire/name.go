package wire

import "errors"

// ErrInvalidName is returned by CheckNameBuf when a caller-supplied name
// buffer does not have the exact two-byte envelope this grammar
// requires: a single OPEN(TypeName) byte followed eventually by a
// single CLOSE byte, with nothing else bracketing it.
var ErrInvalidName = errors.New("wire: invalid name buffer")

// ComponentIndex records the byte offsets of a Name's components within
// the message it was parsed out of. Offset has length N+1: Offset[0] is
// the start of the component stream (right after Name's OPEN byte), and
// Offset[j] for 1<=j<=N is the offset right after component j-1's BLOB
// ends. msg[Offset[0]:Offset[j]] is the raw-byte key for the prefix of
// the first j components.
type ComponentIndex struct {
	Offset []int
}

// N returns the number of components indexed.
func (c *ComponentIndex) N() int {
	if c == nil || len(c.Offset) == 0 {
		return 0
	}
	return len(c.Offset) - 1
}

// Key returns the raw-byte prefix key covering the first n components,
// as a slice into msg. n must satisfy 0 <= n <= c.N().
func (c *ComponentIndex) Key(msg []byte, n int) []byte {
	return msg[c.Offset[0]:c.Offset[n]]
}

// CheckNameBuf fails with ErrInvalidName unless buf is at least two
// bytes, opens with OPEN(TypeName), and ends with CLOSE.
func CheckNameBuf(buf []byte) error {
	if len(buf) < 2 {
		return ErrInvalidName
	}
	typ, ok := isOpen(buf[0])
	if !ok || typ != TypeName {
		return ErrInvalidName
	}
	if buf[len(buf)-1] != markClose {
		return ErrInvalidName
	}
	return nil
}

// indexComponents walks a Name's component stream (buf[start:end), the
// bytes strictly between Name's OPEN and its matching CLOSE) and records
// each BLOB's end offset. It assumes buf[start:end] holds only BLOB
// elements back to back, which is this grammar's only legal Name
// content.
func indexComponents(buf []byte, start, end int) (*ComponentIndex, error) {
	offsets := []int{start}
	pos := start
	for pos < end {
		if buf[pos] != markBlob {
			return nil, ErrInvalidName
		}
		pos++
		if pos >= end {
			return nil, ErrInvalidName
		}
		hdrLen := tlNumHeaderLen(buf[pos])
		if pos+hdrLen > end {
			return nil, ErrInvalidName
		}
		n, consumed := ParseTLNum(buf[pos : pos+hdrLen])
		if consumed != hdrLen {
			return nil, ErrInvalidName
		}
		pos += hdrLen + int(n)
		if pos > end {
			return nil, ErrInvalidName
		}
		offsets = append(offsets, pos)
	}
	return &ComponentIndex{Offset: offsets}, nil
}

// EncodeName wraps components as OPEN(TypeName) BLOB* CLOSE and returns
// the result. Each entry of components becomes one BLOB.
func EncodeName(components [][]byte) []byte {
	size := 2
	for _, c := range components {
		size += 1 + TLNum(len(c)).EncodingLength() + len(c)
	}
	buf := make([]byte, 0, size)
	buf = append(buf, openByte(TypeName))
	for _, c := range components {
		buf = append(buf, markBlob)
		buf = append(buf, TLNum(len(c)).Bytes()...)
		buf = append(buf, c...)
	}
	buf = append(buf, markClose)
	return buf
}
