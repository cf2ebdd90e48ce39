package client

import (
	"errors"

	"github.com/akaash-nigam/ccnx/face"
	"github.com/akaash-nigam/ccnx/wire"
)

// Put validates msg as exactly one complete top-level message and
// either writes it straight to the Face or, if output is already
// backed up, appends it to the outbound buffer for pushout to drain
// later. Mirrors ccn_put: a partial write leaves the remainder queued
// and the caller must watch for write-readiness (Handle.Run does this
// via Face.WantWrite) until the queue drains.
func (h *Handle) Put(msg []byte) error {
	if len(msg) == 0 {
		return h.noteErr(ErrInvalidValue, 0)
	}
	var d wire.Decoder
	consumed := d.Decode(msg)
	if consumed != len(msg) || d.State != 0 {
		return h.noteErr(ErrInvalidValue, 0)
	}

	if h.outputIsPending() {
		h.outbuf = append(h.outbuf, msg...)
		return h.pushout()
	}

	n, err := h.face.Write(msg)
	if err != nil {
		if errors.Is(err, face.ErrWouldBlock) {
			n = 0
		} else {
			return h.noteErr(err, 0)
		}
	}
	if n == len(msg) {
		return nil
	}
	h.outbuf = append(h.outbuf, msg[n:]...)
	h.outbufIndex = 0
	h.face.WantWrite(true)
	return nil
}

// pushout drains as much of the outbound buffer as the Face will
// accept without blocking, mirroring ccn_pushout exactly (including
// resetting outbuf to empty rather than shrinking it on a full drain).
func (h *Handle) pushout() error {
	if !h.outputIsPending() {
		return nil
	}
	pending := h.outbuf[h.outbufIndex:]
	n, err := h.face.Write(pending)
	if err != nil {
		if errors.Is(err, face.ErrWouldBlock) {
			return nil
		}
		return h.noteErr(err, 0)
	}
	if n == len(pending) {
		h.outbuf = h.outbuf[:0]
		h.outbufIndex = 0
		h.face.WantWrite(false)
		return nil
	}
	h.outbufIndex += n
	return nil
}

func (h *Handle) outputIsPending() bool {
	return h.outbuf != nil && h.outbufIndex < len(h.outbuf)
}
