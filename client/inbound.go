package client

import (
	"errors"

	"github.com/akaash-nigam/ccnx/face"
)

// readChunkSize mirrors ccn_process_input's 8800-byte reservation per
// read.
const readChunkSize = 8800

// processInput reads what the Face has ready, feeds it through the
// skeleton decoder, and dispatches every complete top-level message it
// frames out, moving any trailing partial message to the front of
// inbuf for the next call. Mirrors ccn_process_input.
func (h *Handle) processInput() error {
	if len(h.inbuf) == 0 {
		h.decoder.Reset()
	}
	start := len(h.inbuf)
	h.inbuf = append(h.inbuf, make([]byte, readChunkSize)...)
	n, err := h.face.Read(h.inbuf[start:])
	h.inbuf = h.inbuf[:start+n]
	if err != nil {
		if errors.Is(err, face.ErrWouldBlock) {
			return nil
		}
		if errors.Is(err, face.ErrClosed) {
			_ = h.Disconnect()
			return err
		}
		return h.noteErr(err, 0)
	}

	msgStart := 0
	h.decoder.Decode(h.inbuf[start:])
	for h.decoder.State == 0 && h.decoder.Index > 0 {
		h.dispatchMessage(h.inbuf[msgStart:h.decoder.Index])
		msgStart = h.decoder.Index
		if msgStart == len(h.inbuf) {
			h.inbuf = h.inbuf[:0]
			h.decoder.Reset()
			return nil
		}
		h.decoder.Decode(h.inbuf[h.decoder.Index:])
	}
	if msgStart > 0 && msgStart < len(h.inbuf) {
		remaining := len(h.inbuf) - msgStart
		copy(h.inbuf, h.inbuf[msgStart:])
		h.inbuf = h.inbuf[:remaining]
		h.decoder.Index -= msgStart
	}
	return nil
}
