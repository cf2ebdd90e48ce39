// Package face implements the non-blocking transports a Handle drives
// from its single poll suspension point: a primary Unix-domain stream
// socket, a loopback TCP alternate, and a WebSocket tunnel, plus an
// in-memory DummyFace for tests.
package face

import "errors"

// ErrWouldBlock is returned by Read/Write instead of blocking the
// caller; socket-backed Faces return it in place of EAGAIN, which is
// not wrapped.
var ErrWouldBlock = errors.New("face: operation would block")

// ErrClosed is returned by Read/Write/Poll once the Face has been
// closed or the peer has disconnected.
var ErrClosed = errors.New("face: not connected")

// PollEvents reports which operations are ready after a Poll call.
type PollEvents struct {
	Readable bool
	Writable bool
}

// Face is the transport seam the client package drives directly from
// its own event loop. Only WebSocketFace runs a goroutine (its readLoop,
// which buffers incoming frames); the others do all I/O in the caller.
type Face interface {
	// Open establishes the connection. Calling Open on an already-open
	// Face returns an error.
	Open() error
	// Close releases the underlying connection. Safe to call more than
	// once.
	Close() error
	// Read returns up to len(buf) bytes without blocking, ErrWouldBlock
	// if none are available yet, or ErrClosed/an I/O error otherwise.
	Read(buf []byte) (int, error)
	// Write writes up to len(buf) bytes without blocking, returning the
	// number actually written (which may be less than len(buf), never
	// blocking to write the rest).
	Write(buf []byte) (int, error)
	// Poll blocks up to timeoutMs milliseconds (0 means return
	// immediately, negative means wait indefinitely) for read/write
	// readiness.
	Poll(timeoutMs int) (PollEvents, error)
	// WantWrite tells Poll whether to also watch for write-readiness,
	// set whenever the caller has buffered output pending.
	WantWrite(want bool)
	// IsConnected reports whether the Face currently has an open
	// connection.
	IsConnected() bool
	String() string
}

// OnDown and OnUp are optional hooks a Face implementation may expose
// for callers that want to observe connection state transitions;
// neither is part of the Face interface itself. Every Face in this
// package gets them from the embedded baseFace.
type hookable interface {
	OnDown(func())
	OnUp(func())
}

var _ hookable = (*UnixFace)(nil)
var _ hookable = (*TCPFace)(nil)
