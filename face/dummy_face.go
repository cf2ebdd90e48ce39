package face

import (
	"bytes"
	"fmt"
)

// DummyFace is an in-memory Face for tests. FeedPacket enqueues bytes
// as if they had just been read from the wire; Sent drains the packets
// written via Write. Because a Handle is driven synchronously by its
// owner with no internal goroutine, tests call Poll/Read/dispatch steps
// directly against a DummyFace with no sleep-based synchronization,
// unlike a goroutine-driven dummy transport.
type DummyFace struct {
	baseFace
	inbox bytes.Buffer
	sent  [][]byte
	open  bool
}

// NewDummyFace returns a closed DummyFace; Open marks it connected.
func NewDummyFace() *DummyFace {
	return &DummyFace{}
}

func (f *DummyFace) Open() error {
	if f.open {
		return fmt.Errorf("face: %s already open", f.String())
	}
	f.open = true
	f.markUp()
	return nil
}

func (f *DummyFace) Close() error {
	f.open = false
	f.markDown()
	return nil
}

// FeedPacket appends p to the simulated inbound stream, available to
// the next Read call(s).
func (f *DummyFace) FeedPacket(p []byte) {
	f.inbox.Write(p)
}

// Sent returns and clears every packet written via Write so far.
func (f *DummyFace) Sent() [][]byte {
	out := f.sent
	f.sent = nil
	return out
}

func (f *DummyFace) Read(buf []byte) (int, error) {
	if !f.open {
		return 0, ErrClosed
	}
	if f.inbox.Len() == 0 {
		return 0, ErrWouldBlock
	}
	return f.inbox.Read(buf)
}

func (f *DummyFace) Write(buf []byte) (int, error) {
	if !f.open {
		return 0, ErrClosed
	}
	cp := append([]byte(nil), buf...)
	f.sent = append(f.sent, cp)
	return len(buf), nil
}

// Poll reports readable whenever bytes are queued and writable
// whenever WantWrite has been set, without ever actually blocking —
// the synchronous test harness never needs DummyFace to wait.
func (f *DummyFace) Poll(timeoutMs int) (PollEvents, error) {
	if !f.open {
		return PollEvents{}, ErrClosed
	}
	return PollEvents{
		Readable: f.inbox.Len() > 0,
		Writable: f.wantWrite.Load(),
	}, nil
}

func (f *DummyFace) String() string { return "dummy" }
