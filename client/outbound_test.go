package client

import (
	"testing"

	"github.com/akaash-nigam/ccnx/wire"
	"github.com/stretchr/testify/require"
)

func validInterestMsg() []byte {
	return wire.BuildInterest([][]byte{[]byte("put-test")}, nil)
}

func TestPutRejectsEmptyAndMalformed(t *testing.T) {
	h, f := newTestHandle()
	require.NoError(t, h.Connect("ignored"))
	_ = f

	require.ErrorIs(t, h.Put(nil), ErrInvalidValue)
	require.ErrorIs(t, h.Put([]byte{0xC0}), ErrInvalidValue) // unterminated message
}

func TestPutWritesDirectlyWhenNoPendingOutput(t *testing.T) {
	h, f := newTestHandle()
	require.NoError(t, h.Connect("ignored"))

	msg := validInterestMsg()
	require.NoError(t, h.Put(msg))

	sent := f.Sent()
	require.Len(t, sent, 1)
	require.Equal(t, msg, sent[0])
	require.False(t, h.outputIsPending())
}

func TestPutQueuesBehindPendingOutput(t *testing.T) {
	h, f := newTestHandle()
	require.NoError(t, h.Connect("ignored"))

	first := validInterestMsg()
	h.outbuf = append([]byte(nil), first...)
	h.outbufIndex = 0
	h.face.WantWrite(true)

	second := wire.BuildInterest([][]byte{[]byte("second")}, nil)
	require.NoError(t, h.Put(second))

	// pushout should have drained everything in one shot since DummyFace
	// never reports a short write.
	sent := f.Sent()
	require.Len(t, sent, 1)
	require.Equal(t, append(append([]byte(nil), first...), second...), sent[0])
	require.False(t, h.outputIsPending())
}

func TestPushoutDrainsAndClearsWantWrite(t *testing.T) {
	h, f := newTestHandle()
	require.NoError(t, h.Connect("ignored"))

	msg := validInterestMsg()
	h.outbuf = append([]byte(nil), msg...)
	h.outbufIndex = 0
	h.face.WantWrite(true)

	require.NoError(t, h.pushout())
	require.False(t, h.outputIsPending())

	events, err := f.Poll(0)
	require.NoError(t, err)
	require.False(t, events.Writable)

	sent := f.Sent()
	require.Equal(t, [][]byte{msg}, sent)
}

func TestPushoutNoopWhenNothingPending(t *testing.T) {
	h, _ := newTestHandle()
	require.NoError(t, h.Connect("ignored"))
	require.NoError(t, h.pushout())
}

func TestOutputIsPendingReflectsIndex(t *testing.T) {
	h, _ := newTestHandle()
	require.False(t, h.outputIsPending())
	h.outbuf = []byte("abc")
	h.outbufIndex = 3
	require.False(t, h.outputIsPending(), "fully-drained buffer is not pending")
	h.outbufIndex = 1
	require.True(t, h.outputIsPending())
}
