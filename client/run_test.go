package client

import (
	"testing"
	"time"

	"github.com/akaash-nigam/ccnx/face"
	"github.com/akaash-nigam/ccnx/wire"
	"github.com/stretchr/testify/require"
)

// stuckWriteFace refuses every write, keeping output permanently
// pending so a test can observe whether Run's scheduler pass correctly
// stays gated off for as long as that holds.
type stuckWriteFace struct {
	*face.DummyFace
}

func (f *stuckWriteFace) Write([]byte) (int, error) {
	return 0, face.ErrWouldBlock
}

func TestRunDrainsPendingOutputAndDispatchesInput(t *testing.T) {
	h, f := newTestHandle()
	require.NoError(t, h.Connect("ignored"))

	var got []byte
	h.SetDefaultInterestHandler(NewClosure(func(info *UpcallInfo) UpcallResult {
		got = append([]byte(nil), info.Msg...)
		return ResultOK
	}))

	pending := wire.BuildInterest([][]byte{[]byte("queued")}, nil)
	h.outbuf = append([]byte(nil), pending...)
	h.outbufIndex = 0
	h.face.WantWrite(true)

	inbound := wire.BuildInterest([][]byte{[]byte("inbound")}, nil)
	f.FeedPacket(inbound)

	require.NoError(t, h.Run(time.Millisecond))

	require.False(t, h.outputIsPending())
	require.Equal(t, [][]byte{pending}, f.Sent())
	require.Equal(t, inbound, got)
}

func TestRunReturnsWhenTimeoutElapses(t *testing.T) {
	h, _ := newTestHandle()
	require.NoError(t, h.Connect("ignored"))
	require.NoError(t, h.Run(time.Millisecond))
}

func TestRunErrorsWhenNotConnected(t *testing.T) {
	h := NewHandle()
	require.ErrorIs(t, h.Run(time.Millisecond), ErrNotConnected)
}

func TestRunSkipsAgingScanWhileOutputPending(t *testing.T) {
	f := &stuckWriteFace{DummyFace: face.NewDummyFace()}
	h := NewHandle(WithFace(f))
	require.NoError(t, h.Connect("ignored"))

	require.NoError(t, h.ExpressInterest([][]byte{[]byte("x")}, NewClosure(func(*UpcallInfo) UpcallResult {
		return ResultOK
	}), nil))
	entry, ok := h.interests.Get(mustNameKey(t, h, [][]byte{[]byte("x")}))
	require.True(t, ok)
	entry.target = 1

	h.outbuf = []byte{0x01}
	h.outbufIndex = 0
	h.face.WantWrite(true)

	require.NoError(t, h.Run(5*time.Millisecond))

	require.True(t, entry.lastTime.IsZero(), "agingScan must stay gated off while output is pending")
	require.Zero(t, entry.outstanding)
}

// readClosedFace reports itself readable and connected, like a socket
// whose peer just closed it mid-poll, so Run's handling of processInput
// discovering that closure can be exercised directly.
type readClosedFace struct {
	*face.DummyFace
}

func (f *readClosedFace) Read([]byte) (int, error) {
	return 0, face.ErrClosed
}

func TestRunExitsWhenReadDetectsClosedFace(t *testing.T) {
	f := &readClosedFace{DummyFace: face.NewDummyFace()}
	h := NewHandle(WithFace(f))
	require.NoError(t, h.Connect("ignored"))
	f.FeedPacket(wire.BuildInterest([][]byte{[]byte("x")}, nil))

	require.NoError(t, h.Run(5*time.Millisecond))
	require.False(t, h.face.IsConnected(), "processInput's disconnect on a closed read must be observed")
}
