package face

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDummyFaceOpenCloseLifecycle(t *testing.T) {
	f := NewDummyFace()
	require.False(t, f.IsConnected())
	require.NoError(t, f.Open())
	require.True(t, f.IsConnected())
	require.NoError(t, f.Close())
	require.False(t, f.IsConnected())
}

func TestDummyFaceReadWrite(t *testing.T) {
	f := NewDummyFace()
	require.NoError(t, f.Open())

	_, err := f.Read(make([]byte, 8))
	require.ErrorIs(t, err, ErrWouldBlock)

	f.FeedPacket([]byte("hello"))
	buf := make([]byte, 8)
	n, err := f.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "hello", string(buf[:n]))

	n, err = f.Write([]byte("world"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	sent := f.Sent()
	require.Len(t, sent, 1)
	require.Equal(t, "world", string(sent[0]))
	require.Empty(t, f.Sent())
}

func TestDummyFacePollReflectsQueuedBytes(t *testing.T) {
	f := NewDummyFace()
	require.NoError(t, f.Open())

	ev, err := f.Poll(0)
	require.NoError(t, err)
	require.False(t, ev.Readable)

	f.FeedPacket([]byte("x"))
	ev, err = f.Poll(0)
	require.NoError(t, err)
	require.True(t, ev.Readable)
}

func TestDummyFaceClosedOperationsError(t *testing.T) {
	f := NewDummyFace()
	_, err := f.Read(make([]byte, 1))
	require.ErrorIs(t, err, ErrClosed)
	_, err = f.Write([]byte("x"))
	require.ErrorIs(t, err, ErrClosed)
	_, err = f.Poll(0)
	require.ErrorIs(t, err, ErrClosed)
}
