package client

import (
	"testing"

	"github.com/akaash-nigam/ccnx/face"
	"github.com/akaash-nigam/ccnx/wire"
	"github.com/stretchr/testify/require"
)

func TestConnectRejectsDoubleConnect(t *testing.T) {
	h, _ := newTestHandle()
	require.NoError(t, h.Connect("ignored"))
	require.ErrorIs(t, h.Connect("ignored"), ErrAlreadyInUse)
}

func TestConnectDerivesUnixFaceWhenNoneProvided(t *testing.T) {
	h := NewHandle()
	require.Nil(t, h.face)

	t.Setenv("CCN_LOCAL_PORT", "")
	err := h.Connect("/nonexistent/ccnx-test.sock")
	// Dialing an address that doesn't exist must fail, but the Handle
	// must still have derived a *face.UnixFace rather than erroring out
	// before trying.
	require.Error(t, err)
	_, ok := h.face.(*face.UnixFace)
	require.True(t, ok)
}

func TestDisconnectClearsBuffersButKeepsTables(t *testing.T) {
	h, _ := newTestHandle()
	require.NoError(t, h.Connect("ignored"))
	require.NoError(t, h.ExpressInterest([][]byte{[]byte("kept")}, nil, nil))

	h.inbuf = []byte{1, 2, 3}
	h.outbuf = []byte{4, 5, 6}
	h.outbufIndex = 1

	require.NoError(t, h.Disconnect())
	require.Empty(t, h.inbuf)
	require.Empty(t, h.outbuf)
	require.Zero(t, h.outbufIndex)
	require.Equal(t, 1, h.interests.Len())
}

func TestDestroyReleasesEveryClosureExactlyOnce(t *testing.T) {
	h, _ := newTestHandle()
	require.NoError(t, h.Connect("ignored"))

	var finals int
	onFinal := func(info *UpcallInfo) UpcallResult {
		if info.Kind == UpcallFinal {
			finals++
		}
		return ResultOK
	}

	require.NoError(t, h.ExpressInterest([][]byte{[]byte("i1")}, NewClosure(onFinal), nil))
	require.NoError(t, h.ExpressInterest([][]byte{[]byte("i2")}, NewClosure(onFinal), nil))
	require.NoError(t, h.SetInterestFilter([][]byte{[]byte("f1")}, NewClosure(onFinal)))
	h.SetDefaultInterestHandler(NewClosure(onFinal))
	h.SetDefaultContentHandler(NewClosure(onFinal))

	require.NoError(t, h.Destroy())
	require.Equal(t, 5, finals)
}

func TestSetInterestFilterInstallsAndRemoves(t *testing.T) {
	h, f := newTestHandle()
	require.NoError(t, h.Connect("ignored"))

	var hits int
	action := NewClosure(func(info *UpcallInfo) UpcallResult {
		hits++
		return ResultOK
	})
	require.NoError(t, h.SetInterestFilter([][]byte{[]byte("watched")}, action))
	require.Equal(t, 1, h.interestFilters.Len())

	msg := wire.BuildInterest([][]byte{[]byte("watched")}, nil)
	f.FeedPacket(msg)
	require.NoError(t, h.processInput())
	require.Equal(t, 1, hits)

	require.NoError(t, h.SetInterestFilter([][]byte{[]byte("watched")}, nil))
	require.Equal(t, 0, h.interestFilters.Len())
}
