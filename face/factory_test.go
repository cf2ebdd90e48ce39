package face

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFromURI(t *testing.T) {
	f, err := NewFromURI("unix:///tmp/ccnd.sock")
	require.NoError(t, err)
	require.IsType(t, &UnixFace{}, f)
	require.Equal(t, "/tmp/ccnd.sock", f.(*UnixFace).path)

	f, err = NewFromURI("tcp://127.0.0.1:9695")
	require.NoError(t, err)
	require.IsType(t, &TCPFace{}, f)

	f, err = NewFromURI("ws://localhost:9696/ccn")
	require.NoError(t, err)
	require.IsType(t, &WebSocketFace{}, f)

	_, err = NewFromURI("sctp://example.com")
	require.Error(t, err)
}
