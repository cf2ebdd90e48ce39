package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResolveAddressDefault(t *testing.T) {
	t.Setenv("CCN_LOCAL_PORT", "")
	require.Equal(t, defaultLocalSockname, ResolveAddress(""))
}

func TestResolveAddressWithSuffix(t *testing.T) {
	t.Setenv("CCN_LOCAL_PORT", "9695")
	require.Equal(t, defaultLocalSockname+".9695", ResolveAddress(""))
}

func TestResolveAddressSuffixTooLong(t *testing.T) {
	t.Setenv("CCN_LOCAL_PORT", "012345678901234")
	require.Equal(t, defaultLocalSockname, ResolveAddress(""))
}

func TestResolveAddressExplicitNameWins(t *testing.T) {
	t.Setenv("CCN_LOCAL_PORT", "9695")
	require.Equal(t, "/custom/sock", ResolveAddress("/custom/sock"))
}

func TestTapPath(t *testing.T) {
	t.Setenv("CCN_TAP", "")
	_, ok := TapPath(1234, time.Unix(100, 0))
	require.False(t, ok)

	t.Setenv("CCN_TAP", "/tmp/tap")
	path, ok := TapPath(1234, time.Unix(100, 0))
	require.True(t, ok)
	require.Contains(t, path, "/tmp/tap-1234-100-")
}

func TestDebugEnabled(t *testing.T) {
	t.Setenv("CCN_DEBUG", "")
	require.False(t, DebugEnabled())
	t.Setenv("CCN_DEBUG", "1")
	require.True(t, DebugEnabled())
}
