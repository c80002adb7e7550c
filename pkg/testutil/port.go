package testutil

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

// GetFreePort returns a localhost TCP port that was free a moment ago. The listener used to find it is
// closed before returning, so the caller can bind it.
func GetFreePort(t *testing.T) int {
	t.Helper()

	var lc net.ListenConfig

	l, err := lc.Listen(t.Context(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer func() { require.NoError(t, l.Close()) }()

	addr, ok := l.Addr().(*net.TCPAddr)
	require.True(t, ok, "unexpected address type %T", l.Addr())

	return addr.Port
}
