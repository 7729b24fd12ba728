//go:build linux || freebsd || darwin

package rusage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_SelfReportsUsage(t *testing.T) {
	u, err := Self()
	require.NoError(t, err)
	require.Positive(t, u.MaxRSS, "a running process has a resident set")
	require.GreaterOrEqual(t, u.UserSeconds, 0.0)
	require.GreaterOrEqual(t, u.SystemSeconds, 0.0)
}
