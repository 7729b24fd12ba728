//go:build linux || freebsd || darwin

package rusage

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// Self returns resource usage for the current process.
func Self() (Usage, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return Usage{}, err
	}

	// Linux and FreeBSD report ru_maxrss in kilobytes, Darwin in bytes.
	maxRSS := int64(ru.Maxrss)
	if runtime.GOOS != "darwin" {
		maxRSS *= 1024
	}

	return Usage{
		MaxRSS:        maxRSS,
		UserSeconds:   seconds(ru.Utime),
		SystemSeconds: seconds(ru.Stime),
	}, nil
}

func seconds(tv unix.Timeval) float64 {
	return float64(tv.Sec) + float64(tv.Usec)/1e6
}
