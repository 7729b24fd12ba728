// Package rusage reports process resource usage for the performance driver.
package rusage

// Usage is a snapshot of process resource consumption.
type Usage struct {
	// MaxRSS is the peak resident set size in bytes, 0 if unavailable.
	MaxRSS int64

	// UserSeconds and SystemSeconds are cumulative CPU times.
	UserSeconds   float64
	SystemSeconds float64
}
