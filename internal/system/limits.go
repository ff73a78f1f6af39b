package system

import (
	"fmt"
	"syscall"
)

// RaiseFileLimit lifts the soft open-file limit to want, capped at the hard
// limit, and returns the limit now in effect. A soft limit already above
// want is left alone.
func RaiseFileLimit(want uint64) (uint64, error) {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		return 0, fmt.Errorf("get file limit: %w", err)
	}
	if rLimit.Cur >= want {
		return rLimit.Cur, nil
	}

	rLimit.Cur = want
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}
	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		return 0, fmt.Errorf("set file limit: %w", err)
	}
	return rLimit.Cur, nil
}
