package cache

import "errors"

// Sentinel errors for caching operations.
var (
	// ErrNetwork wraps failures talking to a remote backend (connection
	// refused, timeouts). Callers treat these as a miss and carry on.
	ErrNetwork = errors.New("cache backend unreachable")

	// ErrClosed is returned by operations on a closed cache.
	ErrClosed = errors.New("cache closed")
)

// IsNetwork reports whether err came from an unreachable backend.
func IsNetwork(err error) bool { return errors.Is(err, ErrNetwork) }
