//go:build !linux

package cudart

// currentThreadID returns always 0: on non-linux platforms the simulated current device is shared by all threads.
func currentThreadID() int { return 0 }
