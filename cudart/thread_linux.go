//go:build linux

package cudart

import "golang.org/x/sys/unix"

// currentThreadID identifies the OS thread running the caller, used to keep one current device per thread.
func currentThreadID() int {
	return unix.Gettid()
}
