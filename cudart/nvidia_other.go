//go:build !linux

package cudart

// hasNvidiaGPU is only implemented on linux.
var hasNvidiaGPU = func() bool { return false }
