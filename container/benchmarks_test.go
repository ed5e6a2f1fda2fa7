package container

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/gomlx/cudax/cudart"
	"github.com/gomlx/cudax/memory"
	"github.com/janpfeifer/must"
)

var benchmarkCounts = []int{1, 100, 10_000, 1_000_000}

// BenchmarkNew_Host measures allocating and destroying buffers of float32 from host memory.
func BenchmarkNew_Host(b *testing.B) {
	mr := memory.NewHostResource()
	for _, count := range benchmarkCounts {
		b.Run(fmt.Sprintf("count=%d", count), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				buf := must.M1(New[float32](mr, count))
				buf.Destroy()
			}
		})
	}
}

// BenchmarkNew_Device measures allocating and destroying buffers on a simulated device other than the current
// one, so each allocation and deallocation switches devices.
func BenchmarkNew_Device(b *testing.B) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	sim := cudart.NewSimulated(2)
	mr := must.M1(memory.NewDeviceResourceOn(sim, 1))
	for _, count := range benchmarkCounts {
		b.Run(fmt.Sprintf("count=%d", count), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				buf := must.M1(NewDevice[float32](mr, count))
				buf.Destroy()
			}
		})
	}
}

// BenchmarkMove measures transferring ownership between buffers.
func BenchmarkMove(b *testing.B) {
	mr := memory.NewHostResource()
	buf := must.M1(New[float32](mr, 1024))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = buf.Move()
	}
	b.StopTimer()
	buf.Destroy()
}
