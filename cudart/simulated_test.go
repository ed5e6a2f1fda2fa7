package cudart

import (
	"runtime"
	"sync"
	"testing"
	"unsafe"

	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/require"
)

func TestSimulated_CurrentDevice(t *testing.T) {
	lockThread(t)
	sim := NewSimulated(3)
	require.Equal(t, 3, must.M1(sim.DeviceCount()))
	require.Equal(t, 0, must.M1(sim.GetDevice()))

	require.NoError(t, sim.SetDevice(2))
	require.Equal(t, 2, must.M1(sim.GetDevice()))
	require.NoError(t, sim.SetDevice(1))
	require.Equal(t, []int{2, 1}, sim.History())
	require.Equal(t, 2, sim.Calls(OpSetDevice))
	require.Equal(t, 2, sim.Calls(OpGetDevice))

	err := sim.SetDevice(3)
	require.True(t, IsStatus(err, ErrorInvalidDevice), "unexpected error %v", err)
	require.Equal(t, 1, must.M1(sim.GetDevice()), "failed SetDevice must not change the current device")
	require.Equal(t, []int{2, 1}, sim.History())

	sim.ResetCalls()
	require.Zero(t, sim.Calls(OpSetDevice))
	require.Empty(t, sim.History())
}

func TestSimulated_NoDevices(t *testing.T) {
	sim := NewSimulated(0)
	_, err := sim.GetDevice()
	require.True(t, IsStatus(err, ErrorNoDevice))
	_, err = sim.Malloc(8)
	require.True(t, IsStatus(err, ErrorNoDevice))
}

func TestSimulated_PerThread(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("simulated current device is only per-thread on linux")
	}
	sim := NewSimulated(4)
	var wg sync.WaitGroup
	var ready sync.WaitGroup
	results := make([]int, 4)
	ready.Add(4)
	for ordinal := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			must.M(sim.SetDevice(ordinal))
			ready.Done()
			ready.Wait() // All threads have switched before anyone reads.
			results[ordinal] = must.M1(sim.GetDevice())
		}()
	}
	wg.Wait()
	require.Equal(t, []int{0, 1, 2, 3}, results)
}

func TestSimulated_Attributes(t *testing.T) {
	sim := NewSimulated(2)
	require.Equal(t, 32, must.M1(sim.DeviceAttribute(0, AttrWarpSize)))
	require.Equal(t, 0x11, must.M1(sim.DeviceAttribute(1, AttrPciBusId)))

	sim.SetAttribute(1, AttrComputeCapabilityMajor, 9)
	require.Equal(t, 9, must.M1(sim.DeviceAttribute(1, AttrComputeCapabilityMajor)))
	require.Equal(t, 8, must.M1(sim.DeviceAttribute(0, AttrComputeCapabilityMajor)))

	_, err := sim.DeviceAttribute(2, AttrWarpSize)
	require.True(t, IsStatus(err, ErrorInvalidDevice))

	sim.RemoveAttribute(0, AttrWarpSize)
	_, err = sim.DeviceAttribute(0, AttrWarpSize)
	require.True(t, IsStatus(err, ErrorInvalidValue))
	require.Panics(t, func() { sim.SetAttribute(5, AttrWarpSize, 1) })
}

func TestSimulated_FailNext(t *testing.T) {
	lockThread(t)
	sim := NewSimulated(2)
	sim.FailNext(OpGetDevice, ErrorInitializationError)
	_, err := sim.GetDevice()
	require.True(t, IsStatus(err, ErrorInitializationError))
	require.ErrorContains(t, err, "cudaGetDevice() failed: initialization error")

	// Only the next call fails.
	require.Equal(t, 0, must.M1(sim.GetDevice()))
	require.Equal(t, 2, sim.Calls(OpGetDevice))
}

func TestSimulated_Memory(t *testing.T) {
	lockThread(t)
	sim := NewSimulated(2)
	must.M(sim.SetDevice(1))
	sim.SetMemoryLimit(1, 1024)

	ptr, err := sim.Malloc(1000)
	require.NoError(t, err)
	require.NotNil(t, ptr)
	require.Zero(t, uintptr(ptr)%SimulatedAlignment)
	require.Equal(t, uintptr(1000), sim.MemoryUsed(1))
	require.Zero(t, sim.MemoryUsed(0))

	// Memory is usable.
	data := unsafe.Slice((*byte)(ptr), 1000)
	data[999] = 7

	_, err = sim.Malloc(100)
	require.True(t, IsStatus(err, ErrorMemoryAllocation), "unexpected error %v", err)

	// Limit lowered below the memory in use: nothing else fits.
	sim.SetMemoryLimit(1, 512)
	_, err = sim.Malloc(8)
	require.True(t, IsStatus(err, ErrorMemoryAllocation), "unexpected error %v", err)
	sim.SetMemoryLimit(1, 1024)

	// Zero bytes allocations still return distinct addresses.
	zero1 := must.M1(sim.MallocManaged(0))
	zero2 := must.M1(sim.MallocManaged(0))
	require.NotEqual(t, zero1, zero2)
	require.Equal(t, 3, sim.LiveAllocations())

	require.NoError(t, sim.Free(ptr))
	require.NoError(t, sim.Free(zero1))
	require.NoError(t, sim.Free(zero2))
	require.NoError(t, sim.Free(nil))
	require.True(t, IsStatus(sim.Free(ptr), ErrorInvalidValue), "double free must fail")
	require.Zero(t, sim.MemoryUsed(1))
	require.Zero(t, sim.LiveAllocations())
}
