package device

// Common initialization and testing tools for all test files.

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/gomlx/cudax/cudart"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
)

func init() {
	klog.InitFlags(nil)
}

// useSimulated installs a simulated runtime with numDevices as the default runtime for the duration of the test.
// It also locks the test goroutine to its thread, so the current device is stable across calls.
func useSimulated(t *testing.T, numDevices int) *cudart.Simulated {
	runtime.LockOSThread()
	sim := cudart.NewSimulated(numDevices)
	previous := cudart.SetDefault(sim)
	t.Cleanup(func() {
		cudart.SetDefault(previous)
		runtime.UnlockOSThread()
	})
	return sim
}

// currentOrdinal returns the current device of the test thread, failing the test on error.
func currentOrdinal(t *testing.T) int {
	dev, err := Current()
	require.NoError(t, err)
	return dev.Ordinal()
}

func TestDevice(t *testing.T) {
	dev := Device(3)
	require.Equal(t, 3, dev.Ordinal())
	require.Equal(t, "cuda:3", dev.String())
	require.True(t, Device(1) < Device(2))
	require.Equal(t, Device(2), Device(2))

	// Any integer is accepted, even if invalid.
	require.Equal(t, -5, Device(-5).Ordinal())
}

func TestCountAndCurrent(t *testing.T) {
	sim := useSimulated(t, 4)
	require.Equal(t, 4, must.M1(Count()))
	require.Equal(t, Device(0), must.M1(Current()))
	must.M(sim.SetDevice(2))
	require.Equal(t, Device(2), must.M1(Current()))

	sim.FailNext(cudart.OpDeviceCount, cudart.ErrorInsufficientDriver)
	_, err := Count()
	require.True(t, cudart.IsStatus(err, cudart.ErrorInsufficientDriver))
	require.ErrorContains(t, err, "failed to count devices")
}

func TestAttributes(t *testing.T) {
	sim := useSimulated(t, 2)
	dev := Device(1)

	var maxThreads int = must.M1(MaxThreadsPerBlock.Query(dev))
	require.Equal(t, 1024, maxThreads)
	var integrated bool = must.M1(Integrated.Query(dev))
	require.False(t, integrated)
	require.True(t, must.M1(UnifiedAddressing.Query(dev)))
	require.Equal(t, ComputeModeDefault, must.M1(ComputeMode.Query(dev)))

	sim.SetAttribute(1, cudart.AttrComputeMode, 3)
	mode := must.M1(ComputeMode.Query(dev))
	require.Equal(t, ComputeModeExclusiveProcess, mode)
	require.Equal(t, "ExclusiveProcess", mode.String())
	require.Equal(t, ComputeModeDefault, must.M1(ComputeMode.Query(0)), "device 0 unchanged")

	sim.SetAttribute(1, cudart.AttrComputeCapabilityMajor, 9)
	sim.SetAttribute(1, cudart.AttrComputeCapabilityMinor, 0)
	major, minor, err := dev.ComputeCapability()
	require.NoError(t, err)
	require.Equal(t, [2]int{9, 0}, [2]int{major, minor})

	require.Equal(t, 32, must.M1(dev.Attribute(cudart.AttrWarpSize)))
	require.Equal(t, "WarpSize", WarpSize.String())
	require.Equal(t, cudart.AttrWarpSize, WarpSize.ID())

	// Queries have no side effects on the current device.
	require.Equal(t, 0, currentOrdinal(t))
	require.Zero(t, sim.Calls(cudart.OpSetDevice))
}

func TestAttributes_Errors(t *testing.T) {
	sim := useSimulated(t, 2)
	_, err := MaxThreadsPerBlock.Query(7)
	require.True(t, cudart.IsStatus(err, cudart.ErrorInvalidDevice), "unexpected error %v", err)
	require.ErrorContains(t, err, "failed to query attribute MaxThreadsPerBlock of device cuda:7")

	sim.RemoveAttribute(0, cudart.AttrIsMultiGpuBoard)
	_, err = IsMultiGpuBoard.Query(0)
	require.True(t, cudart.IsStatus(err, cudart.ErrorInvalidValue))

	sim.FailNext(cudart.OpDeviceGetAttribute, cudart.ErrorUnknown)
	_, _, err = Device(0).ComputeCapability()
	require.True(t, cudart.IsStatus(err, cudart.ErrorUnknown))
}

func TestAttributes_ExplicitRuntime(t *testing.T) {
	sim := cudart.NewSimulated(1)
	sim.SetAttribute(0, cudart.AttrMultiProcessorCount, 132)
	require.Equal(t, 132, must.M1(MultiProcessorCount.QueryOn(sim, 0)))

	// Custom attribute decoding.
	busWidthBytes := NewAttribute(cudart.AttrGlobalMemoryBusWidth, func(raw int) string {
		return fmt.Sprintf("%d bytes", raw/8)
	})
	require.Equal(t, "640 bytes", must.M1(busWidthBytes.QueryOn(sim, 0)))
}

func TestAttributes_ZeroValue(t *testing.T) {
	sim := cudart.NewSimulated(1)
	var attr Attribute[int]
	require.NotPanics(t, func() {
		_, err := attr.QueryOn(sim, 0)
		require.ErrorContains(t, err, "has no decoder")
	})
	require.Zero(t, sim.Calls(cudart.OpDeviceGetAttribute), "no runtime call without a decoder")
}
