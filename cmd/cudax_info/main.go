// cudax_info prints the devices visible to the CUDA runtime, their attributes, and checks that memory can be
// allocated on each of them.
//
// Without a CUDA build (see the "cuda" build tag), use -simulate=<n> to run against a simulated runtime.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/gomlx/cudax/container"
	"github.com/gomlx/cudax/cudart"
	"github.com/gomlx/cudax/device"
	"github.com/gomlx/cudax/memory"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/x448/float16"
	"k8s.io/klog/v2"
)

var (
	flagSimulate = flag.Int("simulate", 0, "If > 0, use a simulated runtime with this number of devices, "+
		"instead of the CUDA runtime. Same as setting "+cudart.SimulateEnv+".")
	flagElements = flag.Int("elements", 1<<20,
		"Number of float32 elements allocated on each device to check memory allocation.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if *flagSimulate > 0 {
		cudart.SetDefault(cudart.NewSimulated(*flagSimulate))
	}

	// The current device is a property of the thread: keep main on the same thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	numDevices, err := device.Count()
	if err != nil {
		klog.Errorf("No devices available: %v", err)
		os.Exit(1)
	}
	current := must.M1(device.Current())
	fmt.Printf("%d device(s), current device is %s\n", numDevices, current)

	for ordinal := range numDevices {
		dev := device.Device(ordinal)
		printDevice(dev)
		if err := checkAllocation(dev, *flagElements); err != nil {
			klog.Errorf("%+v", err)
			os.Exit(1)
		}
	}

	after := must.M1(device.Current())
	if after != current {
		klog.Fatalf("Current device changed from %s to %s", current, after)
	}
}

func printDevice(dev device.Device) {
	fmt.Printf("\n%s:\n", dev)
	major, minor, err := dev.ComputeCapability()
	if err == nil {
		fmt.Printf("\tCompute capability: %d.%d\n", major, minor)
	}
	printAttribute("Multiprocessors", device.MultiProcessorCount, dev)
	printAttribute("Max threads per block", device.MaxThreadsPerBlock, dev)
	printAttribute("Warp size", device.WarpSize, dev)
	printAttribute("L2 cache size", device.L2CacheSize, dev)
	printAttribute("PCI bus id", device.PciBusID, dev)
	printAttribute("Integrated", device.Integrated, dev)
	printAttribute("Unified addressing", device.UnifiedAddressing, dev)
	printAttribute("Managed memory", device.ManagedMemory, dev)
	printAttribute("Compute mode", device.ComputeMode, dev)
}

func printAttribute[T any](name string, attr device.Attribute[T], dev device.Device) {
	value, err := attr.Query(dev)
	if err != nil {
		klog.V(1).Infof("%s: %v", name, err)
		fmt.Printf("\t%s: n/a\n", name)
		return
	}
	fmt.Printf("\t%s: %v\n", name, value)
}

// checkAllocation allocates a buffer of float32 on dev, with dev as the current device, and if the device
// supports managed memory, a buffer of float16 written from the host.
func checkAllocation(dev device.Device, numElements int) error {
	return device.Do(dev, func() error {
		mr, err := memory.NewDeviceResource(dev)
		if err != nil {
			return err
		}
		buf, err := container.NewDevice[float32](mr, numElements)
		if err != nil {
			return errors.WithMessagef(err, "failed to allocate on %s", dev)
		}
		fmt.Printf("\tAllocated %s\n", buf)
		buf.Destroy()

		if managed, _ := device.ManagedMemory.Query(dev); !managed {
			return nil
		}
		managedMR, err := memory.NewManagedResource(dev)
		if err != nil {
			return err
		}
		halves, err := container.New[float16.Float16](managedMR, 16)
		if err != nil {
			return errors.WithMessagef(err, "failed to allocate managed memory on %s", dev)
		}
		defer halves.Destroy()
		values := container.HostSlice(halves)
		for ii := range values {
			values[ii] = float16.Fromfloat32(float32(ii) / 4)
		}
		fmt.Printf("\tAllocated %s, last value %s\n", halves, values[len(values)-1])
		return nil
	})
}
