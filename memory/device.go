package memory

import (
	"fmt"
	"unsafe"

	"github.com/gomlx/cudax/cudart"
	"github.com/gomlx/cudax/device"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// runtimeAllocator allocates memory with a cudart.Allocator, always with a given device as the current device.
type runtimeAllocator struct {
	dev     device.Device
	rt      cudart.Runtime
	alloc   cudart.Allocator
	managed bool
}

func newRuntimeAllocator(rt cudart.Runtime, dev device.Device, managed bool) (runtimeAllocator, error) {
	alloc, ok := rt.(cudart.Allocator)
	if !ok {
		return runtimeAllocator{}, errors.Errorf("device runtime %T doesn't support allocating memory (it doesn't implement cudart.Allocator)", rt)
	}
	return runtimeAllocator{dev: dev, rt: rt, alloc: alloc, managed: managed}, nil
}

// Device returns the device the memory is allocated on.
func (a *runtimeAllocator) Device() device.Device {
	return a.dev
}

func (a *runtimeAllocator) kind() string {
	if a.managed {
		return "ManagedResource"
	}
	return "DeviceResource"
}

// String implements fmt.Stringer.
func (a *runtimeAllocator) String() string {
	return fmt.Sprintf("%s(%s)", a.kind(), a.dev)
}

// Allocate implements Resource.
func (a *runtimeAllocator) Allocate(size uintptr) (ptr unsafe.Pointer, err error) {
	err = device.DoOn(a.rt, a.dev, func() (err error) {
		if a.managed {
			ptr, err = a.alloc.MallocManaged(size)
		} else {
			ptr, err = a.alloc.Malloc(size)
		}
		return
	})
	if err != nil {
		if ptr != nil {
			// Allocated, but restoring the previous device failed: release it before reporting the failure.
			a.release(ptr, size)
		}
		return nil, NewAllocationError(a, size, err)
	}
	klog.V(2).Infof("memory: %s allocated %d bytes at %p", a, size, ptr)
	return ptr, nil
}

// Deallocate implements Resource. A failure to free the memory terminates the process.
func (a *runtimeAllocator) Deallocate(ptr unsafe.Pointer, size uintptr) {
	if ptr == nil {
		return
	}
	if !a.release(ptr, size) {
		return
	}
	klog.V(2).Infof("memory: %s deallocated %d bytes at %p", a, size, ptr)
}

// release frees ptr on the resource's device. A failure terminates the process.
func (a *runtimeAllocator) release(ptr unsafe.Pointer, size uintptr) bool {
	err := device.DoOn(a.rt, a.dev, func() error { return a.alloc.Free(ptr) })
	if err != nil {
		fatalf("%s failed to deallocate %d bytes at %p: %+v", a, size, ptr, err)
		return false
	}
	return true
}

// DeviceResource allocates memory on a device.
//
// Allocations and deallocations temporarily make its device current, with a device.Guard.
type DeviceResource struct {
	DeviceAccessibleProperty
	runtimeAllocator
}

var _ DeviceAccessibleResource = (*DeviceResource)(nil)

// NewDeviceResource creates a DeviceResource for dev, using the default runtime.
func NewDeviceResource(dev device.Device) (*DeviceResource, error) {
	return NewDeviceResourceOn(cudart.Default(), dev)
}

// NewDeviceResourceOn creates a DeviceResource for dev, using the given runtime.
// The runtime must implement cudart.Allocator.
func NewDeviceResourceOn(rt cudart.Runtime, dev device.Device) (*DeviceResource, error) {
	alloc, err := newRuntimeAllocator(rt, dev, false)
	if err != nil {
		return nil, err
	}
	return &DeviceResource{runtimeAllocator: alloc}, nil
}

// ManagedResource allocates unified memory, accessible from the host and from the devices, associated with a device.
type ManagedResource struct {
	DeviceAccessibleProperty
	HostAccessibleProperty
	runtimeAllocator
}

var (
	_ DeviceAccessibleResource = (*ManagedResource)(nil)
	_ HostAccessibleResource   = (*ManagedResource)(nil)
)

// NewManagedResource creates a ManagedResource for dev, using the default runtime.
func NewManagedResource(dev device.Device) (*ManagedResource, error) {
	return NewManagedResourceOn(cudart.Default(), dev)
}

// NewManagedResourceOn creates a ManagedResource for dev, using the given runtime.
// The runtime must implement cudart.Allocator.
func NewManagedResourceOn(rt cudart.Runtime, dev device.Device) (*ManagedResource, error) {
	alloc, err := newRuntimeAllocator(rt, dev, true)
	if err != nil {
		return nil, err
	}
	return &ManagedResource{runtimeAllocator: alloc}, nil
}
