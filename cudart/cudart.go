/*
 *	Copyright 2024 Jan Pfeifer
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

// Package cudart defines the contract with the accelerator device runtime: querying and switching the
// current device of the calling OS thread, querying device attributes and allocating device memory.
//
// Two implementations are provided:
//
//   - The CUDA runtime binding, compiled in with `-tags cuda` on linux with cgo enabled.
//   - Simulated, an in-process runtime with configurable devices, used for tests and hardware-less setups.
//
// The process-wide runtime used by the device and memory packages is returned by Default, and can be
// changed with SetDefault.
package cudart

import (
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"unsafe"

	"k8s.io/klog/v2"
)

const (
	// SimulateEnv is the name of the environment variable that, when set to a number of devices, makes the default
	// runtime a Simulated one -- only if the CUDA runtime binding is not compiled in.
	SimulateEnv = "CUDAX_SIMULATE"
)

// Runtime is the device runtime contract.
//
// The current device is per OS thread: callers that need it to be stable across calls must keep their goroutine
// locked to its thread (see runtime.LockOSThread), which is what device.Guard does.
type Runtime interface {
	// DeviceCount returns the number of visible devices.
	DeviceCount() (int, error)

	// GetDevice returns the ordinal of the current device of the calling thread.
	GetDevice() (int, error)

	// SetDevice makes ordinal the current device of the calling thread.
	SetDevice(ordinal int) error

	// DeviceAttribute returns the raw value of the attribute for the device with the given ordinal.
	DeviceAttribute(ordinal int, attr Attribute) (int, error)
}

// Allocator is implemented by runtimes that can allocate device memory.
// Allocations happen on the current device of the calling thread.
type Allocator interface {
	// Malloc allocates size bytes of device memory.
	Malloc(size uintptr) (unsafe.Pointer, error)

	// MallocManaged allocates size bytes of unified (managed) memory, accessible from host and devices.
	MallocManaged(size uintptr) (unsafe.Pointer, error)

	// Free releases memory returned by Malloc or MallocManaged.
	Free(ptr unsafe.Pointer) error
}

// runtimeHolder allows storing interfaces in an atomic.Pointer.
type runtimeHolder struct {
	rt Runtime
}

var defaultRuntime atomic.Pointer[runtimeHolder]

func init() {
	defaultRuntime.Store(&runtimeHolder{rt: initialRuntime()})
}

// initialRuntime selects the default runtime: CUDA if compiled in, otherwise a Simulated one if requested
// by SimulateEnv, otherwise one that fails every call.
func initialRuntime() Runtime {
	if rt, ok := newCUDARuntime(); ok {
		return rt
	}
	value, found := os.LookupEnv(SimulateEnv)
	if !found || value == "" {
		return unavailable{}
	}
	numDevices, err := strconv.Atoi(value)
	if err != nil || numDevices < 0 {
		klog.Warningf("Invalid value for $%s=%q, it should be a number of devices: no device runtime available", SimulateEnv, value)
		return unavailable{}
	}
	klog.V(1).Infof("cudart: using simulated runtime with %d devices ($%s)", numDevices, SimulateEnv)
	return NewSimulated(numDevices)
}

// Default returns the process-wide device runtime.
func Default() Runtime {
	return defaultRuntime.Load().rt
}

// SetDefault changes the process-wide device runtime and returns the previous one, so it can be restored.
// Passing nil installs a runtime that fails every call.
//
// It is safe for concurrent use, but it doesn't affect guards or resources that already captured the
// previous runtime.
func SetDefault(rt Runtime) (previous Runtime) {
	if rt == nil {
		rt = unavailable{}
	}
	return defaultRuntime.Swap(&runtimeHolder{rt: rt}).rt
}

// unavailable is the runtime used when no device runtime is available.
type unavailable struct{}

var (
	_ Runtime   = unavailable{}
	_ Allocator = unavailable{}
)

const unavailableMessage = "no device runtime available: build with -tags cuda or set $" + SimulateEnv

// unavailableWarning makes sure the hardware probe runs at most once, and only if the unavailable runtime is used.
var unavailableWarning sync.Once

// warnUnusedGPU warns if there is an Nvidia GPU that can't be used because the CUDA runtime binding is not
// compiled in.
func warnUnusedGPU() {
	unavailableWarning.Do(func() {
		if !cudaCompiled && hasNvidiaGPU() {
			klog.Warningf("Nvidia GPU found, but the CUDA runtime binding is not compiled in: build with -tags cuda")
		}
	})
}

func (unavailable) DeviceCount() (int, error) {
	warnUnusedGPU()
	return 0, newError(OpDeviceCount, ErrorNoDevice, unavailableMessage)
}

func (unavailable) GetDevice() (int, error) {
	warnUnusedGPU()
	return -1, newError(OpGetDevice, ErrorNoDevice, unavailableMessage)
}

func (unavailable) SetDevice(ordinal int) error {
	return newError(OpSetDevice, ErrorNoDevice, unavailableMessage, ordinal)
}

func (unavailable) DeviceAttribute(ordinal int, attr Attribute) (int, error) {
	return 0, newError(OpDeviceGetAttribute, ErrorNoDevice, unavailableMessage, attr, ordinal)
}

func (unavailable) Malloc(size uintptr) (unsafe.Pointer, error) {
	return nil, newError(OpMalloc, ErrorNoDevice, unavailableMessage, size)
}

func (unavailable) MallocManaged(size uintptr) (unsafe.Pointer, error) {
	return nil, newError(OpMallocManaged, ErrorNoDevice, unavailableMessage, size)
}

func (unavailable) Free(ptr unsafe.Pointer) error {
	if ptr == nil {
		return nil
	}
	return newError(OpFree, ErrorNoDevice, unavailableMessage, ptr)
}
