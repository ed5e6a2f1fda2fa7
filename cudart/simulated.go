package cudart

import (
	"fmt"
	"slices"
	"sync"
	"unsafe"

	"k8s.io/klog/v2"
)

const (
	// SimulatedAlignment is the alignment of the memory returned by Simulated.Malloc, the same guaranteed
	// by cudaMalloc.
	SimulatedAlignment = 256

	// DefaultSimulatedMemory is the memory limit of each simulated device, unless changed with SetMemoryLimit.
	DefaultSimulatedMemory = 16 << 30
)

// Simulated is an in-process Runtime and Allocator.
//
// Like the CUDA runtime, it keeps one current device per OS thread (on linux; on other platforms all threads
// share one current device), and every thread starts with device 0 as its current device.
// Goroutines using it across calls should be locked to their thread, see runtime.LockOSThread.
//
// Device memory is simulated with Go allocated memory, kept alive by Simulated until freed.
//
// It also records calls, the history of device switches and allows injecting failures, so it can be used
// in tests.
//
// It is safe for concurrent use.
type Simulated struct {
	mu          sync.Mutex
	devices     []*simulatedDevice
	current     map[int]int // thread id -> current device ordinal.
	calls       map[Op]int
	history     []int
	failures    map[Op]Status
	allocations map[uintptr]*simulatedAllocation
}

type simulatedDevice struct {
	attributes  map[Attribute]int
	memoryLimit uintptr
	memoryUsed  uintptr
}

type simulatedAllocation struct {
	buf     []byte
	ordinal int
	size    uintptr
	managed bool
}

var (
	_ Runtime   = (*Simulated)(nil)
	_ Allocator = (*Simulated)(nil)
)

// NewSimulated creates a simulated runtime with numDevices devices, all with the same default attributes
// (loosely modelled after a data center GPU) and DefaultSimulatedMemory of memory.
func NewSimulated(numDevices int) *Simulated {
	s := &Simulated{
		current:     make(map[int]int),
		calls:       make(map[Op]int),
		failures:    make(map[Op]Status),
		allocations: make(map[uintptr]*simulatedAllocation),
	}
	for ordinal := range numDevices {
		attributes := defaultSimulatedAttributes()
		attributes[AttrPciBusId] = 0x10 + ordinal
		s.devices = append(s.devices, &simulatedDevice{
			attributes:  attributes,
			memoryLimit: DefaultSimulatedMemory,
		})
	}
	return s
}

func defaultSimulatedAttributes() map[Attribute]int {
	return map[Attribute]int{
		AttrMaxThreadsPerBlock:          1024,
		AttrMaxBlockDimX:                1024,
		AttrMaxBlockDimY:                1024,
		AttrMaxBlockDimZ:                64,
		AttrMaxGridDimX:                 2147483647,
		AttrMaxGridDimY:                 65535,
		AttrMaxGridDimZ:                 65535,
		AttrMaxSharedMemoryPerBlock:     48 << 10,
		AttrTotalConstantMemory:         64 << 10,
		AttrWarpSize:                    32,
		AttrClockRate:                   1410000,
		AttrMultiProcessorCount:         108,
		AttrKernelExecTimeout:           0,
		AttrIntegrated:                  0,
		AttrCanMapHostMemory:            1,
		AttrComputeMode:                 0,
		AttrConcurrentKernels:           1,
		AttrEccEnabled:                  1,
		AttrPciDeviceId:                 0,
		AttrMemoryClockRate:             1215000,
		AttrGlobalMemoryBusWidth:        5120,
		AttrL2CacheSize:                 40 << 20,
		AttrMaxThreadsPerMultiProcessor: 2048,
		AttrAsyncEngineCount:            3,
		AttrUnifiedAddressing:           1,
		AttrPciDomainId:                 0,
		AttrComputeCapabilityMajor:      8,
		AttrComputeCapabilityMinor:      0,
		AttrManagedMemory:               1,
		AttrIsMultiGpuBoard:             0,
		AttrConcurrentManagedAccess:     1,
	}
}

// SetAttribute sets (or adds) the value of an attribute of a simulated device.
// It panics if ordinal is not a valid simulated device.
func (s *Simulated) SetAttribute(ordinal int, attr Attribute, value int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustDevice(ordinal).attributes[attr] = value
}

// RemoveAttribute makes queries for the attribute on the device fail with ErrorInvalidValue.
func (s *Simulated) RemoveAttribute(ordinal int, attr Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.mustDevice(ordinal).attributes, attr)
}

// SetMemoryLimit sets the number of bytes that can be allocated on the simulated device.
func (s *Simulated) SetMemoryLimit(ordinal int, limit uintptr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustDevice(ordinal).memoryLimit = limit
}

// FailNext makes the next call to op fail with the given code. Only the next call is affected.
func (s *Simulated) FailNext(op Op, code Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = code
}

// Calls returns how many times op was called, including failed calls.
func (s *Simulated) Calls(op Op) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// History returns the devices successfully made current by SetDevice, in order, across all threads.
func (s *Simulated) History() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history)
}

// ResetCalls clears the call counters and the SetDevice history.
func (s *Simulated) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.calls)
	s.history = nil
}

// MemoryUsed returns the number of bytes currently allocated on the simulated device.
func (s *Simulated) MemoryUsed(ordinal int) uintptr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mustDevice(ordinal).memoryUsed
}

// LiveAllocations returns the number of allocations not yet freed.
func (s *Simulated) LiveAllocations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.allocations)
}

// String implements fmt.Stringer.
func (s *Simulated) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("cudart.Simulated(%d devices)", len(s.devices))
}

func (s *Simulated) mustDevice(ordinal int) *simulatedDevice {
	if ordinal < 0 || ordinal >= len(s.devices) {
		panic(fmt.Sprintf("cudart.Simulated: invalid device ordinal %d, only %d devices", ordinal, len(s.devices)))
	}
	return s.devices[ordinal]
}

// enter counts the call and returns the injected failure, if any. It must be called with s.mu locked.
func (s *Simulated) enter(op Op, args ...any) error {
	s.calls[op]++
	if code, found := s.failures[op]; found {
		delete(s.failures, op)
		return newError(op, code, "", args...)
	}
	return nil
}

// currentLocked returns the current device of the calling thread. It must be called with s.mu locked.
func (s *Simulated) currentLocked() int {
	return s.current[currentThreadID()] // Defaults to 0.
}

// DeviceCount implements Runtime.
func (s *Simulated) DeviceCount() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpDeviceCount); err != nil {
		return 0, err
	}
	return len(s.devices), nil
}

// GetDevice implements Runtime.
func (s *Simulated) GetDevice() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpGetDevice); err != nil {
		return -1, err
	}
	if len(s.devices) == 0 {
		return -1, newError(OpGetDevice, ErrorNoDevice, "")
	}
	return s.currentLocked(), nil
}

// SetDevice implements Runtime.
func (s *Simulated) SetDevice(ordinal int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpSetDevice, ordinal); err != nil {
		return err
	}
	if ordinal < 0 || ordinal >= len(s.devices) {
		return newError(OpSetDevice, ErrorInvalidDevice, "", ordinal)
	}
	s.current[currentThreadID()] = ordinal
	s.history = append(s.history, ordinal)
	return nil
}

// DeviceAttribute implements Runtime.
func (s *Simulated) DeviceAttribute(ordinal int, attr Attribute) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpDeviceGetAttribute, attr, ordinal); err != nil {
		return 0, err
	}
	if ordinal < 0 || ordinal >= len(s.devices) {
		return 0, newError(OpDeviceGetAttribute, ErrorInvalidDevice, "", attr, ordinal)
	}
	value, found := s.devices[ordinal].attributes[attr]
	if !found {
		return 0, newError(OpDeviceGetAttribute, ErrorInvalidValue, "", attr, ordinal)
	}
	return value, nil
}

// Malloc implements Allocator.
func (s *Simulated) Malloc(size uintptr) (unsafe.Pointer, error) {
	return s.malloc(OpMalloc, size, false)
}

// MallocManaged implements Allocator.
func (s *Simulated) MallocManaged(size uintptr) (unsafe.Pointer, error) {
	return s.malloc(OpMallocManaged, size, true)
}

func (s *Simulated) malloc(op Op, size uintptr, managed bool) (unsafe.Pointer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(op, size); err != nil {
		return nil, err
	}
	if len(s.devices) == 0 {
		return nil, newError(op, ErrorNoDevice, "", size)
	}
	ordinal := s.currentLocked()
	dev := s.devices[ordinal]
	if dev.memoryUsed > dev.memoryLimit || size > dev.memoryLimit-dev.memoryUsed {
		return nil, newError(op, ErrorMemoryAllocation, "", size)
	}

	// Over-allocate to align the start, and never return the same address twice, even for 0 bytes.
	buf := make([]byte, size+SimulatedAlignment)
	addr := uintptr(unsafe.Pointer(&buf[0]))
	shift := (SimulatedAlignment - addr%SimulatedAlignment) % SimulatedAlignment
	ptr := unsafe.Pointer(&buf[shift])
	s.allocations[uintptr(ptr)] = &simulatedAllocation{buf: buf, ordinal: ordinal, size: size, managed: managed}
	dev.memoryUsed += size
	klog.V(3).Infof("cudart.Simulated: %s(%d) on device %d -> %p", op, size, ordinal, ptr)
	return ptr, nil
}

// Free implements Allocator.
func (s *Simulated) Free(ptr unsafe.Pointer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpFree, ptr); err != nil {
		return err
	}
	if ptr == nil {
		return nil
	}
	allocation, found := s.allocations[uintptr(ptr)]
	if !found {
		return newError(OpFree, ErrorInvalidValue, "", ptr)
	}
	delete(s.allocations, uintptr(ptr))
	s.devices[allocation.ordinal].memoryUsed -= allocation.size
	return nil
}
