package device

import (
	"github.com/gomlx/cudax/cudart"
	"github.com/pkg/errors"
)

// Attribute is a device attribute whose value is decoded to the Go type T.
//
// The predefined attributes (MaxThreadsPerBlock, Integrated, ComputeMode, ...) fix the type of the value at
// compile time:
//
//	integrated, err := device.Integrated.Query(dev) // integrated is a bool.
type Attribute[T any] struct {
	id     cudart.Attribute
	decode func(raw int) T
}

// NewAttribute creates a typed attribute for id, with decode converting the raw runtime value to T.
// Use it for attributes not predefined in this package. The zero value of Attribute is not usable.
func NewAttribute[T any](id cudart.Attribute, decode func(raw int) T) Attribute[T] {
	return Attribute[T]{id: id, decode: decode}
}

// ID returns the runtime identifier of the attribute.
func (a Attribute[T]) ID() cudart.Attribute {
	return a.id
}

// String implements fmt.Stringer.
func (a Attribute[T]) String() string {
	return a.id.String()
}

// Query returns the value of the attribute for the device.
func (a Attribute[T]) Query(d Device) (T, error) {
	return a.QueryOn(cudart.Default(), d)
}

// QueryOn is like Query, but uses the given runtime.
func (a Attribute[T]) QueryOn(rt cudart.Runtime, d Device) (value T, err error) {
	if a.decode == nil {
		err = errors.Errorf("attribute %s of device %s has no decoder, create attributes with NewAttribute", a.id, d)
		return
	}
	raw, err := d.AttributeOn(rt, a.id)
	if err != nil {
		return
	}
	return a.decode(raw), nil
}

func intAttribute(id cudart.Attribute) Attribute[int] {
	return NewAttribute(id, func(raw int) int { return raw })
}

func boolAttribute(id cudart.Attribute) Attribute[bool] {
	return NewAttribute(id, func(raw int) bool { return raw != 0 })
}

// ComputeModeKind is the value of the ComputeMode attribute.
type ComputeModeKind int

const (
	// ComputeModeDefault allows multiple threads to use the device at the same time.
	ComputeModeDefault ComputeModeKind = 0

	// ComputeModeExclusive allows only one thread to use the device.
	ComputeModeExclusive ComputeModeKind = 1

	// ComputeModeProhibited doesn't allow any thread to use the device.
	ComputeModeProhibited ComputeModeKind = 2

	// ComputeModeExclusiveProcess allows only one process to use the device.
	ComputeModeExclusiveProcess ComputeModeKind = 3
)

// String implements fmt.Stringer.
func (k ComputeModeKind) String() string {
	switch k {
	case ComputeModeDefault:
		return "Default"
	case ComputeModeExclusive:
		return "Exclusive"
	case ComputeModeProhibited:
		return "Prohibited"
	case ComputeModeExclusiveProcess:
		return "ExclusiveProcess"
	}
	return "Unknown"
}

// Predefined typed attributes.
var (
	MaxThreadsPerBlock          = intAttribute(cudart.AttrMaxThreadsPerBlock)
	MaxBlockDimX                = intAttribute(cudart.AttrMaxBlockDimX)
	MaxBlockDimY                = intAttribute(cudart.AttrMaxBlockDimY)
	MaxBlockDimZ                = intAttribute(cudart.AttrMaxBlockDimZ)
	MaxGridDimX                 = intAttribute(cudart.AttrMaxGridDimX)
	MaxGridDimY                 = intAttribute(cudart.AttrMaxGridDimY)
	MaxGridDimZ                 = intAttribute(cudart.AttrMaxGridDimZ)
	MaxSharedMemoryPerBlock     = intAttribute(cudart.AttrMaxSharedMemoryPerBlock)
	TotalConstantMemory         = intAttribute(cudart.AttrTotalConstantMemory)
	WarpSize                    = intAttribute(cudart.AttrWarpSize)
	ClockRateKHz                = intAttribute(cudart.AttrClockRate)
	MultiProcessorCount         = intAttribute(cudart.AttrMultiProcessorCount)
	KernelExecTimeout           = boolAttribute(cudart.AttrKernelExecTimeout)
	Integrated                  = boolAttribute(cudart.AttrIntegrated)
	CanMapHostMemory            = boolAttribute(cudart.AttrCanMapHostMemory)
	ConcurrentKernels           = boolAttribute(cudart.AttrConcurrentKernels)
	EccEnabled                  = boolAttribute(cudart.AttrEccEnabled)
	PciBusID                    = intAttribute(cudart.AttrPciBusId)
	PciDeviceID                 = intAttribute(cudart.AttrPciDeviceId)
	PciDomainID                 = intAttribute(cudart.AttrPciDomainId)
	MemoryClockRateKHz          = intAttribute(cudart.AttrMemoryClockRate)
	GlobalMemoryBusWidth        = intAttribute(cudart.AttrGlobalMemoryBusWidth)
	L2CacheSize                 = intAttribute(cudart.AttrL2CacheSize)
	MaxThreadsPerMultiProcessor = intAttribute(cudart.AttrMaxThreadsPerMultiProcessor)
	AsyncEngineCount            = intAttribute(cudart.AttrAsyncEngineCount)
	UnifiedAddressing           = boolAttribute(cudart.AttrUnifiedAddressing)
	ComputeCapabilityMajor      = intAttribute(cudart.AttrComputeCapabilityMajor)
	ComputeCapabilityMinor      = intAttribute(cudart.AttrComputeCapabilityMinor)
	ManagedMemory               = boolAttribute(cudart.AttrManagedMemory)
	IsMultiGpuBoard             = boolAttribute(cudart.AttrIsMultiGpuBoard)
	ConcurrentManagedAccess     = boolAttribute(cudart.AttrConcurrentManagedAccess)

	ComputeMode = NewAttribute(cudart.AttrComputeMode, func(raw int) ComputeModeKind { return ComputeModeKind(raw) })
)
