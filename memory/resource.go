// Package memory defines Resource, the interface of memory allocators used by typed buffers, the capability
// markers resources use to declare where their memory is accessible from, and a few implementations:
// HostResource, DeviceResource and ManagedResource.
package memory

import (
	"fmt"
	"unsafe"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// fatalf terminates the process. It can be replaced in tests.
var fatalf = klog.Fatalf

// Resource allocates and deallocates raw memory.
//
// Deallocate is given the same pointer and size returned/used by Allocate. It cannot fail: resources that can
// fail to release memory must handle the failure themselves -- the implementations in this package terminate
// the process, since it signals a corrupted state.
//
// Resources are referenced, not owned, by the buffers allocated from them: they are usually pointer types, and
// they must outlive the buffers.
type Resource interface {
	Allocate(size uintptr) (unsafe.Pointer, error)
	Deallocate(ptr unsafe.Pointer, size uintptr)
}

// DeviceAccessibleProperty is embedded by resources whose memory is accessible from devices.
// It has no runtime representation, it only adds the DeviceAccessible marker method.
type DeviceAccessibleProperty struct{}

// DeviceAccessible marks the memory as accessible from devices.
func (DeviceAccessibleProperty) DeviceAccessible() {}

// HostAccessibleProperty is embedded by resources whose memory is accessible from the host.
// It has no runtime representation, it only adds the HostAccessible marker method.
type HostAccessibleProperty struct{}

// HostAccessible marks the memory as accessible from the host.
func (HostAccessibleProperty) HostAccessible() {}

// DeviceAccessibleResource is a Resource whose memory is accessible from devices.
// Use it as a type constraint to check the property at compile time.
type DeviceAccessibleResource interface {
	Resource
	DeviceAccessible()
}

// HostAccessibleResource is a Resource whose memory is accessible from the host.
// Use it as a type constraint to check the property at compile time.
type HostAccessibleResource interface {
	Resource
	HostAccessible()
}

// AllocationError is returned when a Resource fails to allocate memory.
//
// It is always returned wrapped with a stack trace (see github.com/pkg/errors), use errors.As to retrieve it.
type AllocationError struct {
	// Resource describes the resource that failed.
	Resource string

	// Size is the number of bytes requested.
	Size uintptr

	// Err is the underlying failure, if any (for instance a *cudart.Error).
	Err error
}

// Error implements the error interface.
func (e *AllocationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to allocate %d bytes from %s", e.Size, e.Resource)
	}
	return fmt.Sprintf("failed to allocate %d bytes from %s: %v", e.Size, e.Resource, e.Err)
}

// Unwrap returns the underlying failure.
func (e *AllocationError) Unwrap() error {
	return e.Err
}

// NewAllocationError returns an *AllocationError with a stack trace.
func NewAllocationError(resource any, size uintptr, err error) error {
	return errors.WithStack(&AllocationError{Resource: fmt.Sprint(resource), Size: size, Err: err})
}

// IsAllocationError returns whether err wraps an *AllocationError.
func IsAllocationError(err error) bool {
	var allocErr *AllocationError
	return errors.As(err, &allocErr)
}
