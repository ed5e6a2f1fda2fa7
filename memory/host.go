package memory

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"
)

// HostResource allocates pageable host memory, aligned to a configurable alignment.
type HostResource struct {
	HostAccessibleProperty

	alignment uintptr
	live      atomic.Int64
}

var _ HostAccessibleResource = (*HostResource)(nil)

// NewHostResource creates a HostResource aligned to DefaultHostAlignment.
func NewHostResource() *HostResource {
	return &HostResource{alignment: DefaultHostAlignment}
}

// NewHostResourceWithAlignment creates a HostResource whose allocations are aligned to alignment, which must be
// a power of 2 of at least 8.
func NewHostResourceWithAlignment(alignment uintptr) (*HostResource, error) {
	if err := checkAlignment(alignment); err != nil {
		return nil, errors.WithMessage(err, "memory.NewHostResourceWithAlignment")
	}
	return &HostResource{alignment: alignment}, nil
}

// Alignment of the allocations.
func (r *HostResource) Alignment() uintptr {
	return r.alignment
}

// LiveAllocations returns the number of allocations not yet deallocated.
func (r *HostResource) LiveAllocations() int64 {
	return r.live.Load()
}

// String implements fmt.Stringer.
func (r *HostResource) String() string {
	return fmt.Sprintf("HostResource(alignment=%d)", r.alignment)
}

// Allocate implements Resource.
func (r *HostResource) Allocate(size uintptr) (unsafe.Pointer, error) {
	ptr, err := AlignedAlloc(size, r.alignment)
	if err != nil {
		return nil, NewAllocationError(r, size, err)
	}
	r.live.Add(1)
	return ptr, nil
}

// Deallocate implements Resource.
func (r *HostResource) Deallocate(ptr unsafe.Pointer, _ uintptr) {
	if ptr == nil {
		return
	}
	AlignedFree(ptr)
	r.live.Add(-1)
}
