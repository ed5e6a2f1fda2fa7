package memory

// This file defines AlignedAlloc and AlignedFree, modelled after mm_malloc.

/*
#include <stdlib.h>
*/
import "C"
import (
	"unsafe"

	"github.com/pkg/errors"
)

// DefaultHostAlignment is the default alignment of host allocations, a cache line.
const DefaultHostAlignment = 64

// headerSize is the space needed before the aligned pointer to store the original allocation.
const headerSize = unsafe.Sizeof(uintptr(0))

// checkAlignment returns an error if alignment is not a power of 2 multiple of 8.
func checkAlignment(alignment uintptr) error {
	if alignment < 8 || alignment&(alignment-1) != 0 {
		return errors.Errorf("alignment must be a power of 2 and at least 8, got %d", alignment)
	}
	return nil
}

// AlignedAlloc allocates size bytes of C memory whose address is a multiple of alignment, filled with 0s.
// The pointer returned must be freed with AlignedFree.
//
// Zero sized allocations return a valid, distinct, pointer.
//
// It over-allocates alignment bytes, and stores the pointer to the original allocation just before the
// aligned pointer.
func AlignedAlloc(size, alignment uintptr) (unsafe.Pointer, error) {
	if err := checkAlignment(alignment); err != nil {
		return nil, err
	}
	if size > ^uintptr(0)-alignment {
		return nil, errors.Errorf("allocation of %d bytes is too large", size)
	}
	ptr := unsafe.Pointer(C.calloc(C.size_t(size+alignment), 1))
	if ptr == nil {
		return nil, errors.Errorf("calloc failed to allocate %d bytes", size+alignment)
	}

	// malloc aligns at least to 8 bytes (>= headerSize), so if the original pointer is already aligned, we still
	// skip a whole alignment to have space for the header.
	offset := alignment - uintptr(ptr)%alignment
	aligned := unsafe.Add(ptr, offset)
	*(*uintptr)(unsafe.Add(aligned, -int(headerSize))) = uintptr(ptr)
	return aligned, nil
}

// AlignedFree frees an allocation created with AlignedAlloc. It is a no-op for nil.
func AlignedFree(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	original := *(*uintptr)(unsafe.Add(ptr, -int(headerSize)))
	C.free(unsafe.Pointer(original))
}
