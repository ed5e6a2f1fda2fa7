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

// Package container provides Buffer, a typed buffer of uninitialized memory allocated from a memory.Resource.
package container

import (
	"fmt"
	"math/bits"
	"os"
	"reflect"
	"runtime"
	"unsafe"

	"github.com/gomlx/cudax/memory"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

const (
	// StacksEnv is the name of the environment variable that, if set, makes buffers record the stack where they
	// were created, to be included in leak reports.
	StacksEnv = "CUDAX_BUFFER_STACKS"
)

var recordStacks = os.Getenv(StacksEnv) != ""

// leakf reports buffers garbage collected without being destroyed. It can be replaced in tests.
var leakf = klog.Errorf

// noCopy may be embedded into structs which must not be copied after first use.
// See https://golang.org/issues/8005#issuecomment-190753527: `go vet` copylocks checker flags copies.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// storage is the allocation owned by a Buffer.
type storage struct {
	ptr   unsafe.Pointer
	size  uintptr
	stack []byte
}

// Buffer is a typed buffer of uninitialized memory, for Len() elements of type T, allocated from a resource of
// type R.
//
// The memory is not initialized, and Buffer never constructs nor destroys values of T: if T requires any
// initialization or clean up, it is up to the user.
//
// Buffer references the resource, it doesn't own it: it is the user's responsibility to make sure the resource
// outlives the buffer.
//
// The buffer owns its allocation until Destroy is called, or until ownership is transferred with Move, TakeFrom
// or Swap. Buffers must not be copied, only *Buffer should be used.
//
// The capabilities of the resource (see memory.DeviceAccessibleResource and memory.HostAccessibleResource)
// are part of the buffer type through R, so generic code can require them at compile time, see NewDevice,
// NewHost and HostSlice.
//
// A Buffer still owning its allocation when garbage collected is logged as a leak -- its memory is not freed,
// since the resource may no longer be valid. Set CUDAX_BUFFER_STACKS=1 to include where the buffer was created.
type Buffer[T any, R memory.Resource] struct {
	_     noCopy
	mr    R
	count int
	st    *storage
}

// AllocationSize returns the number of bytes allocated for count elements of T: count*sizeof(T) rounded up to
// a multiple of alignof(T).
//
// It panics if count is negative or the size overflows, see New.
func AllocationSize[T any](count int) uintptr {
	size, err := allocationSize[T](count)
	if err != nil {
		panic(err)
	}
	return size
}

func allocationSize[T any](count int) (uintptr, error) {
	if count < 0 {
		return 0, errors.Errorf("invalid negative number of elements %d", count)
	}
	var zero T
	elementSize, alignment := unsafe.Sizeof(zero), unsafe.Alignof(zero)
	hi, size := bits.Mul(uint(count), uint(elementSize))
	if hi != 0 || size > ^uint(0)-uint(alignment-1) {
		return 0, errors.Errorf("%d elements of %s (%d bytes each) overflow the address space",
			count, reflect.TypeFor[T](), elementSize)
	}
	return (uintptr(size) + alignment - 1) &^ (alignment - 1), nil
}

// New allocates a Buffer from mr with space for count elements of T.
//
// Memory is only allocated if count > 0. Depending on the alignment of T, the allocation may be larger than
// count*sizeof(T).
//
// Failures to allocate are returned as a *memory.AllocationError.
func New[T any, R memory.Resource](mr R, count int) (*Buffer[T, R], error) {
	size, err := allocationSize[T](count)
	if err != nil {
		if count < 0 {
			return nil, errors.WithMessage(err, "container.New")
		}
		return nil, memory.NewAllocationError(mr, ^uintptr(0), err)
	}
	var ptr unsafe.Pointer
	if count > 0 {
		ptr, err = mr.Allocate(size)
		if err == nil && ptr == nil {
			err = errors.New("resource returned a nil pointer")
		}
		if err != nil {
			if !memory.IsAllocationError(err) {
				err = memory.NewAllocationError(mr, size, err)
			}
			return nil, errors.WithMessagef(err, "container.New[%s](%d)", reflect.TypeFor[T](), count)
		}
	}
	return newBuffer[T](mr, count, storage{ptr: ptr, size: size}), nil
}

// NewDevice is like New, but it only compiles for resources whose memory is accessible from devices.
func NewDevice[T any, R memory.DeviceAccessibleResource](mr R, count int) (*Buffer[T, R], error) {
	return New[T](mr, count)
}

// NewHost is like New, but it only compiles for resources whose memory is accessible from the host.
func NewHost[T any, R memory.HostAccessibleResource](mr R, count int) (*Buffer[T, R], error) {
	return New[T](mr, count)
}

// HostSlice returns the buffer's memory as a Go slice with Len() elements, or nil for an empty buffer.
//
// It only compiles for resources whose memory is accessible from the host.
// The slice is only valid until the buffer gives up its storage (Destroy, Move, TakeFrom or Swap).
func HostSlice[T any, R memory.HostAccessibleResource](b *Buffer[T, R]) []T {
	data := b.Data()
	if data == nil {
		return nil
	}
	return unsafe.Slice(data, b.count)
}

// newBuffer creates the Buffer and registers it for leak reports.
func newBuffer[T any, R memory.Resource](mr R, count int, st storage) *Buffer[T, R] {
	if recordStacks && st.ptr != nil && st.stack == nil {
		buf := make([]byte, 10*1024)
		n := runtime.Stack(buf, false)
		st.stack = buf[:n]
	}
	b := &Buffer[T, R]{mr: mr, count: count, st: &st}
	runtime.AddCleanup(b, reportLeak, b.st)
	return b
}

// reportLeak is called when a Buffer is garbage collected.
func reportLeak(st *storage) {
	if st.ptr == nil {
		return // Correctly destroyed, or ownership transferred.
	}
	if st.stack == nil {
		leakf("container.Buffer of %d bytes at %p garbage collected without being destroyed", st.size, st.ptr)
	} else {
		leakf("container.Buffer of %d bytes at %p garbage collected without being destroyed. Stack:\n%s\n", st.size, st.ptr, st.stack)
	}
}

// state returns the storage, creating an empty one for zero-value buffers.
// Zero-value buffers are not registered for leak reports.
func (b *Buffer[T, R]) state() *storage {
	if b.st == nil {
		b.st = &storage{}
	}
	return b.st
}

// release deallocates the storage, if any, and leaves the buffer empty.
func (b *Buffer[T, R]) release() {
	st := b.state()
	if st.ptr != nil {
		b.mr.Deallocate(st.ptr, st.size)
	}
	*st = storage{}
	b.count = 0
}

// Destroy deallocates the buffer's memory, and leaves it empty. It doesn't destroy the elements in the buffer.
//
// It is a no-op for empty buffers, so it can be called more than once.
func (b *Buffer[T, R]) Destroy() {
	b.release()
}

// Data returns a pointer to the first element of the buffer, aligned to alignof(T).
// It returns nil for an empty buffer.
func (b *Buffer[T, R]) Data() *T {
	st := b.state()
	if st.ptr == nil {
		return nil
	}
	var zero T
	return (*T)(alignPointer(st.ptr, unsafe.Alignof(zero), uintptr(b.count)*unsafe.Sizeof(zero), st.size))
}

// Begin is an alias to Data.
func (b *Buffer[T, R]) Begin() *T {
	return b.Data()
}

// End returns a pointer one past the last element of the buffer, that is Data() + Len() elements.
// It must not be dereferenced. It returns nil for an empty buffer.
func (b *Buffer[T, R]) End() *T {
	data := b.Data()
	if data == nil {
		return nil
	}
	var zero T
	return (*T)(unsafe.Add(unsafe.Pointer(data), uintptr(b.count)*unsafe.Sizeof(zero)))
}

// alignPointer returns the first address >= ptr aligned to alignment, provided size bytes from there still fit in
// the space bytes starting at ptr. Otherwise, it returns nil.
func alignPointer(ptr unsafe.Pointer, alignment, size, space uintptr) unsafe.Pointer {
	offset := (alignment - uintptr(ptr)%alignment) % alignment
	if offset > space || size > space-offset {
		return nil
	}
	return unsafe.Add(ptr, offset)
}

// Len returns the number of elements in the buffer.
func (b *Buffer[T, R]) Len() int {
	return b.count
}

// IsEmpty returns whether the buffer owns no memory.
func (b *Buffer[T, R]) IsEmpty() bool {
	return b.state().ptr == nil
}

// SizeBytes returns the number of bytes allocated from the resource. See AllocationSize.
func (b *Buffer[T, R]) SizeBytes() uintptr {
	return b.state().size
}

// Resource returns the resource used to allocate the buffer.
func (b *Buffer[T, R]) Resource() R {
	return b.mr
}

// Swap exchanges the contents (resource, number of elements and memory) of the buffer with other.
// No memory is allocated or deallocated.
func (b *Buffer[T, R]) Swap(other *Buffer[T, R]) {
	st, otherSt := b.state(), other.state()
	b.mr, other.mr = other.mr, b.mr
	b.count, other.count = other.count, b.count
	*st, *otherSt = *otherSt, *st
}

// Move returns a new Buffer that takes over the contents (resource, number of elements and memory) of b, and
// leaves b empty -- destroying b afterward is a no-op.
func (b *Buffer[T, R]) Move() *Buffer[T, R] {
	st := b.state()
	moved := newBuffer[T](b.mr, b.count, *st)
	*st = storage{}
	b.count = 0
	return moved
}

// TakeFrom deallocates the memory owned by b, if any, and then takes over the contents of other (resource, number
// of elements and memory), leaving other empty.
//
// b.TakeFrom(b) is a no-op.
func (b *Buffer[T, R]) TakeFrom(other *Buffer[T, R]) {
	if b == other {
		return
	}
	b.release()
	st, otherSt := b.state(), other.state()
	b.mr = other.mr
	b.count = other.count
	*st = *otherSt
	*otherSt = storage{}
	other.count = 0
}

// String implements fmt.Stringer.
func (b *Buffer[T, R]) String() string {
	return fmt.Sprintf("container.Buffer[%s](len=%d, %d bytes from %v)", reflect.TypeFor[T](), b.count, b.state().size, b.mr)
}
