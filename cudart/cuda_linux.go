//go:build linux && cgo && cuda

package cudart

// This file binds Runtime and Allocator to Nvidia's CUDA runtime library (libcudart).

/*
#cgo CFLAGS: -I/usr/local/cuda/include -I/opt/cuda/include
#cgo LDFLAGS: -L/usr/local/cuda/lib64 -L/opt/cuda/lib64 -lcudart

#include <cuda_runtime.h>
*/
import "C"
import (
	"unsafe"

	"k8s.io/klog/v2"
)

// cudaCompiled reports whether the CUDA runtime binding is compiled in.
const cudaCompiled = true

// cudaRuntime implements Runtime and Allocator with the CUDA runtime API.
type cudaRuntime struct{}

var (
	_ Runtime   = cudaRuntime{}
	_ Allocator = cudaRuntime{}
)

// newCUDARuntime returns the CUDA runtime binding, unless there is no Nvidia GPU in the system.
func newCUDARuntime() (Runtime, bool) {
	if !hasNvidiaGPU() {
		klog.Infof("cudart: no Nvidia GPU found, not using the CUDA runtime")
		return nil, false
	}
	return cudaRuntime{}, true
}

// toError converts a cudaError_t to a Go error, nil if it is cudaSuccess.
func toError(op Op, code C.cudaError_t, args ...any) error {
	if code == C.cudaSuccess {
		return nil
	}
	return newError(op, Status(code), C.GoString(C.cudaGetErrorString(code)), args...)
}

// DeviceCount implements Runtime.
func (cudaRuntime) DeviceCount() (int, error) {
	var count C.int
	if err := toError(OpDeviceCount, C.cudaGetDeviceCount(&count)); err != nil {
		return 0, err
	}
	return int(count), nil
}

// GetDevice implements Runtime.
func (cudaRuntime) GetDevice() (int, error) {
	var ordinal C.int
	if err := toError(OpGetDevice, C.cudaGetDevice(&ordinal)); err != nil {
		return -1, err
	}
	return int(ordinal), nil
}

// SetDevice implements Runtime.
func (cudaRuntime) SetDevice(ordinal int) error {
	return toError(OpSetDevice, C.cudaSetDevice(C.int(ordinal)), ordinal)
}

// DeviceAttribute implements Runtime.
func (cudaRuntime) DeviceAttribute(ordinal int, attr Attribute) (int, error) {
	var value C.int
	err := toError(OpDeviceGetAttribute,
		C.cudaDeviceGetAttribute(&value, C.enum_cudaDeviceAttr(attr), C.int(ordinal)), attr, ordinal)
	if err != nil {
		return 0, err
	}
	return int(value), nil
}

// Malloc implements Allocator.
func (cudaRuntime) Malloc(size uintptr) (unsafe.Pointer, error) {
	var ptr unsafe.Pointer
	if err := toError(OpMalloc, C.cudaMalloc(&ptr, C.size_t(size)), size); err != nil {
		return nil, err
	}
	return ptr, nil
}

// MallocManaged implements Allocator.
func (cudaRuntime) MallocManaged(size uintptr) (unsafe.Pointer, error) {
	var ptr unsafe.Pointer
	if err := toError(OpMallocManaged, C.cudaMallocManaged(&ptr, C.size_t(size), C.cudaMemAttachGlobal), size); err != nil {
		return nil, err
	}
	return ptr, nil
}

// Free implements Allocator.
func (cudaRuntime) Free(ptr unsafe.Pointer) error {
	return toError(OpFree, C.cudaFree(ptr), ptr)
}
