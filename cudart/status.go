package cudart

// Status is defined on a separate file, so it works with enumer -- it doesn't work with files using cgo.

// Status is a device runtime result code. The values match the CUDA runtime's cudaError_t.
type Status int

//go:generate go tool enumer -type=Status status.go

const (
	Success                  Status = 0
	ErrorInvalidValue        Status = 1
	ErrorMemoryAllocation    Status = 2
	ErrorInitializationError Status = 3
	ErrorCudartUnloading     Status = 4
	ErrorInsufficientDriver  Status = 35
	ErrorDevicesUnavailable  Status = 46
	ErrorNoDevice            Status = 100
	ErrorInvalidDevice       Status = 101
	ErrorIllegalAddress      Status = 700
	ErrorNotSupported        Status = 801
	ErrorUnknown             Status = 999
)

// Description returns a human-readable description of the status, in the same terms used by
// cudaGetErrorString.
func (s Status) Description() string {
	switch s {
	case Success:
		return "no error"
	case ErrorInvalidValue:
		return "invalid argument"
	case ErrorMemoryAllocation:
		return "out of memory"
	case ErrorInitializationError:
		return "initialization error"
	case ErrorCudartUnloading:
		return "driver shutting down"
	case ErrorInsufficientDriver:
		return "CUDA driver version is insufficient for CUDA runtime version"
	case ErrorDevicesUnavailable:
		return "CUDA-capable device(s) is/are busy or unavailable"
	case ErrorNoDevice:
		return "no CUDA-capable device is detected"
	case ErrorInvalidDevice:
		return "invalid device ordinal"
	case ErrorIllegalAddress:
		return "an illegal memory access was encountered"
	case ErrorNotSupported:
		return "operation not supported"
	default:
		return "unknown error"
	}
}
