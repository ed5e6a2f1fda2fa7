//go:build !(linux && cgo && cuda)

package cudart

// cudaCompiled reports whether the CUDA runtime binding is compiled in.
const cudaCompiled = false

// newCUDARuntime reports the CUDA runtime binding is not compiled in: it requires linux, cgo and the
// "cuda" build tag (`go build -tags cuda`).
func newCUDARuntime() (Runtime, bool) { return nil, false }
