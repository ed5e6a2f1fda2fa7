package cudart

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	err := newError(OpSetDevice, ErrorInvalidDevice, "", 7)
	require.EqualError(t, err, "cudaSetDevice(7) failed: invalid device ordinal (code=101)")

	// Context added by callers doesn't hide the runtime error.
	wrapped := errors.WithMessagef(err, "entering device 7")
	rtErr, ok := AsError(wrapped)
	require.True(t, ok)
	require.Equal(t, OpSetDevice, rtErr.Op)
	require.Equal(t, ErrorInvalidDevice, rtErr.Code)
	require.True(t, IsStatus(wrapped, ErrorInvalidDevice))
	require.False(t, IsStatus(wrapped, ErrorNoDevice))

	// Stack trace is available with %+v.
	require.Contains(t, fmt.Sprintf("%+v", err), "TestError")

	_, ok = AsError(errors.New("not a runtime error"))
	require.False(t, ok)
}

func TestError_Messages(t *testing.T) {
	err := newError(OpDeviceGetAttribute, ErrorInvalidValue, "custom message", AttrWarpSize, 0)
	require.EqualError(t, err, "cudaDeviceGetAttribute(WarpSize, 0) failed: custom message (code=1)")
	require.Equal(t, "Op(42)", Op(42).String())
}

func TestStatus(t *testing.T) {
	require.Equal(t, "ErrorInvalidDevice", ErrorInvalidDevice.String())
	require.Equal(t, "Status(12345)", Status(12345).String())
	require.Equal(t, "unknown error", Status(12345).Description())
	status, err := StatusString("errormemoryallocation")
	require.NoError(t, err)
	require.Equal(t, ErrorMemoryAllocation, status)
	for _, s := range StatusValues() {
		require.True(t, s.IsAStatus())
		require.NotEmpty(t, s.Description())
	}
}

func TestAttribute(t *testing.T) {
	require.Equal(t, "ComputeCapabilityMajor", AttrComputeCapabilityMajor.String())
	attr, err := AttributeString("WarpSize")
	require.NoError(t, err)
	require.Equal(t, AttrWarpSize, attr)
	_, err = AttributeString("NoSuchAttribute")
	require.Error(t, err)
	require.Len(t, AttributeStrings(), len(AttributeValues()))
}
