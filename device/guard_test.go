package device

import (
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/gomlx/cudax/cudart"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// captureFatal replaces fatalf for the duration of the test, and returns the messages it received.
func captureFatal(t *testing.T) *[]string {
	var messages []string
	previous := fatalf
	fatalf = func(format string, args ...any) {
		messages = append(messages, fmt.Sprintf(format, args...))
	}
	t.Cleanup(func() { fatalf = previous })
	return &messages
}

func TestGuard_SameDevice(t *testing.T) {
	sim := useSimulated(t, 2)
	guard, err := Enter(0)
	require.NoError(t, err)
	require.True(t, guard.IsActive())
	_, hasPrevious := guard.Previous()
	require.False(t, hasPrevious)
	require.NoError(t, guard.Exit())
	require.False(t, guard.IsActive())
	require.Zero(t, sim.Calls(cudart.OpSetDevice), "no switch expected for the current device")
}

func TestGuard_Switch(t *testing.T) {
	sim := useSimulated(t, 2)
	guard, err := Enter(1)
	require.NoError(t, err)
	require.Equal(t, 1, currentOrdinal(t))
	require.Equal(t, Device(1), guard.Target())
	previous, hasPrevious := guard.Previous()
	require.True(t, hasPrevious)
	require.Equal(t, Device(0), previous)

	require.NoError(t, guard.Exit())
	require.Equal(t, 0, currentOrdinal(t))
	require.Equal(t, []int{1, 0}, sim.History())

	// Exiting again is a no-op.
	require.NoError(t, guard.Exit())
	require.Equal(t, 2, sim.Calls(cudart.OpSetDevice))
}

func TestGuard_Nested(t *testing.T) {
	sim := useSimulated(t, 3)
	outer := must.M1(Enter(1))
	require.Equal(t, 1, currentOrdinal(t))
	inner := must.M1(Enter(2))
	require.Equal(t, 2, currentOrdinal(t))
	require.NoError(t, inner.Exit())
	require.Equal(t, 1, currentOrdinal(t))
	require.NoError(t, outer.Exit())
	require.Equal(t, 0, currentOrdinal(t))
	require.Equal(t, []int{1, 2, 1, 0}, sim.History())
}

func TestGuard_EnterFailures(t *testing.T) {
	sim := useSimulated(t, 2)

	sim.FailNext(cudart.OpGetDevice, cudart.ErrorInitializationError)
	guard, err := Enter(1)
	require.Nil(t, guard)
	require.True(t, cudart.IsStatus(err, cudart.ErrorInitializationError), "unexpected error %v", err)
	require.Zero(t, sim.Calls(cudart.OpSetDevice), "no switch must be attempted if the current device is unknown")

	guard, err = Enter(5)
	require.Nil(t, guard)
	require.True(t, cudart.IsStatus(err, cudart.ErrorInvalidDevice), "unexpected error %v", err)
	require.ErrorContains(t, err, "device.Enter(cuda:5)")
	require.Equal(t, 0, currentOrdinal(t))
	require.Empty(t, sim.History())
}

func TestGuard_ExitFailure(t *testing.T) {
	sim := useSimulated(t, 2)
	guard := must.M1(Enter(1))
	sim.FailNext(cudart.OpSetDevice, cudart.ErrorUnknown)
	err := guard.Exit()
	require.True(t, cudart.IsStatus(err, cudart.ErrorUnknown), "unexpected error %v", err)
	require.ErrorContains(t, err, "failed to restore device 0")
	require.False(t, guard.IsActive())
	require.NoError(t, guard.Exit(), "failed restores are not retried")
	require.Equal(t, 1, currentOrdinal(t))
}

func TestDo(t *testing.T) {
	sim := useSimulated(t, 2)
	var inside int
	require.NoError(t, Do(1, func() error {
		inside = currentOrdinal(t)
		return nil
	}))
	require.Equal(t, 1, inside)
	require.Equal(t, 0, currentOrdinal(t))

	// Errors from fn are returned as is, after the restore.
	errFn := errors.New("region failed")
	require.ErrorIs(t, Do(1, func() error { return errFn }), errFn)
	require.Equal(t, 0, currentOrdinal(t))

	// Enter failure: fn is not called.
	called := false
	err := Do(3, func() error { called = true; return nil })
	require.True(t, cudart.IsStatus(err, cudart.ErrorInvalidDevice))
	require.False(t, called)
	require.Equal(t, []int{1, 0, 1, 0}, sim.History())
}

func TestDo_Panic(t *testing.T) {
	useSimulated(t, 2)
	require.PanicsWithValue(t, "boom", func() {
		_ = Do(1, func() error { panic("boom") })
	})
	require.Equal(t, 0, currentOrdinal(t), "device must be restored while unwinding")
}

func TestDo_RestoreFailure(t *testing.T) {
	sim := useSimulated(t, 2)
	fatalMessages := captureFatal(t)

	// Ordinary exit: restore failure is returned.
	err := Do(1, func() error {
		sim.FailNext(cudart.OpSetDevice, cudart.ErrorUnknown)
		return nil
	})
	require.True(t, cudart.IsStatus(err, cudart.ErrorUnknown), "unexpected error %v", err)
	require.Empty(t, *fatalMessages)
	must.M(sim.SetDevice(0))

	// Region failed and restore failed: fatal.
	errFn := errors.New("region failed")
	err = Do(1, func() error {
		sim.FailNext(cudart.OpSetDevice, cudart.ErrorUnknown)
		return errFn
	})
	require.ErrorIs(t, err, errFn)
	require.Len(t, *fatalMessages, 1)
	require.Contains(t, (*fatalMessages)[0], "region failed")
	must.M(sim.SetDevice(0))

	// Region panicked and restore failed: fatal, and the panic is not replaced.
	require.PanicsWithValue(t, "boom", func() {
		_ = Do(1, func() error {
			sim.FailNext(cudart.OpSetDevice, cudart.ErrorUnknown)
			panic("boom")
		})
	})
	require.Len(t, *fatalMessages, 2)
	require.Contains(t, (*fatalMessages)[1], "abnormal exit")
}

func TestDo_GoexitRestoreFailure(t *testing.T) {
	sim := useSimulated(t, 2)
	fatalMessages := captureFatal(t)

	// runtime.Goexit (as used by t.FailNow) leaves the region like a panic does.
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = Do(1, func() error {
			sim.FailNext(cudart.OpSetDevice, cudart.ErrorUnknown)
			runtime.Goexit()
			return nil
		})
	}()
	<-done
	require.Len(t, *fatalMessages, 1)
	require.Contains(t, (*fatalMessages)[0], "abnormal exit")
	require.NotContains(t, (*fatalMessages)[0], "unwinding a panic")
}

func TestGuard_Goroutines(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("simulated current device is only per-thread on linux")
	}
	sim := useSimulated(t, 4)
	var wg, entered sync.WaitGroup
	seen := make([]int, 4)
	entered.Add(4)
	for ordinal := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			must.M(DoOn(sim, Device(ordinal), func() error {
				entered.Done()
				entered.Wait() // Every goroutine is inside its region.
				dev, err := CurrentOn(sim)
				seen[ordinal] = dev.Ordinal()
				return err
			}))
		}()
	}
	wg.Wait()
	require.Equal(t, []int{0, 1, 2, 3}, seen)
	require.Equal(t, 0, currentOrdinal(t), "other goroutines' guards don't affect the test thread")
}
