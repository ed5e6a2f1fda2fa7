package device

import (
	"runtime"

	"github.com/gomlx/cudax/cudart"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// noRestore is the value of Guard.previous when the target device was already current.
const noRestore = -1

// fatalf terminates the process. It can be replaced in tests.
var fatalf = klog.Fatalf

// noCopy may be embedded into structs which must not be copied after first use.
// See https://golang.org/issues/8005#issuecomment-190753527: `go vet` copylocks checker flags copies.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Guard makes a device the current device of the calling thread, until Exit is called, which then restores
// the device that was current before.
//
// The current device is a property of the OS thread, so while active, a Guard keeps the calling goroutine
// locked to its thread (see runtime.LockOSThread). Consequently, Exit must be called from the same goroutine
// that created the Guard.
//
// Guards can be nested, but they must be exited in the reverse order they were entered. The usual pattern is:
//
//	guard, err := device.Enter(1)
//	if err != nil {
//		return err
//	}
//	defer func() { err = errors.Join(err, guard.Exit()) }()
//
// Or use Do, which also handles panics.
//
// A Guard is bound to the region it was created for: it must not be copied, only *Guard is handed out.
type Guard struct {
	_        noCopy
	rt       cudart.Runtime
	target   Device
	previous int
	active   bool
}

// Enter makes target the current device of the calling thread, and returns a Guard that restores the
// previous device on Exit.
//
// If target is already the current device, nothing is changed, and Exit will be a no-op.
//
// On error no Guard is created, and there is nothing to restore.
func Enter(target Device) (*Guard, error) {
	return EnterOn(cudart.Default(), target)
}

// EnterOn is like Enter, but uses the given runtime.
func EnterOn(rt cudart.Runtime, target Device) (*Guard, error) {
	runtime.LockOSThread()
	current, err := rt.GetDevice()
	if err != nil {
		runtime.UnlockOSThread()
		return nil, errors.WithMessagef(err, "device.Enter(%s) failed to get current device", target)
	}
	g := &Guard{rt: rt, target: target, previous: noRestore, active: true}
	if current == target.Ordinal() {
		return g, nil
	}
	if err = rt.SetDevice(target.Ordinal()); err != nil {
		runtime.UnlockOSThread()
		return nil, errors.WithMessagef(err, "device.Enter(%s) failed to switch from device %d", target, current)
	}
	g.previous = current
	klog.V(2).Infof("device: switched current device from %d to %s", current, target)
	return g, nil
}

// Target returns the device made current by the Guard.
func (g *Guard) Target() Device {
	return g.target
}

// Previous returns the device that will be restored by Exit, and whether there is one.
// It returns false if the target device was already current when the Guard was created.
func (g *Guard) Previous() (Device, bool) {
	if g.previous == noRestore {
		return Device(noRestore), false
	}
	return Device(g.previous), true
}

// IsActive returns whether the Guard was not exited yet.
func (g *Guard) IsActive() bool {
	return g != nil && g.active
}

// Exit restores the device that was current when the Guard was created, if it was changed, and
// unlocks the goroutine from its thread.
//
// It is a no-op if the Guard was already exited.
// If restoring the previous device fails, the Guard is still considered exited, and the error is returned.
func (g *Guard) Exit() error {
	if !g.IsActive() {
		return nil
	}
	g.active = false
	defer runtime.UnlockOSThread()
	if g.previous == noRestore {
		return nil
	}
	if err := g.rt.SetDevice(g.previous); err != nil {
		return errors.WithMessagef(err, "device.Guard.Exit() failed to restore device %d (leaving %s)", g.previous, g.target)
	}
	klog.V(2).Infof("device: restored current device from %s to %d", g.target, g.previous)
	return nil
}

// Do runs fn with target as the current device of the calling thread, and restores the previous device
// afterward, whichever way fn exits.
//
// If fn returns without error, a failure to restore the previous device is returned.
// If fn fails -- it panics, calls runtime.Goexit or returns an error -- and restoring the previous device also fails, the process is
// terminated (with klog.Fatalf): the second failure can neither be reported along the first one nor ignored,
// since the thread would be left on the wrong device.
func Do(target Device, fn func() error) error {
	return DoOn(cudart.Default(), target, fn)
}

// DoOn is like Do, but uses the given runtime.
func DoOn(rt cudart.Runtime, target Device, fn func() error) error {
	g, err := EnterOn(rt, target)
	if err != nil {
		return err
	}
	returned := false
	defer func() {
		if returned {
			return
		}
		// fn panicked or called runtime.Goexit: the unwinding continues after the restore.
		if exitErr := g.Exit(); exitErr != nil {
			fatalf("Failed to restore device after an abnormal exit (panic or runtime.Goexit) from a region on %s: %+v", target, exitErr)
		}
	}()
	fnErr := fn()
	returned = true

	exitErr := g.Exit()
	if exitErr == nil {
		return fnErr
	}
	if fnErr != nil {
		fatalf("Failed to restore device after a region on %s failed with %v: %+v", target, fnErr, exitErr)
		return fnErr
	}
	return exitErr
}
