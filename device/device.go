// Package device provides a lightweight handle to a compute device, typed queries of its attributes and
// Guard, to scope a region of code where a device is the current device of the calling thread.
//
// All functions use the process-wide runtime (cudart.Default), except the "On" variants that take an
// explicit cudart.Runtime.
package device

import (
	"fmt"

	"github.com/gomlx/cudax/cudart"
	"github.com/pkg/errors"
)

// Device is a lightweight handle to a device, identified by its ordinal -- it doesn't own anything.
//
// Any integer converts to a Device, and no validation against the actual hardware is done until the
// device is used. Devices compare and order by their ordinals.
type Device int

// Ordinal returns the integer identifying the device in the runtime.
func (d Device) Ordinal() int {
	return int(d)
}

// String implements fmt.Stringer.
func (d Device) String() string {
	return fmt.Sprintf("cuda:%d", int(d))
}

// Attribute returns the raw value of the attribute of the device.
// See also the typed attributes, like MaxThreadsPerBlock.
func (d Device) Attribute(id cudart.Attribute) (int, error) {
	return d.AttributeOn(cudart.Default(), id)
}

// AttributeOn is like Attribute, but uses the given runtime.
func (d Device) AttributeOn(rt cudart.Runtime, id cudart.Attribute) (int, error) {
	value, err := rt.DeviceAttribute(d.Ordinal(), id)
	if err != nil {
		return 0, errors.WithMessagef(err, "failed to query attribute %s of device %s", id, d)
	}
	return value, nil
}

// ComputeCapability returns the major and minor compute capability versions of the device.
func (d Device) ComputeCapability() (major, minor int, err error) {
	major, err = ComputeCapabilityMajor.Query(d)
	if err != nil {
		return
	}
	minor, err = ComputeCapabilityMinor.Query(d)
	return
}

// Count returns the number of visible devices.
func Count() (int, error) {
	return CountOn(cudart.Default())
}

// CountOn is like Count, but uses the given runtime.
func CountOn(rt cudart.Runtime) (int, error) {
	n, err := rt.DeviceCount()
	if err != nil {
		return 0, errors.WithMessage(err, "failed to count devices")
	}
	return n, nil
}

// Current returns the current device of the calling thread.
//
// Goroutines can be moved to a different thread at any time, use a Guard (or runtime.LockOSThread) if the result
// must remain valid.
func Current() (Device, error) {
	return CurrentOn(cudart.Default())
}

// CurrentOn is like Current, but uses the given runtime.
func CurrentOn(rt cudart.Runtime) (Device, error) {
	ordinal, err := rt.GetDevice()
	if err != nil {
		return -1, errors.WithMessage(err, "failed to get current device")
	}
	return Device(ordinal), nil
}
