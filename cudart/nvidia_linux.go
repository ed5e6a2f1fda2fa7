//go:build linux

package cudart

import (
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"k8s.io/klog/v2"
)

// nvidiaDevicesGlob matches the device files created by Nvidia's kernel driver.
var nvidiaDevicesGlob = "/dev/nvidia*"

// hasNvidiaGPU guesses whether there is an actual Nvidia GPU installed (as opposed to only the CUDA libraries
// installed, but no hardware).
//
// It checks for the device files in /dev/nvidia*, and falls back to running nvidia-smi. The result is cached.
var hasNvidiaGPU = sync.OnceValue(probeNvidiaGPU)

func probeNvidiaGPU() bool {
	matches, err := filepath.Glob(nvidiaDevicesGlob)
	if err != nil {
		klog.Errorf("Failed to search for Nvidia device files matching %q: %v", nvidiaDevicesGlob, err)
	}
	if len(matches) > 0 {
		return true
	}
	klog.V(1).Infof("cudart: no Nvidia devices found matching %q, checking nvidia-smi instead", nvidiaDevicesGlob)

	if _, err := exec.LookPath("nvidia-smi"); err != nil {
		return false
	}
	output, err := exec.Command("nvidia-smi").CombinedOutput()
	if err != nil || !strings.Contains(string(output), "NVIDIA-SMI") {
		klog.V(1).Infof("cudart: nvidia-smi did not succeed, assuming there are no Nvidia GPUs")
		return false
	}
	return true
}
