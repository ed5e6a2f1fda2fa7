package cudart

// Attribute identifies a device attribute that can be queried with Runtime.DeviceAttribute.
// The values match the CUDA runtime's cudaDeviceAttr.
//
// The device package provides typed versions of these attributes, see device.Attribute.
type Attribute int

//go:generate go tool enumer -type=Attribute -trimprefix=Attr attribute.go

const (
	AttrMaxThreadsPerBlock          Attribute = 1
	AttrMaxBlockDimX                Attribute = 2
	AttrMaxBlockDimY                Attribute = 3
	AttrMaxBlockDimZ                Attribute = 4
	AttrMaxGridDimX                 Attribute = 5
	AttrMaxGridDimY                 Attribute = 6
	AttrMaxGridDimZ                 Attribute = 7
	AttrMaxSharedMemoryPerBlock     Attribute = 8
	AttrTotalConstantMemory         Attribute = 9
	AttrWarpSize                    Attribute = 10
	AttrClockRate                   Attribute = 13
	AttrMultiProcessorCount         Attribute = 16
	AttrKernelExecTimeout           Attribute = 17
	AttrIntegrated                  Attribute = 18
	AttrCanMapHostMemory            Attribute = 19
	AttrComputeMode                 Attribute = 20
	AttrConcurrentKernels           Attribute = 31
	AttrEccEnabled                  Attribute = 32
	AttrPciBusId                    Attribute = 33
	AttrPciDeviceId                 Attribute = 34
	AttrMemoryClockRate             Attribute = 36
	AttrGlobalMemoryBusWidth        Attribute = 37
	AttrL2CacheSize                 Attribute = 38
	AttrMaxThreadsPerMultiProcessor Attribute = 39
	AttrAsyncEngineCount            Attribute = 40
	AttrUnifiedAddressing           Attribute = 41
	AttrPciDomainId                 Attribute = 50
	AttrComputeCapabilityMajor      Attribute = 75
	AttrComputeCapabilityMinor      Attribute = 76
	AttrManagedMemory               Attribute = 83
	AttrIsMultiGpuBoard             Attribute = 84
	AttrConcurrentManagedAccess     Attribute = 89
)
