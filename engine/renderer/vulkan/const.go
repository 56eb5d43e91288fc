package vulkan

// MaxFramesInFlight caps how many frames the CPU records ahead of the GPU.
const MaxFramesInFlight uint32 = 2

// Default timeout for fence waits and image acquisition, in nanoseconds.
const DefaultTimeoutNs uint64 = ^uint64(0)
