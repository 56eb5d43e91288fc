package vulkan

import (
	"sync"
	"testing"
)

func TestSafeCallSerializesGroup(t *testing.T) {
	pool := NewVulkanLockPool()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.SafeCall(PipelineManagement, func() error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()
	if counter != 64 {
		t.Fatalf("lost updates under SafeCall: %d", counter)
	}
}

func TestSafeCallPropagatesError(t *testing.T) {
	pool := NewVulkanLockPool()
	want := VulkanError(1, "vkTest")
	if got := pool.SafeCall(BufferManagement, func() error { return want }); got != want {
		t.Fatalf("expected error back, got %v", got)
	}
}
