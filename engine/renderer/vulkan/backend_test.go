package vulkan

import "testing"

func TestCommandBufferSliceTracksImageCount(t *testing.T) {
	three := []*VulkanCommandBuffer{{}, {}, {}}

	// Growing 3 -> 4 must resize and hand the old entries back for freeing.
	grown, stale := commandBufferSliceFor(three, 4)
	if len(grown) != 4 {
		t.Fatalf("expected slice of 4, got %d", len(grown))
	}
	if len(stale) != 3 {
		t.Fatalf("expected 3 stale buffers, got %d", len(stale))
	}

	// Same count reuses the slice in place.
	same, stale := commandBufferSliceFor(three, 3)
	if len(same) != 3 || stale != nil {
		t.Errorf("unchanged count should reuse the slice, got len %d with %d stale", len(same), len(stale))
	}
	if same[0] != three[0] {
		t.Error("unchanged count must keep the existing entries")
	}

	// Shrinking also hands every old entry back.
	shrunk, stale := commandBufferSliceFor(three, 2)
	if len(shrunk) != 2 {
		t.Errorf("expected slice of 2, got %d", len(shrunk))
	}
	if len(stale) != 3 {
		t.Errorf("expected 3 stale buffers, got %d", len(stale))
	}
}

func TestInvalidateSwapchainMarksStale(t *testing.T) {
	vr := New(nil, RendererOptions{})
	if vr.context.FramebufferSizeGeneration != vr.context.FramebufferSizeLastGeneration {
		t.Fatal("a fresh renderer should not need recreation")
	}
	vr.invalidateSwapchain()
	if vr.context.FramebufferSizeGeneration == vr.context.FramebufferSizeLastGeneration {
		t.Error("invalidation must force recreation on the next frame")
	}
}
