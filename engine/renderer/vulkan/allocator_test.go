package vulkan

import "testing"

func TestAlignUp(t *testing.T) {
	if alignUp(12, 3) != 12 {
		t.Error("aligned value must be unchanged")
	}
	if alignUp(10, 3) != 12 {
		t.Error("10 aligned to 3 should be 12")
	}
	if alignUp(0, 256) != 0 {
		t.Error("zero stays zero")
	}
	if alignUp(1, 256) != 256 {
		t.Error("1 aligned to 256 should be 256")
	}
}

func TestPoolAllocatorExhaustion(t *testing.T) {
	p := NewPoolAllocator(1024, 1)

	if p.Allocate(2048) != nil {
		t.Error("oversized allocation must fail")
	}

	first := p.Allocate(512)
	if first == nil {
		t.Fatal("first allocation failed")
	}
	if p.Allocate(768) != nil {
		t.Error("allocation past capacity must fail")
	}
	second := p.Allocate(500)
	if second == nil {
		t.Fatal("allocation into remaining space failed")
	}
	if p.Allocate(50) != nil {
		t.Error("only 12 bytes remain, 50 must fail")
	}
	if p.Allocate(5) == nil {
		t.Error("5 bytes should still fit")
	}
}

func TestPoolAllocatorFreeAndReuse(t *testing.T) {
	p := NewPoolAllocator(1024, 1)

	a := p.Allocate(512)
	b := p.Allocate(500)
	if a == nil || b == nil {
		t.Fatal("setup allocations failed")
	}

	p.Free(b)
	if got := p.Allocate(500); got == nil {
		t.Error("freed hole should be reusable")
	}

	p.Free(a)
	if got := p.Allocate(512); got == nil {
		t.Error("freed head hole should be reusable")
	}
	if p.InUse() != 1012 {
		t.Errorf("expected 1012 bytes in use, got %d", p.InUse())
	}
}

func TestPoolAllocatorUniformSliceLifecycle(t *testing.T) {
	// Shape of the per-frame uniform arena: 256-byte offset alignment,
	// slices smaller than the alignment.
	p := NewPoolAllocator(4096, 256)

	slices := make([]*Allocation, 4)
	for i := range slices {
		slices[i] = p.Allocate(192)
		if slices[i] == nil {
			t.Fatalf("slice %d failed", i)
		}
		if slices[i].Offset%256 != 0 {
			t.Fatalf("slice %d offset %d not aligned", i, slices[i].Offset)
		}
	}

	// Freeing a middle slice leaves a hole the next allocation fills.
	freed := slices[1].Offset
	p.Free(slices[1])
	reused := p.Allocate(192)
	if reused == nil {
		t.Fatal("reallocation into the freed hole failed")
	}
	if reused.Offset != freed {
		t.Errorf("expected reuse of offset %d, got %d", freed, reused.Offset)
	}
	if p.InUse() != 4*192 {
		t.Errorf("expected %d bytes in use, got %d", 4*192, p.InUse())
	}
}

func TestPoolAllocatorAlignment(t *testing.T) {
	p := NewPoolAllocator(1024, 256)

	a := p.Allocate(10)
	if a == nil || a.Offset != 0 {
		t.Fatalf("first allocation should sit at 0, got %v", a)
	}
	b := p.Allocate(10)
	if b == nil {
		t.Fatal("second allocation failed")
	}
	if b.Offset%256 != 0 {
		t.Errorf("offset %d not aligned to 256", b.Offset)
	}
	if b.Offset != 256 {
		t.Errorf("expected offset 256, got %d", b.Offset)
	}
}
