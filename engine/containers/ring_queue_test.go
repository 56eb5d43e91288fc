package containers

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func TestRingQueueFIFO(t *testing.T) {
	rq := NewRingQueue[int](4)
	for i := 0; i < 4; i++ {
		if err := rq.Enqueue(i); err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}
	if !rq.IsFull() {
		t.Fatal("queue should be full")
	}
	if err := rq.Enqueue(99); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
	for i := 0; i < 4; i++ {
		v, err := rq.Dequeue()
		if err != nil {
			t.Fatalf("dequeue: %v", err)
		}
		if v != i {
			t.Fatalf("expected %d, got %d", i, v)
		}
	}
	if _, err := rq.Dequeue(); !errors.Is(err, ErrQueueEmpty) {
		t.Fatalf("expected ErrQueueEmpty, got %v", err)
	}
}

func TestRingQueueWrapAround(t *testing.T) {
	rq := NewRingQueue[string](2)
	for i := 0; i < 5; i++ {
		if err := rq.Enqueue("a"); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
		if err := rq.Enqueue("b"); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
		if v, _ := rq.Dequeue(); v != "a" {
			t.Fatalf("expected a, got %s", v)
		}
		if v, _ := rq.Dequeue(); v != "b" {
			t.Fatalf("expected b, got %s", v)
		}
	}
	if !rq.IsEmpty() {
		t.Fatal("queue should be empty")
	}
}

func TestRingQueuePeek(t *testing.T) {
	rq := NewRingQueue[int](3)
	if _, err := rq.Peek(); !errors.Is(err, ErrQueueEmpty) {
		t.Fatalf("expected ErrQueueEmpty, got %v", err)
	}
	rq.Enqueue(7)
	v, err := rq.Peek()
	if err != nil || v != 7 {
		t.Fatalf("peek: %v %v", v, err)
	}
	if rq.Len() != 1 {
		t.Fatalf("peek must not consume, len=%d", rq.Len())
	}
}
