package shaders

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
)

func spirvBytes(words []uint32) []byte {
	out := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}

func TestDecodeValidModule(t *testing.T) {
	want := []uint32{0x07230203, 0x00010000, 0xdeadbeef}
	got, err := Decode(spirvBytes(want))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d words, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("word %d: expected %#x, got %#x", i, want[i], got[i])
		}
	}
}

func TestDecodeByteSwapped(t *testing.T) {
	data := spirvBytes([]uint32{swapWord(0x07230203), swapWord(0x00010000)})
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != 0x07230203 || got[1] != 0x00010000 {
		t.Errorf("words not swapped back: %#x %#x", got[0], got[1])
	}
}

func TestDecodeRejectsBadInput(t *testing.T) {
	if _, err := Decode(nil); !errors.Is(err, ErrNotSPIRV) {
		t.Errorf("empty input should fail with ErrNotSPIRV, got %v", err)
	}
	if _, err := Decode([]byte{1, 2, 3}); !errors.Is(err, ErrNotSPIRV) {
		t.Errorf("truncated input should fail with ErrNotSPIRV, got %v", err)
	}
	if _, err := Decode(spirvBytes([]uint32{0x12345678})); !errors.Is(err, ErrNotSPIRV) {
		t.Errorf("wrong magic should fail with ErrNotSPIRV, got %v", err)
	}
}

func TestLoadSPIRV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shader.vert.spv")
	if err := os.WriteFile(path, spirvBytes([]uint32{0x07230203, 42}), 0o644); err != nil {
		t.Fatal(err)
	}

	words, err := LoadSPIRV(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if words[1] != 42 {
		t.Errorf("expected word 42, got %d", words[1])
	}

	if _, err := LoadSPIRV(filepath.Join(dir, "missing.spv")); err == nil {
		t.Error("missing file should fail")
	}
}
