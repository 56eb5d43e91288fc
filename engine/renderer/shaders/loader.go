package shaders

import (
	"encoding/binary"
	"os"

	"github.com/cockroachdb/errors"
)

// First word of every valid SPIR-V module.
const spirvMagic uint32 = 0x07230203

var ErrNotSPIRV = errors.New("not a SPIR-V module")

// Decode converts raw SPIR-V bytes into the 32-bit words Vulkan consumes,
// validating length and magic number.
func Decode(data []byte) ([]uint32, error) {
	if len(data) == 0 || len(data)%4 != 0 {
		return nil, errors.Wrapf(ErrNotSPIRV, "byte length %d is not a multiple of 4", len(data))
	}

	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}

	switch words[0] {
	case spirvMagic:
		return words, nil
	case swapWord(spirvMagic):
		// Module was produced on a big-endian toolchain.
		for i := range words {
			words[i] = swapWord(words[i])
		}
		return words, nil
	default:
		return nil, errors.Wrapf(ErrNotSPIRV, "bad magic number %#x", words[0])
	}
}

// LoadSPIRV reads and decodes a compiled shader from disk.
func LoadSPIRV(path string) ([]uint32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read shader %q", path)
	}
	words, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "shader %q", path)
	}
	return words, nil
}

func swapWord(w uint32) uint32 {
	return w<<24 | (w&0xff00)<<8 | (w>>8)&0xff00 | w>>24
}
