package vm

import (
	"fmt"
	"os"
)

// LoadObjFile reads path as a sequence of big-endian 16-bit words and
// returns them in file order (VM.LoadProgram places them at address 0), the
// format the driver's .obj writer produces (first word is the origin, the rest are the
// program's words in source order).
func LoadObjFile(path string) ([]uint16, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- user-provided object file path
	if err != nil {
		return nil, fmt.Errorf("unable to open file %s: %w", path, err)
	}
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("%s: truncated word (odd byte count)", path)
	}

	words := make([]uint16, len(raw)/2)
	for i := range words {
		words[i] = uint16(raw[2*i])<<8 | uint16(raw[2*i+1])
	}
	return words, nil
}
