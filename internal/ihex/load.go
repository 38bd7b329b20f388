package ihex

import (
	"os"
	"path/filepath"
	"strings"
)

// hexExtensions are the file extensions the CLI treats as Intel-HEX
// rather than raw binary (§6 "Input file formats").
var hexExtensions = map[string]bool{
	".hex":  true,
	".ihx":  true,
	".ihex": true,
}

// LooksLikeIntelHex reports whether path's extension selects the
// Intel-HEX loader over raw-binary loading.
func LooksLikeIntelHex(path string) bool {
	return hexExtensions[strings.ToLower(filepath.Ext(path))]
}

// LoadFile reads path, parsing it as Intel-HEX if its extension says so
// and otherwise treating it as a raw binary image.
func LoadFile(path string, fill byte) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !LooksLikeIntelHex(path) {
		return os.ReadFile(path)
	}
	img, err := Parse(f)
	if err != nil {
		return nil, err
	}
	return img.Flatten(fill), nil
}
