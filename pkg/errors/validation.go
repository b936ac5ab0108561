package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateSlot checks that slot is one of the six rotation slots.
func ValidateSlot(slot int) error {
	if slot < 1 || slot > 6 {
		return New(ErrCodeInvalidSlot, "slot %d out of range (must be 1-6)", slot)
	}
	return nil
}

// ValidateFrame checks that a rendering frame has positive, finite dimensions.
func ValidateFrame(width, height float64) error {
	if !(width > 0) || math.IsInf(width, 0) {
		return New(ErrCodeInvalidFrame, "frame width must be positive, got %v", width)
	}
	if !(height > 0) || math.IsInf(height, 0) {
		return New(ErrCodeInvalidFrame, "frame height must be positive, got %v", height)
	}
	return nil
}

// ValidatePlayerID validates a player identifier from a formation document.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - Maximum length of 128 characters
func ValidatePlayerID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidPlayer, "player id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidPlayer, "player id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPlayer, "player id contains invalid control characters")
		}
	}

	return nil
}

// formationExtensions lists the document formats a formation can be read from.
var formationExtensions = map[string]bool{".json": true, ".toml": true}

// ValidateFormationFilename checks that a formation file has a supported
// extension and no path traversal sequences.
func ValidateFormationFilename(path string) error {
	if path == "" {
		return New(ErrCodeInvalidFilename, "formation filename cannot be empty")
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidFilename, "formation filename contains invalid characters")
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !formationExtensions[ext] {
		return New(ErrCodeInvalidFilename, "unsupported formation file %q (must be .json or .toml)", filepath.Base(path))
	}

	return nil
}
