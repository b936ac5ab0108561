package formation

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/rotacheck/pkg/errors"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	if err := errors.ValidateFormationFilename(path); err != nil {
		return "", err
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML, nil
	}
	return FormatJSON, nil
}

// Read decodes a document in the given format from r. Unknown fields are
// rejected. Read does not close r.
func Read(r io.Reader, format Format) (Document, error) {
	var d Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&d)
		if err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Document{}, errors.New(errors.ErrCodeInvalidFormat, "decode toml: unknown field %q", undecoded[0].String())
		}
	default:
		return Document{}, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
	}
	return d, nil
}

// Write encodes d in the given format to w.
// JSON output is indented; both formats can be re-read with Read.
func Write(d Document, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(d); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
	}
	return nil
}

// Import reads the document at path, choosing the format by extension.
func Import(path string) (Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Document{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, format)
}

// Export writes d to path, choosing the format by extension.
func Export(d Document, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(d, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
