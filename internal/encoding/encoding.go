// Package encoding detects the text encoding of mod files and repairs
// them to the UTF-8 with BOM form the game engine requires.
package encoding

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding identifies a detected text encoding.
type Encoding string

const (
	UTF8        Encoding = "utf-8"
	UTF8BOM     Encoding = "utf-8-bom"
	UTF16LE     Encoding = "utf-16-le"
	UTF16BE     Encoding = "utf-16-be"
	Windows1252 Encoding = "windows-1252"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// Detect inspects raw bytes and reports the most likely encoding.
// Pure ASCII/UTF-8 content is reported as UTF8 (or UTF8BOM); anything
// that is not valid UTF-8 falls back to Windows1252, the codepage CK3
// mods authored on Windows most commonly leak.
func Detect(data []byte) Encoding {
	switch {
	case bytes.HasPrefix(data, utf8BOM):
		return UTF8BOM
	case bytes.HasPrefix(data, []byte{0xff, 0xfe}):
		return UTF16LE
	case bytes.HasPrefix(data, []byte{0xfe, 0xff}):
		return UTF16BE
	case utf8.Valid(data):
		return UTF8
	default:
		return Windows1252
	}
}

// DetectFile reports the encoding of the file at path.
func DetectFile(path string) (Encoding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Detect(data), nil
}

// HasUTF8BOM reports whether the file starts with the UTF-8 BOM.
func HasUTF8BOM(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	head := make([]byte, 3)
	if _, err := io.ReadFull(f, head); err != nil {
		return false
	}
	return bytes.Equal(head, utf8BOM)
}

// Decode converts raw bytes to a UTF-8 string according to the detected
// encoding, stripping any BOM.
func Decode(data []byte) (string, Encoding, error) {
	enc := Detect(data)
	switch enc {
	case UTF8BOM:
		return string(data[len(utf8BOM):]), enc, nil
	case UTF8:
		return string(data), enc, nil
	case UTF16LE:
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		out, err := dec.Bytes(data)
		if err != nil {
			return "", enc, err
		}
		return string(out), enc, nil
	case UTF16BE:
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		out, err := dec.Bytes(data)
		if err != nil {
			return "", enc, err
		}
		return string(out), enc, nil
	default:
		out, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return "", enc, err
		}
		return string(out), enc, nil
	}
}

// DecodeFile reads the file at path and returns its content as UTF-8 text.
func DecodeFile(path string) (string, Encoding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return Decode(data)
}

// ConvertToUTF8BOM rewrites the file at path as UTF-8 with BOM. When
// backup is true a sibling .bak copy of the original bytes is written
// first. Files already in UTF-8-BOM form are left untouched.
func ConvertToUTF8BOM(path string, backup bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if bytes.HasPrefix(data, utf8BOM) {
		return nil
	}

	text, _, err := Decode(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	if backup {
		if err := os.WriteFile(path+".bak", data, 0644); err != nil {
			return fmt.Errorf("write backup: %w", err)
		}
	}

	out := make([]byte, 0, len(text)+len(utf8BOM))
	out = append(out, utf8BOM...)
	out = append(out, text...)
	return os.WriteFile(path, out, 0644)
}

// FixResult lists which files converted cleanly and which failed.
type FixResult struct {
	Converted []string
	Failed    map[string]error
}

// FixBatch converts each file to UTF-8-BOM, collecting per-file results.
func FixBatch(paths []string, backup bool) FixResult {
	res := FixResult{Failed: map[string]error{}}
	for _, p := range paths {
		if err := ConvertToUTF8BOM(p, backup); err != nil {
			res.Failed[p] = err
			continue
		}
		res.Converted = append(res.Converted, p)
	}
	return res
}

// FixDirectory converts every file under dir matching pattern
// (e.g. "*.yml"). When recursive is false only the top level is scanned.
func FixDirectory(dir, pattern string, recursive, backup bool) (FixResult, error) {
	var paths []string
	if recursive {
		err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			ok, err := filepath.Match(pattern, d.Name())
			if err != nil {
				return err
			}
			if ok {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return FixResult{}, err
		}
	} else {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return FixResult{}, err
		}
		paths = matches
	}
	return FixBatch(paths, backup), nil
}
