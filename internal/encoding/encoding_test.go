package encoding

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want Encoding
	}{
		{"utf8 plain", []byte("key = value"), UTF8},
		{"utf8 bom", append([]byte{0xef, 0xbb, 0xbf}, []byte("l_english:")...), UTF8BOM},
		{"utf16 le", []byte{0xff, 0xfe, 'k', 0, 'e', 0, 'y', 0}, UTF16LE},
		{"utf16 be", []byte{0xfe, 0xff, 0, 'k', 0, 'e', 0, 'y'}, UTF16BE},
		{"cp1252", []byte{'c', 'a', 'f', 0xe9}, Windows1252}, // café in latin-1
	}
	for _, tc := range cases {
		if got := Detect(tc.data); got != tc.want {
			t.Errorf("%s: Detect() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestDecodeWindows1252(t *testing.T) {
	text, enc, err := Decode([]byte{'c', 'a', 'f', 0xe9})
	if err != nil {
		t.Fatal(err)
	}
	if enc != Windows1252 {
		t.Errorf("enc = %q, want %q", enc, Windows1252)
	}
	if text != "café" {
		t.Errorf("text = %q, want %q", text, "café")
	}
}

func TestDecodeUTF16LE(t *testing.T) {
	text, _, err := Decode([]byte{0xff, 0xfe, 'h', 0, 'i', 0})
	if err != nil {
		t.Fatal(err)
	}
	if text != "hi" {
		t.Errorf("text = %q, want %q", text, "hi")
	}
}

func TestConvertToUTF8BOM(t *testing.T) {
	path := writeFile(t, "loc.yml", []byte{'c', 'a', 'f', 0xe9})

	if err := ConvertToUTF8BOM(path, true); err != nil {
		t.Fatalf("ConvertToUTF8BOM() error: %v", err)
	}

	if !HasUTF8BOM(path) {
		t.Error("converted file should have a UTF-8 BOM")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "café") {
		t.Errorf("converted content = %q, want café", data)
	}

	// Backup keeps the original bytes.
	bak, err := os.ReadFile(path + ".bak")
	if err != nil {
		t.Fatalf("backup not written: %v", err)
	}
	if len(bak) != 4 || bak[3] != 0xe9 {
		t.Errorf("backup = %v, want original latin-1 bytes", bak)
	}
}

func TestConvertAlreadyBOMIsNoop(t *testing.T) {
	orig := append([]byte{0xef, 0xbb, 0xbf}, []byte("key = 1")...)
	path := writeFile(t, "a.txt", orig)

	if err := ConvertToUTF8BOM(path, true); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Error("no backup should be written for a file already in UTF-8-BOM")
	}
}

func TestFixDirectory(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "english")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "a_l_english.yml"), []byte{0xe9}, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := FixDirectory(dir, "*.yml", true, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Converted) != 1 {
		t.Errorf("converted %d files, want 1", len(res.Converted))
	}
	if len(res.Failed) != 0 {
		t.Errorf("failed = %v, want none", res.Failed)
	}
}
