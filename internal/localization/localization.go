// Package localization extracts keys from CK3 localization files.
//
// The format looks like YAML but is not: values carry an optional version
// digit after the colon (key:0 "value"), duplicate keys are legal, and the
// engine requires a UTF-8 BOM. Files are therefore parsed line by line with
// a small pattern, the way the game's own reader does.
package localization

import (
	"regexp"
	"strconv"
	"strings"
)

// Entry is one localized key.
type Entry struct {
	Key     string
	Value   string
	Version int // the digit after the colon; 0 when absent
	Line    int // 1-based
}

// File is the parsed content of one localization file.
type File struct {
	Language string // l_english, l_simp_chinese, ... or "unknown"
	Entries  []Entry
}

var (
	languageRe = regexp.MustCompile(`^\s*(l_[A-Za-z_]+):\s*$`)
	entryRe    = regexp.MustCompile(`^\s*([A-Za-z0-9_.\-]+):(\d*)\s*"(.*)"\s*(#.*)?$`)
)

// Parse extracts the language header and all key entries from text.
func Parse(text string) *File {
	f := &File{Language: "unknown"}
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if m := languageRe.FindStringSubmatch(line); m != nil {
			if f.Language == "unknown" {
				f.Language = m[1]
			}
			continue
		}
		m := entryRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		version := 0
		if m[2] != "" {
			version, _ = strconv.Atoi(m[2])
		}
		f.Entries = append(f.Entries, Entry{
			Key:     m[1],
			Value:   m[3],
			Version: version,
			Line:    i + 1,
		})
	}
	return f
}

// Get returns the last value recorded for key, mirroring the engine's
// last-definition-wins behavior.
func (f *File) Get(key string) (string, bool) {
	for i := len(f.Entries) - 1; i >= 0; i-- {
		if f.Entries[i].Key == key {
			return f.Entries[i].Value, true
		}
	}
	return "", false
}
