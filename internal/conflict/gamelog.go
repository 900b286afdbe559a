package conflict

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"ck3mm/internal/deftree"
)

// ParsedOverride is one "Overriding entry" warning from the game's
// error.log or system log.
//
//	[18:43:12][W][gamedatabase.h:321]: Overriding entry 'is_available' for database 'common/scripted_triggers' in 'file: common/scripted_triggers/zzz_.txt line: 1'
type ParsedOverride struct {
	EngineSource string `json:"engineSource" yaml:"engineSource"`
	Identifier   string `json:"identifier" yaml:"identifier"`
	RelDir       string `json:"relDir" yaml:"relDir"`
	File         string `json:"file" yaml:"file"`
	Line         int    `json:"line" yaml:"line"`

	// Sources is filled in by Attribute from the definition index.
	Sources []deftree.Source `json:"sources,omitempty" yaml:"sources,omitempty"`
}

var overrideRe = regexp.MustCompile(
	`^\[\d{2}:\d{2}:\d{2}\]\[W\]\[([^\]]+)\]: ` +
		`Overriding entry '([^']+)' for database '([^']+)' in 'file: ([^']+) line: (\d+)'$`)

// ParseGameLog extracts override warnings from the log text.
func ParseGameLog(text string) []ParsedOverride {
	var out []ParsedOverride
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		m := overrideRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[5])
		out = append(out, ParsedOverride{
			EngineSource: m[1],
			Identifier:   m[2],
			RelDir:       m[3],
			File:         m[4],
			Line:         n,
		})
	}
	return out
}

// ParseGameLogFile reads and parses a game log file.
func ParseGameLogFile(path string) ([]ParsedOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseGameLog(string(data)), nil
}

// Attribute resolves each override to the mods defining the identifier,
// using the scanned index. Overrides the index knows nothing about keep
// an empty source list, which usually means a vanilla-vs-mod override.
func Attribute(overrides []ParsedOverride, ix *deftree.Index) {
	for i := range overrides {
		o := &overrides[i]
		if rec, ok := ix.Lookup(o.RelDir, o.Identifier); ok {
			o.Sources = rec.Sources
		}
	}
}
