// Package errlog parses the game's error.log, classifies entries and
// attributes them back to the mods that caused them.
package errlog

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"ck3mm/internal/encoding"
)

// Source is the structured location information extracted from one
// error message. Fields are empty when the message does not carry them.
type Source struct {
	File   string `json:"file,omitempty" yaml:"file,omitempty"`
	Object string `json:"object,omitempty" yaml:"object,omitempty"`
	Key    string `json:"key,omitempty" yaml:"key,omitempty"`
	Value  string `json:"value,omitempty" yaml:"value,omitempty"`
	Line   int    `json:"line,omitempty" yaml:"line,omitempty"`
	File2  string `json:"file2,omitempty" yaml:"file2,omitempty"`
	Key2   string `json:"key2,omitempty" yaml:"key2,omitempty"`
	Line2  int    `json:"line2,omitempty" yaml:"line2,omitempty"`
}

// ParsedError is one classified entry from the error log.
type ParsedError struct {
	Type         ErrorType `json:"type" yaml:"type"`
	EngineSource string    `json:"engineSource" yaml:"engineSource"`
	Message      string    `json:"message" yaml:"message"`
	LogLine      int       `json:"logLine" yaml:"logLine"`
	Sources      []Source  `json:"sources,omitempty" yaml:"sources,omitempty"`

	// Mods is filled in by the Analyzer.
	Mods []string `json:"mods,omitempty" yaml:"mods,omitempty"`
}

// Source returns the location the engine acted on: the last one listed,
// which is the definition that won the override.
func (e *ParsedError) Source() *Source {
	if len(e.Sources) == 0 {
		return nil
	}
	return &e.Sources[len(e.Sources)-1]
}

// entryRe matches the first line of an error entry. Continuation lines
// (anything not starting a new timestamped entry) belong to the
// previous one.
var (
	entryRe  = regexp.MustCompile(`^\[(\d{2}:\d{2}:\d{2})\]\[E\]\[([^\]]+)\]: (.*)$`)
	anyLogRe = regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\]\[`)
)

type rawEntry struct {
	engineSource string
	message      string
	logLine      int
}

// splitEntries breaks the log into [E] entries, gluing indented and
// unprefixed continuation lines onto the entry they belong to.
func splitEntries(text string) []rawEntry {
	var (
		entries []rawEntry
		current *rawEntry
	)
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if m := entryRe.FindStringSubmatch(line); m != nil {
			if current != nil {
				entries = append(entries, *current)
			}
			current = &rawEntry{engineSource: m[2], message: m[3], logLine: i + 1}
			continue
		}
		if anyLogRe.MatchString(line) {
			// A non-[E] entry ends any open error entry.
			if current != nil {
				entries = append(entries, *current)
				current = nil
			}
			continue
		}
		if current != nil && line != "" {
			current.message += "\n" + line
		}
	}
	if current != nil {
		entries = append(entries, *current)
	}
	return entries
}

// Parse classifies every error entry in the log text. With deduplicate,
// repeated (engine source, message) pairs collapse to their first
// occurrence, which cuts session logs down massively.
func Parse(text string, deduplicate bool) []ParsedError {
	seen := make(map[[2]string]bool)
	var out []ParsedError
	for _, entry := range splitEntries(text) {
		if skippedSources[entry.engineSource] {
			continue
		}
		if deduplicate {
			key := [2]string{entry.engineSource, entry.message}
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		candidates := sourceRelated[entry.engineSource]
		if len(candidates) == 0 {
			out = append(out, ParsedError{
				Type:         UnknownError,
				EngineSource: entry.engineSource,
				Message:      entry.message,
				LogLine:      entry.logLine,
			})
			continue
		}
		var (
			errType ErrorType
			sources []Source
		)
		for _, candidate := range candidates {
			sources = extractSources(candidate, entry.message)
			if len(sources) > 0 {
				errType = candidate
				break
			}
		}
		if len(sources) == 0 {
			if strings.Contains(entry.message, "Script location: Unknown") {
				continue
			}
			errType = candidates[0]
		}
		out = append(out, ParsedError{
			Type:         errType,
			EngineSource: entry.engineSource,
			Message:      entry.message,
			LogLine:      entry.logLine,
			Sources:      sources,
		})
	}
	return out
}

// ParseFile reads a log file in whatever encoding it uses and parses it.
func ParseFile(path string, deduplicate bool) ([]ParsedError, error) {
	text, _, err := encoding.DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(text, deduplicate), nil
}

// FindLogFile resolves a user-supplied path to an error.log. The path
// may be the file itself or a directory containing it.
func FindLogFile(path string) (string, bool) {
	candidates := []string{path, filepath.Join(path, "error.log"), filepath.Join(path, "logs", "error.log")}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, true
		}
	}
	return "", false
}

func extractSources(errType ErrorType, msg string) []Source {
	re := patterns[errType]
	if re == nil {
		return nil
	}
	names := re.SubexpNames()
	var out []Source
	for _, m := range re.FindAllStringSubmatch(msg, -1) {
		var s Source
		for i, name := range names {
			if i == 0 || m[i] == "" {
				continue
			}
			switch name {
			case "file":
				s.File = m[i]
			case "obj":
				s.Object = m[i]
			case "key":
				s.Key = m[i]
			case "value":
				s.Value = m[i]
			case "line":
				s.Line, _ = strconv.Atoi(m[i])
			case "file2":
				s.File2 = m[i]
			case "key2":
				s.Key2 = m[i]
			case "line2":
				s.Line2, _ = strconv.Atoi(m[i])
			}
		}
		out = append(out, s)
	}
	return out
}
