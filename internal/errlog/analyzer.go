package errlog

import (
	"path/filepath"
	"strings"

	"ck3mm/internal/deftree"
	"ck3mm/internal/encoding"
	"ck3mm/internal/logging"
	"ck3mm/internal/mods"
)

// Analyzer attributes parsed errors to mods using the definition index
// built by a scan.
type Analyzer struct {
	Index  *deftree.Index
	Mods   *mods.List
	Logger *logging.Logger
}

// NewAnalyzer creates an analyzer over a scanned index and mod list.
func NewAnalyzer(ix *deftree.Index, list *mods.List, logger *logging.Logger) *Analyzer {
	return &Analyzer{Index: ix, Mods: list, Logger: logger.WithComponent("errlog")}
}

// Attribute fills in the Mods field of every error it can trace back.
// Returns how many errors were attributed.
func (a *Analyzer) Attribute(errors []ParsedError) int {
	attributed := 0
	for i := range errors {
		e := &errors[i]
		mods := a.locate(e)
		if len(mods) > 0 {
			e.Mods = mods
			attributed++
		}
	}
	return attributed
}

func (a *Analyzer) locate(e *ParsedError) []string {
	switch e.Type {
	case EncodingError, MissingUTF8BOM:
		return a.locateEncodingError(e)
	case InvalidSupportedVersion:
		return a.locateDescriptorError(e)
	}

	candidates := a.candidateMods(e)
	switch {
	case len(candidates) == 1:
		return candidates
	case e.Type == DuplicateLocKey || e.Type == ScriptError:
		// Every mod touching the identifier is suspect.
		return candidates
	case len(candidates) > 1:
		a.Logger.Debug("Ambiguous error source", map[string]interface{}{
			"type":       string(e.Type),
			"candidates": candidates,
		})
		return nil
	default:
		return nil
	}
}

// locateEncodingError checks which of the mods shipping the file is
// actually missing the BOM.
func (a *Analyzer) locateEncodingError(e *ParsedError) []string {
	src := e.Source()
	if src == nil || src.File == "" {
		return nil
	}
	sources := a.Index.FileSources(src.File)
	if len(sources) == 1 {
		return []string{sources[0].Mod}
	}
	var guilty []string
	for _, s := range sources {
		if !encoding.HasUTF8BOM(s.File) {
			guilty = append(guilty, s.Mod)
		}
	}
	return guilty
}

// locateDescriptorError resolves a descriptor path like mod/xyz.mod
// straight to the mod it describes.
func (a *Analyzer) locateDescriptorError(e *ParsedError) []string {
	src := e.Source()
	if src == nil || src.File == "" {
		return nil
	}
	base := filepath.Base(src.File)
	for _, m := range a.Mods.All() {
		if filepath.Base(m.DescriptorFile) == base {
			return []string{m.DupName()}
		}
	}
	return nil
}

// candidateMods finds mods that could have produced the error, by file
// path first, then by defined identifier.
func (a *Analyzer) candidateMods(e *ParsedError) []string {
	set := make(map[string]bool)
	var out []string
	add := func(name string) {
		if !set[name] {
			set[name] = true
			out = append(out, name)
		}
	}
	for _, src := range e.Sources {
		if src.File != "" {
			rel := a.relPath(src.File)
			for _, s := range a.Index.FileSources(rel) {
				add(s.Mod)
			}
			if src.File2 != "" {
				for _, s := range a.Index.FileSources(a.relPath(src.File2)) {
					add(s.Mod)
				}
			}
			continue
		}
		identifier := src.Object
		if identifier == "" {
			identifier = src.Key
		}
		if identifier == "" {
			continue
		}
		for _, rec := range a.Index.ByName(identifier) {
			for _, s := range rec.Sources {
				add(s.Mod)
			}
		}
	}
	return out
}

// relPath strips a mod directory prefix when the engine logged an
// absolute path.
func (a *Analyzer) relPath(file string) string {
	file = filepath.ToSlash(file)
	for _, m := range a.Mods.All() {
		prefix := filepath.ToSlash(m.Path) + "/"
		if strings.HasPrefix(file, prefix) {
			return strings.TrimPrefix(file, prefix)
		}
	}
	return file
}

// CountByType tallies errors per type for report summaries.
func CountByType(errors []ParsedError) map[ErrorType]int {
	counts := make(map[ErrorType]int)
	for _, e := range errors {
		counts[e.Type]++
	}
	return counts
}
