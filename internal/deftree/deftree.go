// Package deftree indexes top-level game definitions across mods.
//
// Each mod contributes files under game directories like common/traits or
// events. The index records, per relative directory and identifier, every
// mod that defines it. CK3 loads files in mod order and the last
// definition wins, so two mods defining the same identifier in the same
// directory is an override the player usually did not ask for.
package deftree

import (
	"path/filepath"
	"sort"

	"ck3mm/internal/paradox"
)

// Source is one occurrence of an identifier in one mod.
type Source struct {
	Mod     string // mod display name (with #N suffix for duplicates)
	File    string // absolute path of the defining file
	RelPath string // path relative to the mod root, slash-separated
	Line    int    // 1-based line of the definition
}

// Record is one identifier defined under one game directory.
type Record struct {
	RelDir     string // slash-separated game directory, e.g. common/traits
	Identifier string
	Sources    []Source // in mod load order
}

// Index accumulates definitions from all scanned mods.
type Index struct {
	// byDir: relDir -> identifier -> record
	byDir map[string]map[string]*Record
	// byName: identifier -> records across all dirs
	byName map[string][]*Record
	// files: relPath -> mods that ship the file
	files map[string][]Source

	fileCount int
	defCount  int
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		byDir:  make(map[string]map[string]*Record),
		byName: make(map[string][]*Record),
		files:  make(map[string][]Source),
	}
}

// AddFile records that modName ships relPath, without any definitions.
// Used for asset-like files (gui, csv) where only whole-file overrides
// matter.
func (ix *Index) AddFile(modName, absPath, relPath string) {
	relPath = filepath.ToSlash(relPath)
	ix.files[relPath] = append(ix.files[relPath], Source{
		Mod:     modName,
		File:    absPath,
		RelPath: relPath,
	})
	ix.fileCount++
}

// AddDefinitions records every top-level definition from a parsed file.
// Only assignments and blocks count; bare values at file level do not
// name anything overridable.
func (ix *Index) AddDefinitions(modName, absPath, relPath string, root *paradox.Node) {
	relPath = filepath.ToSlash(relPath)
	relDir := filepath.ToSlash(filepath.Dir(relPath))
	ix.AddFile(modName, absPath, relPath)
	for _, child := range root.Children {
		if child.Name == "" {
			continue
		}
		if child.Op == "" && child.Kind == paradox.KindValue {
			// Stray file-level token from a broken file, not a definition.
			continue
		}
		ix.add(relDir, child.Name, Source{
			Mod:     modName,
			File:    absPath,
			RelPath: relPath,
			Line:    child.Line,
		})
	}
}

// AddKeys records plain identifiers (localization keys and the like)
// with their source lines.
func (ix *Index) AddKeys(modName, absPath, relPath string, keys map[string]int) {
	relPath = filepath.ToSlash(relPath)
	relDir := filepath.ToSlash(filepath.Dir(relPath))
	ix.AddFile(modName, absPath, relPath)
	for key, line := range keys {
		ix.add(relDir, key, Source{
			Mod:     modName,
			File:    absPath,
			RelPath: relPath,
			Line:    line,
		})
	}
}

func (ix *Index) add(relDir, identifier string, src Source) {
	dir, ok := ix.byDir[relDir]
	if !ok {
		dir = make(map[string]*Record)
		ix.byDir[relDir] = dir
	}
	rec, ok := dir[identifier]
	if !ok {
		rec = &Record{RelDir: relDir, Identifier: identifier}
		dir[identifier] = rec
		ix.byName[identifier] = append(ix.byName[identifier], rec)
	}
	// A mod defining the same identifier twice (even across its own
	// files) is still one source for conflict purposes.
	for _, s := range rec.Sources {
		if s.Mod == src.Mod {
			return
		}
	}
	rec.Sources = append(rec.Sources, src)
	ix.defCount++
}

// Lookup returns the record for identifier under relDir.
func (ix *Index) Lookup(relDir, identifier string) (*Record, bool) {
	dir, ok := ix.byDir[relDir]
	if !ok {
		return nil, false
	}
	rec, ok := dir[identifier]
	return rec, ok
}

// ByName returns every record for identifier regardless of directory.
func (ix *Index) ByName(identifier string) []*Record {
	return ix.byName[identifier]
}

// FileSources returns the mods shipping relPath, in load order.
func (ix *Index) FileSources(relPath string) []Source {
	return ix.files[filepath.ToSlash(relPath)]
}

// Dirs returns all indexed game directories, sorted.
func (ix *Index) Dirs() []string {
	dirs := make([]string, 0, len(ix.byDir))
	for d := range ix.byDir {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

// Records returns all records under relDir, sorted by identifier.
func (ix *Index) Records(relDir string) []*Record {
	dir := ix.byDir[relDir]
	recs := make([]*Record, 0, len(dir))
	for _, r := range dir {
		recs = append(recs, r)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Identifier < recs[j].Identifier })
	return recs
}

// FileCount returns how many file occurrences were indexed.
func (ix *Index) FileCount() int { return ix.fileCount }

// DefCount returns how many (identifier, mod) pairs were indexed.
func (ix *Index) DefCount() int { return ix.defCount }
