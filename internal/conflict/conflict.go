// Package conflict finds cross-mod definition conflicts and attributes
// engine override warnings back to the responsible mods.
package conflict

import (
	"sort"
	"strings"

	"ck3mm/internal/deftree"
)

// Group is one conflicting identifier with every mod that defines it.
type Group struct {
	RelDir     string           `json:"relDir" yaml:"relDir"`
	Identifier string           `json:"identifier" yaml:"identifier"`
	Sources    []deftree.Source `json:"sources" yaml:"sources"`
}

// Winner returns the mod whose definition the engine keeps: the last
// one in load order.
func (g *Group) Winner() string {
	if len(g.Sources) == 0 {
		return ""
	}
	return g.Sources[len(g.Sources)-1].Mod
}

// Detect walks the index and returns every identifier defined by two or
// more distinct mods, filtered through the rules. Groups come back
// sorted by directory then identifier.
func Detect(ix *deftree.Index, rules *Rules) []Group {
	if rules == nil {
		rules = &Rules{}
	}
	var groups []Group
	for _, relDir := range ix.Dirs() {
		if rules.ignoredDir(relDir) {
			continue
		}
		if !rules.CheckLocalization && strings.HasPrefix(relDir, "localization/") {
			continue
		}
		for _, rec := range ix.Records(relDir) {
			if rules.ignoredKeyword(rec.Identifier) {
				continue
			}
			sources := rec.Sources
			if len(rules.IgnoreMods) > 0 {
				sources = filterSources(sources, rules)
			}
			if len(sources) < 2 {
				continue
			}
			groups = append(groups, Group{
				RelDir:     rec.RelDir,
				Identifier: rec.Identifier,
				Sources:    sources,
			})
		}
	}
	return groups
}

// DetectFileOverrides returns whole-file conflicts: the same relative
// path shipped by two or more mods. Only meaningful for files the
// engine replaces wholesale (gui, csv).
func DetectFileOverrides(ix *deftree.Index, relPaths []string, rules *Rules) []Group {
	if rules == nil {
		rules = &Rules{}
	}
	var groups []Group
	for _, relPath := range relPaths {
		sources := ix.FileSources(relPath)
		if len(rules.IgnoreMods) > 0 {
			sources = filterSources(sources, rules)
		}
		if len(sources) < 2 {
			continue
		}
		groups = append(groups, Group{
			RelDir:     dirOf(relPath),
			Identifier: baseOf(relPath),
			Sources:    sources,
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].RelDir != groups[j].RelDir {
			return groups[i].RelDir < groups[j].RelDir
		}
		return groups[i].Identifier < groups[j].Identifier
	})
	return groups
}

func filterSources(sources []deftree.Source, rules *Rules) []deftree.Source {
	var out []deftree.Source
	for _, s := range sources {
		if !rules.ignoredMod(s.Mod) {
			out = append(out, s)
		}
	}
	return out
}

func dirOf(relPath string) string {
	if i := strings.LastIndexByte(relPath, '/'); i >= 0 {
		return relPath[:i]
	}
	return "."
}

func baseOf(relPath string) string {
	if i := strings.LastIndexByte(relPath, '/'); i >= 0 {
		return relPath[i+1:]
	}
	return relPath
}

// ByMod regroups conflicts per mod name so reports can answer "what
// does this mod clash with".
func ByMod(groups []Group) map[string][]Group {
	out := make(map[string][]Group)
	for _, g := range groups {
		for _, s := range g.Sources {
			out[s.Mod] = append(out[s.Mod], g)
		}
	}
	return out
}
