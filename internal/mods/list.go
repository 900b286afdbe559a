package mods

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// List holds an ordered collection of mods keyed by display name.
// Duplicate display names get a #N suffix so every mod stays addressable.
type List struct {
	mods      []*Mod
	byName    map[string]*Mod
	byDir     map[string]*Mod
	dupCounts map[string]int
}

// NewList builds a list from mods in the given order, which becomes the
// initial load order.
func NewList(items []*Mod) *List {
	l := &List{
		byName:    make(map[string]*Mod),
		byDir:     make(map[string]*Mod),
		dupCounts: make(map[string]int),
	}
	for i, m := range items {
		if m.Name == "" {
			m.Name = fmt.Sprintf("unknown_%d", len(l.mods)+1)
		}
		m.LoadOrder = i
		l.Add(m)
	}
	return l
}

// Add inserts a mod, suffixing its name on collision.
func (l *List) Add(m *Mod) {
	if _, exists := l.byName[m.Name]; exists {
		l.dupCounts[m.Name]++
		m.dupID = l.dupCounts[m.Name]
	}
	l.byName[m.DupName()] = m
	if m.Path != "" {
		l.byDir[m.Path] = m
	}
	l.mods = append(l.mods, m)
}

// Get returns the mod with the given (possibly #N-suffixed) name.
func (l *List) Get(name string) (*Mod, bool) {
	m, ok := l.byName[name]
	return m, ok
}

// GetByDir returns the mod whose content directory is dir.
func (l *List) GetByDir(dir string) (*Mod, bool) {
	m, ok := l.byDir[dir]
	return m, ok
}

// Merge overlays other onto this list: existing mods (matched by name)
// take the other's enabled flag and load order, unknown mods are added.
func (l *List) Merge(other *List) {
	for _, om := range other.All() {
		if m, ok := l.byName[om.DupName()]; ok {
			m.Enabled = om.Enabled
			m.LoadOrder = om.LoadOrder
			continue
		}
		l.Add(om)
	}
	l.Sort()
}

// Len returns the number of mods.
func (l *List) Len() int { return len(l.mods) }

// All returns the mods in list order.
func (l *List) All() []*Mod { return l.mods }

// Enabled returns enabled mods in list order.
func (l *List) Enabled() []*Mod {
	var out []*Mod
	for _, m := range l.mods {
		if m.Enabled {
			out = append(out, m)
		}
	}
	return out
}

// Disabled returns disabled mods in list order.
func (l *List) Disabled() []*Mod {
	var out []*Mod
	for _, m := range l.mods {
		if !m.Enabled {
			out = append(out, m)
		}
	}
	return out
}

// Names returns all mod names (with duplicate suffixes) in list order.
func (l *List) Names() []string {
	names := make([]string, len(l.mods))
	for i, m := range l.mods {
		names[i] = m.DupName()
	}
	return names
}

// LoadOrder returns the names of enabled mods in load order.
func (l *List) LoadOrder() []string {
	var names []string
	for _, m := range l.Enabled() {
		names = append(names, m.DupName())
	}
	return names
}

// SetLoadOrder applies the given name order to the list's enabled mods
// and re-sorts. Unknown names are ignored.
func (l *List) SetLoadOrder(names []string) {
	for i, name := range names {
		if m, ok := l.byName[name]; ok {
			m.LoadOrder = i
		}
	}
	l.Sort()
}

// Sort orders the list by enabled first, then load order, then name.
func (l *List) Sort() {
	sort.SliceStable(l.mods, func(i, j int) bool {
		a, b := l.mods[i], l.mods[j]
		if a.Enabled != b.Enabled {
			return a.Enabled
		}
		if a.LoadOrder != b.LoadOrder {
			return a.LoadOrder < b.LoadOrder
		}
		return a.Name < b.Name
	})
}

// HideDisabled renames descriptor files of disabled mods to
// *.mod_disabled so the game launcher no longer sees them.
func (l *List) HideDisabled() error {
	for _, m := range l.Disabled() {
		if m.DescriptorFile == "" || strings.HasSuffix(m.DescriptorFile, "_disabled") {
			continue
		}
		hidden := m.DescriptorFile + "_disabled"
		if err := os.Rename(m.DescriptorFile, hidden); err != nil {
			return err
		}
		m.DescriptorFile = hidden
	}
	return nil
}

// UnhideDisabled restores descriptor files hidden by HideDisabled.
func (l *List) UnhideDisabled() error {
	for _, m := range l.Disabled() {
		if !strings.HasSuffix(m.DescriptorFile, "_disabled") {
			continue
		}
		restored := strings.TrimSuffix(m.DescriptorFile, "_disabled")
		if err := os.Rename(m.DescriptorFile, restored); err != nil {
			return err
		}
		m.DescriptorFile = restored
	}
	return nil
}
