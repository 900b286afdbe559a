package mods

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"ck3mm/internal/ckerr"
)

// Profile is a saved snapshot of a mod list: which mods are enabled and
// in what order. Profiles are portable between machines because they
// reference mods by name, not by path.
type Profile struct {
	Name        string   `json:"name"`
	GameVersion string   `json:"gameVersion,omitempty"`
	EnabledMods []string `json:"enabled_mods"`
	LoadOrder   []string `json:"load_order"`
}

// NewProfile captures the current state of list under the given name.
func NewProfile(name string, list *List) *Profile {
	p := &Profile{Name: name}
	for _, m := range list.All() {
		if m.Enabled {
			p.EnabledMods = append(p.EnabledMods, m.DupName())
		}
		p.LoadOrder = append(p.LoadOrder, m.DupName())
	}
	return p
}

// SaveProfile writes the profile as JSON.
func SaveProfile(p *Profile, path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// LoadProfile reads a profile JSON file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, ckerr.New(ckerr.ProfileInvalid, fmt.Sprintf("malformed profile file: %s", path), err)
	}
	if p.Name == "" {
		p.Name = profileNameFromPath(path)
	}
	return &p, nil
}

func profileNameFromPath(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// Apply sets enabled flags and load order on list from the profile.
// Mods named by the profile but missing from the list are returned so
// the caller can report them.
func (p *Profile) Apply(list *List) (missing []string) {
	enabled := make(map[string]bool, len(p.EnabledMods))
	for _, name := range p.EnabledMods {
		enabled[name] = true
		if _, ok := list.Get(name); !ok {
			missing = append(missing, name)
		}
	}
	for _, m := range list.All() {
		m.Enabled = enabled[m.DupName()]
	}
	list.SetLoadOrder(p.LoadOrder)
	return missing
}
