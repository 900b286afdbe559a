package mods

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ck3mm/internal/ckerr"
	"ck3mm/internal/logging"
)

// dlcLoad mirrors the launcher's dlc_load.json.
type dlcLoad struct {
	EnabledMods  []string `json:"enabled_mods"`
	DisabledDLCs []string `json:"disabled_dlcs"`
}

// playset mirrors a Paradox Mod Manager playset JSON file.
type playset struct {
	Name string   `json:"name"`
	Mods []string `json:"mods"` // descriptor paths
}

// Loader reads mods from the launcher and filesystem layouts.
type Loader struct {
	DocsDir string
	Logger  *logging.Logger
}

func (ld *Loader) logger() *logging.Logger {
	if ld.Logger != nil {
		return ld.Logger
	}
	return logging.NewLogger(logging.Config{Format: logging.HumanFormat, Level: logging.ErrorLevel})
}

// LoadFolder loads every *.mod descriptor under modDir, including ones
// hidden as *.mod_disabled. All mods come back disabled; enabled state
// belongs to dlc_load.json or a profile.
func (ld *Loader) LoadFolder(modDir string) (*List, error) {
	entries, err := os.ReadDir(modDir)
	if err != nil {
		return nil, err
	}
	var items []*Mod
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".mod" && ext != ".mod_disabled") {
			continue
		}
		m, err := LoadDescriptor(filepath.Join(modDir, e.Name()), ld.DocsDir)
		if err != nil {
			ld.logger().Error("Failed loading mod descriptor", map[string]interface{}{
				"file":  e.Name(),
				"error": err.Error(),
			})
			continue
		}
		items = append(items, m)
	}
	return NewList(items), nil
}

// LoadEnabled loads the mods listed in dlc_load.json, in load order,
// all marked enabled.
func (ld *Loader) LoadEnabled(dlcLoadPath string) (*List, error) {
	data, err := os.ReadFile(dlcLoadPath)
	if err != nil {
		return nil, err
	}
	var dlc dlcLoad
	if err := json.Unmarshal(data, &dlc); err != nil {
		return nil, ckerr.New(ckerr.ProfileInvalid, fmt.Sprintf("malformed dlc_load file: %s", dlcLoadPath), err)
	}
	var items []*Mod
	for _, rel := range dlc.EnabledMods {
		m, err := LoadDescriptor(filepath.Join(ld.DocsDir, filepath.FromSlash(rel)), ld.DocsDir)
		if err != nil {
			ld.logger().Error("Failed loading enabled mod descriptor", map[string]interface{}{
				"descriptor": rel,
				"error":      err.Error(),
			})
			continue
		}
		m.Enabled = true
		items = append(items, m)
	}
	return NewList(items), nil
}

// SaveEnabled writes the list's enabled mods to a dlc_load.json file in
// load order, preserving any disabled_dlcs the file already carries.
func (ld *Loader) SaveEnabled(list *List, dlcLoadPath string) error {
	var dlc dlcLoad
	if data, err := os.ReadFile(dlcLoadPath); err == nil {
		if err := json.Unmarshal(data, &dlc); err != nil {
			return ckerr.New(ckerr.ProfileInvalid, fmt.Sprintf("malformed dlc_load file: %s", dlcLoadPath), err)
		}
	}
	dlc.EnabledMods = nil
	for _, m := range list.Enabled() {
		rel, err := filepath.Rel(ld.DocsDir, m.DescriptorFile)
		if err != nil || strings.HasPrefix(rel, "..") {
			rel = m.DescriptorFile
		}
		dlc.EnabledMods = append(dlc.EnabledMods, filepath.ToSlash(rel))
	}
	if dlc.DisabledDLCs == nil {
		dlc.DisabledDLCs = []string{}
	}
	if dlc.EnabledMods == nil {
		dlc.EnabledMods = []string{}
	}
	data, err := json.MarshalIndent(&dlc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(dlcLoadPath, data, 0644)
}

// LoadDefault loads all mods from the mod folder and overlays enabled
// state and load order from dlc_load.json. With enabledOnly, only the
// dlc_load.json mods are loaded.
func (ld *Loader) LoadDefault(enabledOnly bool) (*List, error) {
	dlcPath := filepath.Join(ld.DocsDir, "dlc_load.json")
	if enabledOnly {
		return ld.LoadEnabled(dlcPath)
	}
	list, err := ld.LoadFolder(filepath.Join(ld.DocsDir, "mod"))
	if err != nil {
		return nil, err
	}
	enabled, err := ld.LoadEnabled(dlcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return list, nil
		}
		return nil, err
	}
	list.Merge(enabled)
	return list, nil
}

// LoadPlaysetDir loads mods from every playset *.json in dir.
func (ld *Loader) LoadPlaysetDir(dir string) (*List, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var items []*Mod
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		var ps playset
		if err := json.Unmarshal(data, &ps); err != nil {
			return nil, ckerr.New(ckerr.PlaysetInvalid, fmt.Sprintf("malformed playset file: %s", e.Name()), err)
		}
		for _, descPath := range ps.Mods {
			m, err := LoadDescriptor(descPath, ld.DocsDir)
			if err != nil {
				ld.logger().Error("Failed loading playset mod descriptor", map[string]interface{}{
					"playset":    e.Name(),
					"descriptor": descPath,
					"error":      err.Error(),
				})
				continue
			}
			m.Enabled = true
			items = append(items, m)
		}
	}
	return NewList(items), nil
}

// SaveLoadOrder writes a load_order.txt style file:
//
//	+enabled_descriptor1.mod
//	-disabled_descriptor1.mod
func SaveLoadOrder(list *List, path string) error {
	var lines []string
	for _, m := range list.All() {
		prefix := "-"
		if m.Enabled {
			prefix = "+"
		}
		lines = append(lines, prefix+filepath.ToSlash(filepath.Base(m.DescriptorFile)))
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}

// LoadLoadOrder reads a load_order.txt file, resolving descriptor names
// against modDir.
func (ld *Loader) LoadLoadOrder(path, modDir string) (*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []*Mod
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line[0] != '+' && line[0] != '-' {
			return nil, ckerr.New(ckerr.ProfileInvalid, fmt.Sprintf("load order line must start with + or -: %q", line), nil)
		}
		m, err := LoadDescriptor(filepath.Join(modDir, line[1:]), ld.DocsDir)
		if err != nil {
			ld.logger().Error("Failed loading mod from load order", map[string]interface{}{
				"line":  line,
				"error": err.Error(),
			})
			continue
		}
		m.Enabled = line[0] == '+'
		items = append(items, m)
	}
	return NewList(items), nil
}
