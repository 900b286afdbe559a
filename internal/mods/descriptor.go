// Package mods models CK3 mods, their .mod descriptor files and ordered
// mod lists. See https://ck3.paradoxwikis.com/Mod_structure for the
// descriptor format.
package mods

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"ck3mm/internal/ckerr"
)

// Mod represents a CK3 mod with metadata from its descriptor.
type Mod struct {
	Name             string   `json:"name"`
	Version          string   `json:"version,omitempty"`
	Path             string   `json:"path"`
	Tags             []string `json:"tags,omitempty"`
	SupportedVersion string   `json:"supportedVersion,omitempty"`
	RemoteFileID     string   `json:"remoteFileId,omitempty"` // set for Steam Workshop mods
	Picture          string   `json:"picture,omitempty"`
	ReplacePath      string   `json:"replacePath,omitempty"`
	Replaces         []string `json:"replaces,omitempty"`
	Dependencies     []string `json:"dependencies,omitempty"`

	// DescriptorFile is the .mod file this mod was loaded from.
	DescriptorFile string `json:"descriptorFile,omitempty"`

	Enabled   bool `json:"enabled"`
	LoadOrder int  `json:"loadOrder"`

	dupID int
}

// DupName returns the mod name with a #N suffix when the list holds
// several mods with the same display name.
func (m *Mod) DupName() string {
	if m.dupID > 0 {
		return fmt.Sprintf("%s#%d", m.Name, m.dupID)
	}
	return m.Name
}

var (
	scalarFieldRe = regexp.MustCompile(`([a-zA-Z0-9_]+)\s*=\s*"([^"]*)"`)
	listFieldRe   = regexp.MustCompile(`([a-zA-Z0-9_]+)\s*=\s*\{([^}]*)\}`)
	quotedRe      = regexp.MustCompile(`"([^"]+)"`)
)

// ParseDescriptor parses .mod descriptor text.
func ParseDescriptor(text string) *Mod {
	m := &Mod{}
	for _, match := range scalarFieldRe.FindAllStringSubmatch(text, -1) {
		key, value := match[1], match[2]
		switch key {
		case "name":
			m.Name = value
		case "version":
			m.Version = value
		case "path":
			m.Path = value
		case "supported_version":
			m.SupportedVersion = value
		case "remote_file_id":
			m.RemoteFileID = value
		case "picture":
			m.Picture = value
		case "replace_path":
			m.ReplacePath = value
		}
	}
	for _, match := range listFieldRe.FindAllStringSubmatch(text, -1) {
		var items []string
		for _, q := range quotedRe.FindAllStringSubmatch(match[2], -1) {
			items = append(items, q[1])
		}
		switch match[1] {
		case "tags":
			m.Tags = items
		case "replaces":
			m.Replaces = items
		case "dependencies":
			m.Dependencies = items
		}
	}
	return m
}

// LoadDescriptor reads and parses the descriptor at path. A relative
// `path = "mod/..."` entry is resolved against docsDir, the way the
// launcher resolves workshop descriptors copied into the mod folder.
func LoadDescriptor(path, docsDir string) (*Mod, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ckerr.New(ckerr.DescriptorNotFound, fmt.Sprintf("mod descriptor not found: %s", path), err)
		}
		return nil, err
	}
	m := ParseDescriptor(string(data))
	if m.Name == "" {
		return nil, ckerr.New(ckerr.DescriptorInvalid, fmt.Sprintf("descriptor has no name field: %s", path), nil)
	}
	m.DescriptorFile = path
	if m.Path != "" && !filepath.IsAbs(m.Path) && docsDir != "" {
		m.Path = filepath.Join(docsDir, filepath.FromSlash(m.Path))
	}
	return m, nil
}

// SaveDescriptor writes the mod's descriptor fields to path in the
// canonical field order. Comments from the original file are not kept.
func (m *Mod) SaveDescriptor(path string) error {
	var lines []string
	lines = append(lines, fmt.Sprintf("name = %q", m.Name))
	if m.Version != "" {
		lines = append(lines, fmt.Sprintf("version = %q", m.Version))
	}
	lines = append(lines, fmt.Sprintf("path = %q", filepath.ToSlash(m.Path)))
	if len(m.Tags) > 0 {
		lines = append(lines, fmt.Sprintf("tags={ %s }", quoteList(m.Tags)))
	}
	if m.SupportedVersion != "" {
		lines = append(lines, fmt.Sprintf("supported_version = %q", m.SupportedVersion))
	}
	if m.RemoteFileID != "" {
		lines = append(lines, fmt.Sprintf("remote_file_id = %q", m.RemoteFileID))
	}
	if m.Picture != "" {
		lines = append(lines, fmt.Sprintf("picture = %q", filepath.ToSlash(m.Picture)))
	}
	if m.ReplacePath != "" {
		lines = append(lines, fmt.Sprintf("replace_path = %q", filepath.ToSlash(m.ReplacePath)))
	}
	if len(m.Replaces) > 0 {
		lines = append(lines, fmt.Sprintf("replaces = { %s }", quoteList(m.Replaces)))
	}
	if len(m.Dependencies) > 0 {
		lines = append(lines, fmt.Sprintf("dependencies = { %s }", quoteList(m.Dependencies)))
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = strconv.Quote(s)
	}
	return strings.Join(quoted, " ")
}

// IsOutdated reports whether the mod's supported_version is older than
// the given game version. Wildcard parts ("1.12.*") match anything from
// that position on. Game versions may carry a suffix ("1.12.4 Scythe"),
// only the leading dotted part is compared.
func (m *Mod) IsOutdated(gameVersion string) bool {
	if m.SupportedVersion == "" {
		return false
	}
	fields := strings.Fields(gameVersion)
	if len(fields) == 0 {
		return false
	}
	supported := strings.Split(strings.TrimSpace(m.SupportedVersion), ".")
	current := strings.Split(fields[0], ".")
	for i := 0; i < len(supported) && i < len(current); i++ {
		if supported[i] == "*" || current[i] == "*" {
			return false
		}
		s, err1 := strconv.Atoi(supported[i])
		c, err2 := strconv.Atoi(current[i])
		if err1 != nil || err2 != nil {
			return false
		}
		if s < c {
			return true
		}
		if s > c {
			return false
		}
	}
	return false
}
