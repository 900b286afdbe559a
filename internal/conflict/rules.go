package conflict

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Rules tunes what counts as a conflict. The zero value plus the
// built-in ignores is the default behavior.
type Rules struct {
	// IgnoreKeywords are identifiers that never conflict. Merged with
	// the built-in set.
	IgnoreKeywords []string `toml:"ignore_keywords"`
	// IgnoreDirs are game directories (slash-separated, e.g.
	// "common/on_action") whose definitions merge instead of override.
	IgnoreDirs []string `toml:"ignore_dirs"`
	// IgnoreMods are mod names excluded from conflict groups entirely,
	// typically compatibility patches that override on purpose.
	IgnoreMods []string `toml:"ignore_mods"`
	// CheckLocalization includes localization keys in conflict groups.
	CheckLocalization bool `toml:"check_localization"`
}

// The engine merges rather than overrides these identifiers, so two
// mods using them is normal.
var builtinIgnoreKeywords = []string{
	"namespace",
}

// LoadRules reads a rules TOML file. A missing file yields defaults.
func LoadRules(path string) (*Rules, error) {
	var r Rules
	if path == "" {
		return &r, nil
	}
	if _, err := toml.DecodeFile(path, &r); err != nil {
		if os.IsNotExist(err) {
			return &r, nil
		}
		return nil, err
	}
	return &r, nil
}

// Save writes the rules as TOML.
func (r *Rules) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(r)
}

func (r *Rules) ignoredKeyword(identifier string) bool {
	for _, k := range builtinIgnoreKeywords {
		if k == identifier {
			return true
		}
	}
	for _, k := range r.IgnoreKeywords {
		if k == identifier {
			return true
		}
	}
	return false
}

func (r *Rules) ignoredDir(relDir string) bool {
	for _, d := range r.IgnoreDirs {
		if d == relDir {
			return true
		}
	}
	return false
}

func (r *Rules) ignoredMod(name string) bool {
	for _, m := range r.IgnoreMods {
		if m == name {
			return true
		}
	}
	return false
}
