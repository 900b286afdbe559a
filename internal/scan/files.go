package scan

import (
	"io/fs"
	"path/filepath"
	"strings"

	"ck3mm/internal/mods"
)

// FileKind says how the scanner treats a file.
type FileKind int

const (
	// KindScript is Paradox script parsed for top-level definitions.
	KindScript FileKind = iota
	// KindLocalization is a loc yml parsed for keys.
	KindLocalization
	// KindAsset is indexed by path only; the engine replaces the whole
	// file, so only same-path collisions matter.
	KindAsset
)

// FileTask is one file queued for a scan worker.
type FileTask struct {
	Mod     *mods.Mod
	AbsPath string
	RelPath string // slash-separated, relative to the mod root
	Kind    FileKind
	Size    int64
}

// Game directories whose .txt files hold overridable definitions.
// Everything else under a mod root (maps, music configs, readme files)
// is skipped for definition parsing.
var scriptRoots = []string{
	"common/",
	"events/",
	"history/",
	"gfx/",
	"gui/",
	"map_data/",
}

func classify(relPath string) (FileKind, bool) {
	ext := strings.ToLower(filepath.Ext(relPath))
	switch ext {
	case ".yml":
		if strings.HasPrefix(relPath, "localization/") {
			return KindLocalization, true
		}
		return KindAsset, true
	case ".gui", ".csv":
		return KindAsset, true
	case ".txt":
		for _, root := range scriptRoots {
			if strings.HasPrefix(relPath, root) {
				return KindScript, true
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

// CollectFiles walks a mod's content directory and returns the files
// worth scanning. Files over maxSize are skipped, as are skipDirs at
// any depth.
func CollectFiles(m *mods.Mod, skipDirs []string, maxSize int64) ([]FileTask, error) {
	skip := make(map[string]bool, len(skipDirs))
	for _, d := range skipDirs {
		skip[d] = true
	}
	var tasks []FileTask
	root := m.Path
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (skip[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		kind, ok := classify(rel)
		if !ok {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if maxSize > 0 && info.Size() > maxSize {
			return nil
		}
		tasks = append(tasks, FileTask{
			Mod:     m,
			AbsPath: path,
			RelPath: rel,
			Kind:    kind,
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
