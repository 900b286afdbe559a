// Package scan walks mod directories, parses their files and feeds the
// definition index. Parsing fans out across workers; index writes stay
// on a single goroutine so the index needs no locking.
package scan

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"ck3mm/internal/ckerr"
	"ck3mm/internal/config"
	"ck3mm/internal/deftree"
	"ck3mm/internal/encoding"
	"ck3mm/internal/localization"
	"ck3mm/internal/logging"
	"ck3mm/internal/mods"
	"ck3mm/internal/paradox"
)

// ListMode selects where the mod list comes from.
type ListMode string

const (
	// ModeDefault loads the mod folder plus dlc_load.json state.
	ModeDefault ListMode = "default"
	// ModePlayset loads mods from playset JSON files.
	ModePlayset ListMode = "playset"
	// ModeFolder loads descriptors from an explicit folder, all
	// treated as enabled.
	ModeFolder ListMode = "folder"
)

// Manager ties configuration, the mod list and the definition index
// together for one scan session.
type Manager struct {
	cfg    *config.Config
	logger *logging.Logger

	Mods  *mods.List
	Index *deftree.Index
}

// NewManager creates a scan manager.
func NewManager(cfg *config.Config, logger *logging.Logger) *Manager {
	return &Manager{
		cfg:    cfg,
		logger: logger.WithComponent("scan"),
		Index:  deftree.NewIndex(),
	}
}

// BuildModList populates m.Mods according to mode. source is the
// playset directory or mod folder for the non-default modes.
func (m *Manager) BuildModList(mode ListMode, source string) error {
	ld := &mods.Loader{DocsDir: m.cfg.Paths.DocsDir, Logger: m.logger}
	var (
		list *mods.List
		err  error
	)
	switch mode {
	case ModeDefault, "":
		list, err = ld.LoadDefault(false)
	case ModePlayset:
		list, err = ld.LoadPlaysetDir(source)
	case ModeFolder:
		list, err = ld.LoadFolder(source)
	default:
		return ckerr.New(ckerr.ConfigInvalid, fmt.Sprintf("unknown mod list mode: %s", mode), nil)
	}
	if err != nil {
		return err
	}
	m.Mods = list
	m.logger.Info("Built mod list", map[string]interface{}{
		"mode":    string(mode),
		"total":   list.Len(),
		"enabled": len(list.Enabled()),
	})
	return nil
}

// scanRange returns the mods included in the scan per the configured
// conflict range.
func (m *Manager) scanRange() []*mods.Mod {
	switch m.cfg.Conflicts.Range {
	case "all":
		return m.Mods.All()
	case "disabled":
		return m.Mods.Disabled()
	default:
		return m.Mods.Enabled()
	}
}

// ParseError is one file the scanner could not handle.
type ParseError struct {
	Mod  string `json:"mod" yaml:"mod"`
	File string `json:"file" yaml:"file"`
	Err  string `json:"error" yaml:"error"`
}

// Result summarizes one scan run.
type Result struct {
	ModsScanned  int           `json:"modsScanned" yaml:"modsScanned"`
	FilesScanned int           `json:"filesScanned" yaml:"filesScanned"`
	Definitions  int           `json:"definitions" yaml:"definitions"`
	AssetPaths   []string      `json:"-" yaml:"-"`
	Errors       []ParseError  `json:"errors,omitempty" yaml:"errors,omitempty"`
	Duration     time.Duration `json:"duration" yaml:"duration"`
}

// parsed is a worker's output, merged into the index by the collector.
type parsed struct {
	seq  int // position in the task list; merges happen in this order
	task FileTask
	root *paradox.Node  // script files
	keys map[string]int // localization files
	err  error
}

// Scan parses every file of every in-range mod into the index.
func (m *Manager) Scan(ctx context.Context) (*Result, error) {
	if m.Mods == nil {
		return nil, ckerr.New(ckerr.InternalError, "scan called before BuildModList", nil)
	}
	start := time.Now()

	inRange := m.scanRange()
	var tasks []FileTask
	for _, mod := range inRange {
		if _, err := os.Stat(mod.Path); err != nil {
			m.logger.Warn("Mod directory missing, skipping", map[string]interface{}{
				"mod":  mod.DupName(),
				"path": mod.Path,
			})
			continue
		}
		files, err := CollectFiles(mod, m.cfg.Scan.SkipDirs, int64(m.cfg.Scan.MaxFileSizeBytes))
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, files...)
	}

	workers := m.cfg.Scan.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	m.logger.Info("Scanning mods", map[string]interface{}{
		"mods":    len(inRange),
		"files":   len(tasks),
		"workers": workers,
	})

	type seqTask struct {
		seq  int
		task FileTask
	}
	taskCh := make(chan seqTask)
	outCh := make(chan parsed, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for st := range taskCh {
				p := m.parseFile(st.task)
				p.seq = st.seq
				outCh <- p
			}
		}()
	}
	go func() {
		defer close(taskCh)
		for i, t := range tasks {
			select {
			case taskCh <- seqTask{seq: i, task: t}:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Buffer worker output and merge in task order. Files collect in mod
	// load order, and the index relies on insertion order to decide which
	// definition wins.
	results := make([]*parsed, len(tasks))
	for p := range outCh {
		p := p
		results[p.seq] = &p
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{ModsScanned: len(inRange)}
	seenAssets := make(map[string]bool)
	for _, pp := range results {
		if pp == nil {
			continue
		}
		p := *pp
		if p.err != nil {
			res.Errors = append(res.Errors, ParseError{
				Mod:  p.task.Mod.DupName(),
				File: p.task.RelPath,
				Err:  p.err.Error(),
			})
			continue
		}
		res.FilesScanned++
		modName := p.task.Mod.DupName()
		switch {
		case p.root != nil:
			m.Index.AddDefinitions(modName, p.task.AbsPath, p.task.RelPath, p.root)
		case p.keys != nil:
			m.Index.AddKeys(modName, p.task.AbsPath, p.task.RelPath, p.keys)
		default:
			m.Index.AddFile(modName, p.task.AbsPath, p.task.RelPath)
			if !seenAssets[p.task.RelPath] {
				seenAssets[p.task.RelPath] = true
				res.AssetPaths = append(res.AssetPaths, p.task.RelPath)
			}
		}
	}

	res.Definitions = m.Index.DefCount()
	res.Duration = time.Since(start)
	m.logger.Info("Scan complete", map[string]interface{}{
		"files":       res.FilesScanned,
		"definitions": res.Definitions,
		"errors":      len(res.Errors),
		"duration":    res.Duration.String(),
	})
	return res, nil
}

func (m *Manager) parseFile(task FileTask) parsed {
	switch task.Kind {
	case KindScript:
		text, _, err := encoding.DecodeFile(task.AbsPath)
		if err != nil {
			return parsed{task: task, err: err}
		}
		root := paradox.Parse([]byte(text))
		if m.cfg.Scan.MaxDefDepth >= 0 {
			root = &paradox.Node{
				Kind:     paradox.KindFile,
				Line:     root.Line,
				Children: paradox.Definitions(root, m.cfg.Scan.MaxDefDepth),
			}
		}
		return parsed{task: task, root: root}
	case KindLocalization:
		text, _, err := encoding.DecodeFile(task.AbsPath)
		if err != nil {
			return parsed{task: task, err: err}
		}
		file := localization.Parse(text)
		keys := make(map[string]int, len(file.Entries))
		for _, e := range file.Entries {
			keys[e.Key] = e.Line
		}
		return parsed{task: task, keys: keys}
	default:
		return parsed{task: task}
	}
}
