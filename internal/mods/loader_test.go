package mods

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeMod creates a descriptor plus content dir under docs and returns
// the descriptor path.
func writeMod(t *testing.T, docs, fileBase, name string) string {
	t.Helper()
	modDir := filepath.Join(docs, "mod")
	if err := os.MkdirAll(filepath.Join(modDir, fileBase), 0755); err != nil {
		t.Fatal(err)
	}
	desc := filepath.Join(modDir, fileBase+".mod")
	content := "name = \"" + name + "\"\npath = \"mod/" + fileBase + "\"\n"
	if err := os.WriteFile(desc, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return desc
}

func TestLoadFolder(t *testing.T) {
	docs := t.TempDir()
	writeMod(t, docs, "alpha", "Alpha")
	writeMod(t, docs, "beta", "Beta")
	// A broken descriptor should be skipped, not fail the whole load.
	if err := os.WriteFile(filepath.Join(docs, "mod", "broken.mod"), []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}

	ld := &Loader{DocsDir: docs}
	list, err := ld.LoadFolder(filepath.Join(docs, "mod"))
	if err != nil {
		t.Fatalf("LoadFolder: %v", err)
	}
	if list.Len() != 2 {
		t.Fatalf("Len = %d, want 2", list.Len())
	}
	if _, ok := list.Get("Alpha"); !ok {
		t.Error("missing Alpha")
	}
	for _, m := range list.All() {
		if m.Enabled {
			t.Errorf("%s should be disabled after folder load", m.Name)
		}
	}
}

func TestLoadEnabled(t *testing.T) {
	docs := t.TempDir()
	writeMod(t, docs, "alpha", "Alpha")
	writeMod(t, docs, "beta", "Beta")

	dlc := dlcLoad{EnabledMods: []string{"mod/beta.mod", "mod/alpha.mod"}}
	data, _ := json.Marshal(dlc)
	dlcPath := filepath.Join(docs, "dlc_load.json")
	if err := os.WriteFile(dlcPath, data, 0644); err != nil {
		t.Fatal(err)
	}

	ld := &Loader{DocsDir: docs}
	list, err := ld.LoadEnabled(dlcPath)
	if err != nil {
		t.Fatalf("LoadEnabled: %v", err)
	}
	if got := list.LoadOrder(); !reflect.DeepEqual(got, []string{"Beta", "Alpha"}) {
		t.Errorf("LoadOrder = %v, want [Beta Alpha]", got)
	}
}

func TestSaveEnabledRoundTrip(t *testing.T) {
	docs := t.TempDir()
	writeMod(t, docs, "alpha", "Alpha")
	writeMod(t, docs, "beta", "Beta")

	dlc := dlcLoad{EnabledMods: []string{"mod/alpha.mod"}, DisabledDLCs: []string{"dlc001.dlc"}}
	data, _ := json.Marshal(dlc)
	dlcPath := filepath.Join(docs, "dlc_load.json")
	if err := os.WriteFile(dlcPath, data, 0644); err != nil {
		t.Fatal(err)
	}

	ld := &Loader{DocsDir: docs}
	list, err := ld.LoadDefault(false)
	if err != nil {
		t.Fatal(err)
	}
	beta, _ := list.Get("Beta")
	beta.Enabled = true
	list.Sort()

	if err := ld.SaveEnabled(list, dlcPath); err != nil {
		t.Fatalf("SaveEnabled: %v", err)
	}

	saved, err := os.ReadFile(dlcPath)
	if err != nil {
		t.Fatal(err)
	}
	var got dlcLoad
	if err := json.Unmarshal(saved, &got); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.EnabledMods, []string{"mod/alpha.mod", "mod/beta.mod"}) {
		t.Errorf("EnabledMods = %v, want [mod/alpha.mod mod/beta.mod]", got.EnabledMods)
	}
	if !reflect.DeepEqual(got.DisabledDLCs, []string{"dlc001.dlc"}) {
		t.Errorf("DisabledDLCs = %v, want preserved [dlc001.dlc]", got.DisabledDLCs)
	}
}

func TestLoadDefaultOverlaysEnabled(t *testing.T) {
	docs := t.TempDir()
	writeMod(t, docs, "alpha", "Alpha")
	writeMod(t, docs, "beta", "Beta")

	dlc := dlcLoad{EnabledMods: []string{"mod/beta.mod"}}
	data, _ := json.Marshal(dlc)
	if err := os.WriteFile(filepath.Join(docs, "dlc_load.json"), data, 0644); err != nil {
		t.Fatal(err)
	}

	ld := &Loader{DocsDir: docs}
	list, err := ld.LoadDefault(false)
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if list.Len() != 2 {
		t.Fatalf("Len = %d, want 2", list.Len())
	}
	beta, _ := list.Get("Beta")
	if !beta.Enabled {
		t.Error("Beta should be enabled")
	}
	alpha, _ := list.Get("Alpha")
	if alpha.Enabled {
		t.Error("Alpha should be disabled")
	}
}

func TestLoadDefaultNoDLCLoad(t *testing.T) {
	docs := t.TempDir()
	writeMod(t, docs, "alpha", "Alpha")

	ld := &Loader{DocsDir: docs}
	list, err := ld.LoadDefault(false)
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if list.Len() != 1 {
		t.Errorf("Len = %d, want 1", list.Len())
	}
}

func TestLoadPlaysetDir(t *testing.T) {
	docs := t.TempDir()
	alphaDesc := writeMod(t, docs, "alpha", "Alpha")

	psDir := filepath.Join(docs, "playsets")
	if err := os.MkdirAll(psDir, 0755); err != nil {
		t.Fatal(err)
	}
	ps := playset{Name: "My Playset", Mods: []string{alphaDesc}}
	data, _ := json.Marshal(ps)
	if err := os.WriteFile(filepath.Join(psDir, "my_playset.json"), data, 0644); err != nil {
		t.Fatal(err)
	}

	ld := &Loader{DocsDir: docs}
	list, err := ld.LoadPlaysetDir(psDir)
	if err != nil {
		t.Fatalf("LoadPlaysetDir: %v", err)
	}
	if list.Len() != 1 {
		t.Fatalf("Len = %d, want 1", list.Len())
	}
	m := list.All()[0]
	if m.Name != "Alpha" || !m.Enabled {
		t.Errorf("got %+v, want enabled Alpha", m)
	}
}

func TestLoadOrderRoundTrip(t *testing.T) {
	docs := t.TempDir()
	writeMod(t, docs, "alpha", "Alpha")
	writeMod(t, docs, "beta", "Beta")

	ld := &Loader{DocsDir: docs}
	modDir := filepath.Join(docs, "mod")
	list, err := ld.LoadFolder(modDir)
	if err != nil {
		t.Fatal(err)
	}
	alpha, _ := list.Get("Alpha")
	alpha.Enabled = true
	list.Sort()

	orderPath := filepath.Join(docs, "load_order.txt")
	if err := SaveLoadOrder(list, orderPath); err != nil {
		t.Fatalf("SaveLoadOrder: %v", err)
	}

	loaded, err := ld.LoadLoadOrder(orderPath, modDir)
	if err != nil {
		t.Fatalf("LoadLoadOrder: %v", err)
	}
	if got := loaded.LoadOrder(); !reflect.DeepEqual(got, []string{"Alpha"}) {
		t.Errorf("LoadOrder = %v, want [Alpha]", got)
	}
	beta, ok := loaded.Get("Beta")
	if !ok || beta.Enabled {
		t.Errorf("Beta = %+v, %v, want present and disabled", beta, ok)
	}
}

func TestHideUnhideDisabled(t *testing.T) {
	docs := t.TempDir()
	writeMod(t, docs, "alpha", "Alpha")
	writeMod(t, docs, "beta", "Beta")

	ld := &Loader{DocsDir: docs}
	list, err := ld.LoadFolder(filepath.Join(docs, "mod"))
	if err != nil {
		t.Fatal(err)
	}
	alpha, _ := list.Get("Alpha")
	alpha.Enabled = true

	if err := list.HideDisabled(); err != nil {
		t.Fatalf("HideDisabled: %v", err)
	}
	hidden := filepath.Join(docs, "mod", "beta.mod_disabled")
	if _, err := os.Stat(hidden); err != nil {
		t.Fatalf("beta descriptor not hidden: %v", err)
	}
	if _, err := os.Stat(filepath.Join(docs, "mod", "alpha.mod")); err != nil {
		t.Fatalf("enabled alpha should keep its descriptor: %v", err)
	}

	// A fresh folder load still sees the hidden descriptor.
	reloaded, err := ld.LoadFolder(filepath.Join(docs, "mod"))
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Len() != 2 {
		t.Fatalf("reloaded Len = %d, want 2", reloaded.Len())
	}

	if err := reloaded.UnhideDisabled(); err != nil {
		t.Fatalf("UnhideDisabled: %v", err)
	}
	if _, err := os.Stat(filepath.Join(docs, "mod", "beta.mod")); err != nil {
		t.Fatalf("beta descriptor not restored: %v", err)
	}
}

func TestLoadLoadOrderBadLine(t *testing.T) {
	docs := t.TempDir()
	path := filepath.Join(docs, "load_order.txt")
	if err := os.WriteFile(path, []byte("alpha.mod\n"), 0644); err != nil {
		t.Fatal(err)
	}
	ld := &Loader{DocsDir: docs}
	if _, err := ld.LoadLoadOrder(path, docs); err == nil {
		t.Fatal("expected error for line without +/- prefix")
	}
}
