package conflict

import (
	"path/filepath"
	"testing"

	"ck3mm/internal/deftree"
	"ck3mm/internal/paradox"
)

func buildIndex(t *testing.T) *deftree.Index {
	t.Helper()
	ix := deftree.NewIndex()
	ix.AddDefinitions("Mod A", "/a/t.txt", "common/traits/00_traits.txt",
		paradox.Parse([]byte("brave = { opposites = { craven } }\ncalm = {}\n")))
	ix.AddDefinitions("Mod B", "/b/t.txt", "common/traits/zz_traits.txt",
		paradox.Parse([]byte("brave = { icon = \"x.dds\" }\n")))
	ix.AddDefinitions("Mod A", "/a/e.txt", "events/my_events.txt",
		paradox.Parse([]byte("namespace = shared_ns\nmy_event.1 = {}\n")))
	ix.AddDefinitions("Mod B", "/b/e.txt", "events/other_events.txt",
		paradox.Parse([]byte("namespace = shared_ns\nother_event.1 = {}\n")))
	return ix
}

func TestDetect(t *testing.T) {
	groups := Detect(buildIndex(t), nil)

	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1: %+v", len(groups), groups)
	}
	g := groups[0]
	if g.RelDir != "common/traits" || g.Identifier != "brave" {
		t.Errorf("group = %s/%s", g.RelDir, g.Identifier)
	}
	if len(g.Sources) != 2 {
		t.Fatalf("sources = %d, want 2", len(g.Sources))
	}
	if g.Winner() != "Mod B" {
		t.Errorf("Winner = %q, want Mod B", g.Winner())
	}
}

func TestDetectIgnoresNamespace(t *testing.T) {
	groups := Detect(buildIndex(t), nil)
	for _, g := range groups {
		if g.Identifier == "namespace" {
			t.Fatal("namespace must never be a conflict")
		}
	}
}

func TestDetectRules(t *testing.T) {
	ix := buildIndex(t)

	groups := Detect(ix, &Rules{IgnoreKeywords: []string{"brave"}})
	if len(groups) != 0 {
		t.Errorf("ignore_keywords: groups = %+v, want none", groups)
	}

	groups = Detect(ix, &Rules{IgnoreDirs: []string{"common/traits"}})
	if len(groups) != 0 {
		t.Errorf("ignore_dirs: groups = %+v, want none", groups)
	}

	groups = Detect(ix, &Rules{IgnoreMods: []string{"Mod B"}})
	if len(groups) != 0 {
		t.Errorf("ignore_mods: groups = %+v, want none", groups)
	}
}

func TestDetectLocalization(t *testing.T) {
	ix := deftree.NewIndex()
	ix.AddKeys("Mod A", "/a/l.yml", "localization/english/a_l_english.yml", map[string]int{"key": 1})
	ix.AddKeys("Mod B", "/b/l.yml", "localization/english/b_l_english.yml", map[string]int{"key": 1})

	if got := Detect(ix, nil); len(got) != 0 {
		t.Errorf("localization off by default, got %+v", got)
	}
	if got := Detect(ix, &Rules{CheckLocalization: true}); len(got) != 1 {
		t.Errorf("localization on: groups = %+v, want 1", got)
	}
}

func TestDetectFileOverrides(t *testing.T) {
	ix := deftree.NewIndex()
	ix.AddFile("Mod A", "/a/gui/hud.gui", "gui/hud.gui")
	ix.AddFile("Mod B", "/b/gui/hud.gui", "gui/hud.gui")
	ix.AddFile("Mod A", "/a/gui/map.gui", "gui/map.gui")

	groups := DetectFileOverrides(ix, []string{"gui/hud.gui", "gui/map.gui"}, nil)
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	if groups[0].Identifier != "hud.gui" || groups[0].RelDir != "gui" {
		t.Errorf("group = %+v", groups[0])
	}
}

func TestRulesRoundTrip(t *testing.T) {
	r := &Rules{
		IgnoreKeywords:    []string{"on_game_start"},
		IgnoreDirs:        []string{"common/on_action"},
		IgnoreMods:        []string{"Compat Patch"},
		CheckLocalization: true,
	}
	path := filepath.Join(t.TempDir(), "rules.toml")
	if err := r.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if len(got.IgnoreKeywords) != 1 || got.IgnoreKeywords[0] != "on_game_start" {
		t.Errorf("IgnoreKeywords = %v", got.IgnoreKeywords)
	}
	if !got.CheckLocalization {
		t.Error("CheckLocalization lost")
	}
}

func TestLoadRulesMissing(t *testing.T) {
	r, err := LoadRules(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing rules file must yield defaults, got %v", err)
	}
	if !r.ignoredKeyword("namespace") {
		t.Error("built-in ignore lost")
	}
}

func TestByMod(t *testing.T) {
	groups := Detect(buildIndex(t), nil)
	byMod := ByMod(groups)
	if len(byMod["Mod A"]) != 1 || len(byMod["Mod B"]) != 1 {
		t.Errorf("ByMod = %+v", byMod)
	}
}
