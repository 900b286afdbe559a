package conflict

import (
	"testing"

	"ck3mm/internal/deftree"
	"ck3mm/internal/paradox"
)

const sampleLog = `[18:43:10][I][jomini.cpp:123]: Loading mods
[18:43:12][W][gamedatabase.h:321]: Overriding entry 'is_available' for database 'common/scripted_triggers' in 'file: common/scripted_triggers/zzz_triggers.txt line: 1'
[18:43:12][W][gamedatabase.h:321]: Overriding entry 'brave' for database 'common/traits' in 'file: common/traits/zz_traits.txt line: 14'
[18:43:13][E][pdx_persistent.cpp:55]: unrelated error line
`

func TestParseGameLog(t *testing.T) {
	overrides := ParseGameLog(sampleLog)
	if len(overrides) != 2 {
		t.Fatalf("overrides = %d, want 2", len(overrides))
	}
	o := overrides[0]
	if o.EngineSource != "gamedatabase.h:321" {
		t.Errorf("EngineSource = %q", o.EngineSource)
	}
	if o.Identifier != "is_available" || o.RelDir != "common/scripted_triggers" {
		t.Errorf("parsed = %+v", o)
	}
	if o.File != "common/scripted_triggers/zzz_triggers.txt" || o.Line != 1 {
		t.Errorf("file/line = %q/%d", o.File, o.Line)
	}
}

func TestAttribute(t *testing.T) {
	ix := deftree.NewIndex()
	ix.AddDefinitions("Mod A", "/a/t.txt", "common/traits/00_traits.txt", paradox.Parse([]byte("brave = {}\n")))
	ix.AddDefinitions("Mod B", "/b/t.txt", "common/traits/zz_traits.txt", paradox.Parse([]byte("brave = {}\n")))

	overrides := ParseGameLog(sampleLog)
	Attribute(overrides, ix)

	var brave *ParsedOverride
	for i := range overrides {
		if overrides[i].Identifier == "brave" {
			brave = &overrides[i]
		}
	}
	if brave == nil {
		t.Fatal("brave override missing")
	}
	if len(brave.Sources) != 2 {
		t.Fatalf("sources = %d, want 2", len(brave.Sources))
	}
	if brave.Sources[0].Mod != "Mod A" {
		t.Errorf("first source = %q", brave.Sources[0].Mod)
	}

	// is_available is not in the index, so it stays unattributed.
	for _, o := range overrides {
		if o.Identifier == "is_available" && len(o.Sources) != 0 {
			t.Errorf("is_available should be unattributed, got %+v", o.Sources)
		}
	}
}
