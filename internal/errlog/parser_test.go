package errlog

import (
	"strings"
	"testing"
)

const sampleLog = `[18:43:10][I][jomini.cpp:123]: Loading mods
[18:43:12][E][jomini_eventmanager.cpp:370]: Event my_mod.0001 is orphaned
[18:43:12][E][pdx_localize.cpp:279]: Duplicate localization key. Key 'shared_key' is defined in both 'localization/english/a_l_english.yml' and 'localization/english/b_l_english.yml'
[18:43:13][E][localize.cpp:1854]: 'localization/english/c_l_english.yml' should be encoded in utf-8-bom encoding
[18:43:13][E][jomini_script_system.cpp:303]: Script system error!
  Error: Invalid scope
  file: common/scripted_effects/my_effects.txt line: 12 (my_effect)
[18:43:14][E][jomini_eventmanager.cpp:370]: Event my_mod.0001 is orphaned
[18:43:15][E][some_new_engine_file.cpp:99]: something ck3mm has never seen
[18:43:16][W][gamedatabase.h:321]: Overriding entry 'x' for database 'common/traits' in 'file: f.txt line: 1'
`

func TestParse(t *testing.T) {
	errors := Parse(sampleLog, true)

	byType := CountByType(errors)
	if byType[EventOrphaned] != 1 {
		t.Errorf("EventOrphaned = %d, want 1 (deduplicated)", byType[EventOrphaned])
	}
	if byType[DuplicateLocKey] != 1 {
		t.Errorf("DuplicateLocKey = %d, want 1", byType[DuplicateLocKey])
	}
	if byType[EncodingError] != 1 {
		t.Errorf("EncodingError = %d, want 1", byType[EncodingError])
	}
	if byType[ScriptError] != 1 {
		t.Errorf("ScriptError = %d, want 1", byType[ScriptError])
	}
	if byType[UnknownError] != 1 {
		t.Errorf("UnknownError = %d, want 1", byType[UnknownError])
	}
}

func TestParseNoDedup(t *testing.T) {
	errors := Parse(sampleLog, false)
	if got := CountByType(errors)[EventOrphaned]; got != 2 {
		t.Errorf("EventOrphaned without dedup = %d, want 2", got)
	}
}

func TestParseMultilineEntry(t *testing.T) {
	errors := Parse(sampleLog, true)
	var script *ParsedError
	for i := range errors {
		if errors[i].Type == ScriptError {
			script = &errors[i]
		}
	}
	if script == nil {
		t.Fatal("no script error parsed")
	}
	if !strings.Contains(script.Message, "Invalid scope") {
		t.Errorf("continuation lines lost: %q", script.Message)
	}
	if len(script.Sources) != 1 {
		t.Fatalf("sources = %d, want 1", len(script.Sources))
	}
	s := script.Sources[0]
	if s.File != "common/scripted_effects/my_effects.txt" || s.Line != 12 || s.Object != "my_effect" {
		t.Errorf("source = %+v", s)
	}
}

func TestParseDuplicateLocKeyFields(t *testing.T) {
	errors := Parse(sampleLog, true)
	for _, e := range errors {
		if e.Type != DuplicateLocKey {
			continue
		}
		if len(e.Sources) != 1 {
			t.Fatalf("sources = %d, want 1", len(e.Sources))
		}
		s := e.Sources[0]
		if s.Key != "shared_key" {
			t.Errorf("Key = %q", s.Key)
		}
		if s.File != "localization/english/a_l_english.yml" || s.File2 != "localization/english/b_l_english.yml" {
			t.Errorf("files = %q / %q", s.File, s.File2)
		}
		return
	}
	t.Fatal("no duplicate loc key error parsed")
}

func TestParseEncodingError(t *testing.T) {
	errors := Parse(sampleLog, true)
	for _, e := range errors {
		if e.Type != EncodingError {
			continue
		}
		if e.Source() == nil || e.Source().File != "localization/english/c_l_english.yml" {
			t.Errorf("source = %+v", e.Source())
		}
		return
	}
	t.Fatal("no encoding error parsed")
}

func TestParseLogLine(t *testing.T) {
	errors := Parse(sampleLog, true)
	if len(errors) == 0 {
		t.Fatal("no errors")
	}
	if errors[0].LogLine != 2 {
		t.Errorf("LogLine = %d, want 2", errors[0].LogLine)
	}
}

func TestParseInvalidSupportedVersion(t *testing.T) {
	log := `[10:00:00][E][dlc_descriptor.cpp:70]: Invalid supported_version in file: mod/broken_mod.mod line: 4`
	errors := Parse(log, true)
	if len(errors) != 1 || errors[0].Type != InvalidSupportedVersion {
		t.Fatalf("errors = %+v", errors)
	}
	if errors[0].Sources[0].File != "mod/broken_mod.mod" {
		t.Errorf("file = %q", errors[0].Sources[0].File)
	}
}

func TestSplitEntriesCRLF(t *testing.T) {
	log := "[10:00:00][E][pdx_locstring.cpp:93]: Key is missing localization: some_key\r\n"
	errors := Parse(log, true)
	if len(errors) != 1 || errors[0].Type != MissingLocalization {
		t.Fatalf("errors = %+v", errors)
	}
	if errors[0].Sources[0].Key != "some_key" {
		t.Errorf("key = %q", errors[0].Sources[0].Key)
	}
}
