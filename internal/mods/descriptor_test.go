package mods

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleDescriptor = `version="1.3.0"
tags={
	"Gameplay"
	"Historical"
}
name="Better Barons"
supported_version="1.12.*"
path="mod/better_barons"
remote_file_id="2857495128"
picture="thumbnail.png"
`

func TestParseDescriptor(t *testing.T) {
	m := ParseDescriptor(sampleDescriptor)

	if m.Name != "Better Barons" {
		t.Errorf("Name = %q", m.Name)
	}
	if m.Version != "1.3.0" {
		t.Errorf("Version = %q", m.Version)
	}
	if m.Path != "mod/better_barons" {
		t.Errorf("Path = %q", m.Path)
	}
	if m.SupportedVersion != "1.12.*" {
		t.Errorf("SupportedVersion = %q", m.SupportedVersion)
	}
	if m.RemoteFileID != "2857495128" {
		t.Errorf("RemoteFileID = %q", m.RemoteFileID)
	}
	if len(m.Tags) != 2 || m.Tags[0] != "Gameplay" || m.Tags[1] != "Historical" {
		t.Errorf("Tags = %v", m.Tags)
	}
}

func TestLoadDescriptorResolvesRelativePath(t *testing.T) {
	docs := t.TempDir()
	descPath := filepath.Join(docs, "mod", "better_barons.mod")
	if err := os.MkdirAll(filepath.Dir(descPath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(descPath, []byte(sampleDescriptor), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadDescriptor(descPath, docs)
	if err != nil {
		t.Fatalf("LoadDescriptor: %v", err)
	}
	want := filepath.Join(docs, "mod", "better_barons")
	if m.Path != want {
		t.Errorf("Path = %q, want %q", m.Path, want)
	}
	if m.DescriptorFile != descPath {
		t.Errorf("DescriptorFile = %q", m.DescriptorFile)
	}
}

func TestLoadDescriptorMissing(t *testing.T) {
	_, err := LoadDescriptor(filepath.Join(t.TempDir(), "nope.mod"), "")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadDescriptorNoName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.mod")
	if err := os.WriteFile(path, []byte(`path="mod/x"`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDescriptor(path, ""); err == nil {
		t.Fatal("expected error for descriptor without name")
	}
}

func TestSaveDescriptorRoundTrip(t *testing.T) {
	m := &Mod{
		Name:             "Test Mod",
		Version:          "2.0",
		Path:             "mod/test_mod",
		Tags:             []string{"Fixes"},
		SupportedVersion: "1.12.4",
		RemoteFileID:     "12345",
	}
	path := filepath.Join(t.TempDir(), "test_mod.mod")
	if err := m.SaveDescriptor(path); err != nil {
		t.Fatalf("SaveDescriptor: %v", err)
	}

	got, err := LoadDescriptor(path, "")
	if err != nil {
		t.Fatalf("LoadDescriptor: %v", err)
	}
	if got.Name != m.Name || got.Version != m.Version || got.SupportedVersion != m.SupportedVersion {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "Fixes" {
		t.Errorf("Tags = %v", got.Tags)
	}
}

func TestIsOutdated(t *testing.T) {
	tests := []struct {
		supported string
		game      string
		want      bool
	}{
		{"1.12.4", "1.12.4", false},
		{"1.11.0", "1.12.4", true},
		{"1.13.0", "1.12.4", false},
		{"1.12.*", "1.12.4", false},
		{"1.12.*", "1.13.0", true},
		{"*", "1.12.4", false},
		{"1.12", "1.12.4 Scythe", false},
		{"1.11", "1.12.4 Scythe", true},
		{"", "1.12.4", false},
		{"1.12.4", "", false},
	}
	for _, tt := range tests {
		m := &Mod{SupportedVersion: tt.supported}
		if got := m.IsOutdated(tt.game); got != tt.want {
			t.Errorf("IsOutdated(%q vs %q) = %v, want %v", tt.supported, tt.game, got, tt.want)
		}
	}
}
