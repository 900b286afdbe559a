package mods

import (
	"reflect"
	"testing"
)

func TestListDuplicateNames(t *testing.T) {
	l := NewList([]*Mod{
		{Name: "Same Name", Path: "/a"},
		{Name: "Same Name", Path: "/b"},
		{Name: "Same Name", Path: "/c"},
	})

	want := []string{"Same Name", "Same Name#1", "Same Name#2"}
	if got := l.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}

	m, ok := l.Get("Same Name#2")
	if !ok || m.Path != "/c" {
		t.Errorf("Get(Same Name#2) = %+v, %v", m, ok)
	}
}

func TestListUnnamedMods(t *testing.T) {
	l := NewList([]*Mod{{Path: "/a"}, {Path: "/b"}})
	if _, ok := l.Get("unknown_1"); !ok {
		t.Error("missing unknown_1")
	}
	if _, ok := l.Get("unknown_2"); !ok {
		t.Error("missing unknown_2")
	}
}

func TestListSort(t *testing.T) {
	l := NewList([]*Mod{
		{Name: "C"},
		{Name: "A"},
		{Name: "B"},
	})
	a, _ := l.Get("A")
	a.Enabled = true
	b, _ := l.Get("B")
	b.Enabled = true
	l.SetLoadOrder([]string{"B", "A"})

	want := []string{"B", "A", "C"}
	if got := l.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names after sort = %v, want %v", got, want)
	}
	if got := l.LoadOrder(); !reflect.DeepEqual(got, []string{"B", "A"}) {
		t.Errorf("LoadOrder = %v", got)
	}
}

func TestListMerge(t *testing.T) {
	all := NewList([]*Mod{
		{Name: "Alpha", Path: "/alpha"},
		{Name: "Beta", Path: "/beta"},
	})
	enabled := NewList([]*Mod{
		{Name: "Beta", Path: "/beta", Enabled: true},
		{Name: "Gamma", Path: "/gamma", Enabled: true},
	})

	all.Merge(enabled)

	if all.Len() != 3 {
		t.Fatalf("Len = %d, want 3", all.Len())
	}
	beta, _ := all.Get("Beta")
	if !beta.Enabled {
		t.Error("Beta should be enabled after merge")
	}
	alpha, _ := all.Get("Alpha")
	if alpha.Enabled {
		t.Error("Alpha should stay disabled")
	}
	if _, ok := all.Get("Gamma"); !ok {
		t.Error("Gamma should be added by merge")
	}
	if got := all.LoadOrder(); !reflect.DeepEqual(got, []string{"Beta", "Gamma"}) {
		t.Errorf("LoadOrder = %v", got)
	}
}

func TestGetByDir(t *testing.T) {
	l := NewList([]*Mod{{Name: "X", Path: "/mods/x"}})
	if m, ok := l.GetByDir("/mods/x"); !ok || m.Name != "X" {
		t.Errorf("GetByDir = %+v, %v", m, ok)
	}
	if _, ok := l.GetByDir("/mods/y"); ok {
		t.Error("GetByDir should miss unknown dir")
	}
}
