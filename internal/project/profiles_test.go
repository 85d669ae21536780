package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/facer/internal/model"
)

func testProfile(name string) model.GCodeProfile {
	return model.GCodeProfile{
		Name:          name,
		Description:   "Shop controller",
		Units:         "inches",
		StartCode:     []string{"G90", "G20"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5", "M30"},
		CommentPrefix: "(",
		CommentSuffix: ")",
		DecimalPlaces: 4,
	}
}

func TestSaveAndLoadCustomProfiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.json")

	profiles := []model.GCodeProfile{testProfile("Shop A"), testProfile("Shop B")}
	profiles[1].IsBuiltIn = true

	if err := SaveCustomProfiles(path, profiles); err != nil {
		t.Fatalf("SaveCustomProfiles: %v", err)
	}

	loaded, err := LoadCustomProfiles(path)
	if err != nil {
		t.Fatalf("LoadCustomProfiles: %v", err)
	}

	if len(loaded) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(loaded))
	}
	if loaded[0].Name != "Shop A" || loaded[1].Name != "Shop B" {
		t.Errorf("unexpected names %q, %q", loaded[0].Name, loaded[1].Name)
	}
	// The built-in flag is never persisted
	if loaded[1].IsBuiltIn {
		t.Error("loaded profile should not be marked as built-in")
	}
	if len(loaded[0].EndCode) != 2 || loaded[0].EndCode[1] != "M30" {
		t.Errorf("unexpected end code %v", loaded[0].EndCode)
	}
}

func TestLoadCustomProfilesNonExistent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.json")

	profiles, err := LoadCustomProfiles(path)
	if err != nil {
		t.Fatalf("expected no error for nonexistent file, got: %v", err)
	}
	if len(profiles) != 0 {
		t.Fatalf("expected 0 profiles for nonexistent file, got %d", len(profiles))
	}
}

func TestLoadCustomProfilesInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")

	if err := os.WriteFile(path, []byte("not valid json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadCustomProfiles(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestExportAndImportProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exported.json")

	if err := ExportProfile(path, testProfile("Exported")); err != nil {
		t.Fatalf("ExportProfile: %v", err)
	}

	imported, err := ImportProfile(path)
	if err != nil {
		t.Fatalf("ImportProfile: %v", err)
	}

	if imported.Name != "Exported" {
		t.Errorf("expected name Exported, got %s", imported.Name)
	}
	if imported.IsBuiltIn {
		t.Error("imported profile should not be marked as built-in")
	}
	if len(imported.StartCode) != 2 {
		t.Errorf("expected 2 start codes, got %d", len(imported.StartCode))
	}
}

func TestImportProfileNoName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noname.json")

	if err := os.WriteFile(path, []byte(`{"description": "no name"}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ImportProfile(path); err == nil {
		t.Fatal("expected error for profile without name")
	}
}

func TestImportProfileBuiltInName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grbl.json")
	if err := ExportProfile(path, testProfile("Grbl")); err != nil {
		t.Fatalf("ExportProfile: %v", err)
	}

	if _, err := ImportProfile(path); err == nil {
		t.Fatal("expected error for profile shadowing a built-in")
	}
}

func TestAddCustomProfileReplacesByName(t *testing.T) {
	profiles := []model.GCodeProfile{testProfile("A"), testProfile("B")}
	updated := testProfile("A")
	updated.DecimalPlaces = 2

	out := AddCustomProfile(profiles, updated)
	if len(out) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(out))
	}
	if out[0].Name != "B" || out[1].DecimalPlaces != 2 {
		t.Errorf("expected replaced profile appended last, got %+v", out)
	}
	if profiles[0].DecimalPlaces != 4 {
		t.Error("input slice must not be modified")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dir")
	path := filepath.Join(dir, "profiles.json")

	if err := SaveCustomProfiles(path, []model.GCodeProfile{}); err != nil {
		t.Fatalf("SaveCustomProfiles should create directories: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("file was not created in nested directory")
	}
}
