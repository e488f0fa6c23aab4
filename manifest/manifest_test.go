package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lumen-lang/lumen/runtime"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "lumen.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing lumen.toml: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[runtime]
checks = false

[snapshot]
path = "values.db"

[log]
verbosity = 2
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.ChecksEnabled() {
		t.Error("checks = false should disable checked mode")
	}
	if got := m.SnapshotPath(); got != filepath.Join(m.Dir, "values.db") {
		t.Errorf("SnapshotPath() = %s, want %s", got, filepath.Join(m.Dir, "values.db"))
	}
	if m.Log.Verbosity != 2 {
		t.Errorf("Log.Verbosity = %d, want 2", m.Log.Verbosity)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "")

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !m.ChecksEnabled() {
		t.Error("an absent checks key should default to checked mode")
	}
	if m.Snapshot.Path != "lumen-snapshots.db" {
		t.Errorf("Snapshot.Path = %q, want default", m.Snapshot.Path)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("Load of a directory without lumen.toml should fail")
	}
}

func TestFindAndLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[log]\nverbosity = 1\n")

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	m, err := FindAndLoad(nested)
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if m == nil {
		t.Fatal("FindAndLoad should locate the manifest in an ancestor")
	}
	if m.Log.Verbosity != 1 {
		t.Errorf("Log.Verbosity = %d, want 1", m.Log.Verbosity)
	}
}

func TestFindAndLoadNotFound(t *testing.T) {
	m, err := FindAndLoad(t.TempDir())
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if m != nil {
		t.Error("FindAndLoad in an empty tree should return nil")
	}
}

func TestApply(t *testing.T) {
	prev := runtime.ChecksEnabled()
	t.Cleanup(func() { runtime.SetChecks(prev) })

	dir := t.TempDir()
	writeManifest(t, dir, "[runtime]\nchecks = false\n")

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	m.Apply()
	if runtime.ChecksEnabled() {
		t.Error("Apply should have switched the runtime to unchecked mode")
	}
}
