// Package manifest handles lumen.toml runtime configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/lumen-lang/lumen/runtime"
)

// Manifest represents a lumen.toml runtime configuration.
type Manifest struct {
	Runtime  Runtime  `toml:"runtime"`
	Snapshot Snapshot `toml:"snapshot"`
	Log      Log      `toml:"log"`

	// Dir is the directory containing the lumen.toml file (set at load time).
	Dir string `toml:"-"`
}

// Runtime selects the validation policy for the value runtime.
type Runtime struct {
	// Checks reports range and bounds violations as faults when true, and
	// trusts the compiler when false. Absent means checked.
	Checks *bool `toml:"checks"`
}

// Snapshot configures the snapshot store.
type Snapshot struct {
	Path string `toml:"path"`
}

// Log configures diagnostic output of the CLI tools.
type Log struct {
	Verbosity int `toml:"verbosity"`
}

// Load parses a lumen.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "lumen.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	// Defaults
	if m.Snapshot.Path == "" {
		m.Snapshot.Path = "lumen-snapshots.db"
	}

	return &m, nil
}

// FindAndLoad walks up from startDir to find a lumen.toml file, then loads
// and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", startDir, err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "lumen.toml")); err == nil {
			return Load(dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// ChecksEnabled returns the configured validation policy, defaulting to
// checked mode.
func (m *Manifest) ChecksEnabled() bool {
	if m.Runtime.Checks == nil {
		return true
	}
	return *m.Runtime.Checks
}

// SnapshotPath returns the snapshot store path, resolved against the
// manifest directory when relative.
func (m *Manifest) SnapshotPath() string {
	if filepath.IsAbs(m.Snapshot.Path) {
		return m.Snapshot.Path
	}
	return filepath.Join(m.Dir, m.Snapshot.Path)
}

// Apply flips the runtime policy switch to the configured mode.
func (m *Manifest) Apply() {
	runtime.SetChecks(m.ChecksEnabled())
}
