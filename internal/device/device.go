// Package device models the persistent device-state collaborators of
// the recovery workflow: the initialized flag and the secure counter.
package device

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/keyfort/keyfort/internal/fileutil"
)

// Memory persists the device initialized flag.
type Memory interface {
	SetInitialized() error
}

// SecureChip exposes the monotonic security counter. Callers treat a
// counter-set failure as non-fatal.
type SecureChip interface {
	SetU2FCounter(value uint32) error
}

const (
	flagsFileName   = "device.yaml"
	counterFileName = "counter"

	deviceDirPerm  = 0o750
	deviceFilePerm = 0o600
)

// flags is the on-disk device flag record.
type flags struct {
	Initialized bool `yaml:"initialized"`
}

// FileMemory implements Memory with an atomically written flags file.
type FileMemory struct {
	dir string
}

// NewFileMemory creates device memory rooted at dir.
func NewFileMemory(dir string) *FileMemory {
	return &FileMemory{dir: dir}
}

// SetInitialized marks the device initialized.
func (m *FileMemory) SetInitialized() error {
	if err := fileutil.EnsureDir(m.dir, deviceDirPerm); err != nil {
		return fmt.Errorf("preparing device directory: %w", err)
	}

	data, err := yaml.Marshal(&flags{Initialized: true})
	if err != nil {
		return fmt.Errorf("encoding device flags: %w", err)
	}

	return fileutil.WriteAtomic(m.flagsPath(), data, deviceFilePerm)
}

// Initialized reports the persisted flag.
func (m *FileMemory) Initialized() bool {
	data, err := os.ReadFile(m.flagsPath()) // #nosec G304 -- path is device-owned
	if err != nil {
		return false
	}
	var f flags
	if err := yaml.Unmarshal(data, &f); err != nil {
		return false
	}
	return f.Initialized
}

func (m *FileMemory) flagsPath() string {
	return filepath.Join(m.dir, flagsFileName)
}

// FileCounter implements SecureChip with a monotonic counter file. A
// value below the stored one never overwrites it.
type FileCounter struct {
	dir string
}

// NewFileCounter creates a counter rooted at dir.
func NewFileCounter(dir string) *FileCounter {
	return &FileCounter{dir: dir}
}

// SetU2FCounter stores value if it advances the counter.
func (c *FileCounter) SetU2FCounter(value uint32) error {
	if value <= c.Value() {
		return nil
	}

	if err := fileutil.EnsureDir(c.dir, deviceDirPerm); err != nil {
		return fmt.Errorf("preparing device directory: %w", err)
	}

	data := []byte(strconv.FormatUint(uint64(value), 10))
	return fileutil.WriteAtomic(c.counterPath(), data, deviceFilePerm)
}

// Value reads the persisted counter, 0 when absent.
func (c *FileCounter) Value() uint32 {
	data, err := os.ReadFile(c.counterPath()) // #nosec G304 -- path is device-owned
	if err != nil {
		return 0
	}
	n, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}

func (c *FileCounter) counterPath() string {
	return filepath.Join(c.dir, counterFileName)
}
