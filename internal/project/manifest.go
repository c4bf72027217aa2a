// Package project locates and parses tim.toml, the manifest describing a
// package's name and entry module.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ModuleKind distinguishes the entry point a manifest names.
type ModuleKind uint8

const (
	// ModuleKindFile means [package].entry names a single .tim file.
	ModuleKindFile ModuleKind = iota
	// ModuleKindDir means [package].entry names a directory of .tim files.
	ModuleKindDir
)

// Config is the parsed contents of tim.toml.
type Config struct {
	Package PackageConfig `toml:"package"`
}

// PackageConfig is the [package] table.
type PackageConfig struct {
	Name  string `toml:"name"`
	Entry string `toml:"entry"`
}

// Manifest is a located and parsed tim.toml, with paths resolved relative
// to the directory it was found in.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// ErrNoManifest explains why FindManifest could not locate tim.toml.
var ErrNoManifest = errors.New("no tim.toml found")

// FindManifest walks upward from startDir looking for tim.toml, the way a
// version-control root is discovered: check the current directory, then
// each parent, stopping at the filesystem root. Returns ErrNoManifest if
// none is found.
func FindManifest(startDir string) (*Manifest, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "tim.toml")
		if _, statErr := os.Stat(candidate); statErr == nil {
			cfg, loadErr := loadConfig(candidate)
			if loadErr != nil {
				return nil, loadErr
			}
			return &Manifest{Path: candidate, Root: dir, Config: cfg}, nil
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return nil, fmt.Errorf("stat %q: %w", candidate, statErr)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, ErrNoManifest
		}
		dir = parent
	}
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: parse tim.toml: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if strings.TrimSpace(cfg.Package.Entry) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].entry", path)
	}
	return cfg, nil
}

// EntryPath returns the manifest's entry point resolved to an absolute
// path, along with whether it names a file or a directory.
func (m *Manifest) EntryPath() (string, ModuleKind, error) {
	entry := filepath.Join(m.Root, filepath.FromSlash(strings.TrimSpace(m.Config.Package.Entry)))
	info, err := os.Stat(entry)
	if err != nil {
		return "", 0, fmt.Errorf("%s: [package].entry path does not exist: %s", m.Path, entry)
	}
	if info.IsDir() {
		return entry, ModuleKindDir, nil
	}
	if filepath.Ext(entry) != ".tim" {
		return "", 0, fmt.Errorf("%s: [package].entry must be a .tim file or directory", m.Path)
	}
	return entry, ModuleKindFile, nil
}
