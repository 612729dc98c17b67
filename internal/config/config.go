// Package config merges the transpiler configuration from defaults, the
// project's tsconfig.json, the project settings file and command line
// overrides, in that order, and normalizes the result into absolute paths.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/glslt/internal/transpiler"
)

// Sentinel errors
var (
	// ErrNoRootDir is returned when the merged configuration has no root directory.
	ErrNoRootDir = errors.New("no rootDir specified")

	// ErrRootDirNotFound is returned when the root directory does not exist.
	ErrRootDirNotFound = errors.New("rootDir doesn't exist")

	// ErrNoOutDir is returned when the merged configuration has no output directory.
	ErrNoOutDir = errors.New("no outDir specified")

	// ErrNoExtensions is returned when no usable source extension remains.
	ErrNoExtensions = errors.New("no extensions specified")

	// ErrInvalidConfig is returned when a configuration file cannot be decoded.
	ErrInvalidConfig = errors.New("invalid configuration file")
)

// Settings is the merged configuration: the engine options plus the source
// selection settings used by the batch pipeline.
type Settings struct {
	transpiler.Options

	// ProjectDir anchors relative rootDir, outDir and ignore file paths.
	ProjectDir string
	// Exclude holds gitignore-like patterns, relative to RootDir, removed from the source set.
	Exclude []string
	// IgnoreFile is an optional rules file with the same syntax as Exclude.
	IgnoreFile string
	// Loaded lists the configuration files that contributed, in merge order.
	Loaded []string
}

// Overrides carries command line values. Zero values mean "not set"; nil
// pointers leave the merged value untouched, so a flag can switch a setting
// from the project file off as well as on.
type Overrides struct {
	RootDir          string
	OutDir           string
	IncludeDirs      []string
	Extensions       []string
	Exclude          []string
	IgnoreFile       string
	Minify           *bool
	AllowAuxIncludes *bool
	VerboseLevel     *int
}

// Defaults returns the configuration used before any file is read.
func Defaults() Settings {
	return Settings{
		Options: transpiler.Options{
			RootDir:    ".",
			OutDir:     "./dist",
			Extensions: []string{"glsl"},
		},
	}
}

// Load merges every configuration layer for projectDir and normalizes the
// result. An empty projectDir means the working directory.
func Load(projectDir string, ov Overrides) (*Settings, error) {
	if projectDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		projectDir = wd
	}
	projectDir, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project directory: %w", err)
	}

	s := Defaults()
	s.ProjectDir = projectDir

	if err := s.mergeTSConfig(filepath.Join(projectDir, tsConfigFile)); err != nil {
		return nil, err
	}

	if err := s.mergeProjectFile(projectDir); err != nil {
		return nil, err
	}

	s.apply(ov)

	if err := s.Normalize(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("rootDir", s.RootDir).
		Str("outDir", s.OutDir).
		Strs("includeDirs", s.IncludeDirs).
		Strs("extensions", s.Extensions).
		Bool("minify", s.Minify).
		Bool("allowAuxIncludes", s.AllowAuxIncludes).
		Strs("loaded", s.Loaded).
		Msg("configuration resolved")

	return &s, nil
}

// apply copies every override that was set.
func (s *Settings) apply(ov Overrides) {
	if ov.RootDir != "" {
		s.RootDir = ov.RootDir
	}
	if ov.OutDir != "" {
		s.OutDir = ov.OutDir
	}
	if len(ov.IncludeDirs) > 0 {
		s.IncludeDirs = ov.IncludeDirs
	}
	if len(ov.Extensions) > 0 {
		s.Extensions = ov.Extensions
	}
	if len(ov.Exclude) > 0 {
		s.Exclude = append(s.Exclude, ov.Exclude...)
	}
	if ov.IgnoreFile != "" {
		s.IgnoreFile = ov.IgnoreFile
	}
	if ov.Minify != nil {
		s.Minify = *ov.Minify
	}
	if ov.AllowAuxIncludes != nil {
		s.AllowAuxIncludes = *ov.AllowAuxIncludes
	}
	if ov.VerboseLevel != nil {
		s.VerboseLevel = *ov.VerboseLevel
	}
}

// Normalize lower-cases extensions and makes every directory absolute:
// rootDir and outDir against ProjectDir, include directories against rootDir.
// With no include directory configured the root directory is searched.
func (s *Settings) Normalize() error {
	exts := make([]string, 0, len(s.Extensions))
	for _, ext := range s.Extensions {
		ext = strings.ToLower(strings.TrimLeft(strings.TrimSpace(ext), "."))
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	if len(exts) == 0 {
		return ErrNoExtensions
	}
	s.Extensions = exts

	if s.RootDir == "" {
		return ErrNoRootDir
	}
	if s.OutDir == "" {
		return ErrNoOutDir
	}

	s.RootDir = absFrom(s.ProjectDir, s.RootDir)
	s.OutDir = absFrom(s.ProjectDir, s.OutDir)

	info, err := os.Stat(s.RootDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrRootDirNotFound, s.RootDir)
	}

	dirs := make([]string, 0, len(s.IncludeDirs))
	for _, dir := range s.IncludeDirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		dirs = append(dirs, absFrom(s.RootDir, dir))
	}
	if len(dirs) == 0 {
		dirs = append(dirs, s.RootDir)
	}
	s.IncludeDirs = dirs

	if s.IgnoreFile != "" {
		s.IgnoreFile = absFrom(s.ProjectDir, s.IgnoreFile)
	}

	return nil
}

func absFrom(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
