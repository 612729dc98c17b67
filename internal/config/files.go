package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/glslt/internal/transpiler"
	"gopkg.in/yaml.v3"
)

const tsConfigFile = "tsconfig.json"

// ProjectFiles are the settings files looked up in the project directory;
// the first one present is used.
var ProjectFiles = []string{"threeify.json", "threeify.yaml", "threeify.yml", "threeify.toml"}

type tsConfig struct {
	CompilerOptions *struct {
		RootDir string `json:"rootDir" yaml:"rootDir"`
		OutDir  string `json:"outDir" yaml:"outDir"`
	} `json:"compilerOptions" yaml:"compilerOptions"`
}

// Section is the "glsl" section of a project settings file. Pointer fields
// distinguish an absent key from a zero value.
type Section struct {
	RootDir          *string  `yaml:"rootDir" toml:"rootDir"`
	OutDir           *string  `yaml:"outDir" toml:"outDir"`
	IncludeDirs      []string `yaml:"includeDirs" toml:"includeDirs"`
	Extensions       []string `yaml:"extensions" toml:"extensions"`
	Minify           *bool    `yaml:"minify" toml:"minify"`
	VerboseLevel     *int     `yaml:"verboseLevel" toml:"verboseLevel"`
	AllowJSIncludes  *bool    `yaml:"allowJSIncludes" toml:"allowJSIncludes"`
	AllowAuxIncludes *bool    `yaml:"allowAuxIncludes" toml:"allowAuxIncludes"`
	Exclude          []string `yaml:"exclude" toml:"exclude"`
	IgnoreFile       *string  `yaml:"ignoreFile" toml:"ignoreFile"`
}

type projectFile struct {
	GLSL *Section `yaml:"glsl" toml:"glsl"`
}

// mergeTSConfig takes rootDir and outDir from compilerOptions. The file is
// optional. A file that is not strict JSON is retried with comments
// stripped, as tsc accepts them.
func (s *Settings) mergeTSConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg tsConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		cfg = tsConfig{}
		if err := yaml.Unmarshal([]byte(transpiler.StripComments(string(data))), &cfg); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
	}

	if cfg.CompilerOptions == nil {
		return nil
	}

	log.Debug().Str("path", path).Msg("inferring setup from tsconfig")

	if cfg.CompilerOptions.RootDir != "" {
		s.RootDir = cfg.CompilerOptions.RootDir
	}
	if cfg.CompilerOptions.OutDir != "" {
		s.OutDir = cfg.CompilerOptions.OutDir
	}
	s.Loaded = append(s.Loaded, path)

	return nil
}

// mergeProjectFile applies the "glsl" section of the first settings file
// found in dir.
func (s *Settings) mergeProjectFile(dir string) error {
	for _, name := range ProjectFiles {
		path := filepath.Join(dir, name)
		section, err := ReadSection(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}

		log.Debug().Str("path", path).Msg("reading settings")

		if section != nil {
			s.merge(section)
			s.Loaded = append(s.Loaded, path)
		}
		return nil
	}
	return nil
}

// ReadSection decodes the "glsl" section of a settings file, choosing the
// decoder by extension: TOML for .toml, YAML (a superset of JSON) otherwise.
// It returns nil when the file has no such section.
func ReadSection(path string) (*Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var pf projectFile
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &pf)
	} else {
		err = yaml.Unmarshal(data, &pf)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	return pf.GLSL, nil
}

func (s *Settings) merge(sec *Section) {
	if sec.RootDir != nil {
		s.RootDir = *sec.RootDir
	}
	if sec.OutDir != nil {
		s.OutDir = *sec.OutDir
	}
	if len(sec.IncludeDirs) > 0 {
		s.IncludeDirs = sec.IncludeDirs
	}
	if len(sec.Extensions) > 0 {
		s.Extensions = sec.Extensions
	}
	if sec.Minify != nil {
		s.Minify = *sec.Minify
	}
	if sec.VerboseLevel != nil {
		s.VerboseLevel = *sec.VerboseLevel
	}
	if sec.AllowJSIncludes != nil {
		s.AllowAuxIncludes = *sec.AllowJSIncludes
	}
	if sec.AllowAuxIncludes != nil {
		s.AllowAuxIncludes = *sec.AllowAuxIncludes
	}
	if len(sec.Exclude) > 0 {
		s.Exclude = append(s.Exclude, sec.Exclude...)
	}
	if sec.IgnoreFile != nil {
		s.IgnoreFile = *sec.IgnoreFile
	}
}
