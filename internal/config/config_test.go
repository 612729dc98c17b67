package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	s, err := Load(dir, Overrides{})
	require.NoError(t, err)

	assert.Equal(t, dir, s.RootDir)
	assert.Equal(t, filepath.Join(dir, "dist"), s.OutDir)
	assert.Equal(t, []string{dir}, s.IncludeDirs)
	assert.Equal(t, []string{"glsl"}, s.Extensions)
	assert.False(t, s.Minify)
	assert.False(t, s.AllowAuxIncludes)
	assert.Zero(t, s.VerboseLevel)
	assert.Empty(t, s.Loaded)
}

func TestLoad_TSConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "src"), 0755))
	writeFile(t, filepath.Join(dir, "tsconfig.json"), `{
  // compiler settings
  "compilerOptions": {
    "rootDir": "./src",
    "outDir": "./build" /* emitted code */
  }
}`)

	s, err := Load(dir, Overrides{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "src"), s.RootDir)
	assert.Equal(t, filepath.Join(dir, "build"), s.OutDir)
	assert.Equal(t, []string{filepath.Join(dir, "tsconfig.json")}, s.Loaded)
}

func TestLoad_ProjectFileFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "json",
			file: "threeify.json",
			content: `{
  "glsl": {
    "rootDir": "src",
    "outDir": "out",
    "includeDirs": ["lib", "vendor"],
    "extensions": ["GLSL", ".vert"],
    "minify": true,
    "verboseLevel": 1,
    "allowJSIncludes": true,
    "exclude": ["generated/"]
  }
}`,
		},
		{
			name: "yaml",
			file: "threeify.yaml",
			content: `glsl:
  rootDir: src
  outDir: out
  includeDirs: [lib, vendor]
  extensions: [GLSL, .vert]
  minify: true
  verboseLevel: 1
  allowAuxIncludes: true
  exclude:
    - generated/
`,
		},
		{
			name: "toml",
			file: "threeify.toml",
			content: `[glsl]
rootDir = "src"
outDir = "out"
includeDirs = ["lib", "vendor"]
extensions = ["GLSL", ".vert"]
minify = true
verboseLevel = 1
allowAuxIncludes = true
exclude = ["generated/"]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.Mkdir(filepath.Join(dir, "src"), 0755))
			writeFile(t, filepath.Join(dir, tt.file), tt.content)

			s, err := Load(dir, Overrides{})
			require.NoError(t, err)

			root := filepath.Join(dir, "src")
			assert.Equal(t, root, s.RootDir)
			assert.Equal(t, filepath.Join(dir, "out"), s.OutDir)
			assert.Equal(t, []string{filepath.Join(root, "lib"), filepath.Join(root, "vendor")}, s.IncludeDirs)
			assert.Equal(t, []string{"glsl", "vert"}, s.Extensions)
			assert.True(t, s.Minify)
			assert.True(t, s.AllowAuxIncludes)
			assert.Equal(t, 1, s.VerboseLevel)
			assert.Equal(t, []string{"generated/"}, s.Exclude)
			assert.Equal(t, []string{filepath.Join(dir, tt.file)}, s.Loaded)
		})
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	for _, d := range []string{"ts", "project", "cli"} {
		require.NoError(t, os.Mkdir(filepath.Join(dir, d), 0755))
	}
	writeFile(t, filepath.Join(dir, "tsconfig.json"), `{"compilerOptions": {"rootDir": "ts", "outDir": "ts-out"}}`)
	writeFile(t, filepath.Join(dir, "threeify.json"), `{"glsl": {"rootDir": "project", "verboseLevel": 2}}`)

	t.Run("settings file overrides tsconfig", func(t *testing.T) {
		s, err := Load(dir, Overrides{})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "project"), s.RootDir)
		assert.Equal(t, filepath.Join(dir, "ts-out"), s.OutDir)
		assert.Equal(t, 2, s.VerboseLevel)
	})

	t.Run("command line overrides everything", func(t *testing.T) {
		verbose := 0
		minify := true
		s, err := Load(dir, Overrides{
			RootDir:      "cli",
			IncludeDirs:  []string{"/abs/include"},
			Extensions:   []string{"frag"},
			Minify:       &minify,
			VerboseLevel: &verbose,
		})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "cli"), s.RootDir)
		assert.Equal(t, []string{"/abs/include"}, s.IncludeDirs)
		assert.Equal(t, []string{"frag"}, s.Extensions)
		assert.True(t, s.Minify)
		assert.Zero(t, s.VerboseLevel)
	})
}

func TestLoad_FlagsTurnSettingsOff(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "threeify.json"), `{"glsl": {"rootDir": ".", "minify": true, "allowJSIncludes": true}}`)

	s, err := Load(dir, Overrides{})
	require.NoError(t, err)
	assert.True(t, s.Minify)
	assert.True(t, s.AllowAuxIncludes)

	off := false
	s, err = Load(dir, Overrides{Minify: &off, AllowAuxIncludes: &off})
	require.NoError(t, err)
	assert.False(t, s.Minify)
	assert.False(t, s.AllowAuxIncludes)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing root directory", func(t *testing.T) {
		_, err := Load(t.TempDir(), Overrides{RootDir: "nope"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrRootDirNotFound))
	})

	t.Run("empty root directory", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "threeify.json"), `{"glsl": {"rootDir": ""}}`)
		_, err := Load(dir, Overrides{})
		assert.True(t, errors.Is(err, ErrNoRootDir))
	})

	t.Run("empty output directory", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "threeify.yaml"), "glsl:\n  outDir: \"\"\n")
		_, err := Load(dir, Overrides{})
		assert.True(t, errors.Is(err, ErrNoOutDir))
	})

	t.Run("no usable extension", func(t *testing.T) {
		_, err := Load(t.TempDir(), Overrides{Extensions: []string{" ", "."}})
		assert.True(t, errors.Is(err, ErrNoExtensions))
	})

	t.Run("malformed settings file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "threeify.toml"), "[glsl\nrootDir = ")
		_, err := Load(dir, Overrides{})
		assert.True(t, errors.Is(err, ErrInvalidConfig))
	})
}

func TestReadSection_NoSection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "threeify.json")
	writeFile(t, path, `{"other": true}`)

	sec, err := ReadSection(path)
	require.NoError(t, err)
	assert.Nil(t, sec)
}
