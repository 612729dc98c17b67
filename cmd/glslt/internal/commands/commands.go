package commands

import (
	"github.com/wolfeidau/glslt/internal/config"
)

type Globals struct {
	Debug     bool
	LogFormat string
	Version   string
}

// ConfigFlags are the flags shared by every command that reads the project configuration.
type ConfigFlags struct {
	ProjectDir       string   `short:"p" help:"Project directory holding tsconfig.json and threeify.{json,yaml,yml,toml}." default:"." type:"path" env:"GLSLT_PROJECT_DIR"`
	RootDir          string   `short:"r" help:"Root directory of the shader sources." env:"GLSLT_ROOT_DIR"`
	OutDir           string   `short:"o" help:"Directory the modules are written to." env:"GLSLT_OUT_DIR"`
	IncludeDirs      []string `short:"i" help:"Directories searched by <...> includes, relative to the root directory." sep:"," env:"GLSLT_INCLUDE_DIRS"`
	Extensions       []string `short:"e" help:"Shader source extensions." sep:"," env:"GLSLT_EXTENSIONS"`
	AllowAuxIncludes bool     `short:"j" aliases:"allow-js-includes" xor:"aux" help:"Also resolve includes to .ts and .jss files." env:"GLSLT_ALLOW_AUX_INCLUDES"`
	NoAuxIncludes    bool     `xor:"aux" help:"Turn off aux includes enabled by the project file."`
	Minify           bool     `short:"m" xor:"minify" help:"Minify shader text before resolving includes." env:"GLSLT_MINIFY"`
	NoMinify         bool     `xor:"minify" help:"Turn off minification enabled by the project file."`
	VerboseLevel     *int     `short:"v" help:"Verbosity: 1 logs every file, 2 enables debug output." env:"GLSLT_VERBOSE_LEVEL"`
}

func (f *ConfigFlags) overrides() config.Overrides {
	return config.Overrides{
		RootDir:          f.RootDir,
		OutDir:           f.OutDir,
		IncludeDirs:      f.IncludeDirs,
		Extensions:       f.Extensions,
		Minify:           switchOverride(f.Minify, f.NoMinify),
		AllowAuxIncludes: switchOverride(f.AllowAuxIncludes, f.NoAuxIncludes),
		VerboseLevel:     f.VerboseLevel,
	}
}

// switchOverride maps an on/off flag pair onto an override; nil when neither was given.
func switchOverride(on, off bool) *bool {
	switch {
	case off:
		return new(bool)
	case on:
		v := true
		return &v
	default:
		return nil
	}
}
