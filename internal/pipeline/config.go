package pipeline

import (
	"runtime"

	"github.com/wolfeidau/glslt/internal/transpiler"
)

type Config struct {
	// Engine options; RootDir, OutDir and Extensions also select the sources
	Options transpiler.Options
	// Gitignore-like patterns, relative to RootDir, removed from the source set
	Exclude []string
	// Optional rules file with the same syntax as Exclude
	IgnoreFile string
	// Number of files transpiled concurrently
	Workers int
	// Whether to parse every emitted module with esbuild and report syntax errors
	CheckOutput bool
	// Whether to write a zstd compressed copy next to every output
	Compress bool
	// Number of output digests remembered to skip identical rewrites
	CacheSize int
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() Config {
	return Config{
		Options: transpiler.Options{
			RootDir:    ".",
			OutDir:     "dist",
			Extensions: []string{"glsl"},
		},
		Workers:   runtime.NumCPU(),
		CacheSize: 1024,
	}
}
