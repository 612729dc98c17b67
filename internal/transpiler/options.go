// Package transpiler turns shader sources into ES modules that export the
// processed shader text as a template literal.
//
// Include directives are resolved against a search path and replaced by
// template interpolations of generated imports, so included code is composed
// when the module loads rather than inlined at transpile time. A source that
// carries "#pragma once" is wrapped in an include guard, and sources can be
// minified before any directive is processed.
package transpiler

// Options is the single configuration value consumed by the engine.
type Options struct {
	// RootDir is removed from paths before guard and import identifiers are derived.
	RootDir string `json:"rootDir" yaml:"rootDir"`
	// OutDir replaces RootDir when output paths are derived.
	OutDir string `json:"outDir" yaml:"outDir"`
	// IncludeDirs is the ordered search path for <name> includes.
	IncludeDirs []string `json:"includeDirs" yaml:"includeDirs"`
	// Extensions are lower-cased without a leading dot; order is fallback priority.
	Extensions []string `json:"extensions" yaml:"extensions"`
	// Minify strips comments and redundant whitespace.
	Minify bool `json:"minify" yaml:"minify"`
	// AllowAuxIncludes adds .ts and .jss variants to every search extension.
	AllowAuxIncludes bool `json:"allowAuxIncludes" yaml:"allowAuxIncludes"`
	// VerboseLevel only affects diagnostics.
	VerboseLevel int `json:"verboseLevel" yaml:"verboseLevel"`
}

// auxSuffixes are appended to every search extension when AllowAuxIncludes is set.
var auxSuffixes = []string{".ts", ".jss"}

// SearchExtensions returns the candidate suffixes tried for every include
// target: each configured extension with a leading dot, then the bare name,
// then (with AllowAuxIncludes) every one of those suffixed by the aux script
// extensions.
func SearchExtensions(opts Options) []string {
	exts := make([]string, 0, (len(opts.Extensions)+1)*(1+len(auxSuffixes)))
	for _, e := range opts.Extensions {
		exts = append(exts, "."+e)
	}
	exts = append(exts, "")

	if opts.AllowAuxIncludes {
		base := len(exts)
		for i := 0; i < base; i++ {
			for _, aux := range auxSuffixes {
				exts = append(exts, exts[i]+aux)
			}
		}
	}

	return exts
}
