package transpiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Result is the outcome of transpiling one source.
type Result struct {
	// Output is the emitted module text.
	Output string
	// OutputPath is where Output is written.
	OutputPath string
	// Imports are the unique import statements in first-seen order.
	Imports []string
	// Includes are the resolved directives in processing order.
	Includes []Include
	// Errors holds one message per unresolved directive; empty means success.
	Errors []string
}

// OutputPath maps a source path into the output tree: the first occurrence
// of RootDir is replaced by OutDir and ".js" is appended.
func OutputPath(sourcePath string, opts Options) string {
	sourcePath = filepath.Clean(sourcePath)
	if opts.RootDir != "" {
		sourcePath = strings.Replace(sourcePath, opts.RootDir, opts.OutDir, 1)
	}
	return sourcePath + ".js"
}

// Compile transpiles source, read from sourcePath, into a module. It touches
// the filesystem only to resolve includes.
//
// Passes run in a fixed order: minify, include guard, local includes,
// absolute includes. Guard detection looks at the unmodified source so a
// "#pragma once" is honoured even when minification already changed the text.
func Compile(sourcePath, source string, opts Options) *Result {
	body := source
	if opts.Minify {
		body = Minify(body)
	}

	if HasPragmaOnce(source) {
		body = WrapGuard(body, GuardName(sourcePath, opts.RootDir))
	}

	p := newIncludeProcessor(sourcePath, opts)

	body = p.process(body, DirectiveLocal, []string{p.sourceDir})

	includeDirs := opts.IncludeDirs
	if len(includeDirs) == 0 {
		includeDirs = []string{p.sourceDir}
	}
	body = p.process(body, DirectiveAbsolute, includeDirs)

	return &Result{
		Output:   AssembleModule(p.imports, body),
		Imports:  p.imports,
		Includes: p.includes,
		Errors:   p.errors,
	}
}

// Transpile reads sourcePath, compiles it and writes the module to
// outputPath, creating missing directories. A read failure is returned as an
// error and nothing is written. Unresolved includes never stop the write;
// they are returned as messages.
//
// This is the entry point for library callers. The batch pipeline goes
// through TranspileWith so that it can supply its own writer.
func Transpile(sourcePath, outputPath string, opts Options) ([]string, error) {
	res, err := TranspileWith(sourcePath, opts, func(_ string, data []byte) error {
		return WriteOutput(outputPath, data)
	})
	if res == nil {
		return nil, err
	}
	return res.Errors, err
}

// WriteFunc stores an emitted module at path.
type WriteFunc func(path string, data []byte) error

// TranspileWith reads and compiles sourcePath, then hands the module and its
// default output path to write. The result is nil only when the source could
// not be read; a write error is returned alongside the result.
func TranspileWith(sourcePath string, opts Options, write WriteFunc) (*Result, error) {
	res, err := CompileFile(sourcePath, opts)
	if err != nil {
		return nil, err
	}

	if err := write(res.OutputPath, []byte(res.Output)); err != nil {
		return res, err
	}

	return res, nil
}

// CompileFile reads sourcePath and compiles it.
func CompileFile(sourcePath string, opts Options) (*Result, error) {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	res := Compile(sourcePath, string(data), opts)
	res.OutputPath = OutputPath(sourcePath, opts)
	return res, nil
}

// WriteOutput writes data to path, creating parent directories as needed.
func WriteOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
