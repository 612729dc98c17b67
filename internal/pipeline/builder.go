package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/glslt/internal/transpiler"
	"golang.org/x/sync/errgroup"
)

// Discover returns every supported source under the root directory in lexical order
func (p *Pipeline) Discover() ([]string, error) {
	root := p.config.Options.RootDir

	matches, err := doublestar.Glob(os.DirFS(root), sourcePattern(p.config.Options.Extensions), doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}

	sources := make([]string, 0, len(matches))
	for _, m := range matches {
		path := filepath.Join(root, filepath.FromSlash(m))
		if p.Supported(path) {
			sources = append(sources, path)
		}
	}

	return sources, nil
}

// sourcePattern builds the glob matching every configured extension.
func sourcePattern(exts []string) string {
	if len(exts) == 1 {
		return "**/*." + exts[0]
	}
	return "**/*.{" + strings.Join(exts, ",") + "}"
}

// Supported reports whether path is a source this pipeline transpiles: it
// sits under the root directory, carries a configured extension and no
// exclude rule removes it.
func (p *Pipeline) Supported(path string) bool {
	rel, ok := within(p.config.Options.RootDir, path)
	if !ok || rel == "." {
		return false
	}
	return p.matcher.Included(rel, false)
}

// OutputPath returns where the module for source is written
func (p *Pipeline) OutputPath(source string) string {
	return transpiler.OutputPath(source, p.config.Options)
}

// Build transpiles every discovered source. Files are independent so they
// run on a bounded pool of workers; a failing file is counted and logged
// without stopping the batch.
func (p *Pipeline) Build(ctx context.Context) (*Summary, error) {
	sources, err := p.Discover()
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("files", len(sources)).
		Str("rootDir", p.config.Options.RootDir).
		Str("outDir", p.config.Options.OutDir).
		Msg("Transpiling shaders")

	var failed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.config.Workers)

	for _, source := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			errs, err := p.TranspileFile(source)
			if err != nil || len(errs) > 0 {
				failed.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{Files: len(sources), Failed: int(failed.Load())}

	if summary.Failed > 0 {
		log.Error().Int("failed", summary.Failed).Msg("files failed to transpile")
	}
	log.Info().Int("succeeded", summary.Succeeded()).Msg("files transpiled successfully")

	return summary, nil
}

// TranspileFile transpiles one source and writes its module. Symlinks are
// followed; anything that does not end at a regular file is skipped. The
// returned messages are the unresolved includes plus, with CheckOutput, the
// module syntax errors; the module is written regardless of them.
func (p *Pipeline) TranspileFile(source string) ([]string, error) {
	source = filepath.Clean(source)

	info, err := os.Stat(source)
	if err != nil {
		log.Error().Err(err).Str("source", source).Msg("Failed to read source")
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, nil
	}

	var written bool
	res, err := transpiler.TranspileWith(source, p.config.Options, func(path string, data []byte) error {
		var werr error
		written, werr = p.write(path, data)
		return werr
	})
	if res == nil {
		log.Error().Err(err).Str("source", source).Msg("Failed to transpile")
		return nil, err
	}

	errs := res.Errors
	if p.config.CheckOutput {
		errs = append(errs, checkModule(res.OutputPath, res.Output)...)
	}

	if err != nil {
		log.Error().Err(err).Str("source", source).Str("output", res.OutputPath).Msg("Failed to write module")
		return errs, err
	}

	if len(errs) > 0 {
		log.Error().
			Str("source", source).
			Str("output", filepath.Base(res.OutputPath)).
			Int("errors", len(errs)).
			Msg("Transpiled with errors")
		for _, e := range errs {
			log.Error().Str("source", source).Msg(e)
		}
		return errs, nil
	}

	p.successEvent().
		Str("source", source).
		Str("output", filepath.Base(res.OutputPath)).
		Int("imports", len(res.Imports)).
		Bool("written", written).
		Msg("Transpiled")

	return nil, nil
}

// Remove deletes the module, and its compressed copy, generated for source.
func (p *Pipeline) Remove(source string) error {
	output := p.OutputPath(source)
	p.digests.Remove(output)

	for _, path := range []string{output, output + compressedSuffix} {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	p.successEvent().Str("source", source).Str("output", filepath.Base(output)).Msg("Removed")
	return nil
}

// successEvent logs per-file progress at info from verbose level 1, at debug otherwise.
func (p *Pipeline) successEvent() *zerolog.Event {
	return cond(p.config.Options.VerboseLevel >= 1, log.Info, log.Debug)()
}

func cond[T any](condition bool, trueVal, falseVal T) T {
	if condition {
		return trueVal
	}
	return falseVal
}
