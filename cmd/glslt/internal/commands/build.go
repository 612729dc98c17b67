package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/glslt/internal/config"
	"github.com/wolfeidau/glslt/internal/logger"
	"github.com/wolfeidau/glslt/internal/pipeline"
	"github.com/wolfeidau/glslt/internal/watcher"
)

// ErrTranspileFailed is returned by a batch build in which at least one file failed.
var ErrTranspileFailed = errors.New("one or more files failed to transpile")

type BuildCmd struct {
	ConfigFlags `embed:""`

	Watch       bool     `short:"w" help:"Keep running and rebuild sources as they change." env:"GLSLT_WATCH"`
	Exclude     []string `help:"Gitignore style patterns, relative to the root directory, to leave out." env:"GLSLT_EXCLUDE"`
	IgnoreFile  string   `help:"File of gitignore style patterns to leave out." type:"path" env:"GLSLT_IGNORE_FILE"`
	Workers     int      `help:"Number of files transpiled concurrently (0 uses every CPU)." default:"0" env:"GLSLT_WORKERS"`
	CheckOutput bool     `help:"Parse every emitted module and report syntax errors." env:"GLSLT_CHECK_OUTPUT"`
	Compress    bool     `help:"Write a zstd compressed copy next to every module." env:"GLSLT_COMPRESS"`
}

func (b *BuildCmd) Run(ctx context.Context, globals *Globals) error {
	ov := b.overrides()
	ov.Exclude = b.Exclude
	ov.IgnoreFile = b.IgnoreFile

	settings, err := config.Load(b.ProjectDir, ov)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log.Logger = logger.Setup(globals.Debug, settings.VerboseLevel, globals.LogFormat)

	p, err := pipeline.New(b.pipelineConfig(settings))
	if err != nil {
		return err
	}

	summary, err := p.Build(ctx)
	if err != nil {
		return err
	}

	if !b.Watch {
		if summary.Failed > 0 {
			return ErrTranspileFailed
		}
		return nil
	}

	w, err := watcher.New(settings.RootDir, []string{settings.OutDir}, p)
	if err != nil {
		return err
	}

	return w.Run(ctx)
}

func (b *BuildCmd) pipelineConfig(settings *config.Settings) pipeline.Config {
	cfg := pipeline.DefaultConfig()
	cfg.Options = settings.Options
	cfg.Exclude = settings.Exclude
	cfg.IgnoreFile = settings.IgnoreFile
	cfg.CheckOutput = b.CheckOutput
	cfg.Compress = b.Compress
	if b.Workers > 0 {
		cfg.Workers = b.Workers
	}
	return cfg
}
