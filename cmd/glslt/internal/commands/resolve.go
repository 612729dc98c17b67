package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wolfeidau/glslt/internal/config"
	"github.com/wolfeidau/glslt/internal/transpiler"
)

type ResolveCmd struct {
	ConfigFlags `embed:""`

	Name string `arg:"" help:"Include target as written in the directive, e.g. common/noise."`
	From string `help:"Resolve as a local include of this source file instead of against the include directories." type:"path"`

	out io.Writer `kong:"-"`
}

func (r *ResolveCmd) Run(ctx context.Context, globals *Globals) error {
	settings, err := config.Load(r.ProjectDir, r.overrides())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	out := r.out
	if out == nil {
		out = os.Stdout
	}

	dirs := settings.IncludeDirs
	if r.From != "" {
		dirs = []string{filepath.Dir(r.From)}
	}

	res, err := transpiler.Resolve(r.Name, dirs, transpiler.SearchExtensions(settings.Options))
	if err != nil {
		var nf *transpiler.NotFoundError
		if errors.As(err, &nf) {
			for _, a := range nf.Attempts {
				fmt.Fprintf(out, "attempt  %s\n", a)
			}
		}
		return err
	}

	for _, a := range res.Attempts {
		fmt.Fprintf(out, "attempt  %s\n", a)
	}
	for _, m := range res.Matches {
		fmt.Fprintf(out, "match    %s\n", m)
	}
	fmt.Fprintf(out, "resolved %s\n", res.Path)
	fmt.Fprintf(out, "ident    %s\n", transpiler.Identifier(res.Path, settings.RootDir))

	return nil
}
