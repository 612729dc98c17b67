package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/glslt/cmd/glslt/internal/commands"
	"github.com/wolfeidau/glslt/internal/logger"
)

var (
	version = "dev"
	cli     struct {
		Build     commands.BuildCmd   `cmd:"" default:"1" help:"Transpile shader sources into JavaScript modules"`
		Resolve   commands.ResolveCmd `cmd:"" help:"Show how an include target resolves"`
		Debug     bool                `help:"Enable debug mode." env:"GLSLT_DEBUG"`
		LogFormat string              `help:"Log output format." enum:"console,json" default:"console" env:"GLSLT_LOG_FORMAT"`
		Version   kong.VersionFlag
	}
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := kong.Parse(&cli,
		kong.Name("glslt"),
		kong.Description("Transpile GLSL shaders with #include directives into ES modules."),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))

	log.Logger = logger.Setup(cli.Debug, 0, cli.LogFormat)

	err := cmd.Run(&commands.Globals{Debug: cli.Debug, LogFormat: cli.LogFormat, Version: version})
	cmd.FatalIfErrorf(err)
}
