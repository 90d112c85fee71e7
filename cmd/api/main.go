package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"user-crud-service/cmd/api/app"
	"user-crud-service/cmd/api/server"
)

var version = "dev"

// CLI holds the command-line flags of the service.
type CLI struct {
	ConfigPath string           `kong:"name='config-path',env='CONFIG_PATH',default='.',type='existingdir',help='Directory containing app.env'"`
	Env        string           `kong:"name='env',env='APP_ENV',default='development',help='Deployment environment; production switches logger defaults'"`
	Version    kong.VersionFlag `kong:"short='v',help='Show version and exit.'"`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("user-crud-service"),
		kong.Description("REST service for creating, reading, updating and deleting users"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
	)

	if err := run(cli); err != nil {
		fmt.Fprintf(os.Stderr, "application exited with error: %v\n", err)
		os.Exit(1)
	}
}

func run(cli CLI) error {
	ctx, stop := server.WithSignal(context.Background())
	defer stop()

	application, err := app.New(ctx, app.Options{
		ConfigPath:  cli.ConfigPath,
		Environment: cli.Env,
		Version:     version,
	})
	if err != nil {
		return err
	}

	return application.Run(ctx)
}
