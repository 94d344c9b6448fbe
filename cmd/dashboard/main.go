package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/TheShai81/music-dashboard/internal/config"
	logpkg "github.com/TheShai81/music-dashboard/internal/logger"
	"github.com/TheShai81/music-dashboard/internal/version"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "failed loading .env file: %s\n", err)
		os.Exit(1)
	}

	app := cli.NewApp()
	app.Name = "dashboard"
	app.Usage = "Music taste matching and recommendation service."
	app.Version = version.String()
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "env",
			Value:   config.GetEnv(),
			Usage:   "configuration environment (config/<env>.yaml)",
			EnvVars: []string{"ENV"},
		},
	}
	app.Commands = []*cli.Command{
		{
			Name:   "serve",
			Usage:  "run the HTTP API",
			Action: withRuntime(serve),
		},
		{
			Name:   "migrate",
			Usage:  "create or update the database schema",
			Action: withRuntime(migrate),
		},
		{
			Name:  "index",
			Usage: "manage the Redis catalog sample index",
			Subcommands: []*cli.Command{
				{
					Name:   "sync",
					Usage:  "rebuild the index from the tracks table",
					Action: withRuntime(syncIndex),
				},
			},
		},
	}
	app.DefaultCommand = "serve"

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cmdEnv carries what every command needs.
type cmdEnv struct {
	env    string
	cfg    config.Config
	logger *zap.Logger
}

func withRuntime(fn func(c *cli.Context, rt cmdEnv) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		env := c.String("env")
		cfg, err := config.Load(env)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		return fn(c, cmdEnv{env: env, cfg: cfg, logger: logger})
	}
}
