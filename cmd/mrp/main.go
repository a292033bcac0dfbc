package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"mrp-multilevel/pkg/config"
	"mrp-multilevel/pkg/infrastructure/repositories/postgres"
	"mrp-multilevel/pkg/interfaces/cli/commands"
	"mrp-multilevel/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.App.Env, cfg.App.LogLevel)

	app := &cli.App{
		Name:  "mrp",
		Usage: "Multi-level material requirements planning",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Execute a full planning run over a scenario directory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "scenario",
						Usage:    "Path to scenario directory containing the CSV files",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format: text, json",
						Value: "text",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "Output directory for JSON results",
					},
					&cli.BoolFlag{
						Name:  "verbose",
						Usage: "Enable verbose output",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Parallelism of the collection and projection phases",
						Value: cfg.Planner.Workers,
					},
					&cli.StringFlag{
						Name:    "db-url",
						Usage:   "PostgreSQL DSN for persisting run results",
						EnvVars: []string{"DATABASE_URL"},
					},
				},
				Action: func(c *cli.Context) error {
					runConfig := commands.Config{
						ScenarioDir: c.String("scenario"),
						Format:      c.String("format"),
						OutputDir:   c.String("output"),
						Verbose:     c.Bool("verbose"),
						Workers:     c.Int("workers"),
					}

					cmd := commands.NewRunCommand(runConfig, log, nil)
					if dsn := c.String("db-url"); dsn != "" {
						pool, err := postgres.NewPool(c.Context, dsn)
						if err != nil {
							return fmt.Errorf("failed to connect to database: %w", err)
						}
						defer pool.Close()

						store := postgres.NewResultStore(pool)
						if err := store.EnsureSchema(c.Context); err != nil {
							return err
						}
						cmd = commands.NewRunCommand(runConfig, log, store)
					}

					return cmd.Execute(c.Context)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
