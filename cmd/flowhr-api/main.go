package main

import (
	"context"
	"os"

	"github.com/flowhr/flowhr/pkg/cmd"
	"github.com/flowhr/flowhr/pkg/log"
	"github.com/flowhr/flowhr/pkg/otelhelper"
	"github.com/joho/godotenv"
	cli "github.com/urfave/cli/v3"
)

const defaultPort = 9091

func main() {
	_ = godotenv.Load()

	logger := log.WithModule("api")

	command := &cli.Command{
		Name:                  "flowhr-api",
		Usage:                 "Create, validate and simulate HR workflows",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Database connection URL for persistence",
				Value:   "memory://",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Export simulation traces over OTLP",
				Sources: cli.EnvVars("FLOWHR_TRACING"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger.InfoContext(ctx, "Initializing FlowHR API")

			if command.Bool("tracing") {
				tracerProvider, err := otelhelper.InitTracer(ctx, "flowhr-api")
				if err != nil {
					return err
				}

				defer func() {
					if err := tracerProvider.Shutdown(ctx); err != nil {
						logger.ErrorContext(ctx, "Failed to shutdown tracer provider", "error", err)
					}
				}()
			}

			store, err := cmd.NewPersistence(ctx, logger, command.String("database-url"))
			if err != nil {
				return err
			}

			defer func() {
				if err := store.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			api := NewAPI(logger, store)

			return api.Start(command.Int("port"))
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		logger.Error("API exited", "error", err)
		os.Exit(1)
	}
}
