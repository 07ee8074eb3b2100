package main

import (
	"context"
	"os"

	"github.com/flowhr/flowhr/pkg/log"
	"github.com/joho/godotenv"
	cli "github.com/urfave/cli/v3"
)

func main() {
	_ = godotenv.Load()

	logger := log.WithModule("cli")

	command := &cli.Command{
		Name:                  "flowhr",
		Usage:                 "Manage, validate and simulate HR workflows",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Database connection URL for persistence",
				Value:   "file://./data",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			workflowCommand(logger),
			validateCommand(logger),
			simulateCommand(logger),
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		logger.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
