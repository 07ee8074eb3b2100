package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/flowhr/flowhr/pkg/cmd"
	"github.com/flowhr/flowhr/pkg/log"
	"github.com/flowhr/flowhr/pkg/models"
	"github.com/flowhr/flowhr/pkg/registry"
	"github.com/flowhr/flowhr/pkg/simulation"
	"github.com/flowhr/flowhr/pkg/validation"
	"github.com/flowhr/flowhr/pkg/workflow"
	cli "github.com/urfave/cli/v3"
)

var errWorkflowInvalid = errors.New("workflow has validation errors")

func newRepository(ctx context.Context, logger *slog.Logger, command *cli.Command) (*workflow.Repository, func(), error) {
	log.Setup(command.String("log-level"))

	store, err := cmd.NewPersistence(ctx, logger, command.String("database-url"))
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := store.Close(ctx); err != nil {
			logger.Error("Failed to close persistence", "error", err)
		}
	}

	return workflow.NewRepository(store), cleanup, nil
}

func workflowCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:    "workflow",
		Aliases: []string{"w"},
		Usage:   "Manage stored workflows",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List all workflows, most recently updated first",
				Action: func(ctx context.Context, command *cli.Command) error {
					repository, cleanup, err := newRepository(ctx, logger, command)
					if err != nil {
						return err
					}
					defer cleanup()

					workflows, err := repository.GetAll(ctx)
					if err != nil {
						return err
					}

					for _, wf := range workflows {
						fmt.Printf("%s\t%s\t%d nodes\t%s\n", wf.ID, wf.Name, len(wf.Nodes), wf.UpdatedAt.Format("2006-01-02 15:04:05"))
					}

					return nil
				},
			},
			{
				Name:      "create",
				Usage:     "Create an empty workflow",
				ArgsUsage: "<name>",
				Action: func(ctx context.Context, command *cli.Command) error {
					name := command.Args().First()
					if name == "" {
						return errors.New("workflow name is required")
					}

					repository, cleanup, err := newRepository(ctx, logger, command)
					if err != nil {
						return err
					}
					defer cleanup()

					created, err := repository.Create(ctx, name)
					if err != nil {
						return err
					}

					fmt.Println(created.ID)

					return nil
				},
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a workflow",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, command *cli.Command) error {
					id := command.Args().First()
					if id == "" {
						return errors.New("workflow id is required")
					}

					repository, cleanup, err := newRepository(ctx, logger, command)
					if err != nil {
						return err
					}
					defer cleanup()

					deleted, err := repository.Delete(ctx, id)
					if err != nil {
						return err
					}

					if !deleted {
						return fmt.Errorf("workflow %s not found", id)
					}

					return nil
				},
			},
			{
				Name:      "export",
				Usage:     "Write a workflow as JSON to stdout or a file",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "File to write instead of stdout",
					},
				},
				Action: func(ctx context.Context, command *cli.Command) error {
					id := command.Args().First()
					if id == "" {
						return errors.New("workflow id is required")
					}

					repository, cleanup, err := newRepository(ctx, logger, command)
					if err != nil {
						return err
					}
					defer cleanup()

					data, err := repository.Export(ctx, id)
					if err != nil {
						return err
					}

					if output := command.String("output"); output != "" {
						return os.WriteFile(output, data, 0o600)
					}

					fmt.Println(string(data))

					return nil
				},
			},
			{
				Name:      "import",
				Usage:     "Import a workflow export under a fresh identity",
				ArgsUsage: "<file>",
				Action: func(ctx context.Context, command *cli.Command) error {
					path := command.Args().First()
					if path == "" {
						return errors.New("import file is required")
					}

					data, err := os.ReadFile(path)
					if err != nil {
						return err
					}

					repository, cleanup, err := newRepository(ctx, logger, command)
					if err != nil {
						return err
					}
					defer cleanup()

					imported, err := repository.Import(ctx, data)
					if err != nil {
						return err
					}

					fmt.Println(imported.ID)

					return nil
				},
			},
		},
	}
}

func validateCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"v"},
		Usage:     "Validate a stored workflow",
		ArgsUsage: "<id>",
		Action: func(ctx context.Context, command *cli.Command) error {
			id := command.Args().First()
			if id == "" {
				return errors.New("workflow id is required")
			}

			repository, cleanup, err := newRepository(ctx, logger, command)
			if err != nil {
				return err
			}
			defer cleanup()

			wf, err := repository.GetByID(ctx, id)
			if err != nil {
				return err
			}

			registryInstance := registry.NewRegistry(logger)
			findings := validation.NewValidator(registryInstance).ValidateWorkflow(wf.Nodes, wf.Edges)

			if len(findings) == 0 {
				fmt.Println("Workflow is valid")

				return nil
			}

			fmt.Println(models.FormatValidationErrors(findings))

			for _, finding := range findings {
				if finding.Kind == models.ErrorKindError {
					return errWorkflowInvalid
				}
			}

			return nil
		},
	}
}

func simulateCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "simulate",
		Aliases:   []string{"s"},
		Usage:     "Run a stored workflow through the simulation engine",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "seed",
				Usage: "Seed for reproducible approval decisions",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			id := command.Args().First()
			if id == "" {
				return errors.New("workflow id is required")
			}

			repository, cleanup, err := newRepository(ctx, logger, command)
			if err != nil {
				return err
			}
			defer cleanup()

			wf, err := repository.GetByID(ctx, id)
			if err != nil {
				return err
			}

			engine := simulation.NewEngine(logger)
			if command.IsSet("seed") {
				engine.SetApprovalDecider(simulation.SeededDecider(simulation.DefaultApprovalProbability, uint64(command.Int("seed"))))
			}

			result := engine.Run(ctx, wf.Nodes, wf.Edges)

			for _, step := range result.Steps {
				fmt.Printf("[%s] %s (%s): %s\n", step.Status, step.NodeTitle, step.NodeKind, step.Details)
			}

			fmt.Printf("Simulation %s in %dms (%d steps)\n", result.Status, result.TotalDuration, len(result.Steps))

			if result.Status == models.SimulationStatusError {
				return errors.New("simulation finished with errors")
			}

			return nil
		},
	}
}
