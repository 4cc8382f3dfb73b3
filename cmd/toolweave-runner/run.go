package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/toolweave/toolweave/pkg/cmd"
	"github.com/toolweave/toolweave/pkg/engine"
	"github.com/toolweave/toolweave/pkg/graph"
	"github.com/toolweave/toolweave/pkg/log"
	"github.com/toolweave/toolweave/pkg/models"
	cli "github.com/urfave/cli/v3"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Execute one graph and print its run report",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "file",
				Usage: "Path to a graph document JSON file",
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Storage URL to load the graph from (with --graph-id)",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:  "graph-id",
				Usage: "Id of the stored graph to run",
			},
		},
		Action: runAction,
	}
}

func runAction(ctx context.Context, command *cli.Command) error {
	logger := log.WithModule("runner")

	doc, err := loadDocument(ctx, command)
	if err != nil {
		return err
	}

	registry := cmd.NewRegistry(logger)
	eng := engine.New(registry, logger)

	report, err := eng.Run(ctx, doc)
	if err != nil && report == nil {
		return err
	}

	out, marshalErr := json.MarshalIndent(report, "", "  ")
	if marshalErr != nil {
		return marshalErr
	}

	fmt.Println(string(out))

	if report.Status != models.RunStatusCompleted {
		return fmt.Errorf("run %s finished with status %s", report.RunID, report.Status)
	}

	return nil
}

func loadDocument(ctx context.Context, command *cli.Command) (*models.GraphDocument, error) {
	if path := command.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		var doc models.GraphDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid graph document: %w", err)
		}

		if err := graph.CheckDocument(&doc); err != nil {
			return nil, err
		}

		return &doc, nil
	}

	databaseURL := command.String("database-url")
	graphID := command.String("graph-id")

	if databaseURL == "" || graphID == "" {
		return nil, errors.New("either --file or --database-url and --graph-id are required")
	}

	store := cmd.NewGraphStore(databaseURL)
	defer func() { _ = store.Close(ctx) }()

	return store.GraphByID(ctx, graphID)
}
