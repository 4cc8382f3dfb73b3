package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/toolweave/toolweave/pkg/cmd"
	"github.com/toolweave/toolweave/pkg/events"
	"github.com/toolweave/toolweave/pkg/log"
	cli "github.com/urfave/cli/v3"
)

func eventsCommand() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "Tail run lifecycle events from the event bus",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus provider (memory, kafka)",
				Value:   "kafka",
				Sources: cli.EnvVars("EVENT_BUS"),
			},
		},
		Action: eventsAction,
	}
}

func eventsAction(ctx context.Context, command *cli.Command) error {
	logger := log.WithModule("runner")

	bus := cmd.NewEventBus(command.String("event-bus"), "toolweave-runner", logger)
	defer func() {
		if err := bus.Close(); err != nil {
			logger.Error("Failed to close event bus", "error", err)
		}
	}()

	_ = bus.Handle(events.RunStartedEvent, func(_ context.Context, event any) error {
		e, _ := event.(*events.RunStarted)
		logger.Info("run started", "run_id", e.RunID, "graph", e.GraphName, "nodes", e.NodeCount)

		return nil
	})

	_ = bus.Handle(events.NodeStartedEvent, func(_ context.Context, event any) error {
		e, _ := event.(*events.NodeStarted)
		logger.Info("node started", "run_id", e.RunID, "node_id", e.NodeID, "tool_id", e.ToolID)

		return nil
	})

	_ = bus.Handle(events.NodeFinishedEvent, func(_ context.Context, event any) error {
		e, _ := event.(*events.NodeFinished)
		logger.Info("node finished",
			"run_id", e.RunID,
			"node_id", e.NodeID,
			"status", e.Status,
			"fired_ports", e.FiredPorts,
			"duration_ms", e.DurationMs,
			"error", e.Error,
		)

		return nil
	})

	_ = bus.Handle(events.RunFinishedEvent, func(_ context.Context, event any) error {
		e, _ := event.(*events.RunFinished)
		logger.Info("run finished", "run_id", e.RunID, "status", e.Status, "duration", e.Duration, "error", e.Error)

		return nil
	})

	if err := bus.Subscribe(ctx); err != nil {
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-ctx.Done():
	case <-stop:
	}

	return nil
}
