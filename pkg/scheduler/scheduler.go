// Package scheduler fires graph runs from schedule-trigger nodes. It scans
// stored graphs for trigger:schedule nodes and registers one cron entry per
// node; each fire hands the graph to the run callback.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/toolweave/toolweave/pkg/models"
	"github.com/toolweave/toolweave/pkg/persistence"
)

// RunFunc starts one run of the identified graph. nodeID names the schedule
// node whose cron expression fired.
type RunFunc func(ctx context.Context, graphID, nodeID string)

// Scheduler owns the cron runner and the entry bookkeeping.
type Scheduler struct {
	store  persistence.GraphStore
	runFn  RunFunc
	logger *slog.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	entries map[string]cron.EntryID // graphID/nodeID -> entry
}

// New creates a stopped scheduler.
func New(store persistence.GraphStore, runFn RunFunc, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		store:   store,
		runFn:   runFn,
		logger:  logger,
		cron:    cron.New(),
		entries: make(map[string]cron.EntryID),
	}
}

// Start registers entries for every stored graph and starts the cron runner.
func (s *Scheduler) Start(ctx context.Context) error {
	ids, err := s.store.GraphIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list graphs: %w", err)
	}

	for _, graphID := range ids {
		doc, err := s.store.GraphByID(ctx, graphID)
		if err != nil {
			return err
		}

		if err := s.Register(ctx, graphID, doc); err != nil {
			return err
		}
	}

	s.cron.Start()

	return nil
}

// Register adds cron entries for the schedule-trigger nodes of one graph,
// replacing any entries from an earlier version of it. Graphs without
// schedule nodes unregister cleanly.
func (s *Scheduler) Register(ctx context.Context, graphID string, doc *models.GraphDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeEntries(graphID)

	for _, node := range doc.Nodes {
		if node.ToolID != models.ToolTypeTriggerSchedule {
			continue
		}

		expr, ok := node.Config["cron_expression"].(string)
		if !ok || expr == "" {
			return errors.New("schedule trigger node " + node.ID + " has no cron_expression")
		}

		nodeID := node.ID

		entryID, err := s.cron.AddFunc(expr, func() {
			s.logger.Info("schedule fired", "graph_id", graphID, "node_id", nodeID, "cron", expr)
			s.runFn(ctx, graphID, nodeID)
		})
		if err != nil {
			return fmt.Errorf("invalid cron expression %q on node %s: %w", expr, node.ID, err)
		}

		s.entries[entryKey(graphID, nodeID)] = entryID

		s.logger.Info("schedule registered", "graph_id", graphID, "node_id", nodeID, "cron", expr)
	}

	return nil
}

// Unregister removes all entries of one graph.
func (s *Scheduler) Unregister(graphID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeEntries(graphID)
}

// Stop halts the cron runner, waiting for in-flight fires.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) removeEntries(graphID string) {
	prefix := graphID + "/"
	for key, entryID := range s.entries {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			s.cron.Remove(entryID)
			delete(s.entries, key)
		}
	}
}

func entryKey(graphID, nodeID string) string {
	return graphID + "/" + nodeID
}
