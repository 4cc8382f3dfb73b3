// Package redis provides the Redis-backed GraphStore, used when several API
// instances must share graph definitions and run reports.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/toolweave/toolweave/pkg/models"
	"github.com/toolweave/toolweave/pkg/persistence"
)

const (
	graphKeyPrefix  = "toolweave:graph:"
	reportKeyPrefix = "toolweave:report:"

	scanBatch = 100
)

// Store implements persistence.GraphStore on Redis.
type Store struct {
	client *redis.Client
}

// NewStore connects to the Redis instance named by url, e.g.
// redis://localhost:6379/0.
func NewStore(url string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	return &Store{client: redis.NewClient(opts)}, nil
}

// GraphIDs lists all stored graph ids via SCAN.
func (s *Store) GraphIDs(ctx context.Context) ([]string, error) {
	var (
		ids    []string
		cursor uint64
	)

	for {
		keys, next, err := s.client.Scan(ctx, cursor, graphKeyPrefix+"*", scanBatch).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan graphs: %w", err)
		}

		for _, key := range keys {
			ids = append(ids, strings.TrimPrefix(key, graphKeyPrefix))
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return ids, nil
}

// SaveGraph stores the document under its graph id.
func (s *Store) SaveGraph(ctx context.Context, id string, doc *models.GraphDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal graph %s: %w", id, err)
	}

	return s.client.Set(ctx, graphKeyPrefix+id, data, 0).Err()
}

// GraphByID loads one document.
func (s *Store) GraphByID(ctx context.Context, id string) (*models.GraphDocument, error) {
	data, err := s.client.Get(ctx, graphKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", persistence.ErrGraphNotFound, id)
		}

		return nil, err
	}

	var doc models.GraphDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal graph %s: %w", id, err)
	}

	return &doc, nil
}

// DeleteGraph removes one document.
func (s *Store) DeleteGraph(ctx context.Context, id string) error {
	deleted, err := s.client.Del(ctx, graphKeyPrefix+id).Result()
	if err != nil {
		return err
	}

	if deleted == 0 {
		return fmt.Errorf("%w: %s", persistence.ErrGraphNotFound, id)
	}

	return nil
}

// SaveReport stores one run report keyed by run id.
func (s *Store) SaveReport(ctx context.Context, report *models.RunReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report %s: %w", report.RunID, err)
	}

	return s.client.Set(ctx, reportKeyPrefix+report.RunID, data, 0).Err()
}

// ReportByID loads one run report.
func (s *Store) ReportByID(ctx context.Context, runID string) (*models.RunReport, error) {
	data, err := s.client.Get(ctx, reportKeyPrefix+runID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", persistence.ErrReportNotFound, runID)
		}

		return nil, err
	}

	var report models.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report %s: %w", runID, err)
	}

	return &report, nil
}

// HealthCheck pings the server.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the client connection pool.
func (s *Store) Close(_ context.Context) error {
	return s.client.Close()
}
