// Package file provides the file-system GraphStore: one JSON file per graph
// under graphs/ and one per run report under reports/.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/toolweave/toolweave/pkg/models"
	"github.com/toolweave/toolweave/pkg/persistence"
)

// Store implements persistence.GraphStore on the local file system.
type Store struct {
	root string
}

// NewStore creates a file store rooted at root. Accepts a plain path or a
// file:// URL.
func NewStore(root string) *Store {
	return &Store{root: strings.Replace(root, "file://", "", 1)}
}

// GraphIDs lists the ids of all stored graphs.
func (s *Store) GraphIDs(_ context.Context) ([]string, error) {
	dir := filepath.Join(s.root, "graphs")

	entries, err := fs.Glob(os.DirFS(dir), "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list graph files: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, strings.TrimSuffix(entry, ".json"))
	}

	return ids, nil
}

// SaveGraph writes the document, creating directories as needed. The write
// goes through a temp file and rename so readers never see partial JSON.
func (s *Store) SaveGraph(_ context.Context, id string, doc *models.GraphDocument) error {
	return s.write(filepath.Join(s.root, "graphs"), id, doc)
}

// GraphByID loads one document.
func (s *Store) GraphByID(_ context.Context, id string) (*models.GraphDocument, error) {
	var doc models.GraphDocument

	if err := s.read(filepath.Join(s.root, "graphs"), id, &doc); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", persistence.ErrGraphNotFound, id)
		}

		return nil, err
	}

	return &doc, nil
}

// DeleteGraph removes one document. Deleting a missing graph is an error so
// callers can distinguish it from success.
func (s *Store) DeleteGraph(_ context.Context, id string) error {
	err := os.Remove(filepath.Join(s.root, "graphs", id+".json"))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", persistence.ErrGraphNotFound, id)
	}

	return err
}

// SaveReport stores one run report keyed by run id.
func (s *Store) SaveReport(_ context.Context, report *models.RunReport) error {
	return s.write(filepath.Join(s.root, "reports"), report.RunID, report)
}

// ReportByID loads one run report.
func (s *Store) ReportByID(_ context.Context, runID string) (*models.RunReport, error) {
	var report models.RunReport

	if err := s.read(filepath.Join(s.root, "reports"), runID, &report); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", persistence.ErrReportNotFound, runID)
		}

		return nil, err
	}

	return &report, nil
}

// HealthCheck verifies the root directory exists.
func (s *Store) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(s.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

// Close is a no-op for the file store.
func (s *Store) Close(_ context.Context) error {
	return nil
}

func (s *Store) write(dir, id string, value any) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", id, err)
	}

	tmp, err := os.CreateTemp(dir, id+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("failed to write %s: %w", id, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("failed to close temp file: %w", err)
	}

	return os.Rename(tmp.Name(), filepath.Join(dir, id+".json"))
}

func (s *Store) read(dir, id string, value any) error {
	data, err := os.ReadFile(filepath.Join(dir, id+".json"))
	if err != nil {
		return err
	}

	return json.Unmarshal(data, value)
}
