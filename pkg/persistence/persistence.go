// Package persistence provides the storage abstraction for graph documents
// and run reports.
package persistence

import (
	"context"

	"github.com/toolweave/toolweave/pkg/models"
)

// GraphStore stores graph documents keyed by graph id and the reports of
// their runs keyed by run id.
type GraphStore interface {
	GraphIDs(ctx context.Context) ([]string, error)
	SaveGraph(ctx context.Context, id string, doc *models.GraphDocument) error
	GraphByID(ctx context.Context, id string) (*models.GraphDocument, error)
	DeleteGraph(ctx context.Context, id string) error

	SaveReport(ctx context.Context, report *models.RunReport) error
	ReportByID(ctx context.Context, runID string) (*models.RunReport, error)

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
