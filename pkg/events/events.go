// Package events defines the run lifecycle notifications published while a
// graph executes. Consumers (the runner CLI, external dashboards) subscribe
// through the event bus; the engine publishes fire-and-forget.
package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/toolweave/toolweave/pkg/models"
)

type EventType string

// Topic carries every run event.
const Topic = "toolweave.run.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	RunStartedEvent   EventType = "run.started"
	RunFinishedEvent  EventType = "run.finished"
	NodeStartedEvent  EventType = "run.node.started"
	NodeFinishedEvent EventType = "run.node.finished"
)

type BaseEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	RunID     string         `json:"run_id"`
	GraphName string         `json:"graph_name,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// NewBaseEvent creates the common envelope for one run event.
func NewBaseEvent(eventType EventType, runID string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		RunID:     runID,
	}
}

type RunStarted struct {
	BaseEvent

	NodeCount int `json:"node_count"`
}

func (e RunStarted) GetType() EventType {
	return RunStartedEvent
}

type RunFinished struct {
	BaseEvent

	Status   models.RunStatus `json:"status"`
	Error    string           `json:"error,omitempty"`
	Duration time.Duration    `json:"duration"`
}

func (e RunFinished) GetType() EventType {
	return RunFinishedEvent
}

type NodeStarted struct {
	BaseEvent

	NodeID string `json:"node_id"`
	ToolID string `json:"tool_id"`
}

func (e NodeStarted) GetType() EventType {
	return NodeStartedEvent
}

type NodeFinished struct {
	BaseEvent

	NodeID     string            `json:"node_id"`
	ToolID     string            `json:"tool_id"`
	Status     models.StepStatus `json:"status"`
	FiredPorts []string          `json:"fired_ports,omitempty"`
	Error      string            `json:"error,omitempty"`
	DurationMs int64             `json:"duration_ms"`
}

func (e NodeFinished) GetType() EventType {
	return NodeFinishedEvent
}
