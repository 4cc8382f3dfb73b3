// Package leadscoring provides the lead scoring tool: it grades an incoming
// lead record against simple engagement heuristics and emits the score plus
// a qualified flag for downstream branching.
package leadscoring

import (
	"context"

	"github.com/toolweave/toolweave/pkg/protocol"
)

const (
	InputPortLead    = "lead_data"
	OutputPortScored = "scored"

	defaultThreshold = 60.0
)

// Executor computes a 0-100 score for a lead.
type Executor struct{}

// Execute scores the lead on the input port. Absent fields contribute
// nothing; a missing lead record scores zero.
func (e *Executor) Execute(_ context.Context, config map[string]any, inputs protocol.Inputs) (protocol.Outputs, error) {
	threshold := defaultThreshold
	if t, ok := config["threshold"].(float64); ok {
		threshold = t
	}

	lead := inputs[InputPortLead]
	score := scoreLead(lead)

	return protocol.Outputs{
		OutputPortScored: {
			"score":     score,
			"qualified": score >= threshold,
			"threshold": threshold,
			"lead":      lead,
		},
	}, nil
}

// scoreLead applies additive heuristics capped at 100: contact completeness,
// engagement counters and an explicit budget signal.
func scoreLead(lead map[string]any) float64 {
	var score float64

	if s, ok := lead["email"].(string); ok && s != "" {
		score += 15
	}

	if s, ok := lead["phone"].(string); ok && s != "" {
		score += 15
	}

	if n, ok := lead["page_views"].(float64); ok {
		score += min(n*2, 30)
	}

	if n, ok := lead["email_opens"].(float64); ok {
		score += min(n*5, 20)
	}

	if b, ok := lead["has_budget"].(bool); ok && b {
		score += 20
	}

	return min(score, 100)
}
