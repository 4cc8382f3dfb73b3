// Package cmd provides common initialization for the command-line entry
// points.
package cmd

import (
	"log/slog"

	"github.com/toolweave/toolweave/pkg/registry"
	"github.com/toolweave/toolweave/pkg/tools/callmaker"
	"github.com/toolweave/toolweave/pkg/tools/conditioncheck"
	"github.com/toolweave/toolweave/pkg/tools/delaytimer"
	"github.com/toolweave/toolweave/pkg/tools/followup"
	"github.com/toolweave/toolweave/pkg/tools/httprequest"
	"github.com/toolweave/toolweave/pkg/tools/leadscoring"
	"github.com/toolweave/toolweave/pkg/tools/logtool"
	"github.com/toolweave/toolweave/pkg/tools/smssender"
	"github.com/toolweave/toolweave/pkg/tools/trigger"
)

// NewRegistry builds a registry with every built-in tool registered.
func NewRegistry(logger *slog.Logger) *registry.Registry {
	reg := registry.NewRegistry(logger)

	reg.Register(trigger.NewManualFactory())
	reg.Register(trigger.NewWebhookFactory())
	reg.Register(trigger.NewScheduleFactory())

	reg.Register(smssender.NewFactory(logger))
	reg.Register(callmaker.NewFactory(logger))
	reg.Register(leadscoring.NewFactory())
	reg.Register(conditioncheck.NewFactory())
	reg.Register(delaytimer.NewFactory())
	reg.Register(followup.NewFactory(logger))
	reg.Register(httprequest.NewFactory())
	reg.Register(logtool.NewFactory(logger))

	return reg
}
