// Package web provides the REST API for managing graphs and starting runs.
package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/toolweave/toolweave/pkg/engine"
	"github.com/toolweave/toolweave/pkg/graph"
	"github.com/toolweave/toolweave/pkg/models"
	"github.com/toolweave/toolweave/pkg/persistence"
	"github.com/toolweave/toolweave/pkg/registry"
	"github.com/toolweave/toolweave/pkg/validation"
)

type APIHandlers struct {
	store     persistence.GraphStore
	registry  *registry.Registry
	engine    *engine.Engine
	validator *validator.Validate
}

func NewAPIHandlers(
	store persistence.GraphStore,
	reg *registry.Registry,
	eng *engine.Engine,
	v *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		store:     store,
		registry:  reg,
		engine:    eng,
		validator: v,
	}
}

// GetTools lists the tool catalog for palette rendering.
func (h *APIHandlers) GetTools(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"tools": h.registry.Catalog().List(),
	})
}

// GetGraphs lists stored graph ids.
func (h *APIHandlers) GetGraphs(c fiber.Ctx) error {
	ids, err := h.store.GraphIDs(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"graphs": ids})
}

// GetGraph returns one stored graph document.
func (h *APIHandlers) GetGraph(c fiber.Ctx) error {
	doc, err := h.store.GraphByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleStoreError(c, err)
	}

	return c.JSON(doc)
}

// PutGraph stores a graph document under the given id. The document must
// pass the version gate, the structural schema and field validation before
// anything is written.
func (h *APIHandlers) PutGraph(c fiber.Ctx) error {
	var doc models.GraphDocument
	if err := json.Unmarshal(c.Body(), &doc); err != nil {
		return badRequest(c, "invalid JSON body: "+err.Error())
	}

	if err := graph.CheckDocument(&doc); err != nil {
		return handleStoreError(c, err)
	}

	for _, node := range doc.Nodes {
		if err := h.validator.Struct(node); err != nil {
			return badRequest(c, err.Error())
		}
	}

	for _, conn := range doc.Connections {
		if err := h.validator.Struct(conn); err != nil {
			return badRequest(c, err.Error())
		}
	}

	if err := h.store.SaveGraph(c.Context(), c.Params("id"), &doc); err != nil {
		return internalError(c, err)
	}

	return c.Status(http.StatusNoContent).Send(nil)
}

// DeleteGraph removes one stored graph.
func (h *APIHandlers) DeleteGraph(c fiber.Ctx) error {
	if err := h.store.DeleteGraph(c.Context(), c.Params("id")); err != nil {
		return handleStoreError(c, err)
	}

	return c.Status(http.StatusNoContent).Send(nil)
}

// ValidateGraph runs the validator over a stored graph without executing it.
func (h *APIHandlers) ValidateGraph(c fiber.Ctx) error {
	doc, err := h.store.GraphByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleStoreError(c, err)
	}

	result := validation.Validate(doc, h.registry.Catalog())

	return c.JSON(result)
}

// RunGraph executes a stored graph synchronously and returns the run
// report. An optional JSON body {"payload": ...} is handed to the graph's
// trigger nodes.
func (h *APIHandlers) RunGraph(c fiber.Ctx) error {
	doc, err := h.store.GraphByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleStoreError(c, err)
	}

	if len(c.Body()) > 0 {
		var body struct {
			Payload any `json:"payload"`
		}

		if err := json.Unmarshal(c.Body(), &body); err != nil {
			return badRequest(c, "invalid JSON body: "+err.Error())
		}

		if body.Payload != nil {
			injectPayload(doc, body.Payload)
		}
	}

	report, err := h.engine.Run(c.Context(), doc)
	if err != nil && report == nil {
		return handleStoreError(c, err)
	}

	if saveErr := h.store.SaveReport(c.Context(), report); saveErr != nil {
		return internalError(c, saveErr)
	}

	return c.JSON(report)
}

// GetRun returns a stored run report.
func (h *APIHandlers) GetRun(c fiber.Ctx) error {
	report, err := h.store.ReportByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleStoreError(c, err)
	}

	return c.JSON(report)
}

// HealthCheck reports store connectivity.
func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	if err := h.store.HealthCheck(c.Context()); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}

	return c.JSON(fiber.Map{"status": "healthy"})
}

// injectPayload hands the request payload to every trigger node so it shows
// up on their triggered output port.
func injectPayload(doc *models.GraphDocument, payload any) {
	for _, node := range doc.Nodes {
		switch node.ToolID {
		case models.ToolTypeTriggerManual, models.ToolTypeTriggerWebhook, models.ToolTypeTriggerSchedule:
			if node.Config == nil {
				node.Config = make(map[string]any)
			}

			node.Config["payload"] = payload
		}
	}
}
