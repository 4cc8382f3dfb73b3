package validation

import (
	"testing"

	"github.com/toolweave/toolweave/pkg/catalog"
	"github.com/toolweave/toolweave/pkg/models"
	"github.com/toolweave/toolweave/pkg/testutil"
)

func testCatalog() *catalog.Catalog {
	return catalog.New(
		catalog.ToolDefinition{
			ID:       models.ToolTypeTriggerManual,
			Category: models.CategoryTypeTrigger,
			Outputs: []catalog.PortDef{
				{Name: "triggered", Type: models.ValueTypeStructured},
			},
		},
		catalog.ToolDefinition{
			ID:       "lead_scoring",
			Category: models.CategoryTypeAction,
			Inputs: []catalog.PortDef{
				{Name: "lead", Type: models.ValueTypeStructured},
			},
			Outputs: []catalog.PortDef{
				{Name: "scored", Type: models.ValueTypeStructured},
			},
		},
		catalog.ToolDefinition{
			ID:       "log",
			Category: models.CategoryTypeAction,
			Inputs: []catalog.PortDef{
				{Name: "input", Type: models.ValueTypeAny},
			},
			Outputs: []catalog.PortDef{
				{Name: "logged", Type: models.ValueTypeAny},
			},
		},
		catalog.ToolDefinition{
			ID:       "text_formatter",
			Category: models.CategoryTypeAction,
			Inputs: []catalog.PortDef{
				{Name: "text", Type: models.ValueTypeString},
			},
			Outputs: []catalog.PortDef{
				{Name: "formatted", Type: models.ValueTypeString},
			},
		},
	)
}

func TestValidate_CleanGraph(t *testing.T) {
	trigger := testutil.CreateTestNode(testutil.WithID("t"), testutil.WithTriggerNode())
	scoring := testutil.CreateTestNode(testutil.WithID("s"), testutil.WithTool("lead_scoring", []string{"lead_data"}, []string{"scored"}))

	doc := testutil.CreateTestDocument(
		[]*models.Node{trigger, scoring},
		[]*models.Connection{testutil.ConnectNodes("c1", trigger, "triggered", scoring, "lead_data")},
	)

	result := Validate(doc, testCatalog())
	if result.HasErrors() {
		t.Fatalf("expected no errors, got %+v", result.Errors)
	}

	if len(result.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %+v", result.Warnings)
	}
}

func TestValidate_DetectsCycle(t *testing.T) {
	a := testutil.CreateTestNode(testutil.WithID("a"), testutil.WithTool("log", []string{"input"}, []string{"logged"}))
	b := testutil.CreateTestNode(testutil.WithID("b"), testutil.WithTool("log", []string{"input"}, []string{"logged"}))
	c := testutil.CreateTestNode(testutil.WithID("c"), testutil.WithTool("log", []string{"input"}, []string{"logged"}))

	doc := testutil.CreateTestDocument(
		[]*models.Node{a, b, c},
		[]*models.Connection{
			testutil.ConnectNodes("c1", a, "logged", b, "input"),
			testutil.ConnectNodes("c2", b, "logged", c, "input"),
			testutil.ConnectNodes("c3", c, "logged", a, "input"),
		},
	)

	result := Validate(doc, testCatalog())
	if !result.HasErrors() {
		t.Fatal("expected cycle errors")
	}

	flagged := make(map[string]bool)

	for _, issue := range result.Errors {
		if issue.Kind != KindCircularDependency {
			t.Fatalf("unexpected issue kind %s", issue.Kind)
		}

		flagged[issue.NodeID] = true
	}

	for _, id := range []string{"a", "b", "c"} {
		if !flagged[id] {
			t.Errorf("node %s should be flagged as part of the cycle", id)
		}
	}
}

func TestValidate_CycleOffshootNotFlagged(t *testing.T) {
	a := testutil.CreateTestNode(testutil.WithID("a"), testutil.WithTool("log", []string{"input"}, []string{"logged"}))
	b := testutil.CreateTestNode(testutil.WithID("b"), testutil.WithTool("log", []string{"input"}, []string{"logged"}))
	side := testutil.CreateTestNode(testutil.WithID("side"), testutil.WithTool("log", []string{"input"}, []string{"logged"}))

	doc := testutil.CreateTestDocument(
		[]*models.Node{a, b, side},
		[]*models.Connection{
			testutil.ConnectNodes("c1", a, "logged", b, "input"),
			testutil.ConnectNodes("c2", b, "logged", a, "input"),
			testutil.ConnectNodes("c3", b, "logged", side, "input"),
		},
	)

	result := Validate(doc, testCatalog())

	for _, issue := range result.Errors {
		if issue.NodeID == "side" {
			t.Error("offshoot node must not be reported as part of the cycle")
		}
	}
}

func TestValidate_OrphanWarning(t *testing.T) {
	orphan := testutil.CreateTestNode(testutil.WithID("lonely"), testutil.WithTool("log", []string{"input"}, []string{"logged"}))

	doc := testutil.CreateTestDocument([]*models.Node{orphan}, nil)

	result := Validate(doc, testCatalog())
	if result.HasErrors() {
		t.Fatalf("orphans are warnings, not errors: %+v", result.Errors)
	}

	if len(result.Warnings) != 1 || result.Warnings[0].Kind != KindNoConnections {
		t.Fatalf("expected one no_connections warning, got %+v", result.Warnings)
	}
}

func TestValidate_TriggerExemptFromOrphanWarning(t *testing.T) {
	trigger := testutil.CreateTestNode(testutil.WithID("t"), testutil.WithTriggerNode())

	doc := testutil.CreateTestDocument([]*models.Node{trigger}, nil)

	result := Validate(doc, testCatalog())
	if len(result.Warnings) != 0 {
		t.Fatalf("unconnected triggers are fine, got %+v", result.Warnings)
	}
}

func TestValidate_IncompatibleTypes(t *testing.T) {
	scoring := testutil.CreateTestNode(testutil.WithID("s"), testutil.WithTool("lead_scoring", []string{"lead_data"}, []string{"scored"}))
	formatter := testutil.CreateTestNode(testutil.WithID("f"), testutil.WithTool("text_formatter", []string{"text"}, []string{"formatted"}))

	doc := testutil.CreateTestDocument(
		[]*models.Node{scoring, formatter},
		[]*models.Connection{
			// structured output into a string input
			testutil.ConnectNodes("c1", scoring, "scored", formatter, "text"),
		},
	)

	result := Validate(doc, testCatalog())
	if !result.HasErrors() {
		t.Fatal("expected incompatible type error")
	}

	if result.Errors[0].Kind != KindIncompatibleTypes || result.Errors[0].ConnectionID != "c1" {
		t.Fatalf("unexpected issue %+v", result.Errors[0])
	}
}

func TestValidate_AnyIsCompatibleWithEverything(t *testing.T) {
	scoring := testutil.CreateTestNode(testutil.WithID("s"), testutil.WithTool("lead_scoring", []string{"lead_data"}, []string{"scored"}))
	logNode := testutil.CreateTestNode(testutil.WithID("l"), testutil.WithTool("log", []string{"input"}, []string{"logged"}))

	doc := testutil.CreateTestDocument(
		[]*models.Node{scoring, logNode},
		[]*models.Connection{
			testutil.ConnectNodes("c1", scoring, "scored", logNode, "input"),
		},
	)

	result := Validate(doc, testCatalog())
	if result.HasErrors() {
		t.Fatalf("any-typed input must accept structured output: %+v", result.Errors)
	}
}
