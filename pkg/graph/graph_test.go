package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolweave/toolweave/pkg/catalog"
	"github.com/toolweave/toolweave/pkg/models"
)

func testCatalog() *catalog.Catalog {
	return catalog.New(
		catalog.ToolDefinition{
			ID:          models.ToolTypeTriggerManual,
			DisplayName: "Manual Trigger",
			Category:    models.CategoryTypeTrigger,
			Outputs: []catalog.PortDef{
				{Name: "triggered", Type: models.ValueTypeStructured},
			},
		},
		catalog.ToolDefinition{
			ID:          "sms_sender",
			DisplayName: "SMS Sender",
			Category:    models.CategoryTypeAction,
			Inputs: []catalog.PortDef{
				{Name: "input", Type: models.ValueTypeAny},
			},
			Outputs: []catalog.PortDef{
				{Name: "sent", Type: models.ValueTypeStructured},
			},
			ConfigSchema: []catalog.ConfigField{
				{Key: "phone_number", Type: "string", Label: "Phone number", Required: true},
				{Key: "message", Type: "string", Label: "Message", Required: true},
			},
		},
		catalog.ToolDefinition{
			ID:          "condition_check",
			DisplayName: "Condition Check",
			Category:    models.CategoryTypeAction,
			Inputs: []catalog.PortDef{
				{Name: "input", Type: models.ValueTypeAny},
			},
			Outputs: []catalog.PortDef{
				{Name: "true_path", Type: models.ValueTypeAny},
				{Name: "false_path", Type: models.ValueTypeAny},
			},
			ConfigSchema: []catalog.ConfigField{
				{Key: "condition", Type: "string", Label: "Condition", Required: true},
			},
		},
	)
}

func TestAddNode_SequentialIDs(t *testing.T) {
	g := New(testCatalog(), "test", "")

	first, err := g.AddNode("sms_sender", 10, 20)
	require.NoError(t, err)
	assert.Equal(t, "node-1", first.ID)
	assert.Equal(t, []string{"input"}, first.Inputs)
	assert.Equal(t, []string{"sent"}, first.Outputs)

	second, err := g.AddNode("sms_sender", 30, 40)
	require.NoError(t, err)
	assert.Equal(t, "node-2", second.ID)
}

func TestAddNode_UnknownTool(t *testing.T) {
	g := New(testCatalog(), "test", "")

	_, err := g.AddNode("no_such_tool", 0, 0)
	require.ErrorIs(t, err, models.ErrUnknownTool)
	assert.Equal(t, 0, g.NodeCount())
}

func TestConnect_RejectsSelfLoop(t *testing.T) {
	g := New(testCatalog(), "test", "")

	node, err := g.AddNode("condition_check", 0, 0)
	require.NoError(t, err)

	_, err = g.Connect(node.ID, "true_path", node.ID, "input")
	require.ErrorIs(t, err, models.ErrSelfLoop)
	assert.Equal(t, 0, g.ConnectionCount())
}

func TestConnect_RejectsUnknownPorts(t *testing.T) {
	g := New(testCatalog(), "test", "")

	trigger, err := g.AddNode(models.ToolTypeTriggerManual, 0, 0)
	require.NoError(t, err)

	sms, err := g.AddNode("sms_sender", 0, 0)
	require.NoError(t, err)

	_, err = g.Connect(trigger.ID, "no_such_port", sms.ID, "input")
	require.ErrorIs(t, err, models.ErrInvalidPort)

	_, err = g.Connect(trigger.ID, "triggered", sms.ID, "no_such_port")
	require.ErrorIs(t, err, models.ErrInvalidPort)

	_, err = g.Connect("missing-node", "triggered", sms.ID, "input")
	require.ErrorIs(t, err, models.ErrInvalidPort)
}

func TestConnect_SupersedesOccupiedInputPort(t *testing.T) {
	g := New(testCatalog(), "test", "")

	trigger, err := g.AddNode(models.ToolTypeTriggerManual, 0, 0)
	require.NoError(t, err)

	check, err := g.AddNode("condition_check", 0, 0)
	require.NoError(t, err)

	sms, err := g.AddNode("sms_sender", 0, 0)
	require.NoError(t, err)

	old, err := g.Connect(trigger.ID, "triggered", sms.ID, "input")
	require.NoError(t, err)

	// A second producer for the same input port replaces the first.
	replacement, err := g.Connect(check.ID, "true_path", sms.ID, "input")
	require.NoError(t, err)

	assert.Equal(t, 1, g.ConnectionCount())
	assert.NotEqual(t, old.ID, replacement.ID)

	doc := g.Export()
	require.Len(t, doc.Connections, 1)
	assert.Equal(t, check.ID, doc.Connections[0].SourceNodeID)
}

func TestRemoveNode_CascadesConnections(t *testing.T) {
	g := New(testCatalog(), "test", "")

	trigger, err := g.AddNode(models.ToolTypeTriggerManual, 0, 0)
	require.NoError(t, err)

	check, err := g.AddNode("condition_check", 0, 0)
	require.NoError(t, err)

	sms, err := g.AddNode("sms_sender", 0, 0)
	require.NoError(t, err)

	_, err = g.Connect(trigger.ID, "triggered", check.ID, "input")
	require.NoError(t, err)

	_, err = g.Connect(check.ID, "true_path", sms.ID, "input")
	require.NoError(t, err)

	g.RemoveNode(check.ID)

	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 0, g.ConnectionCount())

	// Removing a missing node is a no-op.
	g.RemoveNode("missing-node")
	assert.Equal(t, 2, g.NodeCount())
}

func TestDisconnect_NoopWhenMissing(t *testing.T) {
	g := New(testCatalog(), "test", "")

	g.Disconnect("conn-99")
	assert.Equal(t, 0, g.ConnectionCount())
}

func TestUpdateNodeConfig(t *testing.T) {
	g := New(testCatalog(), "test", "")

	sms, err := g.AddNode("sms_sender", 0, 0)
	require.NoError(t, err)

	require.NoError(t, g.UpdateNodeConfig(sms.ID, "message", "hello"))

	// Policy keys are accepted on every tool.
	require.NoError(t, g.UpdateNodeConfig(sms.ID, "timeout_seconds", 10.0))

	err = g.UpdateNodeConfig(sms.ID, "no_such_key", "x")
	require.ErrorIs(t, err, models.ErrInvalidConfig)

	err = g.UpdateNodeConfig(sms.ID, "message", 42)
	require.ErrorIs(t, err, models.ErrInvalidConfig)

	err = g.UpdateNodeConfig("missing-node", "message", "hello")
	require.ErrorIs(t, err, models.ErrNodeNotFound)

	node, err := g.Node(sms.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", node.Config["message"])
}

func TestClear_ResetsIDCounters(t *testing.T) {
	g := New(testCatalog(), "test", "")

	_, err := g.AddNode("sms_sender", 0, 0)
	require.NoError(t, err)

	_, err = g.AddNode("sms_sender", 0, 0)
	require.NoError(t, err)

	g.Clear()
	assert.Equal(t, 0, g.NodeCount())

	node, err := g.AddNode("sms_sender", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "node-1", node.ID)
}

func TestExportImport_RoundTrip(t *testing.T) {
	g := New(testCatalog(), "roundtrip", "desc")

	trigger, err := g.AddNode(models.ToolTypeTriggerManual, 1, 2)
	require.NoError(t, err)

	sms, err := g.AddNode("sms_sender", 3, 4)
	require.NoError(t, err)

	require.NoError(t, g.UpdateNodeConfig(sms.ID, "phone_number", "+15550100"))
	require.NoError(t, g.UpdateNodeConfig(sms.ID, "message", "hi"))

	_, err = g.Connect(trigger.ID, "triggered", sms.ID, "input")
	require.NoError(t, err)

	doc := g.Export()

	other := New(testCatalog(), "", "")
	require.NoError(t, other.Import(doc))

	redoc := other.Export()
	assert.Equal(t, doc.Nodes, redoc.Nodes)
	assert.Equal(t, doc.Connections, redoc.Connections)
	assert.Equal(t, doc.Metadata.Name, redoc.Metadata.Name)

	// Ids survive import verbatim.
	imported, err := other.Node(sms.ID)
	require.NoError(t, err)
	assert.Equal(t, "+15550100", imported.Config["phone_number"])
}

func TestImport_PreservedIDsNotReissued(t *testing.T) {
	g := New(testCatalog(), "test", "")

	source, err := g.AddNode("sms_sender", 0, 0)
	require.NoError(t, err)

	doc := g.Export()

	other := New(testCatalog(), "", "")
	require.NoError(t, other.Import(doc))

	// New nodes skip ids occupied by the import.
	fresh, err := other.AddNode("sms_sender", 0, 0)
	require.NoError(t, err)
	assert.NotEqual(t, source.ID, fresh.ID)
}

func TestImport_RejectsWithoutMutating(t *testing.T) {
	g := New(testCatalog(), "keep", "")

	_, err := g.AddNode("sms_sender", 0, 0)
	require.NoError(t, err)

	bad := &models.GraphDocument{
		Nodes: []*models.Node{
			{ID: "node-1", ToolID: "sms_sender", Inputs: []string{"input"}, Outputs: []string{"sent"}},
		},
		Connections: []*models.Connection{
			{ID: "conn-1", SourceNodeID: "node-1", SourcePort: "sent", TargetNodeID: "ghost", TargetPort: "input"},
		},
		Metadata: models.DocumentMetadata{Name: "bad", Version: models.DocumentVersion},
	}

	err = g.Import(bad)
	require.ErrorIs(t, err, models.ErrMalformedDocument)

	// Original contents untouched.
	assert.Equal(t, 1, g.NodeCount())
	assert.Equal(t, "keep", g.Name())
}

func TestCheckDocument_VersionGate(t *testing.T) {
	doc := &models.GraphDocument{
		Metadata: models.DocumentMetadata{Name: "x", Version: "2.0"},
	}

	err := CheckDocument(doc)
	require.ErrorIs(t, err, models.ErrUnsupportedVersion)
}

func TestCheckDocument_DuplicateNodeIDs(t *testing.T) {
	doc := &models.GraphDocument{
		Nodes: []*models.Node{
			{ID: "node-1", ToolID: "log"},
			{ID: "node-1", ToolID: "log"},
		},
		Metadata: models.DocumentMetadata{Name: "x", Version: models.DocumentVersion},
	}

	err := CheckDocument(doc)
	require.ErrorIs(t, err, models.ErrMalformedDocument)
	assert.True(t, errors.Is(err, models.ErrMalformedDocument))
}

func TestCheckDocument_UnknownPortReference(t *testing.T) {
	doc := &models.GraphDocument{
		Nodes: []*models.Node{
			{ID: "a", ToolID: "log", Outputs: []string{"logged"}},
			{ID: "b", ToolID: "log", Inputs: []string{"input"}},
		},
		Connections: []*models.Connection{
			{ID: "c", SourceNodeID: "a", SourcePort: "bogus", TargetNodeID: "b", TargetPort: "input"},
		},
		Metadata: models.DocumentMetadata{Name: "x", Version: models.DocumentVersion},
	}

	err := CheckDocument(doc)
	require.ErrorIs(t, err, models.ErrMalformedDocument)
}
