package scheduler

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolweave/toolweave/pkg/models"
	"github.com/toolweave/toolweave/pkg/testutil"
)

func scheduleNode(id, expr string) *models.Node {
	return testutil.CreateTestNode(
		testutil.WithID(id),
		testutil.WithTool(models.ToolTypeTriggerSchedule, nil, []string{"triggered"}),
		testutil.WithConfig(map[string]any{"cron_expression": expr}),
	)
}

func newTestScheduler() *Scheduler {
	return New(nil, func(context.Context, string, string) {}, slog.Default())
}

func TestRegister_AddsEntryPerScheduleNode(t *testing.T) {
	sched := newTestScheduler()

	doc := testutil.CreateTestDocument(
		[]*models.Node{
			scheduleNode("s1", "*/5 * * * *"),
			scheduleNode("s2", "0 9 * * 1"),
			testutil.CreateTestNode(testutil.WithID("action")),
		},
		nil,
	)

	require.NoError(t, sched.Register(context.Background(), "g1", doc))

	assert.Len(t, sched.entries, 2)
	assert.Contains(t, sched.entries, "g1/s1")
	assert.Contains(t, sched.entries, "g1/s2")
}

func TestRegister_ReplacesEarlierEntries(t *testing.T) {
	sched := newTestScheduler()
	ctx := context.Background()

	first := testutil.CreateTestDocument([]*models.Node{scheduleNode("s1", "*/5 * * * *")}, nil)
	require.NoError(t, sched.Register(ctx, "g1", first))

	second := testutil.CreateTestDocument([]*models.Node{scheduleNode("s2", "0 * * * *")}, nil)
	require.NoError(t, sched.Register(ctx, "g1", second))

	assert.Len(t, sched.entries, 1)
	assert.Contains(t, sched.entries, "g1/s2")
}

func TestRegister_InvalidCronExpression(t *testing.T) {
	sched := newTestScheduler()

	doc := testutil.CreateTestDocument([]*models.Node{scheduleNode("s1", "not a cron")}, nil)

	err := sched.Register(context.Background(), "g1", doc)
	require.Error(t, err)
	assert.Empty(t, sched.entries)
}

func TestRegister_MissingCronExpression(t *testing.T) {
	sched := newTestScheduler()

	node := scheduleNode("s1", "")
	doc := testutil.CreateTestDocument([]*models.Node{node}, nil)

	err := sched.Register(context.Background(), "g1", doc)
	require.Error(t, err)
}

func TestUnregister_RemovesGraphEntries(t *testing.T) {
	sched := newTestScheduler()

	doc := testutil.CreateTestDocument([]*models.Node{scheduleNode("s1", "*/5 * * * *")}, nil)
	require.NoError(t, sched.Register(context.Background(), "g1", doc))

	other := testutil.CreateTestDocument([]*models.Node{scheduleNode("s1", "*/5 * * * *")}, nil)
	require.NoError(t, sched.Register(context.Background(), "g2", other))

	sched.Unregister("g1")

	assert.Len(t, sched.entries, 1)
	assert.Contains(t, sched.entries, "g2/s1")
}
