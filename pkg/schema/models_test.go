package schema_test

import (
	"testing"

	"github.com/MinhHuy1507/agriseed/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAllModels verifies every table participates in AutoMigrate.
func TestAllModels(t *testing.T) {
	models := schema.AllModels()
	require.Len(t, models, 3)

	_, ok := models[0].(*schema.Province)
	assert.True(t, ok, "first model should be Province")
	_, ok = models[1].(*schema.StatRecord)
	assert.True(t, ok, "second model should be StatRecord")
	_, ok = models[2].(*schema.LoadRun)
	assert.True(t, ok, "third model should be LoadRun")
}

// TestTableNames verifies the explicit table name mapping.
func TestTableNames(t *testing.T) {
	assert.Equal(t, "provinces", schema.Province{}.TableName())
	assert.Equal(t, "stat_records", schema.StatRecord{}.TableName())
	assert.Equal(t, "load_runs", schema.LoadRun{}.TableName())
}

// TestRunStates verifies status and outcome vocabulary.
func TestRunStates(t *testing.T) {
	assert.Equal(t, "running", schema.StatusRunning)
	assert.Equal(t, "completed", schema.StatusCompleted)
	assert.Equal(t, "failed", schema.StatusFailed)

	assert.Equal(t, "success", schema.OutcomeSuccess)
	assert.Equal(t, "partial", schema.OutcomePartial)
	assert.Equal(t, "failed", schema.OutcomeFailed)
}
