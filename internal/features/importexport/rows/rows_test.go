package rows_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airdrop-tracker-backend/internal/features/airdrop/models"
	"airdrop-tracker-backend/internal/features/importexport/rows"
)

func headerRow() []interface{} {
	return rows.HeaderRow()
}

func TestValidateHeader(t *testing.T) {
	assert.NoError(t, rows.ValidateHeader(headerRow()))

	// Trailing empty padding cells are fine, named extra columns are not.
	padded := append(headerRow(), "", " ")
	assert.NoError(t, rows.ValidateHeader(padded))

	withExtra := append(headerRow(), "Whatever")
	assert.Error(t, rows.ValidateHeader(withExtra))

	short := headerRow()[:4]
	assert.Error(t, rows.ValidateHeader(short))

	wrongText := headerRow()
	wrongText[2] = "Start Date"
	assert.Error(t, rows.ValidateHeader(wrongText))

	caseChanged := headerRow()
	caseChanged[0] = "name"
	assert.Error(t, rows.ValidateHeader(caseChanged))
}

func TestParseRow(t *testing.T) {
	input, warn := rows.ParseRow(2, []interface{}{
		"ZkSync", "Bridge twice", "2025-01-05", "2025-03-01", "bridge; swap ;;claim", "active",
	})
	require.Empty(t, warn)
	require.NotNil(t, input)

	assert.Equal(t, "ZkSync", input.Name)
	assert.Equal(t, "Bridge twice", input.Description)
	require.NotNil(t, input.StartDate)
	assert.Equal(t, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), *input.StartDate)
	require.NotNil(t, input.Deadline)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *input.Deadline)

	require.Len(t, input.Tasks, 3)
	assert.Equal(t, "bridge", input.Tasks[0].Text)
	assert.Equal(t, "swap", input.Tasks[1].Text)
	assert.Equal(t, "claim", input.Tasks[2].Text)
	for _, task := range input.Tasks {
		assert.False(t, task.Completed)
	}

	require.NotNil(t, input.Status)
	assert.Equal(t, models.StatusActive, *input.Status)
}

func TestParseRow_EmptyNameSkipped(t *testing.T) {
	input, warn := rows.ParseRow(3, []interface{}{"  ", "desc", "", "", "", ""})
	assert.Nil(t, input)
	assert.Contains(t, warn, "row 3")
	assert.Contains(t, warn, "Name is empty")
}

func TestParseRow_BadDateBecomesAbsent(t *testing.T) {
	input, warn := rows.ParseRow(2, []interface{}{"X", "", "05/01/2025", "not a date", "", ""})
	require.Empty(t, warn)
	require.NotNil(t, input)
	assert.Nil(t, input.StartDate)
	assert.Nil(t, input.Deadline)
}

func TestParseRow_UnknownStatusDerivesInstead(t *testing.T) {
	input, warn := rows.ParseRow(2, []interface{}{"X", "", "", "", "", "finished"})
	require.Empty(t, warn)
	require.NotNil(t, input)
	assert.Nil(t, input.Status)
}

func TestParseRow_ShortRow(t *testing.T) {
	input, warn := rows.ParseRow(2, []interface{}{"OnlyName"})
	require.Empty(t, warn)
	require.NotNil(t, input)
	assert.Equal(t, "OnlyName", input.Name)
	assert.Empty(t, input.Tasks)
	assert.Nil(t, input.Status)
}

func TestRoundTrip(t *testing.T) {
	start := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	deadline := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	original := &models.Airdrop{
		Name:        "LayerZero",
		Description: "do the things",
		StartDate:   &start,
		Deadline:    &deadline,
		Status:      models.StatusActive,
		Tasks: []models.Task{
			{ID: "1", Text: "bridge", Completed: true},
			{ID: "2", Text: "swap", Completed: false},
		},
	}

	row := rows.FormatRow(original)
	parsed, warn := rows.ParseRow(2, row)
	require.Empty(t, warn)
	require.NotNil(t, parsed)

	assert.Equal(t, original.Name, parsed.Name)
	assert.Equal(t, original.Description, parsed.Description)
	assert.Equal(t, original.StartDate, parsed.StartDate)
	assert.Equal(t, original.Deadline, parsed.Deadline)
	require.NotNil(t, parsed.Status)
	assert.Equal(t, original.Status, *parsed.Status)

	// Completion flags reset on import: re-importing restarts progress.
	require.Len(t, parsed.Tasks, 2)
	assert.Equal(t, "bridge", parsed.Tasks[0].Text)
	assert.False(t, parsed.Tasks[0].Completed)
}
