package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"airdrop-tracker-backend/internal/features/airdrop/models"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)
	nextWeek := now.AddDate(0, 0, 7)

	tests := []struct {
		name      string
		tasks     []models.Task
		startDate *time.Time
		deadline  *time.Time
		want      models.Status
	}{
		{
			name: "all tasks completed wins over everything",
			tasks: []models.Task{
				{ID: "1", Text: "a", Completed: true},
				{ID: "2", Text: "b", Completed: true},
			},
			startDate: timePtr(yesterday),
			deadline:  timePtr(nextWeek),
			want:      models.StatusCompleted,
		},
		{
			name: "one incomplete task keeps checklist rule out",
			tasks: []models.Task{
				{ID: "1", Text: "a", Completed: true},
				{ID: "2", Text: "b", Completed: false},
			},
			startDate: timePtr(yesterday),
			deadline:  timePtr(nextWeek),
			want:      models.StatusActive,
		},
		{
			name:     "empty checklist never completes by tasks",
			tasks:    nil,
			deadline: timePtr(nextWeek),
			want:     models.StatusUpcoming,
		},
		{
			name:     "elapsed deadline completes with no tasks",
			tasks:    nil,
			deadline: timePtr(yesterday),
			want:     models.StatusCompleted,
		},
		{
			name: "elapsed deadline overrides active start date",
			tasks: []models.Task{
				{ID: "1", Text: "a", Completed: false},
			},
			startDate: timePtr(yesterday.AddDate(0, 0, -1)),
			deadline:  timePtr(yesterday),
			want:      models.StatusCompleted,
		},
		{
			name:      "started and not past deadline is active",
			tasks:     []models.Task{{ID: "1", Text: "a", Completed: false}},
			startDate: timePtr(yesterday),
			deadline:  timePtr(nextWeek),
			want:      models.StatusActive,
		},
		{
			name:      "start date equal to now counts as started",
			startDate: timePtr(now),
			want:      models.StatusActive,
		},
		{
			name:      "future start date is upcoming",
			startDate: timePtr(tomorrow),
			want:      models.StatusUpcoming,
		},
		{
			name: "no dates and incomplete tasks is upcoming",
			tasks: []models.Task{
				{ID: "1", Text: "a", Completed: false},
			},
			want: models.StatusUpcoming,
		},
		{
			name: "no dates no tasks is upcoming",
			want: models.StatusUpcoming,
		},
		{
			name:     "deadline exactly now has not elapsed",
			deadline: timePtr(now),
			want:     models.StatusUpcoming,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := models.DeriveStatus(tt.tasks, tt.startDate, tt.deadline, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in     string
		want   models.Status
		wantOK bool
	}{
		{"active", models.StatusActive, true},
		{"Active", models.StatusActive, true},
		{"  COMPLETED  ", models.StatusCompleted, true},
		{"upcoming", models.StatusUpcoming, true},
		{"", "", false},
		{"done", "", false},
	}

	for _, tt := range tests {
		got, ok := models.ParseStatus(tt.in)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParseFilterStatus(t *testing.T) {
	assert.Equal(t, models.FilterActive, models.ParseFilterStatus("active"))
	assert.Equal(t, models.FilterAll, models.ParseFilterStatus(""))
	assert.Equal(t, models.FilterAll, models.ParseFilterStatus("all"))
	assert.Equal(t, models.FilterAll, models.ParseFilterStatus("garbage"))
}

func TestAirdropMatches(t *testing.T) {
	a := &models.Airdrop{
		Name:        "ZkSync Mega Drop",
		Description: "Bridge funds and swap twice",
		Status:      models.StatusActive,
	}

	assert.True(t, a.Matches(models.FilterAll, ""))
	assert.True(t, a.Matches(models.FilterActive, "mega"))
	assert.True(t, a.Matches(models.FilterAll, "SWAP"))
	assert.True(t, a.Matches(models.FilterAll, "  zksync "))
	assert.False(t, a.Matches(models.FilterCompleted, ""))
	assert.False(t, a.Matches(models.FilterAll, "solana"))
}
