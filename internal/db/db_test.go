package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunStatusConstants(t *testing.T) {
	statuses := []string{RunStatusRunning, RunStatusCompleted, RunStatusFailed}
	for _, status := range statuses {
		assert.NotEmpty(t, status)
	}
}

func TestDefaultFilingTTL(t *testing.T) {
	assert.Equal(t, 30*24*time.Hour, DefaultFilingTTL)
}

func TestSearchRunType(t *testing.T) {
	run := SearchRun{
		Description: "AAPL",
		Status:      RunStatusRunning,
	}

	assert.Equal(t, "AAPL", run.Description)
	assert.Equal(t, RunStatusRunning, run.Status)
	assert.Nil(t, run.CompletedAt)
	assert.Zero(t, run.MatchCount)
}
